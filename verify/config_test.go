// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package verify

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "portalcheck.toml")
	content := `
url = "https://staging.example.com/en-US/teacher-portal"
out = "artifacts/portal.png"
full_page = true
width = 1440
step_timeout = "10s"
timeout = "2m"
wait_server = "15s"
data_dir = "/var/lib/portalcheck"

[auth]
subject = "teacher@example.com"
cookie_name = "sk_auth"
ttl = "30m"
`
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadFileConfig(p)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}
	cfg := DefaultConfig()
	cfg.AuthSecret = ""
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.URL != "https://staging.example.com/en-US/teacher-portal" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.Out != "artifacts/portal.png" || !cfg.FullPage {
		t.Errorf("out = %q fullPage = %v", cfg.Out, cfg.FullPage)
	}
	if cfg.Width != 1440 || cfg.Height != DefaultViewportHeight {
		t.Errorf("viewport = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.StepTimeout != 10*time.Second || cfg.RunTimeout != 2*time.Minute || cfg.ServerWait != 15*time.Second {
		t.Errorf("durations = %v %v %v", cfg.StepTimeout, cfg.RunTimeout, cfg.ServerWait)
	}
	if cfg.AuthSubject != "teacher@example.com" || cfg.AuthCookieName != "sk_auth" || cfg.AuthTTL != 30*time.Minute {
		t.Errorf("auth = %q %q %v", cfg.AuthSubject, cfg.AuthCookieName, cfg.AuthTTL)
	}
	if cfg.RosterStyle != DefaultRosterStyle {
		t.Errorf("RosterStyle changed to %q", cfg.RosterStyle)
	}
}

func TestLoadFileConfig_Errors(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
	p := filepath.Join(t.TempDir(), "bad.toml")
	os.WriteFile(p, []byte("url = [unterminated"), 0644)
	if _, err := LoadFileConfig(p); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyFileConfig(t *testing.T) {
	trueVal := true

	tests := []struct {
		name    string
		fc      FileConfig
		changed map[string]bool
		check   func(t *testing.T, cfg Config)
		wantErr bool
	}{
		{
			name:    "respects changed flags",
			fc:      FileConfig{URL: "http://file/x", Out: "file.png"},
			changed: map[string]bool{"url": true},
			check: func(t *testing.T, cfg Config) {
				if cfg.URL != DefaultURL {
					t.Errorf("URL = %q, flag value should win", cfg.URL)
				}
				if cfg.Out != "file.png" {
					t.Errorf("Out = %q", cfg.Out)
				}
			},
		},
		{
			name:    "bools",
			fc:      FileConfig{Headful: &trueVal, Debug: &trueVal},
			changed: map[string]bool{"debug": true},
			check: func(t *testing.T, cfg Config) {
				if !cfg.Headful {
					t.Error("Headful not applied")
				}
				if cfg.Debug {
					t.Error("Debug flag overridden")
				}
			},
		},
		{
			name:    "invalid duration",
			fc:      FileConfig{StepTimeout: "soon"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "invalid duration ignored when flag set",
			fc:      FileConfig{StepTimeout: "soon"},
			changed: map[string]bool{"step-timeout": true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := ApplyFileConfig(&cfg, tc.fc, tc.changed)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AuthSecret = ""
	if o := cfg.Options(); o.Auth != nil {
		t.Errorf("auth enabled without subject: %+v", o.Auth)
	}
	if o := cfg.Options(); o.ScreenshotPath != DefaultScreenshotPath || o.URL != DefaultURL {
		t.Errorf("options = %+v", o)
	}

	cfg.AuthSubject = "teacher@example.com"
	cfg.AuthSecret = "from-env"
	o := cfg.Options()
	if o.Auth == nil || o.Auth.Secret != "from-env" || o.Auth.Subject != "teacher@example.com" {
		t.Fatalf("auth = %+v", o.Auth)
	}
	if err := o.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg.AuthJWK = "key.json"
	o = cfg.Options()
	if o.Auth.Secret != "" || o.Auth.JWKFile != "key.json" {
		t.Errorf("JWK should replace the secret: %+v", o.Auth)
	}
}
