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

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML
// friendly. Keys match the flag names.
type FileConfig struct {
	URL         string `toml:"url"`
	RosterStyle string `toml:"roster_style"`
	ModalStyle  string `toml:"modal_style"`
	Out         string `toml:"out"`
	FullPage    *bool  `toml:"full_page"`

	ChromeURL  string `toml:"chrome_url"`
	ChromePath string `toml:"chrome_path"`
	Headful    *bool  `toml:"headful"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`

	StepTimeout string `toml:"step_timeout"`
	RunTimeout  string `toml:"timeout"`
	ServerWait  string `toml:"wait_server"`

	Debug    *bool  `toml:"debug"`
	DebugDir string `toml:"debug_dir"`

	Golden string `toml:"golden"`

	DataDir string `toml:"data_dir"`

	Auth struct {
		CookieName string `toml:"cookie_name"`
		JWK        string `toml:"jwk"`
		Subject    string `toml:"subject"`
		TTL        string `toml:"ttl"`
	} `toml:"auth"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// ApplyFileConfig applies configuration from a file to cfg. Flags named in
// changed were set explicitly and keep their value. The auth secret is not
// read from files, only from the flag or the environment.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("url", fc.URL, &cfg.URL)
	s.setString("roster-style", fc.RosterStyle, &cfg.RosterStyle)
	s.setString("modal-style", fc.ModalStyle, &cfg.ModalStyle)
	s.setString("out", fc.Out, &cfg.Out)
	s.setString("chrome-url", fc.ChromeURL, &cfg.ChromeURL)
	s.setString("chrome-path", fc.ChromePath, &cfg.ChromePath)
	s.setString("debug-dir", fc.DebugDir, &cfg.DebugDir)
	s.setString("golden", fc.Golden, &cfg.Golden)
	s.setString("data-dir", fc.DataDir, &cfg.DataDir)
	s.setString("auth-cookie-name", fc.Auth.CookieName, &cfg.AuthCookieName)
	s.setString("auth-jwk", fc.Auth.JWK, &cfg.AuthJWK)
	s.setString("auth-subject", fc.Auth.Subject, &cfg.AuthSubject)

	s.setInt("width", fc.Width, &cfg.Width)
	s.setInt("height", fc.Height, &cfg.Height)

	if err := s.setDuration("step-timeout", fc.StepTimeout, &cfg.StepTimeout); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.RunTimeout, &cfg.RunTimeout); err != nil {
		return err
	}
	if err := s.setDuration("wait-server", fc.ServerWait, &cfg.ServerWait); err != nil {
		return err
	}
	if err := s.setDuration("auth-ttl", fc.Auth.TTL, &cfg.AuthTTL); err != nil {
		return err
	}

	s.setBool("full-page", fc.FullPage, &cfg.FullPage)
	s.setBool("headful", fc.Headful, &cfg.Headful)
	s.setBool("debug", fc.Debug, &cfg.Debug)

	return nil
}
