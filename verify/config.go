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
	"fmt"
	"os"
	"time"
)

// Config holds the command line settings of portalcheck.
type Config struct {
	URL         string
	RosterStyle string
	ModalStyle  string
	Out         string
	FullPage    bool

	ChromeURL  string
	ChromePath string
	Headful    bool
	Width      int
	Height     int

	StepTimeout time.Duration
	RunTimeout  time.Duration
	ServerWait  time.Duration

	Debug    bool
	DebugDir string

	Golden       string
	UpdateGolden bool

	DataDir string

	AuthCookieName string
	AuthSecret     string
	AuthJWK        string
	AuthSubject    string
	AuthTTL        time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		URL:            DefaultURL,
		RosterStyle:    DefaultRosterStyle,
		ModalStyle:     DefaultModalStyle,
		Out:            DefaultScreenshotPath,
		Width:          DefaultViewportWidth,
		Height:         DefaultViewportHeight,
		StepTimeout:    DefaultStepTimeout,
		RunTimeout:     DefaultRunTimeout,
		AuthCookieName: DefaultAuthCookieName,
		AuthSecret:     os.Getenv(EnvAuthSecret),
		AuthTTL:        DefaultAuthTTL,
	}
}

// Options converts c into run options. Authentication is enabled when a
// subject is set. The ledger is left to the caller.
func (c Config) Options() Options {
	o := Options{
		URL:            c.URL,
		RosterStyle:    c.RosterStyle,
		ModalStyle:     c.ModalStyle,
		ScreenshotPath: c.Out,
		FullPage:       c.FullPage,
		ChromeURL:      c.ChromeURL,
		ChromePath:     c.ChromePath,
		Headful:        c.Headful,
		ViewportWidth:  c.Width,
		ViewportHeight: c.Height,
		StepTimeout:    c.StepTimeout,
		RunTimeout:     c.RunTimeout,
		ServerWait:     c.ServerWait,
		DebugDir:       c.DebugDir,
		Debug:          c.Debug,
		Golden:         c.Golden,
		UpdateGolden:   c.UpdateGolden,
	}
	if c.AuthSubject != "" {
		o.Auth = &AuthOptions{
			CookieName: c.AuthCookieName,
			Secret:     c.AuthSecret,
			JWKFile:    c.AuthJWK,
			Subject:    c.AuthSubject,
			TTL:        c.AuthTTL,
		}
		// A JWK file on the command line wins over a secret from the
		// environment.
		if o.Auth.JWKFile != "" {
			o.Auth.Secret = ""
		}
	}
	return o
}

// configSetter applies values while respecting flag precedence. It only
// applies values whose flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}
