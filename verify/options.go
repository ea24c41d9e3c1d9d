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
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"
)

// Options configures a verification run. The zero value of any field
// falls back to the matching Default constant.
type Options struct {
	// URL is the page to verify.
	URL string
	// RosterStyle and ModalStyle are the inline style substrings that
	// identify the roster grid and the report card modal.
	RosterStyle string
	ModalStyle  string
	// ScreenshotPath is where the PNG is written. It is overwritten when
	// present.
	ScreenshotPath string
	// FullPage captures the whole page instead of the viewport.
	FullPage bool

	// ChromeURL attaches to a running browser's DevTools endpoint. When
	// empty a local browser is started from ChromePath.
	ChromeURL  string
	ChromePath string
	// Headful shows the browser window. Only used when launching locally.
	Headful bool

	ViewportWidth  int
	ViewportHeight int

	// StepTimeout bounds each step. RunTimeout bounds the whole run.
	StepTimeout time.Duration
	RunTimeout  time.Duration
	// ServerWait enables the preflight probe of URL when positive.
	ServerWait time.Duration

	// DebugDir receives HTML and PNG dumps of the page when a step
	// fails. Empty disables the capture.
	DebugDir string
	// Debug routes browser protocol logs to Logf.
	Debug bool

	// Golden is a text file holding the expected modal text.
	Golden       string
	UpdateGolden bool

	// Auth installs a session cookie before navigating when non-nil.
	Auth *AuthOptions
	// Ledger records the run when non-nil.
	Ledger *Ledger

	// Logf receives progress messages. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

var logf = log.Printf

// ErrInvalidOptions is returned by Validate.
var ErrInvalidOptions = errors.New("invalid options")

// withDefaults returns a copy of o with zero fields set to their defaults.
func (o Options) withDefaults() Options {
	if o.URL == "" {
		o.URL = DefaultURL
	}
	if o.RosterStyle == "" {
		o.RosterStyle = DefaultRosterStyle
	}
	if o.ModalStyle == "" {
		o.ModalStyle = DefaultModalStyle
	}
	if o.ScreenshotPath == "" {
		o.ScreenshotPath = DefaultScreenshotPath
	}
	if o.ViewportWidth <= 0 {
		o.ViewportWidth = DefaultViewportWidth
	}
	if o.ViewportHeight <= 0 {
		o.ViewportHeight = DefaultViewportHeight
	}
	if o.StepTimeout <= 0 {
		o.StepTimeout = DefaultStepTimeout
	}
	if o.RunTimeout <= 0 {
		o.RunTimeout = DefaultRunTimeout
	}
	if o.Logf == nil {
		o.Logf = logf
	}
	return o
}

// Validate reports the first problem found in o after defaults are
// applied.
func (o Options) Validate() error {
	o = o.withDefaults()
	u, err := url.Parse(o.URL)
	if err != nil {
		return fmt.Errorf("%w: url %q: %v", ErrInvalidOptions, o.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: url %q must be http or https", ErrInvalidOptions, o.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: url %q has no host", ErrInvalidOptions, o.URL)
	}
	if o.ServerWait < 0 {
		return fmt.Errorf("%w: negative server wait", ErrInvalidOptions)
	}
	if o.StepTimeout > o.RunTimeout {
		return fmt.Errorf("%w: step timeout %v exceeds run timeout %v", ErrInvalidOptions, o.StepTimeout, o.RunTimeout)
	}
	if o.UpdateGolden && o.Golden == "" {
		return fmt.Errorf("%w: update-golden requires a golden file", ErrInvalidOptions)
	}
	if o.Auth != nil {
		if err := o.Auth.validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
	}
	return nil
}
