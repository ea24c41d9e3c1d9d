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

import "time"

// Defaults for the teacher portal verification flow.
const (
	DefaultURL            = "http://localhost:3000/en-US/teacher-portal"
	DefaultRosterStyle    = "grid-template-columns: repeat(auto-fill, minmax(300px, 1fr))"
	DefaultModalStyle     = "max-width: 600px"
	DefaultScreenshotPath = "verification/verification.png"

	DefaultStepTimeout    = 30 * time.Second
	DefaultRunTimeout     = 3 * time.Minute
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720

	DefaultAuthCookieName = "session"
	DefaultAuthTTL        = time.Hour
)

// Step names. They appear in logs, errors and ledger records.
const (
	StepPreflight     = "preflight"
	StepLaunch        = "launch"
	StepAuthenticate  = "authenticate"
	StepNavigate      = "navigate"
	StepWaitRoster    = "wait-roster"
	StepOpenFirstItem = "open-first-item"
	StepWaitModal     = "wait-modal"
	StepGolden        = "golden"
	StepScreenshot    = "screenshot"
)

// Environment variables read by the command line tools.
const (
	EnvChromeBin  = "CHROME_BIN"
	EnvAuthSecret = "PORTALCHECK_AUTH_SECRET"
	EnvMasterKey  = "PORTALCHECK_MASTER_KEY"
)
