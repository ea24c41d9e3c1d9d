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

// Package verify drives a headless browser through the teacher portal
// check: open the portal, wait for the student roster, open the first
// student's report card and save a screenshot of it.
package verify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
)

// Result describes a verification run. Run returns it even on failure so
// callers can inspect the step timings.
type Result struct {
	RunID           string
	URL             string
	ScreenshotPath  string // Empty unless the screenshot was written.
	ScreenshotBytes int
	Started         time.Time
	Duration        time.Duration
	Steps           []StepTiming
}

// Run executes the verification sequence described by opts. The browser
// is released before Run returns, whatever the outcome.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	o := opts.withDefaults()

	res := &Result{
		RunID:   uuid.NewString(),
		URL:     o.URL,
		Started: time.Now(),
	}
	o.Logf("Run %s: verifying %s", res.RunID, o.URL)

	runner := &stepRunner{timeout: o.StepTimeout, logf: o.Logf}
	err := run(ctx, o, runner, res)
	res.Duration = time.Since(res.Started)
	res.Steps = runner.timings

	if o.Ledger != nil {
		if lerr := o.Ledger.Record(res.record(err)); lerr != nil {
			o.Logf("Failed to record run %s: %v", res.RunID, lerr)
		}
	}
	if err != nil {
		return res, err
	}
	o.Logf("Run %s: passed in %v", res.RunID, res.Duration)
	return res, nil
}

func run(ctx context.Context, o Options, runner *stepRunner, res *Result) error {
	ctx, cancel := context.WithTimeout(ctx, o.RunTimeout)
	defer cancel()

	if o.ServerWait > 0 {
		if err := runner.run(ctx, Step{
			Name:    StepPreflight,
			Timeout: o.ServerWait + 5*time.Second,
			Do: func(ctx context.Context) error {
				return WaitForServer(ctx, o.URL, o.ServerWait, o.Logf)
			},
		}); err != nil {
			return err
		}
	}

	browserCtx, release := newBrowserContext(ctx, o)
	defer release()

	if err := runner.run(browserCtx, Step{
		Name: StepLaunch,
		// The first Run allocates the browser and ties its lifetime to
		// the context it is given, so it gets browserCtx, not the step
		// context.
		Do: func(context.Context) error {
			return chromedp.Run(browserCtx,
				chromedp.EmulateViewport(int64(o.ViewportWidth), int64(o.ViewportHeight)),
			)
		},
	}); err != nil {
		return err
	}

	if o.DebugDir != "" {
		runner.onFailure = func(ctx context.Context, step string) {
			debugCapture(ctx, o.DebugDir, step, o.Logf)
		}
	}

	var shotBytes int
	if err := runner.runAll(browserCtx, pageSteps(o, &shotBytes)...); err != nil {
		return err
	}
	res.ScreenshotPath = o.ScreenshotPath
	res.ScreenshotBytes = shotBytes
	return nil
}

// pageSteps returns the steps that run once the browser is up. The
// screenshot size is stored in shotBytes.
func pageSteps(o Options, shotBytes *int) []Step {
	roster := StyleSignature{Style: o.RosterStyle}
	modal := StyleSignature{Style: o.ModalStyle}

	var steps []Step
	if o.Auth != nil {
		steps = append(steps, Step{
			Name: StepAuthenticate,
			Do: func(ctx context.Context) error {
				token, err := o.Auth.SessionToken(time.Now())
				if err != nil {
					return err
				}
				setCookie, err := setSessionCookie(o.URL, o.Auth.cookieName(), token)
				if err != nil {
					return err
				}
				return chromedp.Run(ctx, setCookie)
			},
		})
	}

	steps = append(steps,
		Step{Name: StepNavigate, Do: actions(chromedp.Navigate(o.URL), disableCSSAnimations())},
		Step{Name: StepWaitRoster, Do: actions(waitVisible(roster.Selector()))},
		Step{Name: StepOpenFirstItem, Do: actions(clickFirst(roster.Child()))},
		Step{Name: StepWaitModal, Do: actions(waitVisible(modal.Selector()))},
	)

	if o.Golden != "" {
		steps = append(steps, Step{
			Name: StepGolden,
			Do: func(ctx context.Context) error {
				var text string
				if err := chromedp.Run(ctx, chromedp.Text(modal.Selector(), &text, chromedp.ByQuery)); err != nil {
					return fmt.Errorf("failed to capture modal text: %w", err)
				}
				if err := CompareGolden(o.Golden, text, o.UpdateGolden); err != nil {
					return err
				}
				if o.UpdateGolden {
					o.Logf("Updated golden file: %s", o.Golden)
				}
				return nil
			},
		})
	}

	steps = append(steps, Step{
		Name: StepScreenshot,
		Do: func(ctx context.Context) error {
			var buf []byte
			if err := chromedp.Run(ctx, captureScreenshot(o.FullPage, &buf)); err != nil {
				return fmt.Errorf("failed to capture screenshot: %w", err)
			}
			if len(buf) == 0 {
				return errors.New("browser returned an empty screenshot")
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := writeFileAtomic(o.ScreenshotPath, buf); err != nil {
				return err
			}
			*shotBytes = len(buf)
			o.Logf("Saved screenshot to %s (%d bytes)", o.ScreenshotPath, len(buf))
			return nil
		},
	})
	return steps
}

// actions adapts a list of chromedp actions to a Step body.
func actions(a ...chromedp.Action) func(context.Context) error {
	return func(ctx context.Context) error {
		return chromedp.Run(ctx, a...)
	}
}

func (r *Result) record(err error) RunRecord {
	rec := RunRecord{
		ID:              r.RunID,
		URL:             r.URL,
		Started:         r.Started.UnixMilli(),
		DurationMS:      r.Duration.Milliseconds(),
		Outcome:         OutcomeOK,
		Screenshot:      r.ScreenshotPath,
		ScreenshotBytes: r.ScreenshotBytes,
		Steps:           r.Steps,
	}
	if err != nil {
		rec.Outcome = OutcomeFailed
		rec.FailedStep = FailedStep(err)
		rec.Error = err.Error()
	}
	return rec
}
