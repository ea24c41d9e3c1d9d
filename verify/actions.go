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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/renameio/v2"
)

// disableCSSAnimations zeroes transition and animation durations so the
// modal is captured in its final state.
func disableCSSAnimations() chromedp.ActionFunc {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		return chromedp.Evaluate(`
			const style = document.createElement('style');
			style.innerHTML = '*{-webkit-transition-duration:0s!important;transition-duration:0s!important;-webkit-animation-duration:0s!important;animation-duration:0s!important;}';
			document.head.appendChild(style);
		`, nil).Do(ctx)
	})
}

// waitVisible blocks until the first node matching sel is visible.
func waitVisible(sel string) chromedp.Action {
	return chromedp.WaitVisible(sel, chromedp.ByQuery)
}

// clickFirst clicks the first node matching sel once it is visible.
func clickFirst(sel string) chromedp.Action {
	return chromedp.Click(sel, chromedp.ByQuery, chromedp.NodeVisible)
}

// captureScreenshot grabs the viewport, or the whole page when fullPage is
// set, as PNG.
func captureScreenshot(fullPage bool, buf *[]byte) chromedp.Action {
	if fullPage {
		return chromedp.FullScreenshot(buf, 100)
	}
	return chromedp.CaptureScreenshot(buf)
}

// writeFileAtomic replaces path with data. The parent directory is created
// when missing. A failed write leaves any existing file untouched.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

const debugCaptureTimeout = 10 * time.Second

// debugCapture dumps the page HTML and a screenshot into dir. It is best
// effort: errors are logged, not returned.
func debugCapture(ctx context.Context, dir, name string, logf func(string, ...any)) {
	if ctx.Err() != nil {
		logf("DEBUG: context done, skipping capture for %s", name)
		return
	}
	logf("DEBUG: capturing failure info for %s", name)
	ctx, cancel := context.WithTimeout(ctx, debugCaptureTimeout)
	defer cancel()
	if err := os.MkdirAll(dir, 0755); err != nil {
		logf("DEBUG: Failed to create %s: %v", dir, err)
		return
	}

	var htmlContent string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery)); err != nil {
		logf("DEBUG: Failed to capture HTML: %v", err)
	} else {
		p := filepath.Join(dir, fmt.Sprintf("debug-%s.html", name))
		if err := os.WriteFile(p, []byte(htmlContent), 0644); err != nil {
			logf("DEBUG: Failed to save HTML: %v", err)
		} else {
			logf("DEBUG: Saved HTML to %s", p)
		}
	}

	var buf []byte
	if err := chromedp.Run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		logf("DEBUG: Failed to capture screenshot: %v", err)
		return
	}
	p := filepath.Join(dir, fmt.Sprintf("debug-%s.png", name))
	if err := os.WriteFile(p, buf, 0644); err != nil {
		logf("DEBUG: Failed to save screenshot: %v", err)
		return
	}
	logf("DEBUG: Saved screenshot to %s", p)
}
