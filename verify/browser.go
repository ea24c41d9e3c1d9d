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
	"os"

	"github.com/chromedp/chromedp"
)

// newBrowserContext returns a chromedp context for a fresh tab and a
// cancel func that closes the tab and releases the browser. The browser
// is started lazily by the first chromedp.Run on the returned context.
func newBrowserContext(ctx context.Context, o Options) (context.Context, context.CancelFunc) {
	var (
		allocCtx    context.Context
		cancelAlloc context.CancelFunc
	)
	if o.ChromeURL != "" {
		allocCtx, cancelAlloc = chromedp.NewRemoteAllocator(ctx, o.ChromeURL)
	} else {
		allocCtx, cancelAlloc = chromedp.NewExecAllocator(ctx, execAllocatorOptions(o)...)
	}

	ctxOpts := []chromedp.ContextOption{chromedp.WithErrorf(o.Logf)}
	if o.Debug {
		ctxOpts = append(ctxOpts, chromedp.WithLogf(o.Logf))
	}
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, ctxOpts...)

	return browserCtx, func() {
		cancelBrowser()
		cancelAlloc()
	}
}

func execAllocatorOptions(o Options) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(o.ViewportWidth, o.ViewportHeight),
	)
	if o.Headful {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	// Use CHROME_BIN if set (Docker environment)
	path := o.ChromePath
	if path == "" {
		path = os.Getenv(EnvChromeBin)
	}
	if path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}
	return opts
}
