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
	"net/http"
	"time"
)

// WaitForServer polls url until it answers with a status below 500 or
// timeout elapses. The error wraps ErrServerUnavailable.
func WaitForServer(ctx context.Context, url string, timeout time.Duration, logf func(string, ...any)) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := http.Client{Timeout: 5 * time.Second}
	var lastErr error
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode < http.StatusInternalServerError {
				logf("Server at %s is ready!", url)
				return nil
			}
			err = fmt.Errorf("status %s", resp.Status)
		}
		lastErr = err
		logf("waitForServer(%q): %v", url, err)

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s: %v", ErrServerUnavailable, url, lastErr)
		case <-time.After(500 * time.Millisecond):
		}
	}
}
