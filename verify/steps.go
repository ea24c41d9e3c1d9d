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
	"time"
)

// Step is one blocking unit of the verification sequence.
type Step struct {
	Name string
	// Timeout overrides the runner's default when positive.
	Timeout time.Duration
	Do      func(ctx context.Context) error
}

// StepTiming records how a step went.
type StepTiming struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
	Err      string        `json:"error,omitempty"`
}

// stepRunner executes steps one at a time, each under its own timeout.
type stepRunner struct {
	timeout time.Duration
	logf    func(format string, args ...any)
	// onFailure is called with the parent context after a step fails.
	onFailure func(ctx context.Context, step string)

	timings []StepTiming
}

// run executes s and returns a *StepError when it fails. The step's Do is
// abandoned when its context expires, so a step that ignores its context
// still cannot block the run past its timeout.
func (r *stepRunner) run(ctx context.Context, s Step) error {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = r.timeout
	}
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r.logf("STEP: %s", s.Name)
	start := time.Now()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Do(stepCtx)
	}()

	var err error
	select {
	case err = <-errChan:
	case <-stepCtx.Done():
		err = stepCtx.Err()
	}

	timing := StepTiming{Name: s.Name, Duration: time.Since(start)}
	if err != nil {
		timing.Err = err.Error()
	}
	r.timings = append(r.timings, timing)

	if err != nil {
		r.logf("STEP FAILED: %s after %v: %v", s.Name, timing.Duration, err)
		if r.onFailure != nil {
			r.onFailure(ctx, s.Name)
		}
		return &StepError{Step: s.Name, Err: err}
	}
	return nil
}

// runAll executes steps in order and stops at the first failure.
func (r *stepRunner) runAll(ctx context.Context, steps ...Step) error {
	for _, s := range steps {
		if err := r.run(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
