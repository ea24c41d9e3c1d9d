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
)

var (
	// ErrServerUnavailable means the target URL did not answer before the
	// preflight wait elapsed.
	ErrServerUnavailable = errors.New("server unavailable")
	// ErrGoldenMismatch means the modal text differs from the golden file.
	ErrGoldenMismatch = errors.New("golden mismatch")
)

// StepError is returned by Run when a step fails. Err keeps the
// underlying failure, so a step that ran out of time satisfies
// errors.Is(err, context.DeadlineExceeded).
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// FailedStep returns the name of the step that caused err, or "" when err
// does not come from a step.
func FailedStep(err error) string {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step
	}
	return ""
}
