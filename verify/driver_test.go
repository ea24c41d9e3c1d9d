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
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c2FmZQ/storage"
)

func TestRun_InvalidOptions(t *testing.T) {
	res, err := Run(context.Background(), Options{URL: "file:///etc/passwd"})
	if !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("err = %v, want ErrInvalidOptions", err)
	}
	if res != nil {
		t.Errorf("res = %+v, want nil", res)
	}
}

// A server that never comes up fails the preflight before any browser is
// started, leaves a stale screenshot untouched and is still recorded.
func TestRun_ServerUnavailable(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	url := "http://" + l.Addr().String() + "/en-US/teacher-portal"
	l.Close()

	dir := t.TempDir()
	out := filepath.Join(dir, "verification.png")
	if err := os.WriteFile(out, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}
	ledger := NewLedger(storage.New(filepath.Join(dir, "data"), nil), 0)

	res, err := Run(context.Background(), Options{
		URL:            url,
		ScreenshotPath: out,
		ServerWait:     600 * time.Millisecond,
		ChromePath:     "/nonexistent/chrome",
		Ledger:         ledger,
		Logf:           t.Logf,
	})
	if !errors.Is(err, ErrServerUnavailable) {
		t.Fatalf("err = %v, want ErrServerUnavailable", err)
	}
	if FailedStep(err) != StepPreflight {
		t.Errorf("FailedStep = %q", FailedStep(err))
	}
	if res == nil || res.ScreenshotPath != "" || res.ScreenshotBytes != 0 {
		t.Errorf("res = %+v", res)
	}
	if len(res.Steps) != 1 || res.Steps[0].Name != StepPreflight {
		t.Errorf("steps = %+v", res.Steps)
	}

	b, err := os.ReadFile(out)
	if err != nil || string(b) != "stale" {
		t.Errorf("stale screenshot modified: %q, %v", b, err)
	}

	runs, err := ledger.Runs()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Outcome != OutcomeFailed || runs[0].FailedStep != StepPreflight || runs[0].ID != res.RunID {
		t.Errorf("runs = %+v", runs)
	}
}

// With no usable browser the launch step fails and nothing is written.
func TestRun_LaunchFailure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "verification.png")
	_, err := Run(context.Background(), Options{
		ScreenshotPath: out,
		ChromePath:     filepath.Join(t.TempDir(), "no-such-chrome"),
		StepTimeout:    10 * time.Second,
		Logf:           t.Logf,
	})
	if err == nil {
		t.Fatal("expected launch failure")
	}
	if FailedStep(err) != StepLaunch {
		t.Errorf("FailedStep = %q (%v)", FailedStep(err), err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("screenshot exists: %v", err)
	}
}

func TestPageSteps_Order(t *testing.T) {
	stepNames := func(steps []Step) []string {
		var names []string
		for _, s := range steps {
			names = append(names, s.Name)
		}
		return names
	}

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "Plain",
			opts: Options{},
			want: []string{StepNavigate, StepWaitRoster, StepOpenFirstItem, StepWaitModal, StepScreenshot},
		},
		{
			name: "Auth",
			opts: Options{Auth: &AuthOptions{Secret: "s", Subject: "t@example.com"}},
			want: []string{StepAuthenticate, StepNavigate, StepWaitRoster, StepOpenFirstItem, StepWaitModal, StepScreenshot},
		},
		{
			name: "Golden",
			opts: Options{Golden: "report_card.txt"},
			want: []string{StepNavigate, StepWaitRoster, StepOpenFirstItem, StepWaitModal, StepGolden, StepScreenshot},
		},
		{
			name: "Auth And Golden",
			opts: Options{Auth: &AuthOptions{Secret: "s", Subject: "t@example.com"}, Golden: "report_card.txt"},
			want: []string{StepAuthenticate, StepNavigate, StepWaitRoster, StepOpenFirstItem, StepWaitModal, StepGolden, StepScreenshot},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n int
			got := stepNames(pageSteps(tt.opts.withDefaults(), &n))
			if len(got) != len(tt.want) {
				t.Fatalf("steps = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("steps = %v, want %v", got, tt.want)
				}
			}
		})
	}
}
