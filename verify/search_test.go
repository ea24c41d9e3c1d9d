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
	"testing"
	"time"
)

func TestFilterRuns(t *testing.T) {
	day := func(s string) int64 {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			t.Fatal(err)
		}
		return ts.UnixMilli()
	}
	runs := []RunRecord{
		{ID: "a1", URL: "http://localhost:3000/en-US/teacher-portal", Started: day("2026-10-01T09:00:00Z"), DurationMS: 4200, Outcome: OutcomeOK},
		{ID: "b2", URL: "http://localhost:3000/en-US/teacher-portal", Started: day("2026-10-05T09:00:00Z"), DurationMS: 31000, Outcome: OutcomeFailed, FailedStep: StepWaitRoster, Error: "step wait-roster: context deadline exceeded"},
		{ID: "c3", URL: "https://staging.example.com/en-US/teacher-portal", Started: day("2026-10-19T12:30:00Z"), DurationMS: 900, Outcome: OutcomeFailed, FailedStep: StepNavigate, Error: "step navigate: page load error net::ERR_CONNECTION_REFUSED"},
	}

	tests := []struct {
		expr string
		want []string
	}{
		{"", []string{"a1", "b2", "c3"}},
		{"outcome:failed", []string{"b2", "c3"}},
		{"outcome:OK", []string{"a1"}},
		{"step:wait-roster", []string{"b2"}},
		{"url:staging", []string{"c3"}},
		{"id:B", []string{"b2"}},
		{"date:2026-10-05", []string{"b2"}},
		{"date:>=2026-10-05", []string{"b2", "c3"}},
		{"date:2026-10-01..2026-10-05", []string{"a1", "b2"}},
		{"duration:>5s", []string{"b2"}},
		{"duration:<=1s", []string{"c3"}},
		{"duration:1s..10s", []string{"a1"}},
		{"duration:1s..", []string{"a1", "b2"}},
		{"duration:..1s", []string{"c3"}},
		{"date:2026-10-05..", []string{"b2", "c3"}},
		{"\"net::err_connection_refused\"", []string{"c3"}},
		{"deadline outcome:failed", []string{"b2"}},
		{"color:blue", []string{"a1", "b2", "c3"}},
		{"nothing-matches", nil},
	}
	for _, tt := range tests {
		got, err := FilterRuns(runs, tt.expr)
		if err != nil {
			t.Errorf("FilterRuns(%q): %v", tt.expr, err)
			continue
		}
		var ids []string
		for _, r := range got {
			ids = append(ids, r.ID)
		}
		if len(ids) != len(tt.want) {
			t.Errorf("FilterRuns(%q) = %v, want %v", tt.expr, ids, tt.want)
			continue
		}
		for i := range ids {
			if ids[i] != tt.want[i] {
				t.Errorf("FilterRuns(%q) = %v, want %v", tt.expr, ids, tt.want)
				break
			}
		}
	}

	if _, err := FilterRuns(runs, "duration:>soon"); err == nil {
		t.Error("expected error for an invalid duration")
	}
}
