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
	"fmt"
	"strings"
	"time"

	"github.com/ttbt-io/portalcheck/verify/query"
)

// FilterRuns returns the runs matching the search expression expr.
//
// Supported keys: outcome, step (the failed step), id (prefix), url,
// date (UTC, "2006-01-02T15:04:05", compared by prefix) and duration.
// Free text matches the run id, URL and error. Unknown keys are ignored.
func FilterRuns(runs []RunRecord, expr string) ([]RunRecord, error) {
	q := query.Parse(expr)
	if q.Empty() {
		return runs, nil
	}
	for i, t := range q.FreeText {
		q.FreeText[i] = strings.ToLower(t)
	}
	for i, f := range q.Filters {
		q.Filters[i].Value = strings.ToLower(f.Value)
		if f.Key != "duration" {
			continue
		}
		for _, v := range []string{f.Value, f.MaxValue} {
			if v == "" {
				continue
			}
			if _, err := time.ParseDuration(v); err != nil {
				return nil, fmt.Errorf("invalid duration filter %q: %w", v, err)
			}
		}
	}

	var out []RunRecord
	for _, r := range runs {
		if matchesRun(r, q) {
			out = append(out, r)
		}
	}
	return out, nil
}

func containsLower(s, substrLower string) bool {
	return strings.Contains(strings.ToLower(s), substrLower)
}

func matchesRun(r RunRecord, q query.Query) bool {
	for _, token := range q.FreeText {
		match := containsLower(r.ID, token) ||
			containsLower(r.URL, token) ||
			containsLower(r.Error, token)
		if !match {
			return false
		}
	}
	for _, f := range q.Filters {
		switch f.Key {
		case "outcome":
			if strings.ToLower(r.Outcome) != f.Value {
				return false
			}
		case "step":
			if strings.ToLower(r.FailedStep) != f.Value {
				return false
			}
		case "id":
			if !strings.HasPrefix(strings.ToLower(r.ID), f.Value) {
				return false
			}
		case "url":
			if !containsLower(r.URL, f.Value) {
				return false
			}
		case "date":
			date := time.UnixMilli(r.Started).UTC().Format("2006-01-02T15:04:05")
			if !checkDateFilter(date, f) {
				return false
			}
		case "duration":
			if !checkDurationFilter(time.Duration(r.DurationMS)*time.Millisecond, f) {
				return false
			}
		}
	}
	return true
}

func checkDateFilter(dateVal string, f query.Filter) bool {
	switch f.Operator {
	case query.OpEqual:
		return strings.HasPrefix(dateVal, f.Value)
	case query.OpGreater:
		return dateVal > f.Value
	case query.OpGreaterOrEqual:
		return dateVal >= f.Value
	case query.OpLess:
		return dateVal < f.Value
	case query.OpLessOrEqual:
		return dateVal <= f.Value
	case query.OpRange:
		maxVal := f.MaxValue + "~"
		return dateVal >= f.Value && dateVal <= maxVal
	}
	return true
}

// checkDurationFilter expects values already validated by FilterRuns. An
// empty range bound is open.
func checkDurationFilter(d time.Duration, f query.Filter) bool {
	v, _ := time.ParseDuration(f.Value)
	switch f.Operator {
	case query.OpEqual:
		return d == v
	case query.OpGreater:
		return d > v
	case query.OpGreaterOrEqual:
		return d >= v
	case query.OpLess:
		return d < v
	case query.OpLessOrEqual:
		return d <= v
	case query.OpRange:
		if f.MaxValue == "" {
			return d >= v
		}
		hi, _ := time.ParseDuration(f.MaxValue)
		return d >= v && d <= hi
	}
	return true
}
