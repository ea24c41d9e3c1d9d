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

// Package query parses ledger search expressions such as
//
//	outcome:failed step:wait-roster date:2026-10-01..2026-10-19 "net::ERR"
//
// into key filters and free text.
package query

import (
	"strings"
	"unicode"
)

// Operator compares a record field with a filter value.
type Operator string

const (
	OpEqual          Operator = "="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpRange          Operator = ".." // date:2026-10-01..2026-10-19
)

// Prefix operators, longest first.
var prefixOps = []Operator{OpGreaterOrEqual, OpLessOrEqual, OpGreater, OpLess}

// Filter is one key:value term.
type Filter struct {
	Key      string
	Value    string
	MaxValue string // Only for OpRange.
	Operator Operator
}

// Query is a parsed search expression. All filters and all free text terms
// must match.
type Query struct {
	Filters  []Filter
	FreeText []string
}

// Empty reports whether q matches everything.
func (q Query) Empty() bool {
	return len(q.Filters) == 0 && len(q.FreeText) == 0
}

// Parse parses input. It never fails: terms that are not well formed
// key:value pairs become free text.
func Parse(input string) Query {
	var q Query
	for _, token := range tokenize(input) {
		if f, ok := parseFilter(token); ok {
			q.Filters = append(q.Filters, f)
			continue
		}
		q.FreeText = append(q.FreeText, removeQuotes(token))
	}
	return q
}

func parseFilter(token string) (Filter, bool) {
	key, val, ok := strings.Cut(token, ":")
	if !ok {
		return Filter{}, false
	}
	key = strings.ToLower(strings.TrimSpace(key))
	val = strings.TrimSpace(val)
	if key == "" || val == "" || strings.ContainsAny(key, `"'`) {
		return Filter{}, false
	}
	// An unquoted value with another colon is ambiguous.
	if strings.Contains(val, ":") && !isQuoted(val) {
		return Filter{}, false
	}

	if lo, hi, ok := strings.Cut(val, ".."); ok && !isQuoted(val) {
		return Filter{Key: key, Value: lo, MaxValue: hi, Operator: OpRange}, true
	}
	for _, op := range prefixOps {
		if rest, ok := strings.CutPrefix(val, string(op)); ok {
			return Filter{Key: key, Value: removeQuotes(rest), Operator: op}, true
		}
	}
	return Filter{Key: key, Value: removeQuotes(val), Operator: OpEqual}, true
}

// tokenize splits on white space outside of quotes. Quotes are kept.
func tokenize(input string) []string {
	var tokens []string
	var cur strings.Builder
	var quote rune

	for _, r := range input {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			cur.WriteRune(r)
		case unicode.IsSpace(r):
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		case r == '"' || r == '\'':
			quote = r
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

func isQuoted(s string) bool {
	return len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0]
}

func removeQuotes(s string) string {
	if isQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}
