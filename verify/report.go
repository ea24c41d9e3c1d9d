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
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
)

// WriteMarkdownReport renders runs, newest first, and the latency
// histograms as a Markdown document.
func WriteMarkdownReport(w io.Writer, runs []RunRecord, latency map[string]*Histogram) error {
	md := markdown.NewMarkdown(w)
	md.H1("Teacher Portal Verification")
	md.PlainText("")

	failed := 0
	for _, r := range runs {
		if r.Outcome != OutcomeOK {
			failed++
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Runs", "Passed", "Failed"},
		Rows: [][]string{
			{strconv.Itoa(len(runs)), strconv.Itoa(len(runs) - failed), strconv.Itoa(failed)},
		},
	})
	md.PlainText("")

	if len(runs) > 0 {
		md.H2("Runs")
		md.PlainText("")
		rows := make([][]string, 0, len(runs))
		for i := len(runs) - 1; i >= 0; i-- {
			r := runs[i]
			status := "✅ ok"
			if r.Outcome != OutcomeOK {
				status = "❌ " + r.FailedStep
			}
			rows = append(rows, []string{
				"`" + r.ID + "`",
				time.UnixMilli(r.Started).UTC().Format("2006-01-02 15:04:05"),
				(time.Duration(r.DurationMS) * time.Millisecond).String(),
				status,
				tableCell(r.Error, 80),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"ID", "Started (UTC)", "Duration", "Status", "Error"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if len(latency) > 0 {
		md.H2("Step Latency")
		md.PlainText("")
		names := make([]string, 0, len(latency))
		for name := range latency {
			names = append(names, name)
		}
		sort.Strings(names)
		rows := make([][]string, 0, len(names))
		for _, name := range names {
			h := latency[name]
			rows = append(rows, []string{
				name,
				strconv.FormatUint(h.Count, 10),
				h.Mean().String(),
				"≤ " + h.Percentile(50).String(),
				"≤ " + h.Percentile(95).String(),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Step", "Count", "Mean", "P50", "P95"},
			Rows:   rows,
		})
	}
	return md.Build()
}

// tableCell flattens s to a single line, escapes pipes and truncates it
// to maxLen runes.
func tableCell(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, "|", `\|`)
	return truncateString(s, maxLen)
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
