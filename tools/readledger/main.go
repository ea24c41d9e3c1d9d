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

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/ttbt-io/portalcheck/verify"
)

var (
	dataDir = flag.String("data-dir", "data", "Directory holding the run history")
	last    = flag.Int("n", 20, "Number of most recent runs to print (0 prints all)")
	stats   = flag.Bool("stats", false, "Print per-step latency statistics instead of runs")
	format  = flag.String("format", "json", "Output format: json or markdown")
	search  = flag.String("q", "", `Only print runs matching the query, e.g. "outcome:failed date:>=2026-10-01"`)
)

// main prints the run history recorded by portalcheck --data-dir.
func main() {
	flag.Parse()

	store, err := verify.OpenStorage(*dataDir, os.Getenv(verify.EnvMasterKey), log.Printf)
	if err != nil {
		log.Fatalf("Failed to open run history: %v", err)
	}
	ledger := verify.NewLedger(store, 0)

	if *format != "json" && *format != "markdown" {
		log.Fatalf("Unknown --format %q", *format)
	}

	if *stats {
		latency, err := ledger.Latency()
		if err != nil {
			log.Fatalf("Failed to read latency: %v", err)
		}
		names := make([]string, 0, len(latency))
		for name := range latency {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Printf("%-16s %6s %10s %10s %10s\n", "STEP", "COUNT", "MEAN", "P50", "P95")
		for _, name := range names {
			h := latency[name]
			fmt.Printf("%-16s %6d %10v %10v %10v\n", name, h.Count, h.Mean(), h.Percentile(50), h.Percentile(95))
		}
		return
	}

	runs, err := ledger.Runs()
	if err != nil {
		log.Fatalf("Failed to read runs: %v", err)
	}
	if runs, err = verify.FilterRuns(runs, *search); err != nil {
		log.Fatalf("Bad query: %v", err)
	}
	if *last > 0 && len(runs) > *last {
		runs = runs[len(runs)-*last:]
	}
	if *format == "markdown" {
		latency, err := ledger.Latency()
		if err != nil {
			log.Fatalf("Failed to read latency: %v", err)
		}
		if err := verify.WriteMarkdownReport(os.Stdout, runs, latency); err != nil {
			log.Fatalf("Markdown: %v", err)
		}
		return
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(runs); err != nil {
		log.Fatalf("JSON: %v", err)
	}
}
