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
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ttbt-io/portalcheck/verify"
)

var (
	cfg        = verify.DefaultConfig()
	configFile = flag.String("config", "", "Path to a TOML config file. Flags override file values.")
)

func init() {
	flag.StringVar(&cfg.URL, "url", cfg.URL, "The teacher portal page to verify")
	flag.StringVar(&cfg.RosterStyle, "roster-style", cfg.RosterStyle, "Inline style substring identifying the roster grid")
	flag.StringVar(&cfg.ModalStyle, "modal-style", cfg.ModalStyle, "Inline style substring identifying the report card modal")
	flag.StringVar(&cfg.Out, "out", cfg.Out, "Where to write the PNG screenshot")
	flag.BoolVar(&cfg.FullPage, "full-page", cfg.FullPage, "Capture the full page instead of the viewport")
	flag.StringVar(&cfg.ChromeURL, "chrome-url", cfg.ChromeURL, "The url of a remote debugging port to attach to instead of launching Chrome")
	flag.StringVar(&cfg.ChromePath, "chrome-path", cfg.ChromePath, "Chrome binary to launch (default $CHROME_BIN or auto-detect)")
	flag.BoolVar(&cfg.Headful, "headful", cfg.Headful, "Show the browser window")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Viewport width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Viewport height")
	flag.DurationVar(&cfg.StepTimeout, "step-timeout", cfg.StepTimeout, "Timeout of each step")
	flag.DurationVar(&cfg.RunTimeout, "timeout", cfg.RunTimeout, "Timeout of the whole run")
	flag.DurationVar(&cfg.ServerWait, "wait-server", cfg.ServerWait, "Wait up to this long for the server to answer before launching the browser (0 disables)")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Log browser protocol messages")
	flag.StringVar(&cfg.DebugDir, "debug-dir", cfg.DebugDir, "Directory for HTML and screenshot dumps of failed steps")
	flag.StringVar(&cfg.Golden, "golden", cfg.Golden, "Text file with the expected report card text")
	flag.BoolVar(&cfg.UpdateGolden, "update-golden", cfg.UpdateGolden, "Rewrite the golden file instead of comparing")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory for the run history (empty disables it)")
	flag.StringVar(&cfg.AuthCookieName, "auth-cookie-name", cfg.AuthCookieName, "Name of the cookie carrying the session JWT")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "HS256 secret for the session JWT (default $PORTALCHECK_AUTH_SECRET)")
	flag.StringVar(&cfg.AuthJWK, "auth-jwk", cfg.AuthJWK, "Private JWK file used to sign the session JWT")
	flag.StringVar(&cfg.AuthSubject, "auth-subject", cfg.AuthSubject, "Email of the signed-in user. Enables authentication.")
	flag.DurationVar(&cfg.AuthTTL, "auth-ttl", cfg.AuthTTL, "Lifetime of the session JWT")
}

// main runs one verification of the teacher portal. It exits 0 when the
// screenshot was written, 1 when the run failed and 2 on bad settings.
func main() {
	flag.Parse()

	if *configFile != "" {
		fc, err := verify.LoadFileConfig(*configFile)
		if err != nil {
			log.Printf("Failed to load config %s: %v", *configFile, err)
			os.Exit(2)
		}
		changed := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { changed[f.Name] = true })
		if err := verify.ApplyFileConfig(&cfg, fc, changed); err != nil {
			log.Printf("Invalid config %s: %v", *configFile, err)
			os.Exit(2)
		}
	}

	opts := cfg.Options()
	if err := opts.Validate(); err != nil {
		log.Print(err)
		os.Exit(2)
	}

	if cfg.DataDir != "" {
		store, err := verify.OpenStorage(cfg.DataDir, os.Getenv(verify.EnvMasterKey), log.Printf)
		if err != nil {
			log.Fatalf("Failed to open run history: %v", err)
		}
		opts.Ledger = verify.NewLedger(store, 0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := verify.Run(ctx, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("Interrupted.")
		}
		stop()
		log.Fatalf("Verification failed: %v", err)
	}
	log.Printf("Screenshot written to %s (%d bytes)", res.ScreenshotPath, res.ScreenshotBytes)
}
