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
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ttbt-io/portalcheck/fixture"
	"github.com/ttbt-io/portalcheck/verify"
)

var (
	addr       = flag.String("addr", ":3000", "The TCP address to listen to")
	students   = flag.String("students", "Ada Lovelace:A:98,Alan Turing:A-:95,Grace Hopper:B+:91", "Comma-separated roster entries NAME[:GRADE[:ATTENDANCE]]. Empty renders no roster.")
	delay      = flag.Duration("delay", 500*time.Millisecond, "Delay before the roster renders")
	authSecret = flag.String("auth-secret", os.Getenv(verify.EnvAuthSecret), "Require an HS256 session token signed with this secret")
	authJWKS   = flag.String("auth-jwks", "", "Require a session token signed by one of the keys in this JWKS file (public keys)")
	cookieName = flag.String("auth-cookie-name", fixture.DefaultCookieName, "Name of the session cookie")
	debugMode  = flag.Bool("debug", false, "Enable debug mode")
)

// main serves the fixture teacher portal until interrupted.
func main() {
	flag.Parse()

	roster, err := fixture.ParseRoster(*students)
	if err != nil {
		log.Fatalf("Invalid --students: %v", err)
	}

	opts := fixture.Options{
		Students:    roster,
		RenderDelay: *delay,
		Secret:      *authSecret,
		CookieName:  *cookieName,
		Debug:       *debugMode,
	}
	if *authJWKS != "" {
		if opts.Keys, err = fixture.LoadKeys(*authJWKS); err != nil {
			log.Fatalf("Invalid --auth-jwks: %v", err)
		}
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           fixture.NewPortal(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Serving fixture portal with %d students on %s%s", len(roster), *addr, fixture.PortalPath)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	} else {
		log.Println("Gracefully stopped.")
	}
}
