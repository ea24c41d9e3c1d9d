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

// Package fixture serves a minimal teacher portal with the same markup
// signatures as the real one, for exercising the verifier without the
// full application.
package fixture

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwk"
)

// Inline styles rendered by the portal page.
const (
	RosterStyle = "display: grid; grid-template-columns: repeat(auto-fill, minmax(300px, 1fr)); gap: 16px;"
	ModalStyle  = "background: #fff; border-radius: 8px; padding: 24px; width: 90%; max-width: 600px;"

	PortalPath = "/en-US/teacher-portal"
	RosterPath = "/api/roster"

	DefaultCookieName = "session"
)

// Student is one roster entry.
type Student struct {
	Name       string `json:"name"`
	Grade      string `json:"grade"`
	Attendance int    `json:"attendance"` // Percent of days present
}

// Options configures the portal.
type Options struct {
	// Students is the roster. When empty the page renders no grid.
	Students []Student
	// RenderDelay postpones rendering of the roster after page load.
	RenderDelay time.Duration
	// Secret and Keys enable authentication: requests need a token in the
	// CookieName cookie, either HS256 signed with Secret or signed by a
	// private key whose public half is in Keys.
	Secret     string
	Keys       jwk.Set
	CookieName string
	Debug      bool
}

func (o Options) authRequired() bool {
	return o.Secret != "" || o.Keys != nil
}

type portal struct {
	opts Options
}

// NewPortal returns the portal handler.
func NewPortal(opts Options) http.Handler {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	p := &portal{opts: opts}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+PortalPath, p.servePage)
	mux.HandleFunc("GET "+RosterPath, p.serveRoster)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, PortalPath, http.StatusFound)
	})

	if !opts.authRequired() {
		return mux
	}
	return jwtAuthMiddleware(opts, mux)
}

func (p *portal) servePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	if p.opts.authRequired() && userFromContext(r.Context()) == "" {
		w.Write([]byte(signInPage))
		return
	}
	page := strings.NewReplacer(
		"{{ROSTER_STYLE}}", RosterStyle,
		"{{MODAL_STYLE}}", ModalStyle,
		"{{ROSTER_PATH}}", RosterPath,
		"{{DELAY_MS}}", strconv.FormatInt(p.opts.RenderDelay.Milliseconds(), 10),
		"{{USER}}", htmlEscaper.Replace(userFromContext(r.Context())),
	).Replace(portalPage)
	w.Write([]byte(page))
}

func (p *portal) serveRoster(w http.ResponseWriter, r *http.Request) {
	if p.opts.authRequired() && userFromContext(r.Context()) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	students := p.opts.Students
	if students == nil {
		students = []Student{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(students); err != nil {
		log.Printf("roster: %v", err)
	}
}

type contextKey int

const userIDKey contextKey = iota

func userFromContext(ctx context.Context) string {
	u, _ := ctx.Value(userIDKey).(string)
	return u
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&#34;", "'", "&#39;")

const signInPage = `<!DOCTYPE html>
<html lang="en-US">
<head><meta charset="utf-8"><title>Sign in</title></head>
<body><main><h1>Sign in</h1><p>Please sign in to open the teacher portal.</p></main></body>
</html>
`

const portalPage = `<!DOCTYPE html>
<html lang="en-US">
<head>
<meta charset="utf-8">
<title>Teacher Portal</title>
<style>
body { font-family: sans-serif; margin: 24px; }
.card { border: 1px solid #ccc; border-radius: 8px; padding: 16px; cursor: pointer; }
.overlay { position: fixed; inset: 0; background: rgba(0,0,0,0.4); display: flex; align-items: center; justify-content: center; transition: opacity 0.3s; }
</style>
</head>
<body>
<h1>Teacher Portal</h1>
<p id="user">{{USER}}</p>
<div id="roster-root"><p id="loading">Loading roster...</p></div>
<div id="modal-root"></div>
<script>
(function() {
  function openReportCard(s) {
    const root = document.getElementById('modal-root');
    root.innerHTML = '<div class="overlay"><div style="{{MODAL_STYLE}}"><h2>Report Card</h2><p class="name"></p><p class="grade"></p><p class="attendance"></p></div></div>';
    root.querySelector('.name').textContent = s.name;
    root.querySelector('.grade').textContent = 'Grade: ' + s.grade;
    root.querySelector('.attendance').textContent = 'Attendance: ' + s.attendance + '%';
  }
  function render(students) {
    const root = document.getElementById('roster-root');
    root.innerHTML = '';
    if (!students.length) {
      const p = document.createElement('p');
      p.textContent = 'No students enrolled.';
      root.appendChild(p);
      return;
    }
    const grid = document.createElement('div');
    grid.setAttribute('style', '{{ROSTER_STYLE}}');
    students.forEach(function(s) {
      const card = document.createElement('div');
      card.className = 'card';
      card.textContent = s.name;
      card.addEventListener('click', function() { openReportCard(s); });
      grid.appendChild(card);
    });
    root.appendChild(grid);
  }
  setTimeout(function() {
    fetch('{{ROSTER_PATH}}', {credentials: 'same-origin'})
      .then(function(r) { return r.json(); })
      .then(render)
      .catch(function(e) { document.getElementById('loading').textContent = 'Failed: ' + e; });
  }, {{DELAY_MS}});
})();
</script>
</body>
</html>
`
