package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/forms"
	"github.com/aussiebroadwan/leadcapture/internal/frontend/listview"
	"github.com/aussiebroadwan/leadcapture/pkg/httpx"
	"github.com/aussiebroadwan/leadcapture/pkg/slogx"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	pageLogin  = "login"
	pageSignup = "signup"
	pageHome   = "home"
)

// pageData is the single view model handed to every page template.
type pageData struct {
	Title         string
	CSRFToken     string
	Flash         *flash
	Authenticated bool

	// login and signup
	Fields  []forms.Field
	General string

	// home
	Rows           []listview.Row
	Total          int
	Query          string
	AllSelected    bool
	SelectedCount  int
	DebounceMillis int64
}

type renderer struct {
	pages map[string]*template.Template
}

func mustLoadPages() *renderer {
	r := &renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageLogin, pageSignup, pageHome} {
		r.pages[name] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		))
	}
	return r
}

// render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (r *Router) render(w http.ResponseWriter, req *http.Request, status int, name string, data pageData) {
	t, ok := r.pages.pages[name]
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		slogx.FromContext(req.Context()).Error("failed to render page", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// denyRateLimited renders throttled form posts as a plain page instead of JSON.
func (r *Router) denyRateLimited(w http.ResponseWriter, req *http.Request, retryAfter int) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = fmt.Fprintf(w, "Too many requests. Try again in %d seconds.\n", retryAfter)
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
