package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/DukeRupert/leadshift/internal/csrf"
	"github.com/DukeRupert/leadshift/internal/domain"

	. "maragu.dev/gomponents"
)

const flashCookie = "flash"

// pageMeta is what the layout needs besides the page body.
type pageMeta struct {
	Title     string
	Active    string // nav key
	Path      string // current path and query, used to come back after a form post
	Theme     domain.Theme
	CSRFToken string
	Flash     string
	Notice    string // dataset notice such as "Using demo data"
}

// newPage collects layout state for the request. It consumes the flash.
func newPage(w http.ResponseWriter, r *http.Request, title, active string) pageMeta {
	var theme ThemeState
	theme.Load(r)
	return pageMeta{
		Title:     title,
		Active:    active,
		Path:      r.URL.RequestURI(),
		Theme:     theme.Theme,
		CSRFToken: csrf.Token(r.Context()),
		Flash:     popFlash(w, r),
	}
}

func renderHTML(w http.ResponseWriter, status int, node Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

// redirectWithFlash stores a one-shot message and redirects with 303.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, target, message string) {
	if message != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookie,
			Value:    url.QueryEscape(message),
			Path:     "/",
			MaxAge:   60,
			HttpOnly: true,
			Secure:   isSecureRequest(r),
			SameSite: http.SameSiteLaxMode,
		})
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func popFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})
	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return msg
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}

// safeReturn accepts only local paths under prefix, so a posted form can
// never redirect off-site.
func safeReturn(target, prefix, fallback string) string {
	if !strings.HasPrefix(target, prefix) || strings.HasPrefix(target, "//") {
		return fallback
	}
	return target
}

// attachment sets headers for a file download.
func attachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+strings.ReplaceAll(filename, `"`, "")+`"`)
	w.Header().Set("Cache-Control", "no-store")
}
