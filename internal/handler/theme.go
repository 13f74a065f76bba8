package handler

import (
	"net/http"
	"time"

	"github.com/DukeRupert/leadshift/internal/domain"
)

// ThemeCookie holds the colour scheme preference.
const ThemeCookie = "theme"

// ThemeState is the colour scheme for one visitor. It lives in a cookie;
// the zero value is the light theme.
type ThemeState struct {
	Theme domain.Theme
}

// Load reads the theme from the request, defaulting to light.
func (s *ThemeState) Load(r *http.Request) {
	s.Theme = domain.ThemeLight
	if c, err := r.Cookie(ThemeCookie); err == nil {
		s.Theme = domain.ParseTheme(c.Value)
	}
}

// Toggle switches between light and dark.
func (s *ThemeState) Toggle() {
	s.Theme = s.Theme.Toggle()
}

// Save writes the theme cookie.
func (s ThemeState) Save(w http.ResponseWriter, secure bool) {
	theme := s.Theme
	if theme == "" {
		theme = domain.ThemeLight
	}
	http.SetCookie(w, &http.Cookie{
		Name:     ThemeCookie,
		Value:    string(theme),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
