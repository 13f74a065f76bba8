package handler

import (
	"log/slog"
	"net/http"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// SettingsHandler serves the settings page and the theme toggle.
type SettingsHandler struct {
	logger *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{logger: logger}
}

// RegisterRoutes registers the settings routes.
func (h *SettingsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /settings", h.Index)
	mux.HandleFunc("POST /settings/theme", h.ToggleTheme)
}

// Index renders the settings page.
func (h *SettingsHandler) Index(w http.ResponseWriter, r *http.Request) {
	m := newPage(w, r, "Settings", "settings")
	renderHTML(w, http.StatusOK, page(m,
		card("Appearance",
			P(Class(mutedClass), Textf("Current theme: %s", m.Theme)),
			P(Class("mt-2 text-sm"), Text("Use the toggle in the header to switch between light and dark mode.")),
		),
	))
}

// ToggleTheme flips the theme cookie and returns to the posting page.
func (h *SettingsHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	var state ThemeState
	state.Load(r)
	state.Toggle()
	state.Save(w, isSecureRequest(r))

	h.logger.Debug("theme toggled", "theme", state.Theme)
	http.Redirect(w, r, safeReturn(r.PostFormValue("return"), "/", "/settings"), http.StatusSeeOther)
}
