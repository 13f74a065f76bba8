package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsHandler(origins []string) http.Handler {
	return APICORS(origins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAPICORS_AllowsConfiguredOrigin(t *testing.T) {
	handler := corsHandler([]string{"https://crm.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/routes/api/leads", nil)
	req.Header.Set("Origin", "https://crm.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://crm.example.com" {
		t.Errorf("expected origin to be allowed, got %q", got)
	}
}

func TestAPICORS_RejectsOtherOrigin(t *testing.T) {
	handler := corsHandler([]string{"https://crm.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/routes/api/leads", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header, got %q", got)
	}
}

func TestAPICORS_Preflight(t *testing.T) {
	handler := corsHandler(nil)

	req := httptest.NewRequest(http.MethodOptions, "/routes/api/leads/upload", nil)
	req.Header.Set("Origin", "https://crm.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != http.MethodPost {
		t.Errorf("expected POST to be allowed, got %q", got)
	}
}

func TestAPICORS_IgnoresPages(t *testing.T) {
	handler := corsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.Header.Set("Origin", "https://crm.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("pages should not get CORS headers, got %q", got)
	}
}
