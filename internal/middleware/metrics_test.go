package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBasicAuthMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("leadshift_uploads_total 3"))
	})

	tests := []struct {
		name       string
		user, pass string
		setAuth    bool
		authHeader string
		wantStatus int
	}{
		{name: "valid", user: "ops", pass: "s3cret", setAuth: true, wantStatus: http.StatusOK},
		{name: "no credentials", wantStatus: http.StatusUnauthorized},
		{name: "wrong username", user: "admin", pass: "s3cret", setAuth: true, wantStatus: http.StatusUnauthorized},
		{name: "wrong password", user: "ops", pass: "nope", setAuth: true, wantStatus: http.StatusUnauthorized},
		{name: "empty credentials", setAuth: true, wantStatus: http.StatusUnauthorized},
		{name: "malformed header", authHeader: "Basic not-base64!", wantStatus: http.StatusUnauthorized},
		{name: "bearer token", authHeader: "Bearer abc", wantStatus: http.StatusUnauthorized},
	}

	mw := NewBasicAuthMiddleware("metrics", "ops", "s3cret")
	handler := mw.Handler(ok)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if tt.setAuth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if got := rec.Header().Get("WWW-Authenticate"); got != `Basic realm="metrics"` {
					t.Errorf("unexpected WWW-Authenticate %q", got)
				}
				if rec.Body.String() == "leadshift_uploads_total 3" {
					t.Error("metrics leaked on failed auth")
				}
			}
		})
	}
}

func TestBasicAuthMiddleware_Disabled(t *testing.T) {
	mw := NewBasicAuthMiddleware("metrics", "", "")
	if mw.Enabled() {
		t.Fatal("expected auth to be disabled without credentials")
	}

	called := false
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !called {
		t.Error("expected request to pass through")
	}
}
