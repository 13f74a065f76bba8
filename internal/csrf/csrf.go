// Package csrf protects the dashboard's form posts with the double-submit
// cookie pattern: a random token lives in a cookie and must be echoed back
// in the form body or the X-CSRF-Token header on every unsafe request.
//
// The JSON API under /routes/api/ is exempt. It carries no cookies and is
// guarded by CORS instead.
package csrf

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

const (
	// CookieName is the name of the CSRF token cookie.
	CookieName = "csrf_token"

	// FormFieldName is the name of the CSRF token form field.
	FormFieldName = "csrf_token"

	// HeaderName carries the token on datastar requests.
	HeaderName = "X-CSRF-Token"

	// TokenLength is the number of random bytes in a token.
	TokenLength = 32

	// CookieMaxAge is the lifetime of the CSRF cookie in seconds.
	CookieMaxAge = 12 * 3600

	// DefaultMaxFormBytes bounds the body parsed while looking for the token.
	DefaultMaxFormBytes = 10 << 20
)

type contextKey struct{}

// GenerateToken returns 32 random bytes, base64 URL-encoded.
func GenerateToken() (string, error) {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidateToken compares the cookie token with the submitted token in
// constant time.
func ValidateToken(cookieToken, submitted string) bool {
	if cookieToken == "" || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submitted)) == 1
}

// Token returns the token for the current request, set by Protector.
func Token(ctx context.Context) string {
	token, _ := ctx.Value(contextKey{}).(string)
	return token
}

// WithToken returns a context carrying token. Used by tests that render
// pages without the middleware.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextKey{}, token)
}

// Config configures a Protector.
type Config struct {
	Secure       bool     // sets the Secure cookie flag
	MaxFormBytes int64    // body limit applied before parsing forms
	ExemptPrefix []string // path prefixes that skip validation
}

// Protector issues tokens and validates unsafe requests.
type Protector struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Protector.
func New(cfg Config, logger *slog.Logger) *Protector {
	if cfg.MaxFormBytes <= 0 {
		cfg.MaxFormBytes = DefaultMaxFormBytes
	}
	return &Protector{cfg: cfg, logger: logger}
}

// Handler ensures every request has a token cookie and rejects unsafe
// requests whose submitted token does not match it.
func (p *Protector) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p.exempt(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		cookieToken := ""
		if c, err := r.Cookie(CookieName); err == nil {
			cookieToken = c.Value
		}

		if !isSafeMethod(r.Method) {
			submitted, err := p.submittedToken(w, r)
			if err != nil {
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) {
					http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
					return
				}
				http.Error(w, "Bad request", http.StatusBadRequest)
				return
			}
			if !ValidateToken(cookieToken, submitted) {
				p.logger.Warn("csrf token mismatch", "path", r.URL.Path, "method", r.Method)
				http.Error(w, "Invalid or missing CSRF token. Reload the page and try again.", http.StatusForbidden)
				return
			}
		}

		token := cookieToken
		if token == "" {
			var err error
			if token, err = GenerateToken(); err != nil {
				p.logger.Error("failed to generate csrf token", "error", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			p.setCookie(w, token)
		}

		next.ServeHTTP(w, r.WithContext(WithToken(r.Context(), token)))
	})
}

// submittedToken reads the token from the header or the form body. Form
// bodies are limited to MaxFormBytes before they are parsed.
func (p *Protector) submittedToken(w http.ResponseWriter, r *http.Request) (string, error) {
	if h := r.Header.Get(HeaderName); h != "" {
		return h, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, p.cfg.MaxFormBytes)
	ct := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "multipart/form-data"):
		if err := r.ParseMultipartForm(p.cfg.MaxFormBytes); err != nil {
			return "", err
		}
	case strings.HasPrefix(ct, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			return "", err
		}
	default:
		return "", nil
	}
	return r.PostFormValue(FormFieldName), nil
}

func (p *Protector) setCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: false,
		Secure:   p.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (p *Protector) exempt(path string) bool {
	for _, prefix := range p.cfg.ExemptPrefix {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
