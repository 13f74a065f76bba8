package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// APIPrefix is the path prefix of the JSON API.
const APIPrefix = "/routes/api/"

// APICORS returns middleware that applies CORS rules to the JSON API only.
// Dashboard pages are same-origin and pass through untouched.
func APICORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	apply := cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         300,
	})

	return func(next http.Handler) http.Handler {
		api := apply(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, APIPrefix) {
				api.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
