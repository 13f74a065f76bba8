package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// otherPath is the label for paths outside the known route shapes, so
// scans for random URLs cannot grow the label set.
const otherPath = "other"

// routes maps fixed paths to themselves. Paths with an id segment are
// handled by routeLabel.
var routes = map[string]bool{
	"/":                        true,
	"/_healthz":                true,
	"/dashboard":               true,
	"/engagement":              true,
	"/leads":                   true,
	"/leads/table":             true,
	"/leads/upload":            true,
	"/leads/actions":           true,
	"/leads/export.csv":        true,
	"/reports":                 true,
	"/reports/leads.pdf":       true,
	"/outreach":                true,
	"/settings":                true,
	"/settings/theme":          true,
	"/routes/api/leads":        true,
	"/routes/api/leads/upload": true,
}

// routeLabel returns the route shape of path: ids become {id}, static
// assets collapse to one label and anything unknown is "other".
func routeLabel(path string) string {
	if routes[path] {
		return path
	}
	if strings.HasPrefix(path, "/static/") {
		return "/static/*"
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(parts) == 2 && parts[0] == "leads" && parts[1] != "":
		return "/leads/{id}"
	case len(parts) == 3 && parts[0] == "uploads" && parts[2] == "file":
		return "/uploads/{id}/file"
	}
	return otherPath
}

// statusRecorder captures the response status. A handler that never calls
// WriteHeader answered 200.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *statusRecorder) code() string {
	if r.status == 0 {
		return "200"
	}
	return strconv.Itoa(r.status)
}

// Middleware records request counts, latency and in-flight requests per
// route. Scrapes of /metrics are not counted.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		HTTPRequestsInFlight.Inc()
		defer HTTPRequestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		next.ServeHTTP(rec, r)

		route := routeLabel(r.URL.Path)
		HTTPRequestsTotal.WithLabelValues(r.Method, route, rec.code()).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
