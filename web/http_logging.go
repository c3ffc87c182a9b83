// ABOUTME: HTTP logging middleware for the you-draw-it server in the same log.Printf key=value style as the engine.
// ABOUTME: Logs the matched route and page session; high-frequency pointer moves are logged only when they fail.
package web

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// quietRoute reports routes that fire on every pointer event.
func quietRoute(pattern string) bool {
	return strings.HasSuffix(pattern, "/move") || strings.HasSuffix(pattern, "/drag")
}

func webRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		route, page := r.URL.Path, "-"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
			if id := rctx.URLParam("pageID"); id != "" {
				page = id
			}
		}
		if quietRoute(route) && status < http.StatusBadRequest {
			return
		}

		log.Printf("web request method=%s route=%s page=%s status=%d bytes=%d duration=%s",
			r.Method,
			route,
			page,
			status,
			rec.bytes,
			time.Since(start).Round(time.Microsecond),
		)
	})
}
