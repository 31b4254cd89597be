// Package server holds the HTTP plumbing shared by the API: CORS, security
// headers and ETag handling.
package server

import (
	"net/http"
	"slices"
)

// CORS answers cross-origin requests from the reader site. An empty
// AllowedOrigins list allows every origin with "*".
type CORS struct {
	AllowedOrigins []string
}

// Wrap adds CORS headers to responses for allowed origins and answers
// preflight requests. Disallowed origins get no CORS headers, so the
// browser blocks the response; a disallowed preflight gets 403.
func (c CORS) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		allow := "*"
		if len(c.AllowedOrigins) > 0 {
			if !slices.Contains(c.AllowedOrigins, origin) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			allow = origin
			w.Header().Add("Vary", "Origin")
		}

		h := w.Header()
		h.Set("Access-Control-Allow-Origin", allow)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, If-None-Match, X-Request-ID")
		h.Set("Access-Control-Expose-Headers", "ETag, X-Request-ID")
		if allow != "*" {
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CheckOrigin decides websocket upgrades. Requests without an Origin come
// from non-browser clients and are allowed.
func (c CORS) CheckOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if len(c.AllowedOrigins) == 0 || origin == "" {
		return true
	}
	return slices.Contains(c.AllowedOrigins, origin)
}
