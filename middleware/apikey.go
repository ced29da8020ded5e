package middleware

import (
	"log"
	"net"
	"net/http"
	"os"
	"strings"
)

// APIKeyMiddleware gates the admin surface behind a static key. The
// public routes (installer report form, client registration, status
// page) are registered outside this middleware. There is no user model
// in this system: one shared admin panel, one key.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("ADMIN_API_KEY")
		if expected == "" {
			// Misconfiguration, fail closed.
			http.Error(w, "admin API key not configured", http.StatusServiceUnavailable)
			log.Printf("[SECURITY] Blocked - ADMIN_API_KEY unset. IP=%s Path=%s", getClientIP(r), r.URL.Path)
			return
		}

		key := r.Header.Get("x-api-key")
		if key == "" {
			key = r.Header.Get("X-API-Key")
		}
		if key != expected {
			http.Error(w, "Invalid or missing API key", http.StatusUnauthorized)
			log.Printf("[SECURITY] Blocked - Invalid API key. IP=%s Path=%s", getClientIP(r), r.URL.Path)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func getClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
