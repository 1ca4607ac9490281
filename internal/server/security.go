// security.go - Security headers for all responses
package server

import "net/http"

// securityHeadersMiddleware adds security headers to all responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "DENY")

		// Prevent MIME sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Referrer Policy - don't leak recording URLs
		w.Header().Set("Referrer-Policy", "no-referrer")

		// Content Security Policy.
		// Note: 'unsafe-inline' is needed for the inline capture script
		// TODO: Move to external JS files and remove 'unsafe-inline'
		csp := "default-src 'self'; " +
			"script-src 'self' 'unsafe-inline'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"img-src 'self' data:; " +
			"media-src 'self' blob:; " +
			"connect-src 'self'; " +
			"frame-ancestors 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"
		w.Header().Set("Content-Security-Policy", csp)

		// Screen capture needs display-capture; keep the rest disabled.
		w.Header().Set("Permissions-Policy", "geolocation=(), display-capture=(self)")

		next.ServeHTTP(w, r)
	})
}
