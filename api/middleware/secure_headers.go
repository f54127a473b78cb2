package middleware

import "net/http"

// SecureHeaders applies browser protections to every response. The inline
// document preview handler removes X-Frame-Options on its own response so
// embedding in the app's viewer keeps working.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
