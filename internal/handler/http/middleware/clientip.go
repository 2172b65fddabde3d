package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/paywise-hr/payroll-backend-go/internal/pkg/requestmeta"
)

// ClientIP resolves the request origin and stores it on the context for
// audit stamping. X-Forwarded-For wins over RemoteAddr when present.
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.Header.Get("X-Forwarded-For")
		if ip != "" {
			// First hop is the original client.
			if idx := strings.Index(ip, ","); idx >= 0 {
				ip = ip[:idx]
			}
			ip = strings.TrimSpace(ip)
		} else {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			ip = host
		}

		next.ServeHTTP(w, r.WithContext(requestmeta.WithClientIP(r.Context(), ip)))
	})
}
