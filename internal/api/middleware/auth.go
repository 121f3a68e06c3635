package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/jnails/salon-booking-service/internal/api/handlers"
)

// AdminKeyHeader carries the shared back-office key.
const AdminKeyHeader = "X-Admin-Key"

// AdminAuth guards the back-office routes with a shared key. An empty
// configured key disables the whole admin surface.
func AdminAuth(adminKey string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" {
				logger.Warn("AdminAuth: admin surface disabled, rejecting %s %s", r.Method, r.URL.Path)
				handlers.RespondError(w, http.StatusForbidden, "admin access disabled")
				return
			}

			provided := r.Header.Get(AdminKeyHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) != 1 {
				logger.Warn("AdminAuth: bad admin key for %s %s", r.Method, r.URL.Path)
				handlers.RespondError(w, http.StatusUnauthorized, "invalid admin key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
