package middleware

import (
	"net/http"

	"github.com/lifedeskhq/lifedesk/internal/ctxkeys"
)

// RequireUser resolves the acting user from the X-User-ID header set by
// the upstream gateway. Authentication itself happens outside this
// service.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			http.Error(w, "missing X-User-ID header", http.StatusUnauthorized)
			return
		}

		next(w, r.WithContext(ctxkeys.WithUserID(r.Context(), userID)))
	}
}
