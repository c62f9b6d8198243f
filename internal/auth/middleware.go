package auth

import (
	"context"
	"net/http"

	"github.com/drapehaus/drapehaus/internal/platform/httpx"
)

type contextKey struct{}

var adminContextKey contextKey

const sessionCookie = "drapehaus_session"

// AdminFromContext returns the authenticated admin, or nil outside guarded
// routes.
func AdminFromContext(ctx context.Context) *Admin {
	admin, _ := ctx.Value(adminContextKey).(*Admin)
	return admin
}

// RequireAdmin guards admin routes with the session cookie (or bearer
// header for API clients).
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			token = cookie.Value
		}
		if token == "" {
			token = r.Header.Get("X-Session-Token")
		}

		admin, err := s.ResolveSession(r.Context(), token)
		if err != nil {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "admin session required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminContextKey, admin)))
	})
}
