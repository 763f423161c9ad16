package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"eshop/internal/domain"
	"eshop/internal/dto"
	obsmw "eshop/internal/observability/middleware"
)

type userKey struct{}

func contextWithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext returns the authenticated user placed there by requireAuth.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey{}).(*domain.User)
	return u, ok
}

// requireAuth verifies the Bearer access token and loads the account it names.
func (h *handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := obsmw.RequestIDFromContext(r.Context())

		raw := r.Header.Get("Authorization")
		if !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
			writeDetail(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tokenStr := strings.TrimSpace(raw[len("Bearer "):])

		userID, err := h.tokens.VerifyAccess(tokenStr)
		if err != nil {
			slog.Warn("auth invalid token", "error", err, "request_id", reqID)
			writeDetail(w, http.StatusUnauthorized, "invalid token")
			return
		}

		u, err := h.users.Get(r.Context(), userID)
		if err != nil {
			slog.Warn("auth unknown subject", "error", err, "request_id", reqID)
			writeDetail(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if !u.IsActive {
			writeDetail(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(contextWithUser(r.Context(), u)))
	})
}

func (h *handler) requireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok || !u.IsStaff {
			writeDetail(w, http.StatusForbidden, dto.MsgNotAuthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
