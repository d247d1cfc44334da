package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/heartmarshall/citymaps-backend/internal/domain"
	"github.com/heartmarshall/citymaps-backend/pkg/ctxutil"
)

type tokenValidator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Auth resolves a Bearer session token into the user id and role stored in
// the request context. Requests without a token pass through anonymously;
// an invalid token is rejected with 401 before the handler runs, so a
// WebSocket upgrade never starts with a bad credential.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			user, err := validator.Authenticate(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithUserID(r.Context(), user.ID)
			ctx = ctxutil.WithRole(ctx, user.Role.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
