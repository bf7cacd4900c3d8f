package transport

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rpggio/caredesk/internal/domain/audit"
)

// SessionResolver resolves the signed-in user of a bearer token.
type SessionResolver interface {
	CurrentUser(ctx context.Context, token string) (string, error)
}

// BearerToken returns the bearer token of an Authorization header value.
func BearerToken(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// CurrentUserMiddleware attaches the signed-in user to the request context
// as the audit actor. It makes no authorization decisions: a missing or
// unknown token leaves the request anonymous.
func CurrentUserMiddleware(resolver SessionResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r.Header.Get("Authorization"))
			if token == "" || resolver == nil {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := resolver.CurrentUser(r.Context(), token)
			if err != nil || userID == "" {
				logger.Debug("unresolved session token", "path", r.URL.Path, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(audit.WithActor(r.Context(), userID)))
		})
	}
}
