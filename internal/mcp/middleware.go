package mcp

import (
	"context"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/caredesk/internal/domain/audit"
)

// SessionResolver resolves the signed-in user of a bearer token.
type SessionResolver interface {
	CurrentUser(ctx context.Context, token string) (string, error)
}

// actorMiddleware attaches the user behind the bearer token of an HTTP call
// as the audit actor. Calls without a resolvable token stay anonymous.
func actorMiddleware(resolver SessionResolver, logger *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if resolver == nil || method != "tools/call" {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return next(ctx, method, req)
			}
			token := strings.TrimSpace(strings.TrimPrefix(extra.Header.Get("Authorization"), "Bearer "))
			if token == "" {
				return next(ctx, method, req)
			}

			userID, err := resolver.CurrentUser(ctx, token)
			if err != nil || userID == "" {
				logger.Debug("unresolved session token", "method", method, "error", err)
				return next(ctx, method, req)
			}
			return next(audit.WithActor(ctx, userID), method, req)
		}
	}
}
