package middleware

import (
	"context"
	"log/slog"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey   = contextKey("logger")
	identityCtxKey = contextKey("identity")
)

// GetLoggerFromCtx returns the request-scoped logger stored in ctx, or the
// default logger when there is none.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

// WithLogger stores a logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// WithIdentity stores the authenticated identity in ctx.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, identity)
}

// IdentityFromCtx returns the identity stored in ctx.
func IdentityFromCtx(ctx context.Context) (domain.Identity, bool) {
	if ctx == nil {
		return domain.Identity{}, false
	}
	identity, ok := ctx.Value(identityCtxKey).(domain.Identity)
	if !ok || identity.ID == "" {
		return domain.Identity{}, false
	}
	return identity, true
}

// GetIdentityFromContext retrieves the authenticated identity from the Gin request.
func GetIdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	return IdentityFromCtx(c.Request.Context())
}

// ContextIdentityProvider resolves identities placed in the context by AuthMiddleware
// (or by WithIdentity for the CLI and tests).
type ContextIdentityProvider struct{}

func (ContextIdentityProvider) CurrentIdentity(ctx context.Context) (domain.Identity, bool) {
	return IdentityFromCtx(ctx)
}
