package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/osse101/SlotGuard_Go/internal/logger"
)

type contextKey struct{}

// WithUserID returns a context carrying uid
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, contextKey{}, uid)
}

// UserID returns the authenticated user id, or "" when the request carried
// no valid identity
func UserID(ctx context.Context) string {
	uid, _ := ctx.Value(contextKey{}).(string)
	return uid
}

// Middleware resolves the caller's identity through provider. Requests
// without one are passed through unauthenticated; the services decide what
// that means.
func Middleware(provider IdentityProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, ok := provider.Identify(r)
			if !ok {
				if strings.HasPrefix(r.Header.Get(HeaderAuthorization), BearerPrefix) {
					logger.FromContext(r.Context()).Debug(LogMsgTokenRejected, LogFieldPath, r.URL.Path)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithUserID(r.Context(), uid)
			ctx = logger.WithUserID(ctx, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
