// Package auth resolves the calling user. Sessions and tokens are
// issued upstream; this service trusts the user id forwarded in a
// request header by the gateway in front of it.
package auth

import (
	"context"
	"net/http"
	"strings"

	"Mansoor88-6/time-tracking-api/internal/apperr"

	"go.uber.org/zap"
)

// DefaultUserHeader carries the caller id when no header is configured.
const DefaultUserHeader = "X-User-ID"

type contextKey struct{}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserIDFromContext returns the caller id, or an Unauthorized error
// when the request carried none.
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextKey{}).(string)
	if !ok || userID == "" {
		return "", apperr.NewUnauthorizedError("missing user identity")
	}
	return userID, nil
}

// RejectFunc writes the response for a request without an identity.
type RejectFunc func(w http.ResponseWriter, r *http.Request, err error)

// Middleware copies the caller id from header into the request context.
// Requests without it are rejected before reaching next.
func Middleware(header string, reject RejectFunc, logger *zap.Logger) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultUserHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(header))
			if userID == "" {
				logger.Debug("Rejected request without identity",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path))
				reject(w, r, apperr.NewUnauthorizedError("missing user identity"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
