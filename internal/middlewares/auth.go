package middlewares

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/vidyatarun06/FreshFarmerBackend/internal/handlerutils"
	"github.com/vidyatarun06/FreshFarmerBackend/internal/servererrors"
)

type contextKey struct{}

// claimsKey carries the authenticated username and role through the request
// context.
var claimsKey contextKey = contextKey{}

type requestClaims struct {
	Username string
	Role     string
}

// RequireRole wraps a handler so it only runs for a valid bearer token whose
// role claim matches requiredRole. Every mutating route goes through this.
func (mw *middleware) RequireRole(h handlerutils.APIHandler, requiredRole string) handlerutils.APIHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrNoAccessToken.Error(),
				nil,
			)
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		isValid, claims, err := mw.jwtManager.ValidateAccessToken(tokenStr)
		if err != nil {
			return err
		}

		if !isValid {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorized.Error(),
				nil,
			)
		}

		if claims.Role != requiredRole {
			return servererrors.New(
				http.StatusForbidden,
				servererrors.ErrUnauthorizedAccess.Error(),
				nil,
			)
		}

		ctx := context.WithValue(
			r.Context(),
			claimsKey,
			requestClaims{
				Username: claims.Username,
				Role:     claims.Role,
			},
		)

		return h(w, r.WithContext(ctx))
	}
}

// RequireAdminKey guards administrative routes behind the configured key.
func (mw *middleware) RequireAdminKey(h handlerutils.APIHandler) handlerutils.APIHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		key := r.Header.Get("X-Admin-Key")

		if mw.adminKey == "" ||
			subtle.ConstantTimeCompare([]byte(key), []byte(mw.adminKey)) != 1 {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorized.Error(),
				nil,
			)
		}

		return h(w, r)
	}
}

// GetUsernameFromContext returns the authenticated username placed in the
// request context by RequireRole, or "" when the request was not
// authenticated.
func GetUsernameFromContext(ctx context.Context) string {
	claims, ok := ctx.Value(claimsKey).(requestClaims)
	if !ok {
		return ""
	}

	return claims.Username
}
