package middlewares

import "github.com/vidyatarun06/FreshFarmerBackend/internal/auth"

type tokenManager interface {
	ValidateAccessToken(tokenStr string) (isValid bool, claims *auth.TokenClaims, err error)
}

type middleware struct {
	jwtManager tokenManager
	adminKey   string
}

func NewMiddleware(tokenManager tokenManager, adminKey string) *middleware {
	return &middleware{
		jwtManager: tokenManager,
		adminKey:   adminKey,
	}
}
