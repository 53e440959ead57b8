package auth

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenClaims bind a username and its role to a signed access token.
type TokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

type TokenService struct {
	accessTokenSecret       []byte
	accessTokenExpiryInSecs int64
}

func NewTokenService(accessTokenSecret string, accessTokenExpiryInSecs int64) *TokenService {
	return &TokenService{
		accessTokenSecret:       []byte(accessTokenSecret),
		accessTokenExpiryInSecs: accessTokenExpiryInSecs,
	}
}

func (ts *TokenService) GenerateAccessToken(username, role string) (string, error) {
	claims := &TokenClaims{
		Username: username,
		Role:     role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Duration(ts.accessTokenExpiryInSecs) * time.Second).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.accessTokenSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// ValidateAccessToken checks the signature and expiry of an access token and
// returns its claims. Malformed, expired and badly signed tokens all report
// isValid false.
func (ts *TokenService) ValidateAccessToken(tokenStr string) (isValid bool, claims *TokenClaims, err error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&TokenClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}

			return ts.accessTokenSecret, nil
		},
	)
	if err != nil {
		return false, nil, nil
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return false, nil, nil
	}

	return true, claims, nil
}
