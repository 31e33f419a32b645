// Package jwt issues and checks the HS256 access tokens handed out by the
// stub task API.
package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"
)

// TokenError represents JWT token related errors
type TokenError string

func (e TokenError) Error() string {
	return string(e)
}

const (
	DefaultAccessTokenExpire = time.Hour * 24

	ErrNeedTokenProvider = TokenError("cannot sign token without token provider")
	ErrInvalidToken      = TokenError("invalid token")
)

// Claims is the access token body. Subject holds the user id.
type Claims struct {
	Role string `json:"role"`
	jwtstd.RegisteredClaims
}

// TokenManager handles JWT token operations
type TokenManager struct {
	key    []byte
	expire time.Duration
	now    func() time.Time
}

// NewTokenManager creates a manager signing with key. A zero expire uses
// DefaultAccessTokenExpire.
func NewTokenManager(key string, expire time.Duration) *TokenManager {
	if expire <= 0 {
		expire = DefaultAccessTokenExpire
	}
	return &TokenManager{key: []byte(key), expire: expire, now: time.Now}
}

// GenerateAccessToken signs a token for userID with role.
func (jtm *TokenManager) GenerateAccessToken(jti, userID, role string) (string, error) {
	if len(jtm.key) == 0 {
		return "", ErrNeedTokenProvider
	}
	now := jtm.now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwtstd.RegisteredClaims{
			ID:        jti,
			Subject:   userID,
			Issuer:    "taskmate-stub",
			IssuedAt:  jwtstd.NewNumericDate(now),
			ExpiresAt: jwtstd.NewNumericDate(now.Add(jtm.expire)),
		},
	}
	return jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, claims).SignedString(jtm.key)
}

// DecodeToken verifies signature and expiry and returns the claims.
func (jtm *TokenManager) DecodeToken(tokenString string) (*Claims, error) {
	if len(jtm.key) == 0 {
		return nil, ErrNeedTokenProvider
	}
	claims := &Claims{}
	token, err := jwtstd.ParseWithClaims(tokenString, claims, func(token *jwtstd.Token) (any, error) {
		return jtm.key, nil
	},
		jwtstd.WithValidMethods([]string{jwtstd.SigningMethodHS256.Alg()}),
		jwtstd.WithTimeFunc(jtm.now),
	)
	if err != nil {
		if errors.Is(err, jwtstd.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: expired", ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
