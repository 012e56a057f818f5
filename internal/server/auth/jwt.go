// Package auth holds the credential and token primitives of userkeeper and
// the gateway rules that bind a verified identity to a request.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is the fixed lifetime of an issued token.
const TokenValidity = time.Hour

// ErrEmptySecret is returned by NewTokenService for an empty key.
var ErrEmptySecret = errors.New("token secret must not be empty")

// Claims is the payload carried by a token: the user's id and email plus the
// registered iat/exp claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID int    `json:"id"`
	Email  string `json:"email"`
}

// TokenService issues and verifies HS256 tokens. It keeps no per-token
// state; validity is decided by signature and expiry alone.
type TokenService struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

type TokenOption func(*TokenService)

// WithClock replaces time.Now for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(secret string, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	s := &TokenService{
		secret:   []byte(secret),
		validity: TokenValidity,
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

func (s *TokenService) Issue(userID int, email string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature, algorithm and expiry. Any failure yields
// common.ErrInvalidToken; an expired token yields common.ErrTokenExpired,
// which wraps it.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
