// Package auth issues and validates the HS256 access tokens handed out at login.
package auth

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/config"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/domain"
	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
)

// Issuer is the iss claim of every token
const Issuer = "mayday"

// Tokens signs and checks access tokens with one shared secret
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens creates a token issuer from cfg. Without a configured secret a
// random one is generated, so tokens do not survive a restart.
func NewTokens(cfg config.AuthConfig) *Tokens {
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		_, _ = rand.Read(secret)
	}
	return &Tokens{secret: secret, ttl: cfg.TokenTTL}
}

// Issue signs a token for user
func (t *Tokens) Issue(user *domain.User) (*domain.AuthResult, error) {
	now := time.Now()
	expiresAt := now.Add(t.ttl)

	claims := &domain.TokenClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &domain.AuthResult{
		User:        user,
		AccessToken: signed,
		ExpiresAt:   claims.ExpiresAt.Time.UTC(),
	}, nil
}

// Validate checks signature, issuer and expiry and returns the user ID the token was issued to
func (t *Tokens) Validate(tokenString string) (uuid.UUID, *domain.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, nil, apperrors.Unauthorized("invalid token").WithError(err)
	}

	claims, ok := token.Claims.(*domain.TokenClaims)
	if !ok || !token.Valid {
		return uuid.Nil, nil, apperrors.Unauthorized("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, nil, apperrors.Unauthorized("invalid token")
	}

	return userID, claims, nil
}
