// Package auth issues and checks the bearer tokens that guard admin routes.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cimillas/guestlist/internal/clock"
	"github.com/cimillas/guestlist/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	issuer       = "guestlist"
	adminSubject = "admin"
)

var errNotConfigured = errors.New("admin auth is not configured")

type Claims struct {
	jwt.RegisteredClaims
}

// Authenticator checks the shared admin password and signs HS256 tokens.
type Authenticator struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	clock        clock.Clock
}

func NewAuthenticator(passwordHash, secret string, ttl time.Duration, clk clock.Clock) *Authenticator {
	return &Authenticator{
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		ttl:          ttl,
		clock:        clk,
	}
}

// HashPassword produces a value suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Login returns a signed token when password matches the configured hash.
func (a *Authenticator) Login(password string) (string, time.Time, error) {
	if len(a.passwordHash) == 0 || len(a.secret) == 0 {
		return "", time.Time{}, errNotConfigured
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, domain.ErrUnauthorized
	}

	now := a.clock.Now()
	expiresAt := now.Add(a.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   adminSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify accepts a raw token or an Authorization header value.
func (a *Authenticator) Verify(token string) error {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" || len(a.secret) == 0 {
		return domain.ErrUnauthorized
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithSubject(adminSubject),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return domain.ErrUnauthorized
	}
	return nil
}
