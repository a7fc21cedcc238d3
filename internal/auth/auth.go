// Package auth issues and verifies session tokens and hashes passwords.
package auth

import (
	"fmt"
	"time"

	"github.com/YusovID/journal-review-service/internal/apperrors"
	"github.com/YusovID/journal-review-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "journal-review-service"

type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs an HS256 token whose subject is the user id.
func (m *TokenManager) Issue(user *domain.User) (string, time.Time, error) {
	const op = "internal.auth.Issue"

	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: failed to sign token: %w", op, err)
	}

	return token, expiresAt, nil
}

// Parse validates the signature and expiry and returns the claims.
// Any failure is reported as apperrors.ErrUnauthenticated.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthenticated, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthenticated)
	}

	return claims, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("internal.auth.HashPassword: %w", err)
	}

	return string(hash), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
