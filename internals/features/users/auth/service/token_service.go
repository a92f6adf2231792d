// internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var ErrNoSecret = errors.New("JWT_SECRET não configurado")

// IssueAccessToken signs an HS256 token carrying id, email, iat and exp.
func IssueAccessToken(userID uuid.UUID, email, secret string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrNoSecret
	}
	exp := now.Add(ttl).UTC()
	claims := jwt.MapClaims{
		"id":    userID.String(),
		"email": email,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
