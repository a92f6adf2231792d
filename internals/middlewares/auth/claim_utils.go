// internals/middlewares/auth/claims_utils.go
package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

/* ======== Extractors ======== */

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) (time.Time, error) {
	expVal, ok := claims["exp"]
	if !ok {
		return time.Time{}, fmt.Errorf("token has no exp")
	}

	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid exp format")
		}
		expUnix = n
	default:
		return time.Time{}, fmt.Errorf("invalid exp type")
	}

	expTime := time.Unix(expUnix, 0).UTC()
	if time.Now().UTC().After(expTime.Add(skew)) {
		return expTime, fmt.Errorf("token expired at %v", expTime)
	}
	return expTime, nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	idRaw, ok := claims["id"]
	if !ok {
		return uuid.Nil, fmt.Errorf("no user id")
	}
	s, ok := idRaw.(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid user id type")
	}
	return uuid.Parse(strings.TrimSpace(s))
}

func extractEmail(claims jwt.MapClaims) string {
	if s, ok := claims["email"].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// ParseAccessToken verifies signature and exp and returns the user id.
func ParseAccessToken(raw, secret string) (uuid.UUID, string, time.Time, error) {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}); err != nil {
		return uuid.Nil, "", time.Time{}, err
	}
	exp, err := validateTokenExpiry(claims, 30*time.Second)
	if err != nil {
		return uuid.Nil, "", exp, err
	}
	id, err := extractUserID(claims)
	if err != nil {
		return uuid.Nil, "", exp, err
	}
	return id, extractEmail(claims), exp, nil
}
