package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Revoked access tokens are stored as HMAC(token) so the table never holds a
// usable credential.

func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

// Revoke blacklists rawAccessToken until expiresAt.
func Revoke(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string, expiresAt time.Time) error {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return nil
	}
	tokenHex := hmacHex(rawAccessToken, jwtSecret)
	return db.WithContext(ctx).Exec(`
		INSERT INTO token_blacklist (token, expired_at)
		VALUES (?, ?)
		ON CONFLICT (token) DO UPDATE
		SET expired_at = EXCLUDED.expired_at
	`, tokenHex, expiresAt).Error
}

// IsRevoked: an unexpired blacklist row exists.
func IsRevoked(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string) (bool, error) {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return false, nil
	}
	tokenHex := hmacHex(rawAccessToken, jwtSecret)
	var exists bool
	err := db.WithContext(ctx).Raw(`
		SELECT EXISTS (
		  SELECT 1 FROM token_blacklist
		  WHERE token = ? AND expired_at > NOW()
		)
	`, tokenHex).Scan(&exists).Error
	return exists, err
}

func PurgeExpired(ctx context.Context, db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, nil
	}
	res := db.WithContext(ctx).Exec(`DELETE FROM token_blacklist WHERE expired_at <= NOW()`)
	return res.RowsAffected, res.Error
}
