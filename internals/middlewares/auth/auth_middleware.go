// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cra_backend/internals/configs"
	helper "cra_backend/internals/helpers"
	helperAuth "cra_backend/internals/helpers/auth"
	"cra_backend/internals/helpers/zlog"
)

const LoginRedirect = "/login"

var (
	errNoToken      = errors.New("token não informado")
	errInvalidToken = errors.New("token inválido ou expirado")
	errRevoked      = errors.New("sessão encerrada, faça login novamente")
	errInactive     = errors.New("conta desativada")
)

// SessionLoader resolves the user behind a verified token. It returns
// gorm.ErrRecordNotFound when the user no longer exists.
type SessionLoader func(ctx context.Context, userID uuid.UUID) (*helperAuth.Session, error)

// RevocationCheck reports whether a raw token was revoked by logout.
type RevocationCheck func(ctx context.Context, raw string) (bool, error)

type Authenticator struct {
	Secret  string
	Load    SessionLoader
	Revoked RevocationCheck
}

func NewAuthenticator(db *gorm.DB) *Authenticator {
	return &Authenticator{
		Secret: configs.JWTSecret,
		Load:   DBSessionLoader(db),
		Revoked: func(ctx context.Context, raw string) (bool, error) {
			return helperAuth.IsRevoked(ctx, db, raw, configs.JWTSecret)
		},
	}
}

func (a *Authenticator) authenticate(c *fiber.Ctx) (*helperAuth.Session, error) {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return nil, errNoToken
	}
	if a.Secret == "" {
		zlog.Error("JWT_SECRET is empty")
		return nil, fiber.NewError(fiber.StatusInternalServerError, "JWT não configurado")
	}

	userID, _, _, err := ParseAccessToken(raw, a.Secret)
	if err != nil {
		zlog.Debug("token rejected", zap.Error(err))
		return nil, errInvalidToken
	}

	if a.Revoked != nil {
		revoked, err := a.Revoked(c.UserContext(), raw)
		if err != nil {
			zlog.Error("blacklist check failed", zap.Error(err))
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Erro interno")
		}
		if revoked {
			return nil, errRevoked
		}
	}

	sess, err := a.Load(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidToken
		}
		if errors.Is(err, errInactive) {
			return nil, err
		}
		zlog.Error("session load failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Erro interno")
	}
	helper.SetRawAccessToken(c, raw)
	return sess, nil
}

// Required rejects the request with 401 when there is no valid session.
func (a *Authenticator) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := a.authenticate(c)
		if err != nil {
			return unauthorized(c, err)
		}
		helperAuth.SetSession(c, sess)
		return c.Next()
	}
}

// Optional stores a session when a valid token is present and otherwise
// continues anonymously.
func (a *Authenticator) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := a.authenticate(c)
		if err == nil {
			helperAuth.SetSession(c, sess)
		}
		return c.Next()
	}
}

func AuthMiddleware(db *gorm.DB) fiber.Handler { return NewAuthenticator(db).Required() }

func unauthorized(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	status := fiber.StatusUnauthorized
	if errors.Is(err, errInactive) {
		status = fiber.StatusForbidden
	}
	return helper.JsonErrorWithCode(c, status, "", "", capitalize(err.Error()), fiber.Map{"redirect": LoginRedirect})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

/* ======== Session from DB ======== */

type sessionRow struct {
	ID        uuid.UUID
	Email     string
	IsActive  bool
	ProfileID *uuid.UUID
	FirstName *string
	LastName  *string
	Role      *string
	UnitID    *uuid.UUID
}

// DBSessionLoader loads user + profile in one round trip.
func DBSessionLoader(db *gorm.DB) SessionLoader {
	return func(ctx context.Context, userID uuid.UUID) (*helperAuth.Session, error) {
		var row sessionRow
		err := db.WithContext(ctx).Raw(`
			SELECT u.id, u.email, u.is_active,
			       p.user_profile_id         AS profile_id,
			       p.user_profile_first_name AS first_name,
			       p.user_profile_last_name  AS last_name,
			       p.user_profile_role       AS role,
			       p.user_profile_unit_id    AS unit_id
			FROM users u
			LEFT JOIN user_profiles p ON p.user_profile_user_id = u.id
			WHERE u.id = ?
			LIMIT 1
		`, userID).Scan(&row).Error
		if err != nil {
			return nil, err
		}
		if row.ID == uuid.Nil {
			return nil, gorm.ErrRecordNotFound
		}
		if !row.IsActive {
			return nil, errInactive
		}
		sess := &helperAuth.Session{UserID: row.ID, Email: row.Email}
		if row.ProfileID == nil || row.Role == nil {
			sess.ProfileMissing = true
			return sess, nil
		}
		sess.Role = *row.Role
		sess.UnitID = row.UnitID
		if row.FirstName != nil {
			sess.FirstName = *row.FirstName
		}
		if row.LastName != nil {
			sess.LastName = *row.LastName
		}
		return sess, nil
	}
}
