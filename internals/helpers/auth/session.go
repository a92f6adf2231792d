// internals/helpers/auth/session.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cra_backend/internals/constants"
)

// Locals keys set by the AuthJWT middleware.
const (
	LocSession        = "session"
	LocUserID         = "user_id"
	LocUserEmail      = "user_email"
	LocUserRole       = "user_role"
	LocUnitID         = "unit_id"
	LocProfileMissing = "profile_missing"
)

type SessionState string

const (
	StateUnauthenticated SessionState = "unauthenticated"
	StateNoProfile       SessionState = "authenticated-no-profile"
	StateWithProfile     SessionState = "authenticated-with-profile"
)

// Session is the caller as seen by handlers. Role and UnitID are empty when
// the profile could not be loaded.
type Session struct {
	UserID         uuid.UUID  `json:"user_id"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name,omitempty"`
	LastName       string     `json:"last_name,omitempty"`
	Role           string     `json:"role,omitempty"`
	UnitID         *uuid.UUID `json:"unit_id,omitempty"`
	ProfileMissing bool       `json:"profile_missing"`
}

func (s *Session) State() SessionState {
	switch {
	case s == nil || s.UserID == uuid.Nil:
		return StateUnauthenticated
	case s.ProfileMissing:
		return StateNoProfile
	default:
		return StateWithProfile
	}
}

func (s *Session) IsSuperAdmin() bool {
	return s != nil && !s.ProfileMissing && strings.EqualFold(s.Role, constants.RoleSuperAdmin)
}

func (s *Session) HasRole(roles ...string) bool {
	if s == nil || s.ProfileMissing {
		return false
	}
	for _, r := range roles {
		if strings.EqualFold(s.Role, r) {
			return true
		}
	}
	return false
}

func SetSession(c *fiber.Ctx, s *Session) {
	c.Locals(LocSession, s)
	c.Locals(LocUserID, s.UserID.String())
	c.Locals(LocUserEmail, s.Email)
	c.Locals(LocUserRole, s.Role)
	c.Locals(LocProfileMissing, s.ProfileMissing)
	if s.UnitID != nil {
		c.Locals(LocUnitID, s.UnitID.String())
	}
}

// GetSession returns the session stored by AuthJWT, or nil.
func GetSession(c *fiber.Ctx) *Session {
	if s, ok := c.Locals(LocSession).(*Session); ok {
		return s
	}
	return nil
}

// RequireSession is GetSession that answers 401 when there is none.
func RequireSession(c *fiber.Ctx) (*Session, error) {
	s := GetSession(c)
	if s == nil || s.UserID == uuid.Nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Sessão não encontrada")
	}
	return s, nil
}
