package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	helper "cra_backend/internals/helpers"
	helperAuth "cra_backend/internals/helpers/auth"
	"cra_backend/internals/helpers/zlog"
)

const HomeRedirect = "/"

type Decision string

const (
	Denied        Decision = "denied"
	Granted       Decision = "granted"
	Indeterminate Decision = "indeterminate"
)

// Policy says what a protected route does when the decision is Indeterminate
// (signed in, profile not found).
type Policy int

const (
	DenyMissingProfile Policy = iota
	AllowWithWarning
)

func (p Policy) String() string {
	if p == AllowWithWarning {
		return "allow_with_warning"
	}
	return "deny_missing_profile"
}

// Decide evaluates a session against the roles allowed on a route. An empty
// allowed list admits any role. SUPER_ADMIN is always granted.
func Decide(s *helperAuth.Session, allowed []string) Decision {
	switch {
	case s == nil || s.UserID == uuid.Nil:
		return Denied
	case s.ProfileMissing:
		return Indeterminate
	case s.IsSuperAdmin():
		return Granted
	case len(allowed) == 0 || s.HasRole(allowed...):
		return Granted
	default:
		return Denied
	}
}

// Admit folds an Indeterminate decision according to the policy.
func (p Policy) Admit(d Decision) bool {
	switch d {
	case Granted:
		return true
	case Indeterminate:
		return p == AllowWithWarning
	default:
		return false
	}
}

// RequireRoles guards a route group. It must run after Authenticator.Required.
func RequireRoles(policy Policy, forbiddenMsg string, roles ...string) fiber.Handler {
	if forbiddenMsg == "" {
		forbiddenMsg = "Você não tem permissão para acessar este recurso"
	}
	return func(c *fiber.Ctx) error {
		sess := helperAuth.GetSession(c)
		if sess == nil {
			return helper.JsonErrorWithCode(c, fiber.StatusUnauthorized, "", "", "Sessão não encontrada",
				fiber.Map{"redirect": LoginRedirect})
		}
		d := Decide(sess, roles)
		if d == Indeterminate && policy == AllowWithWarning {
			zlog.Warn("profile missing, access allowed by policy",
				zap.String("user_id", sess.UserID.String()),
				zap.String("path", c.Path()),
			)
		}
		if policy.Admit(d) {
			return c.Next()
		}
		code := "FORBIDDEN"
		msg := forbiddenMsg
		if d == Indeterminate {
			code = "PROFILE_MISSING"
			msg = "Perfil de usuário não encontrado. Contate um administrador."
		}
		return helper.JsonErrorWithCode(c, fiber.StatusForbidden, code, "", msg,
			fiber.Map{"redirect": HomeRedirect})
	}
}
