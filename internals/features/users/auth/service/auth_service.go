// internals/features/users/auth/service/auth_service.go
package service

import (
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cra_backend/internals/configs"
	authHelper "cra_backend/internals/features/users/auth/helper"
	authRepo "cra_backend/internals/features/users/auth/repository"
	userModel "cra_backend/internals/features/users/user/model"
	helper "cra_backend/internals/helpers"
	helperAuth "cra_backend/internals/helpers/auth"
	"cra_backend/internals/helpers/zlog"
	authMiddleware "cra_backend/internals/middlewares/auth"
)

const accessCookie = "access_token"

/* ==========================
   Response
========================== */

type MenuItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

type SessionResponse struct {
	State   helperAuth.SessionState `json:"state"`
	User    *helperAuth.Session     `json:"user"`
	Menu    []MenuItem              `json:"menu"`
	Warning string                  `json:"warning,omitempty"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	SessionResponse
}

// BuildSessionResponse describes the caller and the menu their role sees.
func BuildSessionResponse(s *helperAuth.Session) SessionResponse {
	out := SessionResponse{State: s.State(), User: s, Menu: []MenuItem{}}
	for _, r := range authMiddleware.VisibleMenu(s) {
		out.Menu = append(out.Menu, MenuItem{Path: r.Path, Label: r.Label})
	}
	if out.State == helperAuth.StateNoProfile {
		out.Warning = "Perfil não encontrado. Solicite ao administrador o cadastro do seu perfil."
	}
	return out
}

/* ==========================
   Small helpers
========================== */

func setAccessCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     accessCookie,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HTTPOnly: true,
		Secure:   configs.GetEnvBool("COOKIE_SECURE", true),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearAccessCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     accessCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   configs.GetEnvBool("COOKIE_SECURE", true),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// issueSession signs a token for user and answers with the session payload.
func issueSession(db *gorm.DB, c *fiber.Ctx, user *userModel.UserModel) error {
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Conta desativada. Procure o administrador.")
	}

	token, exp, err := IssueAccessToken(user.ID, user.Email, configs.JWTSecret, configs.JWTTTL, time.Now())
	if err != nil {
		zlog.Error("issue token failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gerar token")
	}

	sess, err := authMiddleware.DBSessionLoader(db)(c.UserContext(), user.ID)
	if err != nil {
		zlog.Error("load session after login failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar perfil")
	}
	if sess.ProfileMissing {
		zlog.Warn("login without profile", zap.String("user_id", user.ID.String()))
	}

	setAccessCookie(c, token, exp)
	return helper.JsonOK(c, "Login realizado", LoginResponse{
		AccessToken:     token,
		TokenType:       "Bearer",
		ExpiresAt:       exp,
		SessionResponse: BuildSessionResponse(sess),
	})
}

/* ==========================
   LOGIN (email + password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	if err := authHelper.ValidateLoginInput(input.Email, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := authRepo.FindUserByEmail(c.UserContext(), db, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "E-mail ou senha incorretos")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno")
	}
	if err := CheckPasswordHash(user.Password, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "E-mail ou senha incorretos")
	}
	return issueSession(db, c, user)
}

/* ==========================
   LOGIN GOOGLE
   Only accounts already provisioned by an administrator may sign in.
========================== */

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	if configs.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Login com Google desativado")
	}
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil || strings.TrimSpace(input.IDToken) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "id_token obrigatório")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token do Google inválido")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token do Google inválido")
	}
	if !authHelper.EmailInDomain(claimSet.Email, configs.GoogleAllowedDomain) {
		return helper.JsonError(c, fiber.StatusForbidden, "Domínio de e-mail não autorizado")
	}

	ctx := c.UserContext()
	user, err := authRepo.FindUserByGoogleID(ctx, db, claimSet.Sub)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = authRepo.FindUserByEmail(ctx, db, claimSet.Email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusForbidden, "Conta não cadastrada. Procure o administrador.")
		}
		if err == nil {
			if lerr := authRepo.LinkGoogleID(ctx, db, user.ID, claimSet.Sub); lerr != nil {
				zlog.Warn("link google id failed", zap.String("user_id", user.ID.String()), zap.Error(lerr))
			}
		}
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erro interno")
	}
	return issueSession(db, c, user)
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw != "" {
		_, _, exp, err := authMiddleware.ParseAccessToken(raw, configs.JWTSecret)
		if err == nil {
			if err := helperAuth.Revoke(c.UserContext(), db, raw, configs.JWTSecret, exp); err != nil {
				zlog.Error("revoke token failed", zap.Error(err))
				return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao encerrar sessão")
			}
		}
	}
	clearAccessCookie(c)
	return helper.JsonOK(c, "Sessão encerrada", fiber.Map{"redirect": authMiddleware.LoginRedirect})
}
