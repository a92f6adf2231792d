package auth

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cra_backend/internals/constants"
	helperAuth "cra_backend/internals/helpers/auth"
)

func session(role string) *helperAuth.Session {
	unit := uuid.New()
	return &helperAuth.Session{UserID: uuid.New(), Email: "x@uni.edu.br", Role: role, UnitID: &unit}
}

func noProfile() *helperAuth.Session {
	return &helperAuth.Session{UserID: uuid.New(), ProfileMissing: true}
}

func TestDecide(t *testing.T) {
	cases := []struct {
		name    string
		sess    *helperAuth.Session
		allowed []string
		want    Decision
	}{
		{"nil session", nil, nil, Denied},
		{"no profile", noProfile(), constants.AdminOnly, Indeterminate},
		{"super admin bypass", session(constants.RoleSuperAdmin), constants.AdminOnly, Granted},
		{"role match", session(constants.RoleAdmin), constants.AdminOnly, Granted},
		{"role match case-insensitive", session("admin"), constants.AdminOnly, Granted},
		{"role mismatch", session(constants.RoleAtendente), constants.AdminOnly, Denied},
		{"open route", session(constants.RoleTriagem), nil, Granted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.sess, tc.allowed); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestPolicyAdmit(t *testing.T) {
	if !AllowWithWarning.Admit(Indeterminate) {
		t.Error("AllowWithWarning must admit indeterminate")
	}
	if DenyMissingProfile.Admit(Indeterminate) {
		t.Error("DenyMissingProfile must reject indeterminate")
	}
	if AllowWithWarning.Admit(Denied) || DenyMissingProfile.Admit(Denied) {
		t.Error("denied is never admitted")
	}
}

type body struct {
	ErrorCode string         `json:"error_code"`
	Data      map[string]any `json:"data"`
}

func gatedApp(sess *helperAuth.Session, policy Policy, roles ...string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if sess != nil {
			helperAuth.SetSession(c, sess)
		}
		return c.Next()
	})
	app.Get("/x", RequireRoles(policy, "", roles...), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func do(t *testing.T, app *fiber.App) (int, body) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var b body
	_ = json.Unmarshal(raw, &b)
	return resp.StatusCode, b
}

func TestRequireRoles(t *testing.T) {
	cases := []struct {
		name     string
		sess     *helperAuth.Session
		policy   Policy
		status   int
		code     string
		redirect string
	}{
		{"unauthenticated", nil, DenyMissingProfile, 401, "UNAUTHORIZED", LoginRedirect},
		{"atendente on admin", session(constants.RoleAtendente), DenyMissingProfile, 403, "FORBIDDEN", HomeRedirect},
		{"admin on admin", session(constants.RoleAdmin), DenyMissingProfile, 200, "", ""},
		{"super admin on admin", session(constants.RoleSuperAdmin), DenyMissingProfile, 200, "", ""},
		{"missing profile denied", noProfile(), DenyMissingProfile, 403, "PROFILE_MISSING", HomeRedirect},
		{"missing profile allowed", noProfile(), AllowWithWarning, 200, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, b := do(t, gatedApp(tc.sess, tc.policy, constants.AdminOnly...))
			if status != tc.status {
				t.Fatalf("status = %d, want %d", status, tc.status)
			}
			if tc.code != "" && b.ErrorCode != tc.code {
				t.Errorf("error_code = %q, want %q", b.ErrorCode, tc.code)
			}
			if tc.redirect != "" && b.Data["redirect"] != tc.redirect {
				t.Errorf("redirect = %v, want %q", b.Data["redirect"], tc.redirect)
			}
		})
	}
}
