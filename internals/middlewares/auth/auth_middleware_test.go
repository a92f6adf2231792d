package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helperAuth "cra_backend/internals/helpers/auth"
)

const testSecret = "test-secret"

func sign(t *testing.T, id uuid.UUID, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    id.String(),
		"email": "ana@uni.edu.br",
		"exp":   exp.Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func newTestAuth(load SessionLoader, revoked bool) *Authenticator {
	return &Authenticator{
		Secret: testSecret,
		Load:   load,
		Revoked: func(context.Context, string) (bool, error) {
			return revoked, nil
		},
	}
}

func loaderFor(sess *helperAuth.Session, err error) SessionLoader {
	return func(_ context.Context, id uuid.UUID) (*helperAuth.Session, error) {
		if err != nil {
			return nil, err
		}
		s := *sess
		s.UserID = id
		return &s, nil
	}
}

func protectedApp(a *Authenticator) *fiber.App {
	app := fiber.New()
	app.Get("/p", a.Required(), func(c *fiber.Ctx) error {
		s := helperAuth.GetSession(c)
		return c.SendString(string(s.State()))
	})
	return app
}

func call(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/p", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode
}

func TestRequired(t *testing.T) {
	id := uuid.New()
	valid := sign(t, id, time.Now().Add(time.Hour))
	withProfile := &helperAuth.Session{Role: "ADMIN"}

	cases := []struct {
		name   string
		auth   *Authenticator
		token  string
		status int
	}{
		{"no token", newTestAuth(loaderFor(withProfile, nil), false), "", 401},
		{"garbage token", newTestAuth(loaderFor(withProfile, nil), false), "abc.def.ghi", 401},
		{"expired token", newTestAuth(loaderFor(withProfile, nil), false), sign(t, id, time.Now().Add(-time.Hour)), 401},
		{"revoked token", newTestAuth(loaderFor(withProfile, nil), true), valid, 401},
		{"unknown user", newTestAuth(loaderFor(nil, gorm.ErrRecordNotFound), false), valid, 401},
		{"inactive user", newTestAuth(loaderFor(nil, errInactive), false), valid, 403},
		{"valid", newTestAuth(loaderFor(withProfile, nil), false), valid, 200},
		{"valid without profile", newTestAuth(loaderFor(&helperAuth.Session{ProfileMissing: true}, nil), false), valid, 200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := call(t, protectedApp(tc.auth), tc.token); got != tc.status {
				t.Fatalf("status = %d, want %d", got, tc.status)
			}
		})
	}
}

func TestOptionalContinuesAnonymously(t *testing.T) {
	a := newTestAuth(loaderFor(&helperAuth.Session{Role: "ADMIN"}, nil), false)
	app := fiber.New()
	app.Get("/p", a.Optional(), func(c *fiber.Ctx) error {
		return c.SendString(string(helperAuth.GetSession(c).State()))
	})
	if got := call(t, app, ""); got != 200 {
		t.Fatalf("status = %d", got)
	}
}

func TestParseAccessTokenRejectsOtherAlg(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":  uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := ParseAccessToken(tok, testSecret); err == nil {
		t.Fatal("alg none must be rejected")
	}
}
