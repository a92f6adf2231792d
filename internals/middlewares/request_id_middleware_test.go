package middlewares

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func requestIDApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		id, _ := c.Locals(LocRequestID).(string)
		return c.SendString(id)
	})
	return app
}

func TestRequestIDGenerated(t *testing.T) {
	resp, err := requestIDApp().Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	got := resp.Header.Get(fiber.HeaderXRequestID)
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("X-Request-ID = %q, want a uuid", got)
	}
}

func TestRequestIDKept(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "abc-123")
	resp, err := requestIDApp().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.Header.Get(fiber.HeaderXRequestID); got != "abc-123" {
		t.Fatalf("X-Request-ID = %q", got)
	}
}
