package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func setupPINApp(t *testing.T, pin string) *fiber.App {
	t.Helper()
	var hash []byte
	if pin != "" {
		var err error
		hash, err = HashPIN(pin)
		if err != nil {
			t.Fatalf("hash pin: %v", err)
		}
	}

	app := fiber.New()
	app.Use(PINGate(hash))
	app.Get("/wallet", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestPINGateAcceptsCorrectPIN(t *testing.T) {
	app := setupPINApp(t, "1234")

	req := httptest.NewRequest(fiber.MethodGet, "/wallet", nil)
	req.Header.Set(pinHeader, "1234")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestPINGateRejectsWrongOrMissingPIN(t *testing.T) {
	app := setupPINApp(t, "1234")

	req := httptest.NewRequest(fiber.MethodGet, "/wallet", nil)
	req.Header.Set(pinHeader, "0000")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong pin, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/wallet", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for missing pin, got %d", resp.StatusCode)
	}
}

func TestPINGateDisabledWithoutHash(t *testing.T) {
	app := setupPINApp(t, "")

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/wallet", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with gate disabled, got %d", resp.StatusCode)
	}
}
