package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	pkgError "github.com/socialcraft/content-agent/pkg/error"
	"github.com/socialcraft/content-agent/pkg/utils"
)

func recoveryApp() *fiber.App {
	app := fiber.New()
	app.Use(Recovery())
	app.Get("/not-found", func(c *fiber.Ctx) error {
		panic(pkgError.NotFoundError("content plan not found"))
	})
	app.Get("/invalid", func(c *fiber.Ctx) error {
		panic(pkgError.ValidationError("bad input"))
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic(errors.New("something broke"))
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRecoveryTranslatesGenericErrors(t *testing.T) {
	app := recoveryApp()

	cases := []struct {
		path    string
		status  int
		code    string
		message string
	}{
		{"/not-found", http.StatusNotFound, "NOT_FOUND_ERROR", "content plan not found"},
		{"/invalid", http.StatusBadRequest, "VALIDATION_ERROR", "bad input"},
		{"/boom", http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "something broke"},
	}

	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil), -1)
		if err != nil {
			t.Fatalf("GET %s: %v", tc.path, err)
		}
		if resp.StatusCode != tc.status {
			t.Errorf("GET %s status = %d, want %d", tc.path, resp.StatusCode, tc.status)
		}

		var out utils.ResponseData
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode %s response: %v", tc.path, err)
		}
		resp.Body.Close()

		if out.Code != tc.code || out.Message != tc.message {
			t.Errorf("GET %s body = %+v, want code %s message %q", tc.path, out, tc.code, tc.message)
		}
	}
}

func TestRecoveryPassesThroughCleanHandlers(t *testing.T) {
	app := recoveryApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
