package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func setupRateLimitApp(t *testing.T, maxPerHour int) *fiber.App {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	app := fiber.New()
	app.Post("/forgot-password", RecoveryRateLimit(cache, maxPerHour), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})
	return app
}

func attempt(t *testing.T, app *fiber.App, player string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/forgot-password", strings.NewReader(`{"player":"`+player+`"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp.StatusCode
}

func TestRecoveryRateLimitCapsPerPlayer(t *testing.T) {
	app := setupRateLimitApp(t, 2)

	if got := attempt(t, app, "P1"); got != fiber.StatusAccepted {
		t.Fatalf("attempt 1: expected 202, got %d", got)
	}
	if got := attempt(t, app, "P1"); got != fiber.StatusAccepted {
		t.Fatalf("attempt 2: expected 202, got %d", got)
	}
	if got := attempt(t, app, "P1"); got != fiber.StatusTooManyRequests {
		t.Fatalf("attempt 3: expected 429, got %d", got)
	}

	// A different player is not affected.
	if got := attempt(t, app, "P2"); got != fiber.StatusAccepted {
		t.Fatalf("other player: expected 202, got %d", got)
	}
}

func TestRecoveryRateLimitNoopWithoutRedis(t *testing.T) {
	app := fiber.New()
	app.Post("/forgot-password", RecoveryRateLimit(nil, 1), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	for i := 0; i < 3; i++ {
		if got := attempt(t, app, "P1"); got != fiber.StatusAccepted {
			t.Fatalf("attempt %d: expected 202, got %d", i+1, got)
		}
	}
}
