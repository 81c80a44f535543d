package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RecoveryRateLimit caps forgot-password attempts per player or IP using Redis
// if available. Each request triggers an outbound mail, so the cap is tight.
func RecoveryRateLimit(cache *redis.Client, maxPerHour int) fiber.Handler {
	if maxPerHour <= 0 {
		maxPerHour = 3
	}
	return func(c *fiber.Ctx) error {
		if cache == nil {
			return c.Next() // no-op without Redis
		}
		var req struct {
			Player string `json:"player"`
		}
		_ = c.BodyParser(&req)
		player := strings.TrimSpace(req.Player)
		if player == "" {
			player = c.IP()
		}
		key := "rl:recovery:" + player
		cnt, err := cache.Incr(c.UserContext(), key).Result()
		if err == nil && cnt == 1 {
			cache.Expire(c.UserContext(), key, time.Hour)
		}
		if err != nil {
			return c.Next() // fail-open on cache errors
		}
		if cnt > int64(maxPerHour) {
			return fiber.NewError(http.StatusTooManyRequests, "too many recovery attempts, try again later")
		}
		return c.Next()
	}
}
