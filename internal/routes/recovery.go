package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/passgate/passgate/internal/recovery"
)

// RegisterRecoveryRoutes wires the credential recovery endpoint.
func RegisterRecoveryRoutes(r fiber.Router, h *recovery.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/recovery")
	if rateLimiter != nil {
		group.Post("/forgot-password", rateLimiter, h.ForgotPassword)
	} else {
		group.Post("/forgot-password", h.ForgotPassword)
	}
}
