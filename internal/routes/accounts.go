package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/passgate/passgate/internal/account"
)

// RegisterAccountRoutes wires account lifecycle endpoints.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler) {
	group := r.Group("/accounts")
	group.Post("/register", h.Register)
	group.Post("/login", h.Login)
	group.Post("/logout", h.Logout)
}
