package recovery

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the recovery workflow over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a recovery HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type forgotPasswordRequest struct {
	Player string `json:"player"`
}

// ForgotPassword triggers a credential rotation for the named player. A 202
// means both async units were scheduled, not that the mail arrived.
func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Player == "" {
		return fiber.NewError(http.StatusBadRequest, "player is required")
	}

	err := h.service.Recover(c.UserContext(), Caller{Name: req.Player, Interactive: true})
	if err != nil {
		return fiber.NewError(statusFor(err), err.Error())
	}

	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"status": "accepted",
		"notice": "a new password is on its way to your mail address",
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrPlayersOnly):
		return http.StatusForbidden
	case errors.Is(err, ErrRecoveryDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrAccountNotLoaded):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyLoggedIn):
		return http.StatusConflict
	case errors.Is(err, ErrNoMailAddress):
		return http.StatusPreconditionFailed
	case errors.Is(err, ErrRecoveryInFlight):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
