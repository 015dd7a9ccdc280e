package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-calendar-api/internal/dto"
	"github.com/noah-isme/assignment-calendar-api/internal/middleware"
	"github.com/noah-isme/assignment-calendar-api/internal/service"
	"github.com/noah-isme/assignment-calendar-api/internal/utils"
)

// PreferenceHandler exposes the stored filter toggles.
type PreferenceHandler struct {
	service service.PreferenceService
	logger  zerolog.Logger
}

// NewPreferenceHandler constructs the handler.
func NewPreferenceHandler(service service.PreferenceService, logger zerolog.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		service: service,
		logger:  logger.With().Str("component", "preference_handler").Logger(),
	}
}

// Register attaches preference endpoints to the router group.
func (h *PreferenceHandler) Register(router fiber.Router) {
	router.Get("", h.get)
	router.Put("", h.update)
}

func (h *PreferenceHandler) get(c *fiber.Ctx) error {
	preference, err := h.service.Get(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return h.internalError(c, err)
	}
	return utils.SendSuccess(c, "preferences retrieved", preference)
}

func (h *PreferenceHandler) update(c *fiber.Ctx) error {
	var payload dto.PreferenceUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	preference, err := h.service.Update(c.UserContext(), middleware.UserID(c), payload)
	if err != nil {
		if errors.Is(err, service.ErrDemoReadOnly) {
			return utils.SendError(c, fiber.StatusForbidden, err.Error())
		}
		return h.internalError(c, err)
	}
	return utils.SendSuccess(c, "preferences updated", preference)
}

func (h *PreferenceHandler) internalError(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
