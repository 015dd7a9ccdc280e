package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-calendar-api/internal/dto"
	"github.com/noah-isme/assignment-calendar-api/internal/service"
	"github.com/noah-isme/assignment-calendar-api/internal/utils"
)

// ViewHandler serves the list, calendar and subject views.
type ViewHandler struct {
	service service.ViewService
	logger  zerolog.Logger
}

// NewViewHandler constructs the handler.
func NewViewHandler(service service.ViewService, logger zerolog.Logger) *ViewHandler {
	return &ViewHandler{
		service: service,
		logger:  logger.With().Str("component", "view_handler").Logger(),
	}
}

// Register attaches the read-only view endpoints to the router group.
func (h *ViewHandler) Register(router fiber.Router) {
	router.Get("/assignments", h.list)
	router.Get("/assignments/by-date/:date", h.byDate)
	router.Get("/calendar", h.calendar)
	router.Get("/subjects", h.subjects)
}

func (h *ViewHandler) list(c *fiber.Ctx) error {
	view, err := viewContextFromRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	query := dto.ListQuery{Start: c.Query("start")}
	if query.UnsubmittedOnly, err = parseQueryBool(c, "unsubmitted_only"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if query.HideOverdue, err = parseQueryBool(c, "hide_overdue"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if query.CompletedLast, err = parseQueryBool(c, "completed_last"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if query.Days, err = parseQueryInt(c, "days"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.List(c.UserContext(), view, query)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.OK(c, response, "assignments retrieved", fiber.Map{"count": len(response.Items)})
}

func (h *ViewHandler) byDate(c *fiber.Ctx) error {
	view, err := viewContextFromRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.DayAssignments(c.UserContext(), view, c.Params("date"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignments retrieved", response)
}

func (h *ViewHandler) calendar(c *fiber.Ctx) error {
	view, err := viewContextFromRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	query := dto.CalendarQuery{
		Start: c.Query("start"),
		View:  c.Query("view"),
	}
	if query.Shift, err = parseQueryInt(c, "shift"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if query.UnsubmittedOnly, err = parseQueryBool(c, "unsubmitted_only"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if query.HideOverdue, err = parseQueryBool(c, "hide_overdue"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.Calendar(c.UserContext(), view, query)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "calendar retrieved", response)
}

func (h *ViewHandler) subjects(c *fiber.Ctx) error {
	view, err := viewContextFromRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var query dto.SubjectsQuery
	if query.PerPage, err = parseQueryInt(c, "per_page"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if query.HideOverdue, err = parseQueryBool(c, "hide_overdue"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	if query.Pages, err = parsePageIndexes(c); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.Subjects(c.UserContext(), view, query)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "subjects retrieved", response)
}

func (h *ViewHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case isValidationError(err):
		return utils.Fail(c, fiber.StatusBadRequest, "invalid query", validationDetails(err))
	case errors.Is(err, service.ErrCorruptAssignment):
		requestLogger(h.logger, c).Error().Err(err).Msg("corrupt assignment snapshot")
		return utils.SendError(c, fiber.StatusInternalServerError, "stored assignment data is corrupt")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
