package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-calendar-api/internal/middleware"
	"github.com/noah-isme/assignment-calendar-api/internal/service"
)

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := c.Params(name)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return parsed, nil
}

// parseQueryBool returns nil when the parameter is absent so callers can
// fall back to stored preferences.
func parseQueryBool(c *fiber.Ctx, key string) (*bool, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", key)
	}
	return &parsed, nil
}

// viewContextFromRequest reads the optional at (RFC3339) and tz (IANA zone)
// query parameters.
func viewContextFromRequest(c *fiber.Ctx) (service.ViewContext, error) {
	view := service.ViewContext{UserID: middleware.UserID(c)}

	if tz := strings.TrimSpace(c.Query("tz")); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return service.ViewContext{}, fmt.Errorf("invalid tz")
		}
		view.Location = loc
	}

	if at := strings.TrimSpace(c.Query("at")); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return service.ViewContext{}, fmt.Errorf("invalid at")
		}
		view.At = &parsed
	}

	return view, nil
}

// parsePageIndexes reads repeated page=<subject>:<index> values. The subject
// is everything before the last colon, so names may contain colons.
func parsePageIndexes(c *fiber.Ctx) (map[string]int, error) {
	values := c.Context().QueryArgs().PeekMulti("page")
	pages := make(map[string]int, len(values))
	for _, raw := range values {
		value := string(raw)
		sep := strings.LastIndex(value, ":")
		if sep <= 0 {
			return nil, fmt.Errorf("invalid page %q", value)
		}
		index, err := strconv.Atoi(value[sep+1:])
		if err != nil || index < 0 {
			return nil, fmt.Errorf("invalid page %q", value)
		}
		pages[value[:sep]] = index
	}
	return pages, nil
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// validationDetails maps each failing field to the rule it broke.
func validationDetails(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = fieldErr.Tag()
	}
	return details
}
