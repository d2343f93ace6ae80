package http

import (
	"errors"

	"git.solsynth.dev/hypernet/journal/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/journal/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func isValidation(err error) bool {
	var validation *services.ValidationError
	return errors.As(err, &validation)
}

func errorTemplate(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "core/404"
	case fiber.StatusForbidden:
		return "core/403"
	case fiber.StatusInternalServerError:
		return "core/500"
	default:
		return "core/error"
	}
}

// ErrorHandler is the single place where service errors become responses.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrAuthenticationRequired) {
		return c.Redirect(exts.LoginURL(c.OriginalURL()), fiber.StatusFound)
	}

	status := statusOf(err)
	message := err.Error()
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("An error occurred when handling request...")
		message = "internal server error"
	}

	if c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON {
		return c.Status(status).JSON(fiber.Map{
			"status":  status,
			"message": message,
		})
	}

	c.Status(status)
	if rerr := c.Render(errorTemplate(status), exts.ViewData(c, fiber.Map{
		"Status":  status,
		"Message": message,
	})); rerr != nil {
		log.Error().Err(rerr).Msg("An error occurred when rendering error page...")
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(status).SendString(message)
	}
	return nil
}
