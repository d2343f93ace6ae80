package http

import (
	"errors"
	"strings"
	"time"

	"git.solsynth.dev/hypernet/journal/pkg/internal/http/api"
	"git.solsynth.dev/hypernet/journal/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/journal/pkg/internal/media"
	"git.solsynth.dev/hypernet/journal/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type App struct {
	app *fiber.App
}

func NewServer(handler *api.Handler, views fiber.Views) *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Hypernet.Journal",
		AppName:               "Hypernet.Journal",
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             int(lo.Ternary(handler.MaxImageSize > 0, handler.MaxImageSize, api.DefaultMaxImageSize)) + 1<<20,
		EnablePrintRoutes:     viper.GetBool("debug.print_routes"),
		Views:                 views,
		ErrorHandler:          ErrorHandler,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(RequestLogger)
	app.Use(exts.ContextMiddleware)

	if local, ok := handler.Media.(*media.LocalStore); ok && strings.HasPrefix(local.BaseURL(), "/") {
		app.Static(local.BaseURL(), local.Dir())
	}

	handler.MapControllers(app)

	return &App{app}
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}

func (v *App) Shutdown() error {
	return v.app.ShutdownWithTimeout(5 * time.Second)
}

func RequestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		// The error handler has not run yet, mirror what it is going to answer.
		status = statusOf(err)
	}

	event := log.Info()
	if status >= fiber.StatusInternalServerError {
		event = log.Error().Err(err)
	}
	event.
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Str("ip", c.IP()).
		Msg("Handled a request.")

	return err
}

func statusOf(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, services.ErrAuthenticationRequired):
		return fiber.StatusFound
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrPermissionDenied):
		return fiber.StatusForbidden
	case isValidation(err):
		return fiber.StatusBadRequest
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}
