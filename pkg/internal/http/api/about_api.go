package api

import (
	"git.solsynth.dev/hypernet/journal/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
)

func (v *Handler) getAboutAuthor(c *fiber.Ctx) error {
	return c.Render("about/author", exts.ViewData(c, nil))
}

func (v *Handler) getAboutTech(c *fiber.Ctx) error {
	return c.Render("about/tech", exts.ViewData(c, nil))
}
