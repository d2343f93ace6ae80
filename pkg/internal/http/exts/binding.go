package exts

import (
	"github.com/gofiber/fiber/v2"
)

// BindForm decodes the urlencoded or multipart body into out.
func BindForm(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// ViewData merges the values every page template expects into data.
func ViewData(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	data["User"] = GetUser(c)
	data["Path"] = c.Path()
	return data
}
