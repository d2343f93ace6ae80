package api

import (
	"git.solsynth.dev/hypernet/journal/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/journal/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (v *Handler) followAuthor(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	author, err := services.GetAccountWithUsername(c.Params("username"))
	if err != nil {
		return err
	}
	if err := services.FollowAuthor(exts.GetUser(c), author); err != nil {
		return err
	}

	return c.Redirect(profileURL(author.Username), fiber.StatusFound)
}

func (v *Handler) unfollowAuthor(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	author, err := services.GetAccountWithUsername(c.Params("username"))
	if err != nil {
		return err
	}
	if err := services.UnfollowAuthor(exts.GetUser(c), author); err != nil {
		return err
	}

	return c.Redirect(profileURL(author.Username), fiber.StatusFound)
}
