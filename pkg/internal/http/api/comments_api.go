package api

import (
	"errors"

	"git.solsynth.dev/hypernet/journal/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/journal/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func (v *Handler) redirectToPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	post, err := lookupPost(c)
	if err != nil {
		return err
	}
	return c.Redirect(postURL(post.ID), fiber.StatusFound)
}

func (v *Handler) createComment(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	post, err := lookupPost(c)
	if err != nil {
		return err
	}

	var data services.CommentInput
	if err := exts.BindForm(c, &data); err != nil {
		return err
	}

	// An empty comment is dropped and the reader lands on the post again.
	var validation *services.ValidationError
	if _, err := services.NewComment(exts.GetUser(c), post.ID, data); errors.As(err, &validation) {
		log.Debug().Err(err).Uint("post", post.ID).Msg("Rejected an invalid comment...")
	} else if err != nil {
		return err
	}

	return c.Redirect(postURL(post.ID), fiber.StatusFound)
}
