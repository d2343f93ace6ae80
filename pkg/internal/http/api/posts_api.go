package api

import (
	"errors"
	"fmt"

	"git.solsynth.dev/hypernet/journal/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/journal/pkg/internal/models"
	"git.solsynth.dev/hypernet/journal/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type postForm struct {
	Text    string
	GroupID *uint
	Image   *string
	Errors  map[string]string
}

func postURL(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

func profileURL(username string) string {
	return fmt.Sprintf("/profile/%s/", username)
}

func lookupPost(c *fiber.Ctx) (models.Post, error) {
	id, err := c.ParamsInt("postId", 0)
	if err != nil || id <= 0 {
		return models.Post{}, fmt.Errorf("post %q: %w", c.Params("postId"), services.ErrNotFound)
	}
	return services.GetPost(uint(id))
}

func (v *Handler) renderPostForm(c *fiber.Ctx, form postForm, post *models.Post) error {
	groups, err := services.ListGroups()
	if err != nil {
		return err
	}
	if form.Errors == nil {
		form.Errors = map[string]string{}
	}

	return c.Render("posts/create_post", exts.ViewData(c, fiber.Map{
		"Form":   form,
		"Groups": groups,
		"IsEdit": post != nil,
		"Post":   post,
	}))
}

func (v *Handler) getPost(c *fiber.Ctx) error {
	post, err := lookupPost(c)
	if err != nil {
		return err
	}

	count, err := services.CountPostWithAuthor(post.AuthorID)
	if err != nil {
		return err
	}
	comments, err := services.ListComments(post.ID)
	if err != nil {
		return err
	}

	return c.Render("posts/post_detail", exts.ViewData(c, fiber.Map{
		"Post":     post,
		"Count":    count,
		"Comments": comments,
		"CanEdit":  services.CanEditPost(exts.GetUser(c), post).Allowed,
		"Form":     postForm{Errors: map[string]string{}},
	}))
}

func (v *Handler) getCreatePost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	return v.renderPostForm(c, postForm{}, nil)
}

func (v *Handler) createPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := exts.GetUser(c)

	var data services.PostInput
	if err := exts.BindForm(c, &data); err != nil {
		return err
	}

	form := postForm{Text: data.Text, GroupID: data.GroupID}
	if err := services.ValidatePostInput(&data); err != nil {
		return v.rejectPostForm(c, form, nil, err)
	}

	image, err := v.storeImage(c, "image")
	if err != nil {
		return v.rejectPostForm(c, form, nil, err)
	}

	post, err := services.NewPost(user, data, image)
	if err != nil {
		v.discardImage(c, image)
		return v.rejectPostForm(c, form, nil, err)
	}

	log.Info().Uint("id", post.ID).Str("author", user.Username).Msg("A new post has been published.")
	return c.Redirect(profileURL(user.Username), fiber.StatusFound)
}

func (v *Handler) getEditPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	post, err := lookupPost(c)
	if err != nil {
		return err
	}
	if !services.CanEditPost(exts.GetUser(c), post).Allowed {
		return c.Redirect(postURL(post.ID), fiber.StatusFound)
	}

	return v.renderPostForm(c, postForm{
		Text:    post.Text,
		GroupID: post.GroupID,
		Image:   post.Image,
	}, &post)
}

func (v *Handler) editPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := exts.GetUser(c)

	post, err := lookupPost(c)
	if err != nil {
		return err
	}
	if !services.CanEditPost(user, post).Allowed {
		return c.Redirect(postURL(post.ID), fiber.StatusFound)
	}

	var data services.PostInput
	if err := exts.BindForm(c, &data); err != nil {
		return err
	}

	form := postForm{Text: data.Text, GroupID: data.GroupID, Image: post.Image}
	if err := services.ValidatePostInput(&data); err != nil {
		return v.rejectPostForm(c, form, &post, err)
	}

	image, err := v.storeImage(c, "image")
	if err != nil {
		return v.rejectPostForm(c, form, &post, err)
	}

	previous := post.Image
	updated, err := services.EditPost(user, post, data, services.ImageUpdate{
		Replace: image,
		Clear:   len(c.FormValue("image-clear")) > 0,
	})
	if err != nil {
		v.discardImage(c, image)
		if errors.Is(err, services.ErrPermissionDenied) {
			return c.Redirect(postURL(post.ID), fiber.StatusFound)
		}
		return v.rejectPostForm(c, form, &post, err)
	}

	if previous != nil && (updated.Image == nil || *updated.Image != *previous) {
		v.discardImage(c, previous)
	}

	return c.Redirect(postURL(updated.ID), fiber.StatusFound)
}

// rejectPostForm shows the form again for validation errors and hands
// anything else to the error handler.
func (v *Handler) rejectPostForm(c *fiber.Ctx, form postForm, post *models.Post, err error) error {
	var validation *services.ValidationError
	if !errors.As(err, &validation) {
		return err
	}
	form.Errors = validation.Fields
	return v.renderPostForm(c, form, post)
}
