package api

import (
	"bytes"
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/journal/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/journal/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// pageKey identifies a cached page by path, query and viewer, the layout
// shows who is signed in so anonymous and personal renders never mix.
func pageKey(c *fiber.Ctx) string {
	var viewer uint
	if user := exts.GetUser(c); user != nil {
		viewer = user.ID
	}
	return fmt.Sprintf("page#%s?%s#%d", c.Path(), c.Request().URI().QueryString(), viewer)
}

func (v *Handler) indexTTL() time.Duration {
	if v.IndexTTL > 0 {
		return v.IndexTTL
	}
	return DefaultIndexTTL
}

func (v *Handler) listIndex(c *fiber.Ctx) error {
	key := pageKey(c)
	if v.Pages != nil {
		if body, ok := v.Pages.Get(c.UserContext(), key); ok {
			c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
			return c.Send(body)
		}
	}

	page, err := services.ListGlobalFeed(c.Query("page"))
	if err != nil {
		return err
	}

	if err := c.Render("posts/index", exts.ViewData(c, fiber.Map{
		"Title": "Latest updates",
		"Page":  page,
	})); err != nil {
		return err
	}

	if v.Pages != nil {
		body := bytes.Clone(c.Response().Body())
		if err := v.Pages.Set(c.UserContext(), key, body, v.indexTTL()); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Unable to cache the index page...")
		}
	}
	return nil
}

func (v *Handler) listGroupPosts(c *fiber.Ctx) error {
	group, err := services.GetGroupWithSlug(c.Params("slug"))
	if err != nil {
		return err
	}

	page, err := services.ListGroupFeed(group, c.Query("page"))
	if err != nil {
		return err
	}

	return c.Render("posts/group_list", exts.ViewData(c, fiber.Map{
		"Group": group,
		"Page":  page,
	}))
}

func (v *Handler) listFollowing(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	page, err := services.ListFollowingFeed(exts.GetUser(c), c.Query("page"))
	if err != nil {
		return err
	}

	return c.Render("posts/follow", exts.ViewData(c, fiber.Map{
		"Title": "Posts of the authors you follow",
		"Page":  page,
	}))
}

func (v *Handler) getProfile(c *fiber.Ctx) error {
	author, err := services.GetAccountWithUsername(c.Params("username"))
	if err != nil {
		return err
	}

	page, err := services.ListProfileFeed(author, c.Query("page"))
	if err != nil {
		return err
	}

	user := exts.GetUser(c)
	following, err := services.IsFollowing(user, author)
	if err != nil {
		return err
	}

	return c.Render("posts/profile", exts.ViewData(c, fiber.Map{
		"Author":         author,
		"Page":           page,
		"Following":      following,
		"IsSelf":         user != nil && user.ID == author.ID,
		"PostCount":      page.Count,
		"FollowerCount":  services.CountFollowers(author.ID),
		"FollowingCount": services.CountFollowing(author.ID),
	}))
}
