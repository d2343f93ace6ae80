package api

import (
	"context"
	"time"

	"git.solsynth.dev/hypernet/journal/pkg/internal/media"
	"github.com/gofiber/fiber/v2"
)

const DefaultIndexTTL = 20 * time.Second

// PageCache stores rendered pages for a limited time.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
}

type Handler struct {
	Pages    PageCache
	Media    media.Store
	IndexTTL time.Duration
	// MaxImageSize limits post images in bytes, zero means DefaultMaxImageSize.
	MaxImageSize int64
}

func (v *Handler) MapControllers(app *fiber.App) {
	app.Get("/", v.listIndex)
	app.Get("/group/:slug", v.listGroupPosts)
	app.Get("/follow", v.listFollowing)

	profile := app.Group("/profile/:username")
	{
		profile.Get("/", v.getProfile)
		profile.All("/follow", v.followAuthor)
		profile.All("/unfollow", v.unfollowAuthor)
	}

	app.Get("/create", v.getCreatePost)
	app.Post("/create", v.createPost)

	posts := app.Group("/posts/:postId")
	{
		posts.Get("/", v.getPost)
		posts.Get("/edit", v.getEditPost)
		posts.Post("/edit", v.editPost)
		posts.Get("/comment", v.redirectToPost)
		posts.Post("/comment", v.createComment)
	}

	about := app.Group("/about")
	{
		about.Get("/author", v.getAboutAuthor)
		about.Get("/tech", v.getAboutTech)
	}

	auth := app.Group("/auth")
	{
		auth.Get("/signup", v.getSignup)
		auth.Post("/signup", v.signup)
		auth.Get("/login", v.getLogin)
		auth.Post("/login", v.login)
		auth.All("/logout", v.logout)
		auth.Get("/password_change", v.getPasswordChange)
		auth.Post("/password_change", v.changePassword)
		auth.Get("/password_change/done", v.getPasswordChangeDone)
	}
}
