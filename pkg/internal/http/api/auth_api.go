package api

import (
	"errors"

	"git.solsynth.dev/hypernet/journal/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/journal/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func formErrors(err error) (map[string]string, bool) {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		return validation.Fields, true
	}
	return nil, false
}

func (v *Handler) getSignup(c *fiber.Ctx) error {
	return c.Render("users/signup", exts.ViewData(c, fiber.Map{
		"Form":   services.SignupInput{},
		"Errors": map[string]string{},
	}))
}

func (v *Handler) signup(c *fiber.Ctx) error {
	var data services.SignupInput
	if err := exts.BindForm(c, &data); err != nil {
		return err
	}

	account, err := services.CreateAccount(data)
	if err != nil {
		if fields, ok := formErrors(err); ok {
			data.Password1, data.Password2 = "", ""
			return c.Render("users/signup", exts.ViewData(c, fiber.Map{
				"Form":   data,
				"Errors": fields,
			}))
		}
		return err
	}

	if err := exts.SetAuthCookie(c, account); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusFound)
}

func (v *Handler) getLogin(c *fiber.Ctx) error {
	return c.Render("users/login", exts.ViewData(c, fiber.Map{
		"Form":   services.LoginInput{},
		"Errors": map[string]string{},
		"Next":   exts.SafeRedirect(c.Query("next"), ""),
	}))
}

func (v *Handler) login(c *fiber.Ctx) error {
	var data struct {
		Username string `form:"username"`
		Password string `form:"password"`
		Next     string `form:"next"`
	}
	if err := exts.BindForm(c, &data); err != nil {
		return err
	}

	account, err := services.Authenticate(services.LoginInput{
		Username: data.Username,
		Password: data.Password,
	})
	if err != nil {
		if fields, ok := formErrors(err); ok {
			return c.Render("users/login", exts.ViewData(c, fiber.Map{
				"Form":   services.LoginInput{Username: data.Username},
				"Errors": fields,
				"Next":   exts.SafeRedirect(data.Next, ""),
			}))
		}
		return err
	}

	if err := exts.SetAuthCookie(c, account); err != nil {
		return err
	}
	return c.Redirect(exts.SafeRedirect(data.Next, "/"), fiber.StatusFound)
}

func (v *Handler) logout(c *fiber.Ctx) error {
	exts.ClearAuthCookie(c)
	c.Locals("user", nil)
	return c.Render("users/logged_out", exts.ViewData(c, nil))
}

func (v *Handler) getPasswordChange(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	return c.Render("users/password_change_form", exts.ViewData(c, fiber.Map{
		"Errors": map[string]string{},
	}))
}

func (v *Handler) changePassword(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	var data services.PasswordChangeInput
	if err := exts.BindForm(c, &data); err != nil {
		return err
	}

	if err := services.ChangePassword(*exts.GetUser(c), data); err != nil {
		if fields, ok := formErrors(err); ok {
			return c.Render("users/password_change_form", exts.ViewData(c, fiber.Map{
				"Errors": fields,
			}))
		}
		return err
	}

	return c.Redirect("/auth/password_change/done/", fiber.StatusFound)
}

func (v *Handler) getPasswordChangeDone(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	return c.Render("users/password_change_done", exts.ViewData(c, nil))
}
