package exts

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"git.solsynth.dev/hypernet/journal/pkg/internal/models"
	"git.solsynth.dev/hypernet/journal/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	TokenCookieName = "journal_token"
	LoginPath       = "/auth/login/"
	DefaultTokenTTL = 14 * 24 * time.Hour
)

const tokenIssuer = "journal"

func tokenSecret() []byte {
	return []byte(viper.GetString("security.secret"))
}

func tokenTTL() time.Duration {
	if ttl := viper.GetDuration("security.token_ttl"); ttl > 0 {
		return ttl
	}
	return DefaultTokenTTL
}

func IssueToken(user models.Account) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL())),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tokenSecret())
}

// ReadToken validates raw and returns the account id it was issued for.
func ReadToken(raw string) (uint, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		return tokenSecret(), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token subject: %v", err)
	}
	return uint(id), nil
}

func SetAuthCookie(c *fiber.Ctx, user models.Account) error {
	token, err := IssueToken(user)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(tokenTTL()),
		HTTPOnly: true,
		Secure:   viper.GetBool("security.cookie_secure"),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

func ClearAuthCookie(c *fiber.Ctx) {
	c.ClearCookie(TokenCookieName)
}

// ContextMiddleware resolves the session cookie into the "user" local.
// A broken or stale cookie is dropped and the request continues anonymously.
func ContextMiddleware(c *fiber.Ctx) error {
	raw := c.Cookies(TokenCookieName)
	if len(raw) == 0 {
		return c.Next()
	}

	id, err := ReadToken(raw)
	if err != nil {
		log.Debug().Err(err).Msg("Dropped an invalid session token...")
		ClearAuthCookie(c)
		return c.Next()
	}

	user, err := services.GetAccountWithID(id)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			return err
		}
		ClearAuthCookie(c)
		return c.Next()
	}

	c.Locals("user", user)
	return c.Next()
}

func GetUser(c *fiber.Ctx) *models.Account {
	if user, authenticated := c.Locals("user").(models.Account); authenticated {
		return &user
	}
	return nil
}

func EnsureAuthenticated(c *fiber.Ctx) error {
	return services.CanAccess(GetUser(c)).Err()
}

// LoginURL points to the login page, returning to next afterwards.
func LoginURL(next string) string {
	return LoginPath + "?" + url.Values{"next": {next}}.Encode()
}

// SafeRedirect accepts only local absolute paths, anything else falls back.
func SafeRedirect(next, fallback string) string {
	if len(next) == 0 || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	if u, err := url.Parse(next); err != nil || u.IsAbs() || len(u.Host) > 0 {
		return fallback
	}
	return next
}
