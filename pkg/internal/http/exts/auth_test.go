package exts

import (
	"testing"
	"time"

	"git.solsynth.dev/hypernet/journal/pkg/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	viper.Set("security.secret", "test-secret")
	t.Cleanup(func() { viper.Set("security.secret", "") })

	token, err := IssueToken(models.Account{BaseModel: models.BaseModel{ID: 7}})
	require.NoError(t, err)

	id, err := ReadToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, id)

	t.Run("tampered", func(t *testing.T) {
		_, err := ReadToken(token + "x")
		assert.Error(t, err)
	})

	t.Run("other secret", func(t *testing.T) {
		viper.Set("security.secret", "rotated")
		defer viper.Set("security.secret", "test-secret")

		_, err := ReadToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = ReadToken(expired)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})
}

func TestSafeRedirect(t *testing.T) {
	cases := map[string]string{
		"/create/":              "/create/",
		"/posts/1/?page=2":      "/posts/1/?page=2",
		"":                      "/",
		"https://evil.example/": "/",
		"//evil.example/":       "/",
		"/\\evil.example/":      "/",
		"javascript:alert(1)":   "/",
		"relative/path":         "/",
	}
	for next, expected := range cases {
		assert.Equal(t, expected, SafeRedirect(next, "/"), "next %q", next)
	}
}

func TestLoginURL(t *testing.T) {
	assert.Equal(t, "/auth/login/?next=%2Fcreate%2F", LoginURL("/create/"))
}
