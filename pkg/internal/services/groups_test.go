package services

import (
	"strings"
	"testing"

	"git.solsynth.dev/hypernet/journal/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteGroupKeepsPosts(t *testing.T) {
	setupDatabase(t)
	author := createAccount(t, "leo")
	group := createGroup(t, "cats")
	post := createPost(t, author, "about cats", &group)

	require.NoError(t, DeleteGroup("cats"))

	stored, err := GetPost(post.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.GroupID)
	assert.Nil(t, stored.Group)

	_, err = GetGroupWithSlug("cats")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, DeleteGroup("cats"), ErrNotFound)
}

func TestNewGroupValidation(t *testing.T) {
	setupDatabase(t)
	createGroup(t, "cats")

	cases := []struct {
		name  string
		in    GroupInput
		field string
	}{
		{"duplicated slug", GroupInput{Title: "Cats again", Slug: "cats", Description: "dup"}, "slug"},
		{"bad slug", GroupInput{Title: "Dogs", Slug: "dogs and cats", Description: "spaces"}, "slug"},
		{"missing title", GroupInput{Slug: "birds", Description: "no title"}, "title"},
		{"long title", GroupInput{Title: strings.Repeat("a", 201), Slug: "fish", Description: "long"}, "title"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewGroup(c.in)

			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Contains(t, validation.Fields, c.field)
		})
	}

	assert.EqualValues(t, 1, countRows(t, &models.Group{}))
}
