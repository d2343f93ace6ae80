package services

import (
	"testing"

	"git.solsynth.dev/hypernet/journal/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowIsIdempotent(t *testing.T) {
	setupDatabase(t)
	reader := createAccount(t, "reader")
	author := createAccount(t, "author")

	require.NoError(t, FollowAuthor(&reader, author))
	require.NoError(t, FollowAuthor(&reader, author))
	assert.EqualValues(t, 1, countRows(t, &models.Follow{}))

	following, err := IsFollowing(&reader, author)
	require.NoError(t, err)
	assert.True(t, following)
	assert.EqualValues(t, 1, CountFollowers(author.ID))
	assert.EqualValues(t, 1, CountFollowing(reader.ID))

	require.NoError(t, UnfollowAuthor(&reader, author))
	assert.Zero(t, countRows(t, &models.Follow{}))

	// Nothing left to delete is still fine.
	require.NoError(t, UnfollowAuthor(&reader, author))

	following, err = IsFollowing(&reader, author)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestSelfFollowIsIgnored(t *testing.T) {
	setupDatabase(t)
	author := createAccount(t, "author")

	require.NoError(t, FollowAuthor(&author, author))
	assert.Zero(t, countRows(t, &models.Follow{}))
}

func TestFollowRequiresAccount(t *testing.T) {
	setupDatabase(t)
	author := createAccount(t, "author")

	assert.ErrorIs(t, FollowAuthor(nil, author), ErrAuthenticationRequired)
	assert.ErrorIs(t, UnfollowAuthor(nil, author), ErrAuthenticationRequired)

	following, err := IsFollowing(nil, author)
	require.NoError(t, err)
	assert.False(t, following)
}
