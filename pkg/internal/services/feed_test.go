package services

import (
	"fmt"
	"testing"

	"git.solsynth.dev/hypernet/journal/pkg/internal/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageNumber(t *testing.T) {
	cases := map[string]int{
		"":    1,
		"1":   1,
		"2":   2,
		"0":   1,
		"-3":  1,
		"abc": 1,
		"1.5": 1,
	}
	for raw, expected := range cases {
		assert.Equal(t, expected, ParsePageNumber(raw), "page %q", raw)
	}
}

func TestGlobalFeedPagination(t *testing.T) {
	setupDatabase(t)
	author := createAccount(t, "leo")

	var created []models.Post
	for i := 0; i < 13; i++ {
		created = append(created, createPost(t, author, fmt.Sprintf("post number %d", i), nil))
	}

	first, err := ListGlobalFeed("")
	require.NoError(t, err)
	assert.Len(t, first.Items, PageSize)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, first.NumPages)
	assert.EqualValues(t, 13, first.Count)
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())

	second, err := ListGlobalFeed("2")
	require.NoError(t, err)
	assert.Len(t, second.Items, 3)
	assert.True(t, second.HasPrevious())
	assert.False(t, second.HasNext())
	assert.Equal(t, []int{1, 2}, second.PageRange())

	// Newest first across both pages, the oldest post closes the feed.
	all := append(first.Items, second.Items...)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i-1].ID, all[i].ID)
		assert.False(t, all[i-1].CreatedAt.Before(all[i].CreatedAt))
	}
	assert.Equal(t, created[12].ID, all[0].ID)
	assert.Equal(t, created[0].ID, all[12].ID)
	assert.Equal(t, "leo", all[0].Author.Username)

	t.Run("page past the end shows the last page", func(t *testing.T) {
		page, err := ListGlobalFeed("99")
		require.NoError(t, err)
		assert.Equal(t, 2, page.Number)
		assert.Len(t, page.Items, 3)
	})

	t.Run("garbage page shows the first page", func(t *testing.T) {
		page, err := ListGlobalFeed("nope")
		require.NoError(t, err)
		assert.Equal(t, 1, page.Number)
		assert.Equal(t, first.Items[0].ID, page.Items[0].ID)
	})
}

func TestEmptyFeedHasOnePage(t *testing.T) {
	setupDatabase(t)

	page, err := ListGlobalFeed("3")
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.NumPages)
}

func TestGroupAndProfileFeeds(t *testing.T) {
	setupDatabase(t)
	leo := createAccount(t, "leo")
	mia := createAccount(t, "mia")
	cats := createGroup(t, "cats")

	createPost(t, leo, "leo in cats", &cats)
	createPost(t, leo, "leo alone", nil)
	createPost(t, mia, "mia in cats", &cats)

	groupPage, err := ListGroupFeed(cats, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"leo in cats", "mia in cats"}, lo.Map(groupPage.Items, func(item models.Post, _ int) string {
		return item.Text
	}))

	profilePage, err := ListProfileFeed(leo, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"leo alone", "leo in cats"}, lo.Map(profilePage.Items, func(item models.Post, _ int) string {
		return item.Text
	}))
}

func TestFollowingFeed(t *testing.T) {
	setupDatabase(t)
	reader := createAccount(t, "reader")
	followed := createAccount(t, "followed")
	ignored := createAccount(t, "ignored")

	createPost(t, followed, "from followed", nil)
	createPost(t, ignored, "from ignored", nil)

	page, err := ListFollowingFeed(&reader, "")
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	require.NoError(t, FollowAuthor(&reader, followed))

	page, err = ListFollowingFeed(&reader, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "from followed", page.Items[0].Text)

	// The author does not see the post in their own following feed.
	page, err = ListFollowingFeed(&followed, "")
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	_, err = ListFollowingFeed(nil, "")
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
}
