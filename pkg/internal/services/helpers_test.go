package services

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"git.solsynth.dev/hypernet/journal/pkg/internal/database"
	"git.solsynth.dev/hypernet/journal/pkg/internal/models"
	"github.com/stretchr/testify/require"
)

var databaseSeq atomic.Int64

func setupDatabase(t *testing.T) {
	t.Helper()

	name := fmt.Sprintf("%s_%d", strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()), databaseSeq.Add(1))
	source, err := database.NewMemoryGorm(name)
	require.NoError(t, err)

	t.Cleanup(func() {
		if conn, err := source.DB(); err == nil {
			_ = conn.Close()
		}
	})
}

func createAccount(t *testing.T, username string) models.Account {
	t.Helper()

	account, err := CreateAccount(SignupInput{
		Username:  username,
		FirstName: strings.ToUpper(username[:1]) + username[1:],
		Password1: "correct-horse",
		Password2: "correct-horse",
	})
	require.NoError(t, err)
	return account
}

func createGroup(t *testing.T, slug string) models.Group {
	t.Helper()

	group, err := NewGroup(GroupInput{
		Title:       "Group " + slug,
		Slug:        slug,
		Description: "Posts about " + slug,
	})
	require.NoError(t, err)
	return group
}

func createPost(t *testing.T, author models.Account, text string, group *models.Group) models.Post {
	t.Helper()

	in := PostInput{Text: text}
	if group != nil {
		in.GroupID = &group.ID
	}
	post, err := NewPost(&author, in, nil)
	require.NoError(t, err)
	return post
}

func countRows(t *testing.T, model any) int64 {
	t.Helper()

	var count int64
	require.NoError(t, database.C.Model(model).Count(&count).Error)
	return count
}
