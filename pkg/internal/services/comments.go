package services

import (
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/journal/pkg/internal/database"
	"git.solsynth.dev/hypernet/journal/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/clause"
)

type CommentInput struct {
	Text string `form:"text" validate:"required"`
}

func ListComments(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := database.C.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error

	return comments, err
}

func NewComment(user *models.Account, postID uint, in CommentInput) (models.Comment, error) {
	var item models.Comment
	if err := CanComment(user).Err(); err != nil {
		return item, err
	}

	post, err := GetPost(postID)
	if err != nil {
		return item, err
	}

	in.Text = strings.TrimSpace(in.Text)
	if err := ValidateStruct(&in); err != nil {
		return item, err
	}

	item = models.Comment{
		Text:     in.Text,
		PostID:   post.ID,
		AuthorID: user.ID,
	}
	if err := database.C.Omit(clause.Associations).Create(&item).Error; err != nil {
		return item, fmt.Errorf("unable to save comment: %v", err)
	}

	log.Debug().Uint("post", post.ID).Uint("author", user.ID).Msg("A comment has been added.")
	item.Author = *user
	return item, nil
}
