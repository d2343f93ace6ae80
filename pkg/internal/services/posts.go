package services

import (
	"fmt"
	"strings"
	"time"

	"git.solsynth.dev/hypernet/journal/pkg/internal/database"
	"git.solsynth.dev/hypernet/journal/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostInput struct {
	Text    string `form:"text" validate:"required"`
	GroupID *uint  `form:"group"`
}

// ImageUpdate describes what an edit does to the image of a post.
type ImageUpdate struct {
	Replace *string
	Clear   bool
}

// ValidatePostInput normalizes in and checks it without touching any post.
func ValidatePostInput(in *PostInput) error {
	in.Text = strings.TrimSpace(in.Text)
	if in.GroupID != nil && *in.GroupID == 0 {
		in.GroupID = nil
	}

	if err := ValidateStruct(in); err != nil {
		return err
	}
	if in.GroupID != nil {
		if _, err := GetGroupWithID(*in.GroupID); err != nil {
			return NewValidationError("group", "Select a valid choice. That choice is not one of the available choices.")
		}
	}
	return nil
}

func PreloadGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author").
		Preload("Group")
}

func GetPost(id uint) (models.Post, error) {
	var item models.Post
	if err := PreloadGeneral(database.C).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, wrapLookup(err, "post")
	}
	return item, nil
}

func CountPostWithAuthor(authorID uint) (int64, error) {
	var count int64
	if err := database.C.Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func NewPost(user *models.Account, in PostInput, image *string) (models.Post, error) {
	var item models.Post
	if err := CanCreatePost(user).Err(); err != nil {
		return item, err
	}
	if err := ValidatePostInput(&in); err != nil {
		return item, err
	}

	item = models.Post{
		Text:     in.Text,
		Language: DetectLanguage(in.Text),
		Image:    image,
		GroupID:  in.GroupID,
		AuthorID: user.ID,
	}

	log.Debug().Uint("author", user.ID).Str("preview", item.Preview()).Msg("Posting a post...")
	start := time.Now()

	if err := database.C.Omit(clause.Associations).Create(&item).Error; err != nil {
		return item, fmt.Errorf("unable to save post: %v", err)
	}

	log.Debug().Uint("id", item.ID).Dur("elapsed", time.Since(start)).Msg("The post is posted.")
	return GetPost(item.ID)
}

// EditPost applies in to item on behalf of user. Nothing is written unless
// user is the author and the input is valid.
func EditPost(user *models.Account, item models.Post, in PostInput, image ImageUpdate) (models.Post, error) {
	if err := CanEditPost(user, item).Err(); err != nil {
		return item, err
	}
	if err := ValidatePostInput(&in); err != nil {
		return item, err
	}

	item.Text = in.Text
	item.Language = DetectLanguage(in.Text)
	item.GroupID = in.GroupID
	switch {
	case image.Replace != nil:
		item.Image = image.Replace
	case image.Clear:
		item.Image = nil
	}
	item.EditedAt = lo.ToPtr(time.Now())

	if err := database.C.Model(&item).
		Select("Text", "Language", "GroupID", "Image", "EditedAt", "UpdatedAt").
		Omit(clause.Associations).
		Updates(&item).Error; err != nil {
		return item, fmt.Errorf("unable to update post: %v", err)
	}

	return GetPost(item.ID)
}
