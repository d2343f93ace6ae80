package services

import (
	"errors"
	"strings"

	"git.solsynth.dev/hypernet/journal/pkg/internal/database"
	"git.solsynth.dev/hypernet/journal/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type GroupInput struct {
	Title       string `form:"title" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"required,max=255,slug"`
	Description string `form:"description" validate:"required"`
}

func ListGroups() ([]models.Group, error) {
	var groups []models.Group
	err := database.C.Order("title ASC").Find(&groups).Error

	return groups, err
}

func GetGroupWithSlug(slug string) (models.Group, error) {
	var group models.Group
	if err := database.C.Where("slug = ?", slug).First(&group).Error; err != nil {
		return group, wrapLookup(err, "group")
	}
	return group, nil
}

func GetGroupWithID(id uint) (models.Group, error) {
	var group models.Group
	if err := database.C.Where("id = ?", id).First(&group).Error; err != nil {
		return group, wrapLookup(err, "group")
	}
	return group, nil
}

func NewGroup(in GroupInput) (models.Group, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Description = strings.TrimSpace(in.Description)

	group := models.Group{
		Title:       in.Title,
		Slug:        in.Slug,
		Description: in.Description,
	}
	if err := ValidateStruct(&in); err != nil {
		return group, err
	}

	if err := database.C.Create(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return group, NewValidationError("slug", "Group with this slug already exists.")
		}
		return group, err
	}
	return group, nil
}

// DeleteGroup keeps the posts of the group, they only lose the reference.
func DeleteGroup(slug string) error {
	group, err := GetGroupWithSlug(slug)
	if err != nil {
		return err
	}

	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("group_id = ?", group.ID).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&group).Error; err != nil {
			return err
		}
		log.Info().Str("slug", slug).Msg("Group has been deleted, its posts are ungrouped.")
		return nil
	})
}
