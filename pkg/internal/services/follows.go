package services

import (
	"errors"
	"fmt"

	"git.solsynth.dev/hypernet/journal/pkg/internal/database"
	"git.solsynth.dev/hypernet/journal/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func IsFollowing(viewer *models.Account, author models.Account) (bool, error) {
	if viewer == nil {
		return false, nil
	}

	var count int64
	if err := database.C.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", viewer.ID, author.ID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("unable to check follow: %v", err)
	}
	return count > 0, nil
}

// FollowAuthor makes sure user follows author. Following twice or following
// yourself does not fail and does not add an edge.
func FollowAuthor(user *models.Account, author models.Account) error {
	decision := CanFollow(user, author)
	if decision.Reason == DenySelfFollow {
		log.Debug().Uint("user", user.ID).Msg("Ignored a self follow request.")
		return nil
	} else if err := decision.Err(); err != nil {
		return err
	}

	edge := models.Follow{UserID: user.ID, AuthorID: author.ID}
	err := database.C.
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&edge).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("unable to follow: %v", err)
	}
	return nil
}

func UnfollowAuthor(user *models.Account, author models.Account) error {
	if err := CanAccess(user).Err(); err != nil {
		return err
	}

	if err := database.C.
		Where("user_id = ? AND author_id = ?", user.ID, author.ID).
		Delete(&models.Follow{}).Error; err != nil {
		return fmt.Errorf("unable to unfollow: %v", err)
	}
	return nil
}

func CountFollowers(authorID uint) int64 {
	var count int64
	if err := database.C.Model(&models.Follow{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0
	}
	return count
}

func CountFollowing(userID uint) int64 {
	var count int64
	if err := database.C.Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0
	}
	return count
}
