package services

import (
	"strconv"

	"git.solsynth.dev/hypernet/journal/pkg/internal/database"
	"git.solsynth.dev/hypernet/journal/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

const PageSize = 10

// Page is one slice of an ordered post list, numbered from 1.
type Page struct {
	Items    []models.Post
	Number   int
	NumPages int
	Count    int64
}

func (v Page) HasPrevious() bool {
	return v.Number > 1
}

func (v Page) HasNext() bool {
	return v.Number < v.NumPages
}

func (v Page) PreviousNumber() int {
	return v.Number - 1
}

func (v Page) NextNumber() int {
	return v.Number + 1
}

func (v Page) PageRange() []int {
	return lo.RangeFrom(1, v.NumPages)
}

// ParsePageNumber reads a page query value, anything but a positive integer means page 1.
func ParsePageNumber(raw string) int {
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		return 1
	}
	return number
}

// Paginate loads the requested page of tx, newest first. Numbers past the end
// land on the last page.
func Paginate(tx *gorm.DB, page string) (Page, error) {
	tx = tx.Model(&models.Post{}).Session(&gorm.Session{})

	var result Page
	if err := tx.Count(&result.Count).Error; err != nil {
		return result, err
	}

	result.NumPages = max(1, int((result.Count+PageSize-1)/PageSize))
	result.Number = min(ParsePageNumber(page), result.NumPages)

	if err := PreloadGeneral(tx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(PageSize).
		Offset((result.Number - 1) * PageSize).
		Find(&result.Items).Error; err != nil {
		return result, err
	}

	return result, nil
}

func FilterPostWithGroup(tx *gorm.DB, group models.Group) *gorm.DB {
	return tx.Where("group_id = ?", group.ID)
}

func FilterPostWithAuthor(tx *gorm.DB, author models.Account) *gorm.DB {
	return tx.Where("author_id = ?", author.ID)
}

func FilterPostWithFollowing(tx *gorm.DB, user models.Account) *gorm.DB {
	followed := database.C.Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ?", user.ID)
	return tx.Where("author_id IN (?)", followed)
}

func ListGlobalFeed(page string) (Page, error) {
	return Paginate(database.C, page)
}

func ListGroupFeed(group models.Group, page string) (Page, error) {
	return Paginate(FilterPostWithGroup(database.C, group), page)
}

func ListProfileFeed(author models.Account, page string) (Page, error) {
	return Paginate(FilterPostWithAuthor(database.C, author), page)
}

func ListFollowingFeed(user *models.Account, page string) (Page, error) {
	if err := CanAccess(user).Err(); err != nil {
		return Page{}, err
	}
	return Paginate(FilterPostWithFollowing(database.C, *user), page)
}
