package models

import "time"

type Post struct {
	BaseModel

	Text     string     `json:"text"`
	Language string     `json:"language"`
	Image    *string    `json:"image"`
	EditedAt *time.Time `json:"edited_at"`

	GroupID  *uint   `json:"group_id" gorm:"index"`
	Group    *Group  `json:"group" gorm:"constraint:OnDelete:SET NULL;"`
	AuthorID uint    `json:"author_id" gorm:"index;not null"`
	Author   Account `json:"author" gorm:"constraint:OnDelete:CASCADE;"`
}

const PostPreviewThreshold = 15

// Preview is the short form of the text used in titles and logs.
func (v Post) Preview() string {
	runes := []rune(v.Text)
	if len(runes) <= PostPreviewThreshold {
		return v.Text
	}
	return string(runes[:PostPreviewThreshold])
}
