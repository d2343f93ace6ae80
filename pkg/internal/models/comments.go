package models

type Comment struct {
	BaseModel

	Text     string  `json:"text"`
	PostID   uint    `json:"post_id" gorm:"index;not null"`
	Post     Post    `json:"post" gorm:"constraint:OnDelete:CASCADE;"`
	AuthorID uint    `json:"author_id" gorm:"index;not null"`
	Author   Account `json:"author" gorm:"constraint:OnDelete:CASCADE;"`
}
