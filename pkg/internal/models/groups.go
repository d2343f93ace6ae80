package models

type Group struct {
	BaseModel

	Title       string `json:"title" gorm:"size:200" validate:"required,max=200"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:255" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}
