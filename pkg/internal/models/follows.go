package models

// Follow is a directed edge, UserID receives the posts of AuthorID in the following feed.
type Follow struct {
	BaseModel

	UserID   uint    `json:"user_id" gorm:"uniqueIndex:idx_follow_user_author;not null"`
	User     Account `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	AuthorID uint    `json:"author_id" gorm:"uniqueIndex:idx_follow_user_author;index;not null"`
	Author   Account `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}
