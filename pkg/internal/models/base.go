package models

import "time"

// BaseModel replaces the soft-deleting base used elsewhere in hypernet,
// rows here are removed for real so foreign key actions fire.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}
