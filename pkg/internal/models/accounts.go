package models

type Account struct {
	BaseModel

	Username  string `json:"username" gorm:"uniqueIndex;size:150"`
	FirstName string `json:"first_name" gorm:"size:150"`
	LastName  string `json:"last_name" gorm:"size:150"`
	Email     string `json:"email" gorm:"size:254"`
	Password  string `json:"-"`
}

// Nick is the name shown on pages, the full name when it is known.
func (v Account) Nick() string {
	switch {
	case len(v.FirstName) > 0 && len(v.LastName) > 0:
		return v.FirstName + " " + v.LastName
	case len(v.FirstName) > 0:
		return v.FirstName
	default:
		return v.Username
	}
}
