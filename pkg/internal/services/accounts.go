package services

import (
	"errors"
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/journal/pkg/internal/database"
	"git.solsynth.dev/hypernet/journal/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignupInput struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"omitempty,max=254,email"`
	Password1 string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

type LoginInput struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type PasswordChangeInput struct {
	OldPassword  string `form:"old_password" validate:"required"`
	NewPassword1 string `form:"new_password1" validate:"required,min=8"`
	NewPassword2 string `form:"new_password2" validate:"required,eqfield=NewPassword1"`
}

var errDuplicatedUsername = NewValidationError("username", "A user with that username already exists.")

func hashPassword(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("unable to hash password: %v", err)
	}
	return string(hashed), nil
}

func CreateAccount(in SignupInput) (models.Account, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	var account models.Account
	if err := ValidateStruct(&in); err != nil {
		return account, err
	}

	var count int64
	if err := database.C.Model(&models.Account{}).
		Where("username = ?", in.Username).
		Count(&count).Error; err != nil {
		return account, err
	} else if count > 0 {
		return account, errDuplicatedUsername
	}

	hashed, err := hashPassword(in.Password1)
	if err != nil {
		return account, err
	}

	account = models.Account{
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hashed,
	}
	if err := database.C.Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return account, errDuplicatedUsername
		}
		return account, err
	}

	log.Info().Uint("id", account.ID).Str("username", account.Username).Msg("A new account has been registered.")
	return account, nil
}

// Authenticate checks the credentials without telling which of them was wrong.
func Authenticate(in LoginInput) (models.Account, error) {
	var account models.Account
	if err := ValidateStruct(&in); err != nil {
		return account, err
	}

	invalid := NewValidationError(NonFieldError, "Please enter a correct username and password. Note that both fields may be case-sensitive.")
	if err := database.C.Where("username = ?", in.Username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, invalid
		}
		return account, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(in.Password)); err != nil {
		return account, invalid
	}

	return account, nil
}

func ChangePassword(user models.Account, in PasswordChangeInput) error {
	if err := ValidateStruct(&in); err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.OldPassword)); err != nil {
		return NewValidationError("old_password", "Your old password was entered incorrectly. Please enter it again.")
	}

	hashed, err := hashPassword(in.NewPassword1)
	if err != nil {
		return err
	}
	return database.C.Model(&user).Update("password", hashed).Error
}

func GetAccountWithID(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		return account, wrapLookup(err, "account")
	}
	return account, nil
}

func GetAccountWithUsername(username string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("username = ?", username).First(&account).Error; err != nil {
		return account, wrapLookup(err, "account")
	}
	return account, nil
}

// DeleteAccount removes the account with everything it owns, other users'
// comments on its posts included.
func DeleteAccount(username string) error {
	account, err := GetAccountWithUsername(username)
	if err != nil {
		return err
	}

	return database.C.Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Post{}).Select("id").Where("author_id = ?", account.ID)
		if err := tx.Where("post_id IN (?) OR author_id = ?", owned, account.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR author_id = ?", account.ID, account.ID).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", account.ID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&account).Error; err != nil {
			return err
		}
		log.Info().Str("username", username).Msg("Account and its content has been deleted.")
		return nil
	})
}
