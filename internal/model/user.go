package model

import (
	"strings"

	"gorm.io/gorm"
)

type User struct {
	Base
	Email         string  `gorm:"uniqueIndex;not null" json:"email"`
	Name          string  `gorm:"not null" json:"name"`
	Sub           string  `gorm:"uniqueIndex;not null" json:"sub"` // external identity provider subject id
	EmailVerified bool    `gorm:"not null;default:false" json:"email_verified"`
	EmailToken    *string `gorm:"uniqueIndex" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if err := u.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if u.EmailToken == nil {
		token := RandomToken(16)
		u.EmailToken = &token
	}
	return nil
}

// EmailCanSignup gatekeeps which email addresses are allowed to create accounts.
func EmailCanSignup(email string) bool {
	return strings.HasSuffix(email, "@vu.nl") || strings.HasSuffix(email, "@student.vu.nl")
}
