package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username       string    `json:"username" gorm:"not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHashed string    `json:"-" gorm:"not null"`

	// Reset token state lives inline on the user record: at most one
	// active token per user, and issuing a new one overwrites the old.
	ResetToken       *string    `json:"-" gorm:"index"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
