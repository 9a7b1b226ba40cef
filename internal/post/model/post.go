package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Username    string    `json:"username" gorm:"not null"`
	Title       string    `json:"title" gorm:"not null;index"`
	Description string    `json:"description" gorm:"not null"`
	Photo       *string   `json:"photo,omitempty"`
	Categories  []string  `json:"categories" gorm:"serializer:json"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
