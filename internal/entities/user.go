package entities

import (
	"time"

	"gorm.io/gorm"
)

// User is an account that can authenticate with an email and password.
type User struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	Email          string         `gorm:"uniqueIndex;size:250;not null" json:"email"`
	HashedPassword string         `gorm:"size:250;not null" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
