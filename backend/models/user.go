package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:user" json:"role"` // user, admin
}

// Child is a profile owned by a parent account. All progress and badge
// state is keyed by (user, child), never by the user alone.
type Child struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	BirthDate time.Time `json:"birth_date"`
	ShareCode string    `gorm:"uniqueIndex" json:"share_code"`
}

type LoginHistory struct {
	gorm.Model
	UserID    uint `gorm:"index"`
	LoginTime time.Time
}
