package models

import (
	"time"

	"gorm.io/gorm"
)

type Badge struct {
	gorm.Model
	WeekID      *uint  `gorm:"index" json:"week_id,omitempty"`
	Name        string `gorm:"not null" json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// UserBadge is an append-only award ledger entry. The unique index makes
// the grant idempotent: a second INSERT for the same triple conflicts and
// the existing row is returned instead.
type UserBadge struct {
	gorm.Model
	UserID    uint      `gorm:"uniqueIndex:idx_user_child_badge;not null" json:"user_id"`
	ChildID   uint      `gorm:"uniqueIndex:idx_user_child_badge;not null" json:"child_id"`
	BadgeID   uint      `gorm:"uniqueIndex:idx_user_child_badge;not null" json:"badge_id"`
	AwardedAt time.Time `json:"awarded_at"`
	Badge     Badge     `json:"badge"`
}
