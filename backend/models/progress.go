package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserJourneyProgress records a child's advancement through one week.
// JourneyID is denormalized from the week so journey-level listings do not
// need a join on every row. CompletedAt is one-way: once set it is never
// cleared, enforced with COALESCE in the upsert.
type UserJourneyProgress struct {
	gorm.Model
	UserID           uint                      `gorm:"uniqueIndex:idx_user_child_week;not null" json:"user_id"`
	ChildID          uint                      `gorm:"uniqueIndex:idx_user_child_week;not null" json:"child_id"`
	WeekID           uint                      `gorm:"uniqueIndex:idx_user_child_week;not null" json:"week_id"`
	JourneyID        uint                      `gorm:"index;not null" json:"journey_id"`
	CompletedTopics  datatypes.JSONSlice[uint] `json:"completed_topics"`
	CompletedQuizzes datatypes.JSONSlice[uint] `json:"completed_quizzes"`
	Progress         float64                   `gorm:"default:0" json:"progress"`
	CompletedAt      *time.Time                `json:"completed_at"`
}
