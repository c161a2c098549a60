package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Domain is the developmental category a quiz question belongs to.
type Domain string

const (
	DomainMotor     Domain = "motor"
	DomainLanguage  Domain = "language"
	DomainSocial    Domain = "social"
	DomainCognitive Domain = "cognitive"
	DomainEmotional Domain = "emotional"
)

func (d Domain) Valid() bool {
	switch d {
	case DomainMotor, DomainLanguage, DomainSocial, DomainCognitive, DomainEmotional:
		return true
	}
	return false
}

// Journey is a themed multi-week content track. Reference data only;
// created through the admin routes and never mutated by parents.
type Journey struct {
	gorm.Model
	Trail       string `json:"trail"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Month       int    `json:"month"`
	Weeks       []Week `json:"weeks,omitempty"`
}

// Week ordering is by SortKey ascending with ID as the tie-break.
type Week struct {
	gorm.Model
	JourneyID   uint    `gorm:"index;not null" json:"journey_id"`
	SortKey     int     `gorm:"not null" json:"sort_key"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	IsSummary   bool    `gorm:"default:false" json:"is_summary"`
	Topics      []Topic `json:"topics,omitempty"`
	Quizzes     []Quiz  `json:"quizzes,omitempty"`
	Badges      []Badge `json:"badges,omitempty"`
}

type Topic struct {
	gorm.Model
	WeekID  uint   `gorm:"index;not null" json:"week_id"`
	SortKey int    `gorm:"not null" json:"sort_key"`
	Title   string `gorm:"not null" json:"title"`
	Content string `json:"content"`
}

type Quiz struct {
	gorm.Model
	WeekID    uint           `gorm:"index;not null" json:"week_id"`
	SortKey   int            `gorm:"not null" json:"sort_key"`
	Domain    Domain         `gorm:"type:text;not null" json:"domain"`
	Title     string         `gorm:"not null" json:"title"`
	Question  string         `json:"question"`
	Options   datatypes.JSON `json:"options"`
	Feedback  string         `json:"feedback"`
	Knowledge string         `json:"knowledge"`
}
