package models

import (
	"time"

	"gorm.io/gorm"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionTrial    SubscriptionStatus = "trial"
	SubscriptionPending  SubscriptionStatus = "pending"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

type SubscriptionPlan struct {
	gorm.Model
	Name  string  `gorm:"unique;not null" json:"name"`
	Price float64 `gorm:"not null" json:"price"`
}

type Subscription struct {
	gorm.Model
	UserID     uint               `gorm:"index;not null" json:"user_id"`
	PlanID     uint               `gorm:"index;not null" json:"plan_id"`
	Status     SubscriptionStatus `gorm:"type:text;not null" json:"status"`
	StartedAt  time.Time          `json:"started_at"`
	CanceledAt *time.Time         `json:"canceled_at"`
}

// PlanStats is one row of the by-plan rollup, recomputed per request.
type PlanStats struct {
	PlanID       uint    `json:"planId"`
	PlanName     string  `json:"planName"`
	Price        float64 `json:"price"`
	Total        int64   `json:"total"`
	Active       int64   `json:"active"`
	Trial        int64   `json:"trial"`
	Pending      int64   `json:"pending"`
	Canceled     int64   `json:"canceled"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type DashboardMetrics struct {
	TotalUsers          int64   `json:"totalUsers"`
	TotalSubscriptions  int64   `json:"totalSubscriptions"`
	ActiveSubscriptions int64   `json:"activeSubscriptions"`
	TrialSubscriptions  int64   `json:"trialSubscriptions"`
	MonthlyRevenue      float64 `json:"monthlyRevenue"`
	ChurnRate           float64 `json:"churnRate"`
	ConversionRate      float64 `json:"conversionRate"`
}
