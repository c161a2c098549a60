package controllers

import (
	"time"

	"educare/backend/config"
	"educare/backend/models"
	"educare/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StatsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewStatsController(db *gorm.DB, cfg *config.Config) *StatsController {
	return &StatsController{DB: db, Cfg: cfg}
}

// GetSubscriptionStatsByPlan recomputes the per-plan rollup from scratch
// on every call. Revenue counts active and trial subscriptions at the
// plan's current price.
func (sc *StatsController) GetSubscriptionStatsByPlan(c *fiber.Ctx) error {
	var plans []models.PlanStats
	if err := sc.DB.Raw(`
		SELECT
			p.id AS plan_id,
			p.name AS plan_name,
			p.price AS price,
			COUNT(s.id) AS total,
			COALESCE(SUM(CASE WHEN s.status = 'active' THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN s.status = 'trial' THEN 1 ELSE 0 END), 0) AS trial,
			COALESCE(SUM(CASE WHEN s.status = 'pending' THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN s.status = 'canceled' THEN 1 ELSE 0 END), 0) AS canceled,
			COALESCE(SUM(CASE WHEN s.status IN ('active', 'trial') THEN p.price ELSE 0 END), 0) AS total_revenue
		FROM subscription_plans p
		LEFT JOIN subscriptions s ON s.plan_id = p.id AND s.deleted_at IS NULL
		WHERE p.deleted_at IS NULL
		GROUP BY p.id, p.name, p.price
		ORDER BY p.id
	`).Scan(&plans).Error; err != nil {
		return utils.InternalServerError(c, "Could not compute subscription stats")
	}

	global := models.PlanStats{PlanName: "all"}
	for _, plan := range plans {
		global.Total += plan.Total
		global.Active += plan.Active
		global.Trial += plan.Trial
		global.Pending += plan.Pending
		global.Canceled += plan.Canceled
		global.TotalRevenue += plan.TotalRevenue
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"plans": plans,
		"total": global,
	})
}

// GetDashboardMetrics computes churn and conversion from subscription
// rows instead of returning canned figures.
func (sc *StatsController) GetDashboardMetrics(c *fiber.Ctx) error {
	var metrics models.DashboardMetrics

	if err := sc.DB.Model(&models.User{}).Count(&metrics.TotalUsers).Error; err != nil {
		return utils.InternalServerError(c, "Could not compute dashboard metrics")
	}

	sc.DB.Model(&models.Subscription{}).Count(&metrics.TotalSubscriptions)
	sc.DB.Model(&models.Subscription{}).
		Where("status = ?", models.SubscriptionActive).
		Count(&metrics.ActiveSubscriptions)
	sc.DB.Model(&models.Subscription{}).
		Where("status = ?", models.SubscriptionTrial).
		Count(&metrics.TrialSubscriptions)

	if err := sc.DB.Raw(`
		SELECT COALESCE(SUM(p.price), 0)
		FROM subscriptions s
		JOIN subscription_plans p ON p.id = s.plan_id
		WHERE s.status IN ('active', 'trial') AND s.deleted_at IS NULL
	`).Scan(&metrics.MonthlyRevenue).Error; err != nil {
		return utils.InternalServerError(c, "Could not compute dashboard metrics")
	}

	if metrics.TotalSubscriptions > 0 {
		var recentlyCanceled int64
		sc.DB.Model(&models.Subscription{}).
			Where("status = ? AND canceled_at > ?",
				models.SubscriptionCanceled, time.Now().AddDate(0, 0, -30)).
			Count(&recentlyCanceled)

		metrics.ChurnRate = float64(recentlyCanceled) / float64(metrics.TotalSubscriptions) * 100
		metrics.ConversionRate = float64(metrics.ActiveSubscriptions) / float64(metrics.TotalSubscriptions) * 100
	}

	return utils.Success(c, fiber.StatusOK, metrics)
}
