package tests

import (
	"sync"
	"testing"
	"time"

	"educare/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedSubscriptionsOnce sync.Once

// Plan A (price 10): 2 active, 1 trial. Plan B (price 20): 1 active.
func seedSubscriptions(t *testing.T) {
	t.Helper()
	seedSubscriptionsOnce.Do(func() {
		planA := models.SubscriptionPlan{Name: "basic", Price: 10}
		planB := models.SubscriptionPlan{Name: "family", Price: 20}
		require.NoError(t, db.Create(&planA).Error)
		require.NoError(t, db.Create(&planB).Error)

		now := time.Now()
		subs := []models.Subscription{
			{UserID: parentID, PlanID: planA.ID, Status: models.SubscriptionActive, StartedAt: now},
			{UserID: parentID, PlanID: planA.ID, Status: models.SubscriptionActive, StartedAt: now},
			{UserID: parentID, PlanID: planA.ID, Status: models.SubscriptionTrial, StartedAt: now},
			{UserID: parentID, PlanID: planB.ID, Status: models.SubscriptionActive, StartedAt: now},
		}
		require.NoError(t, db.Create(&subs).Error)
	})
}

func TestSubscriptionStatsByPlan(t *testing.T) {
	seedSubscriptions(t)

	resp := doJSON("GET", "/api/subscription-stats/by-plan", userToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stats struct {
		Plans []models.PlanStats `json:"plans"`
		Total models.PlanStats   `json:"total"`
	}
	require.NoError(t, decodeData(resp, &stats))
	require.Len(t, stats.Plans, 2)

	byName := make(map[string]models.PlanStats, len(stats.Plans))
	for _, plan := range stats.Plans {
		byName[plan.PlanName] = plan
	}

	basic := byName["basic"]
	assert.Equal(t, int64(3), basic.Total)
	assert.Equal(t, int64(2), basic.Active)
	assert.Equal(t, int64(1), basic.Trial)
	assert.Equal(t, 30.0, basic.TotalRevenue)

	family := byName["family"]
	assert.Equal(t, int64(1), family.Total)
	assert.Equal(t, int64(1), family.Active)
	assert.Equal(t, 20.0, family.TotalRevenue)

	assert.Equal(t, int64(4), stats.Total.Total)
	assert.Equal(t, 50.0, stats.Total.TotalRevenue)
}

func TestDashboardMetricsRequiresAdmin(t *testing.T) {
	resp := doJSON("GET", "/api/subscription-stats/dashboard-metrics", userToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDashboardMetricsComputed(t *testing.T) {
	seedSubscriptions(t)

	resp := doJSON("GET", "/api/subscription-stats/dashboard-metrics", adminToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var metrics models.DashboardMetrics
	require.NoError(t, decodeData(resp, &metrics))

	assert.GreaterOrEqual(t, metrics.TotalUsers, int64(2))
	assert.Equal(t, int64(4), metrics.TotalSubscriptions)
	assert.Equal(t, int64(3), metrics.ActiveSubscriptions)
	assert.Equal(t, int64(1), metrics.TrialSubscriptions)
	assert.Equal(t, 50.0, metrics.MonthlyRevenue)
	assert.Equal(t, 0.0, metrics.ChurnRate)
	assert.Equal(t, 75.0, metrics.ConversionRate)
}
