package routes

import (
	"educare/backend/config"
	"educare/backend/controllers"
	"educare/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// Journey content (read-only, public)
	journeysController := controllers.NewJourneysController(db, cfg)
	app.Get("/api/journeys", journeysController.ListJourneys)
	app.Get("/api/journeys/:journeyId/weeks", journeysController.GetJourneyWeeks)
	app.Get("/api/journeys/:id", journeysController.GetJourney)
	app.Get("/api/weeks/:weekId/topics", journeysController.GetWeekTopics)
	app.Get("/api/weeks/:weekId/quizzes", journeysController.GetWeekQuizzes)
	app.Get("/api/weeks/:id", journeysController.GetWeek)

	// Children
	childrenController := controllers.NewChildrenController(db, cfg)
	app.Post("/api/users/:userId/children", authMiddleware, childrenController.CreateChild)
	app.Get("/api/users/:userId/children", authMiddleware, childrenController.ListChildren)

	// Progress
	progressController := controllers.NewProgressController(db, cfg)
	app.Get("/api/users/:userId/progress/:journeyId", authMiddleware, progressController.GetProgress)
	app.Post("/api/users/:userId/weeks/:weekId/progress", authMiddleware, progressController.UpdateProgress)

	// Badges
	badgesController := controllers.NewBadgesController(db, cfg)
	app.Post("/api/users/:userId/badges", authMiddleware, badgesController.AwardBadge)
	app.Get("/api/users/:userId/badges", authMiddleware, badgesController.ListUserBadges)

	// Subscription stats
	statsController := controllers.NewStatsController(db, cfg)
	app.Get("/api/subscription-stats/by-plan", authMiddleware, statsController.GetSubscriptionStatsByPlan)
	app.Get("/api/subscription-stats/dashboard-metrics", adminMiddleware, statsController.GetDashboardMetrics)

	// Admin routes for journey content
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)
	admin.Post("/journeys", journeysController.CreateJourney)
	admin.Post("/journeys/:id/weeks", journeysController.AddWeek)
	admin.Post("/weeks/:id/topics", journeysController.AddTopic)
	admin.Post("/weeks/:id/quizzes", journeysController.AddQuiz)
	admin.Post("/weeks/:id/badges", journeysController.AddBadge)
}
