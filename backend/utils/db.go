package utils

import (
	"fmt"

	"educare/backend/config"
	"educare/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate is separate from InitDB so the test suite can run it against
// its own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Child{},
		&models.LoginHistory{},
		&models.SubscriptionPlan{},
		&models.Subscription{},
		&models.Journey{},
		&models.Week{},
		&models.Topic{},
		&models.Quiz{},
		&models.Badge{},
		&models.UserJourneyProgress{},
		&models.UserBadge{},
	)
}
