package controllers

import (
	"errors"
	"strconv"
	"time"

	"educare/backend/config"
	"educare/backend/models"
	"educare/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewBadgesController(db *gorm.DB, cfg *config.Config) *BadgesController {
	return &BadgesController{DB: db, Cfg: cfg}
}

// AwardBadge grants a badge to a (user, child) pair exactly once. A second
// grant for the same triple hits the unique index, the insert becomes a
// no-op and the existing row is returned.
func (bc *BadgesController) AwardBadge(c *fiber.Ctx) error {
	userID, err := requirePathUser(c, bc.DB, bc.Cfg)
	if err != nil {
		return respondFiberError(c, err)
	}

	var input struct {
		ChildID uint `json:"childId"`
		BadgeID uint `json:"badgeId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.ChildID == 0 || input.BadgeID == 0 {
		return utils.BadRequest(c, "childId and badgeId are required")
	}

	var badge models.Badge
	if err := bc.DB.First(&badge, input.BadgeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Badge not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if _, err := childOwnedBy(bc.DB, input.ChildID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Child not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	grant := models.UserBadge{
		UserID:    userID,
		ChildID:   input.ChildID,
		BadgeID:   input.BadgeID,
		AwardedAt: time.Now(),
	}

	if err := bc.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "child_id"}, {Name: "badge_id"},
		},
		DoNothing: true,
	}).Create(&grant).Error; err != nil {
		return utils.InternalServerError(c, "Could not award badge")
	}

	var saved models.UserBadge
	if err := bc.DB.Preload("Badge").
		Where("user_id = ? AND child_id = ? AND badge_id = ?",
			userID, input.ChildID, input.BadgeID).
		First(&saved).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, saved)
}

func (bc *BadgesController) ListUserBadges(c *fiber.Ctx) error {
	userID, err := requirePathUser(c, bc.DB, bc.Cfg)
	if err != nil {
		return respondFiberError(c, err)
	}

	query := bc.DB.Preload("Badge").Where("user_id = ?", userID)

	if childID := c.Query("childId"); childID != "" {
		cid, err := strconv.Atoi(childID)
		if err != nil {
			return utils.BadRequest(c, "Invalid child ID")
		}
		query = query.Where("child_id = ?", cid)
	}

	grants := make([]models.UserBadge, 0)
	if err := query.Order("awarded_at ASC, id ASC").Find(&grants).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, grants)
}
