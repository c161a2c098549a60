package controllers

import (
	"strconv"

	"educare/backend/config"
	"educare/backend/models"
	"educare/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// requirePathUser resolves the :userId route parameter and verifies the
// token subject matches it. Admins may act on any user.
func requirePathUser(c *fiber.Ctx, db *gorm.DB, cfg *config.Config) (uint, error) {
	pathID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid user ID")
	}

	tokenID, err := utils.ExtractUserIDFromToken(c, cfg)
	if err != nil {
		return 0, err
	}

	if tokenID != uint(pathID) {
		var user models.User
		if err := db.First(&user, tokenID).Error; err != nil || user.Role != "admin" {
			return 0, fiber.NewError(fiber.StatusForbidden, "Cannot act on another user")
		}
	}

	return uint(pathID), nil
}

func respondFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return utils.Error(c, fe.Code, fe.Message)
	}
	return utils.InternalServerError(c, "Internal error")
}
