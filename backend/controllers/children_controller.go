package controllers

import (
	"time"

	"educare/backend/config"
	"educare/backend/models"
	"educare/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChildrenController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewChildrenController(db *gorm.DB, cfg *config.Config) *ChildrenController {
	return &ChildrenController{DB: db, Cfg: cfg}
}

func (cc *ChildrenController) CreateChild(c *fiber.Ctx) error {
	userID, err := requirePathUser(c, cc.DB, cc.Cfg)
	if err != nil {
		return respondFiberError(c, err)
	}

	var input struct {
		Name      string `json:"name"`
		BirthDate string `json:"birthDate"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name == "" {
		return utils.BadRequest(c, "Name is required")
	}

	child := models.Child{
		UserID:    userID,
		Name:      input.Name,
		ShareCode: uuid.NewString(),
	}

	if input.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", input.BirthDate)
		if err != nil {
			return utils.BadRequest(c, "Invalid birthDate format. Use YYYY-MM-DD")
		}
		child.BirthDate = birthDate
	}

	if err := cc.DB.Create(&child).Error; err != nil {
		return utils.InternalServerError(c, "Could not create child")
	}

	return utils.Created(c, child)
}

func (cc *ChildrenController) ListChildren(c *fiber.Ctx) error {
	userID, err := requirePathUser(c, cc.DB, cc.Cfg)
	if err != nil {
		return respondFiberError(c, err)
	}

	var children []models.Child
	if err := cc.DB.Where("user_id = ?", userID).Order("id ASC").Find(&children).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, children)
}

// childOwnedBy loads a child and checks ownership. Returns
// gorm.ErrRecordNotFound for both a missing child and a foreign one, so
// callers cannot probe other users' children.
func childOwnedBy(db *gorm.DB, childID, userID uint) (*models.Child, error) {
	var child models.Child
	if err := db.First(&child, childID).Error; err != nil {
		return nil, err
	}
	if child.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return &child, nil
}
