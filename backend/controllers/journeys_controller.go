package controllers

import (
	"errors"
	"strconv"

	"educare/backend/config"
	"educare/backend/models"
	"educare/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JourneysController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewJourneysController(db *gorm.DB, cfg *config.Config) *JourneysController {
	return &JourneysController{DB: db, Cfg: cfg}
}

// bySortKey is the canonical content ordering, with id as the tie-break.
func bySortKey(db *gorm.DB) *gorm.DB {
	return db.Order("sort_key ASC, id ASC")
}

func (jc *JourneysController) ListJourneys(c *fiber.Ctx) error {
	query := jc.DB.Model(&models.Journey{})

	if trail := c.Query("trail"); trail != "" {
		query = query.Where("trail = ?", trail)
	}
	if month := c.Query("month"); month != "" {
		m, err := strconv.Atoi(month)
		if err != nil {
			return utils.BadRequest(c, "Invalid month")
		}
		query = query.Where("month = ?", m)
	}

	var journeys []models.Journey
	if err := query.Order("id ASC").Find(&journeys).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(journeys))
	for _, journey := range journeys {
		var weekCount int64
		jc.DB.Model(&models.Week{}).Where("journey_id = ?", journey.ID).Count(&weekCount)

		result = append(result, fiber.Map{
			"id":          journey.ID,
			"trail":       journey.Trail,
			"title":       journey.Title,
			"description": journey.Description,
			"icon":        journey.Icon,
			"month":       journey.Month,
			"weeks":       weekCount,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

func (jc *JourneysController) GetJourney(c *fiber.Ctx) error {
	journeyID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid journey ID")
	}

	var journey models.Journey
	if err := jc.DB.Preload("Weeks", bySortKey).First(&journey, journeyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Journey not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, journey)
}

func (jc *JourneysController) GetJourneyWeeks(c *fiber.Ctx) error {
	journeyID, err := strconv.Atoi(c.Params("journeyId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid journey ID")
	}

	var journey models.Journey
	if err := jc.DB.First(&journey, journeyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Journey not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var weeks []models.Week
	if err := jc.DB.Where("journey_id = ?", journeyID).
		Order("sort_key ASC, id ASC").
		Find(&weeks).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, weeks)
}

func (jc *JourneysController) GetWeek(c *fiber.Ctx) error {
	weekID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid week ID")
	}

	var week models.Week
	if err := jc.DB.
		Preload("Topics", bySortKey).
		Preload("Quizzes", bySortKey).
		Preload("Badges").
		First(&week, weekID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Week not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, week)
}

func (jc *JourneysController) GetWeekTopics(c *fiber.Ctx) error {
	weekID, err := strconv.Atoi(c.Params("weekId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid week ID")
	}

	var topics []models.Topic
	if err := jc.DB.Where("week_id = ?", weekID).
		Order("sort_key ASC, id ASC").
		Find(&topics).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, topics)
}

func (jc *JourneysController) GetWeekQuizzes(c *fiber.Ctx) error {
	weekID, err := strconv.Atoi(c.Params("weekId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid week ID")
	}

	query := jc.DB.Where("week_id = ?", weekID)
	if domain := c.Query("domain"); domain != "" {
		if !models.Domain(domain).Valid() {
			return utils.BadRequest(c, "Unknown domain")
		}
		query = query.Where("domain = ?", domain)
	}

	var quizzes []models.Quiz
	if err := query.Order("sort_key ASC, id ASC").Find(&quizzes).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, quizzes)
}

func (jc *JourneysController) CreateJourney(c *fiber.Ctx) error {
	var input struct {
		Trail       string `json:"trail"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
		Month       int    `json:"month"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title == "" {
		return utils.BadRequest(c, "Title is required")
	}

	journey := models.Journey{
		Trail:       input.Trail,
		Title:       input.Title,
		Description: input.Description,
		Icon:        input.Icon,
		Month:       input.Month,
	}

	if err := jc.DB.Create(&journey).Error; err != nil {
		return utils.InternalServerError(c, "Could not create journey")
	}

	return utils.Created(c, journey)
}

func (jc *JourneysController) AddWeek(c *fiber.Ctx) error {
	journeyID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid journey ID")
	}

	var input struct {
		SortKey     *int   `json:"sortKey"`
		Title       string `json:"title"`
		Description string `json:"description"`
		IsSummary   bool   `json:"isSummary"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var journey models.Journey
	if err := jc.DB.First(&journey, journeyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Journey not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	sortKey := 0
	if input.SortKey != nil {
		sortKey = *input.SortKey
	} else {
		// Append after the current last week.
		var weekCount int64
		jc.DB.Model(&models.Week{}).Where("journey_id = ?", journeyID).Count(&weekCount)
		sortKey = int(weekCount) + 1
	}

	week := models.Week{
		JourneyID:   uint(journeyID),
		SortKey:     sortKey,
		Title:       input.Title,
		Description: input.Description,
		IsSummary:   input.IsSummary,
	}

	if err := jc.DB.Create(&week).Error; err != nil {
		return utils.InternalServerError(c, "Could not create week")
	}

	return utils.Created(c, week)
}

func (jc *JourneysController) AddTopic(c *fiber.Ctx) error {
	weekID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid week ID")
	}

	var input struct {
		SortKey *int   `json:"sortKey"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var week models.Week
	if err := jc.DB.First(&week, weekID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Week not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	sortKey := 0
	if input.SortKey != nil {
		sortKey = *input.SortKey
	} else {
		var topicCount int64
		jc.DB.Model(&models.Topic{}).Where("week_id = ?", weekID).Count(&topicCount)
		sortKey = int(topicCount) + 1
	}

	topic := models.Topic{
		WeekID:  uint(weekID),
		SortKey: sortKey,
		Title:   input.Title,
		Content: input.Content,
	}

	if err := jc.DB.Create(&topic).Error; err != nil {
		return utils.InternalServerError(c, "Could not create topic")
	}

	return utils.Created(c, topic)
}

func (jc *JourneysController) AddQuiz(c *fiber.Ctx) error {
	weekID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid week ID")
	}

	var input struct {
		SortKey   *int           `json:"sortKey"`
		Domain    string         `json:"domain"`
		Title     string         `json:"title"`
		Question  string         `json:"question"`
		Options   datatypes.JSON `json:"options"`
		Feedback  string         `json:"feedback"`
		Knowledge string         `json:"knowledge"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if !models.Domain(input.Domain).Valid() {
		return utils.BadRequest(c, "Unknown domain")
	}

	var week models.Week
	if err := jc.DB.First(&week, weekID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Week not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	sortKey := 0
	if input.SortKey != nil {
		sortKey = *input.SortKey
	} else {
		var quizCount int64
		jc.DB.Model(&models.Quiz{}).Where("week_id = ?", weekID).Count(&quizCount)
		sortKey = int(quizCount) + 1
	}

	quiz := models.Quiz{
		WeekID:    uint(weekID),
		SortKey:   sortKey,
		Domain:    models.Domain(input.Domain),
		Title:     input.Title,
		Question:  input.Question,
		Options:   input.Options,
		Feedback:  input.Feedback,
		Knowledge: input.Knowledge,
	}

	if err := jc.DB.Create(&quiz).Error; err != nil {
		return utils.InternalServerError(c, "Could not create quiz")
	}

	return utils.Created(c, quiz)
}

func (jc *JourneysController) AddBadge(c *fiber.Ctx) error {
	weekID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid week ID")
	}

	var input struct {
		Name        string `json:"name"`
		Icon        string `json:"icon"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Name == "" {
		return utils.BadRequest(c, "Name is required")
	}

	var week models.Week
	if err := jc.DB.First(&week, weekID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Week not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	wid := uint(weekID)
	badge := models.Badge{
		WeekID:      &wid,
		Name:        input.Name,
		Icon:        input.Icon,
		Description: input.Description,
		Type:        input.Type,
	}

	if err := jc.DB.Create(&badge).Error; err != nil {
		return utils.InternalServerError(c, "Could not create badge")
	}

	return utils.Created(c, badge)
}
