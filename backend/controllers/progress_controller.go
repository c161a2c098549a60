package controllers

import (
	"errors"
	"math"
	"strconv"
	"time"

	"educare/backend/config"
	"educare/backend/models"
	"educare/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// progressRow is a progress record joined with week summary fields.
type progressRow struct {
	models.UserJourneyProgress
	WeekTitle   string `json:"week_title"`
	WeekSortKey int    `json:"week_sort_key"`
}

func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	userID, err := requirePathUser(c, pc.DB, pc.Cfg)
	if err != nil {
		return respondFiberError(c, err)
	}

	journeyID, err := strconv.Atoi(c.Params("journeyId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid journey ID")
	}

	query := pc.DB.Model(&models.UserJourneyProgress{}).
		Select("user_journey_progresses.*, weeks.title AS week_title, weeks.sort_key AS week_sort_key").
		Joins("JOIN weeks ON weeks.id = user_journey_progresses.week_id").
		Where("user_journey_progresses.user_id = ? AND user_journey_progresses.journey_id = ?", userID, journeyID)

	if childID := c.Query("childId"); childID != "" {
		cid, err := strconv.Atoi(childID)
		if err != nil {
			return utils.BadRequest(c, "Invalid child ID")
		}
		query = query.Where("user_journey_progresses.child_id = ?", cid)
	}

	rows := make([]progressRow, 0)
	if err := query.Order("weeks.sort_key ASC, weeks.id ASC").Scan(&rows).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, rows)
}

func (pc *ProgressController) UpdateProgress(c *fiber.Ctx) error {
	userID, err := requirePathUser(c, pc.DB, pc.Cfg)
	if err != nil {
		return respondFiberError(c, err)
	}

	weekID, err := strconv.Atoi(c.Params("weekId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid week ID")
	}

	// Nil slices and pointers mean "field absent": absent fields are
	// preserved on merge, never cleared.
	var input struct {
		ChildID          uint     `json:"childId"`
		CompletedTopics  []uint   `json:"completedTopics"`
		CompletedQuizzes []uint   `json:"completedQuizzes"`
		Progress         *float64 `json:"progress"`
		Completed        *bool    `json:"completed"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.ChildID == 0 {
		return utils.BadRequest(c, "childId is required")
	}

	var week models.Week
	if err := pc.DB.First(&week, weekID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Week not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if _, err := childOwnedBy(pc.DB, input.ChildID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Child not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.CompletedTopics != nil {
		input.CompletedTopics = dedupe(input.CompletedTopics)
		if err := pc.idsBelongToWeek(&models.Topic{}, input.CompletedTopics, week.ID); err != nil {
			return utils.BadRequest(c, "completedTopics contains ids outside this week")
		}
	}
	if input.CompletedQuizzes != nil {
		input.CompletedQuizzes = dedupe(input.CompletedQuizzes)
		if err := pc.idsBelongToWeek(&models.Quiz{}, input.CompletedQuizzes, week.ID); err != nil {
			return utils.BadRequest(c, "completedQuizzes contains ids outside this week")
		}
	}

	if input.Progress != nil && (*input.Progress < 0 || *input.Progress > 100) {
		return utils.BadRequest(c, "progress must be between 0 and 100")
	}

	now := time.Now()
	assignments := map[string]interface{}{"updated_at": now}

	if input.CompletedTopics != nil {
		assignments["completed_topics"] = datatypes.NewJSONSlice(input.CompletedTopics)
	}
	if input.CompletedQuizzes != nil {
		assignments["completed_quizzes"] = datatypes.NewJSONSlice(input.CompletedQuizzes)
	}
	switch {
	case input.Progress != nil:
		assignments["progress"] = *input.Progress
	case input.CompletedTopics != nil && input.CompletedQuizzes != nil:
		// Both sets given without an explicit percentage: derive it from
		// the week's total item count.
		assignments["progress"] = pc.derivedProgress(week.ID,
			len(input.CompletedTopics)+len(input.CompletedQuizzes))
	}
	if input.Completed != nil && *input.Completed {
		// One-way transition: an earlier completion timestamp wins.
		assignments["completed_at"] = gorm.Expr("COALESCE(user_journey_progresses.completed_at, ?)", now)
	}

	row := models.UserJourneyProgress{
		UserID:           userID,
		ChildID:          input.ChildID,
		WeekID:           week.ID,
		JourneyID:        week.JourneyID,
		CompletedTopics:  datatypes.NewJSONSlice(orEmpty(input.CompletedTopics)),
		CompletedQuizzes: datatypes.NewJSONSlice(orEmpty(input.CompletedQuizzes)),
	}
	if input.Progress != nil {
		row.Progress = *input.Progress
	} else if input.CompletedTopics != nil && input.CompletedQuizzes != nil {
		row.Progress = pc.derivedProgress(week.ID,
			len(input.CompletedTopics)+len(input.CompletedQuizzes))
	}
	if input.Completed != nil && *input.Completed {
		row.CompletedAt = &now
	}

	// Atomic upsert keyed on (user, child, week). Only the fields present
	// in the request are assigned on conflict, so two devices writing
	// different fields cannot clobber each other.
	if err := pc.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "child_id"}, {Name: "week_id"},
		},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&row).Error; err != nil {
		return utils.InternalServerError(c, "Could not save progress")
	}

	var saved models.UserJourneyProgress
	if err := pc.DB.Where("user_id = ? AND child_id = ? AND week_id = ?",
		userID, input.ChildID, week.ID).First(&saved).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, saved)
}

// idsBelongToWeek verifies every id references a row of the given model
// inside the week.
func (pc *ProgressController) idsBelongToWeek(model interface{}, ids []uint, weekID uint) error {
	if len(ids) == 0 {
		return nil
	}
	var count int64
	if err := pc.DB.Model(model).
		Where("week_id = ? AND id IN ?", weekID, ids).
		Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (pc *ProgressController) derivedProgress(weekID uint, completed int) float64 {
	var topicCount, quizCount int64
	pc.DB.Model(&models.Topic{}).Where("week_id = ?", weekID).Count(&topicCount)
	pc.DB.Model(&models.Quiz{}).Where("week_id = ?", weekID).Count(&quizCount)

	total := topicCount + quizCount
	if total == 0 {
		return 0
	}
	pct := float64(completed) / float64(total) * 100
	return math.Min(math.Round(pct*100)/100, 100)
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func orEmpty(ids []uint) []uint {
	if ids == nil {
		return []uint{}
	}
	return ids
}
