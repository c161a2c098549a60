package tests

import (
	"fmt"
	"testing"

	"educare/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJourneyRequiresAdmin(t *testing.T) {
	resp := doJSON("POST", "/api/admin/journeys", userToken, map[string]interface{}{
		"title": "Not allowed",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestJourneyWeeksOrderedBySortKey(t *testing.T) {
	resp := doJSON("POST", "/api/admin/journeys", adminToken, map[string]interface{}{
		"trail": "crawlers",
		"title": "Crawling basics",
		"month": 8,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var journey models.Journey
	require.NoError(t, decodeData(resp, &journey))

	// Inserted out of order on purpose.
	for _, sortKey := range []int{2, 1, 3} {
		resp = doJSON("POST", fmt.Sprintf("/api/admin/journeys/%d/weeks", journey.ID), adminToken, map[string]interface{}{
			"sortKey": sortKey,
			"title":   fmt.Sprintf("Week %d", sortKey),
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp = doJSON("GET", fmt.Sprintf("/api/journeys/%d/weeks", journey.ID), "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var weeks []models.Week
	require.NoError(t, decodeData(resp, &weeks))
	require.Len(t, weeks, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{weeks[0].SortKey, weeks[1].SortKey, weeks[2].SortKey})
}

func TestGetJourneyNotFound(t *testing.T) {
	resp := doJSON("GET", "/api/journeys/999999", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetWeekWithNestedContent(t *testing.T) {
	resp := doJSON("POST", "/api/admin/journeys", adminToken, map[string]interface{}{
		"title": "Nested content",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var journey models.Journey
	require.NoError(t, decodeData(resp, &journey))

	resp = doJSON("POST", fmt.Sprintf("/api/admin/journeys/%d/weeks", journey.ID), adminToken, map[string]interface{}{
		"title": "Week one",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var week models.Week
	require.NoError(t, decodeData(resp, &week))

	resp = doJSON("POST", fmt.Sprintf("/api/admin/weeks/%d/topics", week.ID), adminToken, map[string]interface{}{
		"title":   "Grasping",
		"content": "Offer a rattle within reach.",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON("POST", fmt.Sprintf("/api/admin/weeks/%d/quizzes", week.ID), adminToken, map[string]interface{}{
		"domain":   "motor",
		"title":    "Grip check",
		"question": "Does your child hold small objects?",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON("POST", fmt.Sprintf("/api/admin/weeks/%d/badges", week.ID), adminToken, map[string]interface{}{
		"name": "Little grabber",
		"type": "weekly",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON("GET", fmt.Sprintf("/api/weeks/%d", week.ID), "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var full models.Week
	require.NoError(t, decodeData(resp, &full))
	assert.Len(t, full.Topics, 1)
	assert.Len(t, full.Quizzes, 1)
	assert.Len(t, full.Badges, 1)
	assert.Equal(t, models.DomainMotor, full.Quizzes[0].Domain)
}

func TestAddQuizRejectsUnknownDomain(t *testing.T) {
	resp := doJSON("POST", "/api/admin/journeys", adminToken, map[string]interface{}{
		"title": "Domain validation",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var journey models.Journey
	require.NoError(t, decodeData(resp, &journey))

	resp = doJSON("POST", fmt.Sprintf("/api/admin/journeys/%d/weeks", journey.ID), adminToken, map[string]interface{}{
		"title": "Week one",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var week models.Week
	require.NoError(t, decodeData(resp, &week))

	resp = doJSON("POST", fmt.Sprintf("/api/admin/weeks/%d/quizzes", week.ID), adminToken, map[string]interface{}{
		"domain": "astrology",
		"title":  "Bad domain",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListJourneysFilteredByTrail(t *testing.T) {
	resp := doJSON("POST", "/api/admin/journeys", adminToken, map[string]interface{}{
		"trail": "talkers",
		"title": "First words",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON("GET", "/api/journeys?trail=talkers", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var journeys []map[string]interface{}
	require.NoError(t, decodeData(resp, &journeys))
	require.NotEmpty(t, journeys)
	for _, journey := range journeys {
		assert.Equal(t, "talkers", journey["trail"])
	}
}
