package tests

import (
	"encoding/json"
	"fmt"
	"testing"

	"educare/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	resp := doJSON("POST", "/api/auth/register", "", map[string]string{
		"username": "newparent",
		"email":    "newparent@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.NotEmpty(t, result["token"])
	assert.NotEmpty(t, result["user"])
}

func TestLogin(t *testing.T) {
	resp := doJSON("POST", "/api/auth/login", "", map[string]string{
		"username": "parent",
		"password": "password",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.NotEmpty(t, result["token"])
}

func TestLoginWrongPassword(t *testing.T) {
	resp := doJSON("POST", "/api/auth/login", "", map[string]string{
		"username": "parent",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestListChildren(t *testing.T) {
	resp := doJSON("GET", fmt.Sprintf("/api/users/%d/children", parentID), userToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var children []models.Child
	require.NoError(t, decodeData(resp, &children))
	require.NotEmpty(t, children)
	assert.Equal(t, parentID, children[0].UserID)
	assert.NotEmpty(t, children[0].ShareCode)
}

func TestChildrenRequireToken(t *testing.T) {
	resp := doJSON("GET", fmt.Sprintf("/api/users/%d/children", parentID), "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
