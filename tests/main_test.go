package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"educare/backend/config"
	"educare/backend/models"
	"educare/backend/routes"
	"educare/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	app        *fiber.App
	db         *gorm.DB
	cfg        *config.Config
	parentID   uint
	childID    uint
	userToken  string
	adminToken string
)

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	os.Exit(code)
}

func setup() {
	cfg = &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "8080",
	}

	var err error
	db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	if err := utils.Migrate(db); err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg)

	// Parent account
	resp := doJSON("POST", "/api/auth/register", "", map[string]string{
		"username": "parent",
		"email":    "parent@example.com",
		"password": "password",
	})
	var registered struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	json.NewDecoder(resp.Body).Decode(&registered)
	userToken = registered.Token
	parentID = registered.User.ID

	// Admin account: registered normally, promoted directly in the table.
	resp = doJSON("POST", "/api/auth/register", "", map[string]string{
		"username": "admin",
		"email":    "admin@example.com",
		"password": "password",
	})
	var adminRegistered struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	json.NewDecoder(resp.Body).Decode(&adminRegistered)
	adminToken = adminRegistered.Token
	db.Model(&models.User{}).Where("id = ?", adminRegistered.User.ID).Update("role", "admin")

	// Child profile for the parent
	resp = doJSON("POST", fmt.Sprintf("/api/users/%d/children", parentID), userToken, map[string]string{
		"name":      "Alice",
		"birthDate": "2023-04-01",
	})
	var created struct {
		Data models.Child `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	childID = created.Data.ID
}

// doJSON fires a request at the test app and returns the response.
func doJSON(method, path, token string, body interface{}) *http.Response {
	var req *http.Request
	if body != nil {
		jsonData, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err)
	}
	return resp
}

// decodeData unmarshals the `data` field of the standard envelope.
func decodeData(resp *http.Response, out interface{}) error {
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}
	return json.Unmarshal(envelope.Data, out)
}
