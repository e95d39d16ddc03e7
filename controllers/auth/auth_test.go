package authController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lms/config"
	"lms/database"
	"lms/models"
	authRoutes "lms/routers/authRoutes"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func createUser(t *testing.T, email, password string, mutate func(*models.User)) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Email: email, Password: string(hashed), Role: "USER"}
	user.EmptyListFields()
	if mutate != nil {
		mutate(user)
	}
	require.NoError(t, database.Database.Db.Create(user).Error)
	return user
}

func TestSignupAndDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	resp, body := postJSON(t, app, "/auth/signup", fiber.Map{
		"email":    "new@drivewise.example",
		"password": "secret-pass",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["status"])

	resp, _ = postJSON(t, app, "/auth/signup", fiber.Map{
		"email":    "new@drivewise.example",
		"password": "secret-pass",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSignupSeedsEmptyListFields(t *testing.T) {
	app := setupApp(t)

	resp, _ := postJSON(t, app, "/auth/signup", fiber.Map{
		"email":    "fresh@drivewise.example",
		"password": "secret-pass",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, database.Database.Db.
		Where("email = ?", "fresh@drivewise.example").
		First(&user).Error)

	// The JSON list columns start as empty lists, never null.
	assert.Equal(t, "[]", string(user.AssignedCourses))
	assert.Equal(t, "[]", string(user.CompletedCourses))
	assert.Equal(t, "[]", string(user.Notifications))
	assert.Empty(t, user.AssignedCourseIDs())
	assert.Empty(t, user.CompletionRecords())
	assert.Empty(t, user.NotificationList())
}

func TestSignupValidation(t *testing.T) {
	app := setupApp(t)

	resp, _ := postJSON(t, app, "/auth/signup", fiber.Map{
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app := setupApp(t)
	createUser(t, "user@drivewise.example", "secret-pass", nil)

	resp, body := postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "user@drivewise.example",
		"password": "secret-pass",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	resp, _ = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "user@drivewise.example",
		"password": "wrong-pass",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginBlockedAccount(t *testing.T) {
	app := setupApp(t)
	createUser(t, "blocked@drivewise.example", "secret-pass", func(u *models.User) {
		u.IsBlocked = true
	})

	// Wrong password reads as bad credentials, the block is not leaked.
	resp, _ := postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "blocked@drivewise.example",
		"password": "wrong-pass",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body := postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "blocked@drivewise.example",
		"password": "secret-pass",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body["message"], "blocked")
}

func TestLoginTemporarilyBlockedAccount(t *testing.T) {
	app := setupApp(t)
	until := time.Now().Add(24 * time.Hour)
	createUser(t, "temp@drivewise.example", "secret-pass", func(u *models.User) {
		u.BlockUntil = &until
	})

	resp, body := postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "temp@drivewise.example",
		"password": "secret-pass",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body["message"], "blocked until")
}

func TestLoginAfterTemporaryBlockExpires(t *testing.T) {
	app := setupApp(t)
	until := time.Now().Add(-time.Hour)
	createUser(t, "expired@drivewise.example", "secret-pass", func(u *models.User) {
		u.BlockUntil = &until
	})

	resp, _ := postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "expired@drivewise.example",
		"password": "secret-pass",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
