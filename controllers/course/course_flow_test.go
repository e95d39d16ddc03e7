package courseController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lms/config"
	"lms/coursetree"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseRoutes "lms/routers/courseRoutes"
	"lms/session"
)

type testEnv struct {
	app        *fiber.App
	adminToken string
	userToken  string
	user       *models.User
}

func setupEnv(t *testing.T) *testEnv {
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
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &models.User{Email: "admin@drivewise.example", Password: string(hashed), Role: "ADMIN"}
	admin.EmptyListFields()
	require.NoError(t, db.Create(admin).Error)

	user := &models.User{Email: "learner@drivewise.example", Password: string(hashed), Role: "USER"}
	user.EmptyListFields()
	require.NoError(t, db.Create(user).Error)

	adminToken, err := middleware.GenerateJWT(admin.ID, admin.Role, admin.Email)
	require.NoError(t, err)
	userToken, err := middleware.GenerateJWT(user.ID, user.Role, user.Email)
	require.NoError(t, err)

	return &testEnv{app: app, adminToken: adminToken, userToken: userToken, user: user}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	out := map[string]interface{}{}
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func data(body map[string]interface{}) map[string]interface{} {
	d, _ := body["data"].(map[string]interface{})
	return d
}

// createCourseWithQuiz drives the whole admin flow: create a course,
// open an edit session, build two lessons and a two question quiz, and
// save.
func (e *testEnv) createCourseWithQuiz(t *testing.T) uint {
	t.Helper()

	resp, body := e.request(t, "POST", "/admin/course/", e.adminToken, fiber.Map{
		"title":       "City driving",
		"description": "Dense traffic, trams and one way streets",
		"content":     "Course introduction",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	courseID := uint(data(body)["ID"].(float64))

	resp, body = e.request(t, "POST", fmt.Sprintf("/admin/course/%d/edit", courseID), e.adminToken, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	sessionID := data(body)["sessionId"].(string)

	apply := func(op fiber.Map) {
		resp, _ := e.request(t, "POST", "/admin/course/edit/"+sessionID+"/op", e.adminToken, op)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	apply(fiber.Map{"type": "add_module"})
	apply(fiber.Map{"type": "edit_module_title", "value": "Trams"})
	apply(fiber.Map{"type": "add_lesson"})
	apply(fiber.Map{"type": "add_lesson"})
	apply(fiber.Map{"type": "edit_lesson_field", "lesson_index": 0, "field": "title", "value": "Tram priority"})

	for q := 0; q < 2; q++ {
		apply(fiber.Map{"type": "add_question"})
		apply(fiber.Map{"type": "edit_question_text", "question_index": q, "value": fmt.Sprintf("Question %d", q)})
		apply(fiber.Map{"type": "add_option", "question_index": q})
		apply(fiber.Map{"type": "add_option", "question_index": q})
		apply(fiber.Map{"type": "select_correct_answer", "question_index": q, "option_index": 1})
	}

	resp, _ = e.request(t, "POST", "/admin/course/edit/"+sessionID+"/save", e.adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	return courseID
}

func (e *testEnv) assignCourse(t *testing.T, courseID uint) {
	t.Helper()
	require.NoError(t, e.user.SetAssignedCourseIDs([]uint{courseID}))
	require.NoError(t, database.Database.Db.
		Model(e.user).
		Update("assigned_courses", e.user.AssignedCourses).Error)
}

func TestAdminEditFlowPersistsTree(t *testing.T) {
	env := setupEnv(t)
	courseID := env.createCourseWithQuiz(t)

	resp, body := env.request(t, "GET", fmt.Sprintf("/admin/course/%d", courseID), env.adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := json.Marshal(data(body)["modules"])
	require.NoError(t, err)
	var mods []coursetree.Module
	require.NoError(t, json.Unmarshal(raw, &mods))

	require.Len(t, mods, 1)
	assert.Equal(t, "Trams", mods[0].Title)
	assert.Len(t, mods[0].Lessons, 2)
	assert.Equal(t, "Tram priority", mods[0].Lessons[0].Title)
	require.NotNil(t, mods[0].Test)
	require.Len(t, mods[0].Test.Questions, 2)
	require.NotNil(t, mods[0].Test.Questions[0].CorrectAnswer)
	assert.Equal(t, 1, *mods[0].Test.Questions[0].CorrectAnswer)
}

func TestDestructiveOpNeedsConfirm(t *testing.T) {
	env := setupEnv(t)
	courseID := env.createCourseWithQuiz(t)

	resp, body := env.request(t, "POST", fmt.Sprintf("/admin/course/%d/edit", courseID), env.adminToken, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	sessionID := data(body)["sessionId"].(string)

	resp, _ = env.request(t, "POST", "/admin/course/edit/"+sessionID+"/op", env.adminToken,
		fiber.Map{"type": "delete_module"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = env.request(t, "POST", "/admin/course/edit/"+sessionID+"/op", env.adminToken,
		fiber.Map{"type": "delete_module", "confirm": true})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLearnerNeedsAssignment(t *testing.T) {
	env := setupEnv(t)
	courseID := env.createCourseWithQuiz(t)

	resp, _ := env.request(t, "POST", fmt.Sprintf("/course/%d/open", courseID), env.userToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	env.assignCourse(t, courseID)
	resp, _ = env.request(t, "POST", fmt.Sprintf("/course/%d/open", courseID), env.userToken, nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestLearnerNavigation(t *testing.T) {
	env := setupEnv(t)
	courseID := env.createCourseWithQuiz(t)
	env.assignCourse(t, courseID)

	resp, body := env.request(t, "POST", fmt.Sprintf("/course/%d/open", courseID), env.userToken, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	sessionID := data(body)["sessionId"].(string)

	pos := func(body map[string]interface{}) (int, int) {
		p := data(body)["position"].(map[string]interface{})
		return int(p["module_index"].(float64)), int(p["lesson_index"].(float64))
	}

	m, l := pos(body)
	assert.Equal(t, 0, m)
	assert.Equal(t, 0, l)

	resp, body = env.request(t, "POST", "/course/session/"+sessionID+"/next", env.userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	m, l = pos(body)
	assert.Equal(t, 0, m)
	assert.Equal(t, 1, l)

	// Already at the last lesson, Next stays put.
	resp, body = env.request(t, "POST", "/course/session/"+sessionID+"/next", env.userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	_, l = pos(body)
	assert.Equal(t, 1, l)

	resp, body = env.request(t, "POST", "/course/session/"+sessionID+"/prev", env.userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	_, l = pos(body)
	assert.Equal(t, 0, l)

	resp, body = env.request(t, "GET", "/course/session/"+sessionID+"/lesson", env.userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	lesson := data(body)["lesson"].(map[string]interface{})
	assert.Equal(t, "Tram priority", lesson["title"])
}

func TestQuizCompletionRecordedOnce(t *testing.T) {
	env := setupEnv(t)
	courseID := env.createCourseWithQuiz(t)
	env.assignCourse(t, courseID)

	resp, body := env.request(t, "POST", fmt.Sprintf("/course/%d/open", courseID), env.userToken, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	sessionID := data(body)["sessionId"].(string)

	answerAll := func() {
		for q := 0; q < 2; q++ {
			resp, _ := env.request(t, "POST", "/course/session/"+sessionID+"/quiz/answer", env.userToken,
				fiber.Map{"questionIndex": q, "optionIndex": 1})
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
		}
	}

	answerAll()
	resp, body = env.request(t, "POST", "/course/session/"+sessionID+"/quiz/submit", env.userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := data(body)
	assert.Equal(t, float64(2), result["score"])
	assert.Equal(t, true, result["passed"])
	assert.Equal(t, true, result["completedNow"])

	// A second perfect run grades again but must not add a second
	// completion record.
	answerAll()
	resp, body = env.request(t, "POST", "/course/session/"+sessionID+"/quiz/submit", env.userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result = data(body)
	assert.Equal(t, true, result["passed"])
	assert.Equal(t, false, result["completedNow"])

	var user models.User
	require.NoError(t, database.Database.Db.First(&user, env.user.ID).Error)
	assert.Len(t, user.CompletionRecords(), 1)
}

func TestPartialScoreDoesNotComplete(t *testing.T) {
	env := setupEnv(t)
	courseID := env.createCourseWithQuiz(t)
	env.assignCourse(t, courseID)

	resp, body := env.request(t, "POST", fmt.Sprintf("/course/%d/open", courseID), env.userToken, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	sessionID := data(body)["sessionId"].(string)

	resp, _ = env.request(t, "POST", "/course/session/"+sessionID+"/quiz/answer", env.userToken,
		fiber.Map{"questionIndex": 0, "optionIndex": 1})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = env.request(t, "POST", "/course/session/"+sessionID+"/quiz/answer", env.userToken,
		fiber.Map{"questionIndex": 1, "optionIndex": 0})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = env.request(t, "POST", "/course/session/"+sessionID+"/quiz/submit", env.userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := data(body)
	assert.Equal(t, float64(1), result["score"])
	assert.Equal(t, false, result["passed"])

	var user models.User
	require.NoError(t, database.Database.Db.First(&user, env.user.ID).Error)
	assert.Empty(t, user.CompletionRecords())
}

func TestSubmitQuizReturnsScoreWhenRecordingFails(t *testing.T) {
	env := setupEnv(t)
	courseID := env.createCourseWithQuiz(t)
	env.assignCourse(t, courseID)

	resp, body := env.request(t, "POST", fmt.Sprintf("/course/%d/open", courseID), env.userToken, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	sessionID := data(body)["sessionId"].(string)

	for q := 0; q < 2; q++ {
		resp, _ = env.request(t, "POST", "/course/session/"+sessionID+"/quiz/answer", env.userToken,
			fiber.Map{"questionIndex": q, "optionIndex": 1})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	// Make only the completion write fail, reads stay healthy.
	require.NoError(t, database.Database.Db.Exec(
		`CREATE TRIGGER completion_writes_disabled
		 BEFORE UPDATE OF completed_courses ON users
		 BEGIN SELECT RAISE(ABORT, 'completion writes disabled'); END`).Error)

	resp, body = env.request(t, "POST", "/course/session/"+sessionID+"/quiz/submit", env.userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := data(body)
	assert.Equal(t, float64(2), result["score"])
	assert.Equal(t, float64(2), result["total"])
	assert.Equal(t, true, result["passed"])
	assert.Equal(t, false, result["completedNow"])
	assert.Equal(t, false, result["completionRecorded"])

	var user models.User
	require.NoError(t, database.Database.Db.First(&user, env.user.ID).Error)
	assert.Empty(t, user.CompletionRecords(), "a failed write must not record completion")

	// Answers were kept, so resubmitting after the store recovers
	// records the completion without re-answering.
	require.NoError(t, database.Database.Db.Exec("DROP TRIGGER completion_writes_disabled").Error)

	resp, body = env.request(t, "POST", "/course/session/"+sessionID+"/quiz/submit", env.userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result = data(body)
	assert.Equal(t, float64(2), result["score"])
	assert.Equal(t, true, result["completedNow"])

	require.NoError(t, database.Database.Db.First(&user, env.user.ID).Error)
	assert.Len(t, user.CompletionRecords(), 1)
}

func TestSaveConflictReturnsConflictAndKeepsCopy(t *testing.T) {
	env := setupEnv(t)
	courseID := env.createCourseWithQuiz(t)

	resp, body := env.request(t, "POST", fmt.Sprintf("/admin/course/%d/edit", courseID), env.adminToken, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	sessionID := data(body)["sessionId"].(string)

	resp, _ = env.request(t, "POST", "/admin/course/edit/"+sessionID+"/op", env.adminToken,
		fiber.Map{"type": "add_module"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	s, err := session.Sessions.Edit(sessionID)
	require.NoError(t, err)
	require.NoError(t, s.BeginSave())

	resp, _ = env.request(t, "POST", "/admin/course/edit/"+sessionID+"/save", env.adminToken, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// The rejected save leaves the working copy intact.
	resp, body = env.request(t, "GET", "/admin/course/edit/"+sessionID, env.adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, data(body)["modules"].([]interface{}), 2)

	s.EndSave()
	resp, _ = env.request(t, "POST", "/admin/course/edit/"+sessionID+"/save", env.adminToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCertificateRequiresCompletion(t *testing.T) {
	env := setupEnv(t)
	courseID := env.createCourseWithQuiz(t)
	env.assignCourse(t, courseID)

	resp, _ := env.request(t, "GET", fmt.Sprintf("/course/%d/certificate", courseID), env.userToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Complete the course and try again.
	resp, body := env.request(t, "POST", fmt.Sprintf("/course/%d/open", courseID), env.userToken, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	sessionID := data(body)["sessionId"].(string)
	for q := 0; q < 2; q++ {
		resp, _ = env.request(t, "POST", "/course/session/"+sessionID+"/quiz/answer", env.userToken,
			fiber.Map{"questionIndex": q, "optionIndex": 1})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp, _ = env.request(t, "POST", "/course/session/"+sessionID+"/quiz/submit", env.userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.request(t, "GET", fmt.Sprintf("/course/%d/certificate", courseID), env.userToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestInactiveCourseHiddenFromLearner(t *testing.T) {
	env := setupEnv(t)
	courseID := env.createCourseWithQuiz(t)
	env.assignCourse(t, courseID)

	resp, _ := env.request(t, "PATCH", fmt.Sprintf("/admin/course/%d/toggle", courseID), env.adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.request(t, "POST", fmt.Sprintf("/course/%d/open", courseID), env.userToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminEndpointsRejectLearner(t *testing.T) {
	env := setupEnv(t)

	resp, _ := env.request(t, "POST", "/admin/course/", env.userToken, fiber.Map{
		"title":       "t",
		"description": "d",
		"content":     "c",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
