package courseController

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/coursetree"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/progress"
	"lms/session"
)

// loadAssignedCourse fetches the course and checks the learner may see
// it. A course must be assigned, active and not deleted.
func loadAssignedCourse(db *gorm.DB, userID uint, courseID int) (*courseModels.Course, []coursetree.Module, int, string) {
	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, nil, fiber.StatusNotFound, "User not found!"
	}

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, nil, fiber.StatusNotFound, "Course not found!"
	}

	if !course.IsActive || !user.HasAssignedCourse(course.ID) {
		return nil, nil, fiber.StatusForbidden, "You do not have access to this course!"
	}

	mods, err := course.ModulesTree()
	if err != nil {
		log.Printf("Error decoding modules for course %d: %v", course.ID, err)
		return nil, nil, fiber.StatusInternalServerError, "Failed to open course!"
	}

	return &course, mods, 0, ""
}

// OpenCourse starts a learner session positioned at the first lesson of
// the first module.
func OpenCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	course, mods, status, msg := loadAssignedCourse(db, userID, courseID)
	if status != 0 {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	s := session.Sessions.OpenLearner(userID, course.ID, mods)
	_, quizModule := progress.FindQuiz(mods)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course opened.", fiber.Map{
		"sessionId":  s.ID,
		"course":     course,
		"modules":    mods,
		"position":   s.Position(),
		"quizModule": quizModule,
	})
}

func learnerSessionAndTree(c *fiber.Ctx) (*session.LearnerSession, []coursetree.Module, int, string) {
	userID := c.Locals("userId").(uint)

	s, err := session.Sessions.Learner(c.Params("sessionId"))
	if err != nil || s.UserID != userID {
		return nil, nil, fiber.StatusNotFound, "Course session not found!"
	}

	_, mods, status, msg := loadAssignedCourse(database.Database.Db, userID, int(s.CourseID))
	if status != 0 {
		return nil, nil, status, msg
	}

	return s, mods, 0, ""
}

// SelectModule jumps to a module's first lesson. An out-of-range index
// leaves the position unchanged.
func SelectModule(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSelectModule").(models.SelectModuleRequest)

	s, mods, status, msg := learnerSessionAndTree(c)
	if status != 0 {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	pos := s.Navigate(func(p progress.Position) progress.Position {
		return progress.SelectModule(mods, p, reqData.ModuleIndex)
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Position updated.", fiber.Map{
		"position": pos,
	})
}

// NextLesson advances one lesson, rolling over to the next module.
func NextLesson(c *fiber.Ctx) error {
	s, mods, status, msg := learnerSessionAndTree(c)
	if status != 0 {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	pos := s.Navigate(func(p progress.Position) progress.Position {
		return progress.Next(mods, p)
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Position updated.", fiber.Map{
		"position": pos,
	})
}

// PrevLesson steps one lesson back, rolling over to the previous
// module's last lesson.
func PrevLesson(c *fiber.Ctx) error {
	s, mods, status, msg := learnerSessionAndTree(c)
	if status != 0 {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	pos := s.Navigate(func(p progress.Position) progress.Position {
		return progress.Prev(mods, p)
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Position updated.", fiber.Map{
		"position": pos,
	})
}

// CurrentLesson returns the lesson at the learner's position, or just
// the position when no lesson is selected.
func CurrentLesson(c *fiber.Ctx) error {
	s, mods, status, msg := learnerSessionAndTree(c)
	if status != 0 {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	pos := s.Position()

	data := fiber.Map{"position": pos}
	if pos.ModuleIndex >= 0 && pos.ModuleIndex < len(mods) {
		mod := mods[pos.ModuleIndex]
		data["moduleTitle"] = mod.Title
		if pos.LessonIndex >= 0 && pos.LessonIndex < len(mod.Lessons) {
			data["lesson"] = mod.Lessons[pos.LessonIndex]
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched.", data)
}

// CloseCourse drops the learner session.
func CloseCourse(c *fiber.Ctx) error {
	session.Sessions.CloseLearner(c.Params("sessionId"))
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course session closed.", nil)
}
