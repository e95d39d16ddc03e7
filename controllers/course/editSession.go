package courseController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/coursetree"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/session"
	"lms/utils"
)

// OpenEditSession loads a course into an in-memory working copy. All
// edits after this point hit the session, nothing touches the database
// until save.
func OpenEditSession(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)

	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	mods, err := course.ModulesTree()
	if err != nil {
		log.Printf("Error decoding modules for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to open edit session!", nil)
	}

	s := session.Sessions.OpenEdit(course.ID, adminID, course.Title, course.Description, course.Content, course.VideoURL, mods)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Edit session opened.", fiber.Map{
		"sessionId": s.ID,
		"courseId":  course.ID,
		"modules":   mods,
	})
}

// ApplyEditOp runs one tree operation against the working copy and
// returns the updated tree.
func ApplyEditOp(c *fiber.Ctx) error {
	op := c.Locals("validatedOp").(coursetree.Op)

	s, err := session.Sessions.Edit(c.Params("sessionId"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Edit session not found!", nil)
	}

	mods, err := s.Apply(op)
	if err != nil {
		switch err {
		case coursetree.ErrModuleIndex, coursetree.ErrLessonIndex,
			coursetree.ErrQuestionIndex, coursetree.ErrOptionIndex:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Index out of range!", nil)
		case coursetree.ErrUnknownField:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown field!", nil)
		case coursetree.ErrConfirmRequired:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This operation is destructive and requires confirmation!", nil)
		default:
			log.Printf("Error applying edit op %s: %v", op.Type, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to apply operation!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Operation applied.", fiber.Map{
		"modules": mods,
	})
}

// SetEditField updates a top-level course field on the working copy.
func SetEditField(c *fiber.Ctx) error {
	reqData := c.Locals("validatedField").(models.EditFieldRequest)

	s, err := session.Sessions.Edit(c.Params("sessionId"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Edit session not found!", nil)
	}

	s.SetField(reqData.Field, reqData.Value)

	if reqData.Field == "videoUrl" && reqData.Value != "" {
		go func(url string) {
			if title := utils.LookupVideoTitle(url); title != "" {
				log.Printf("Video set on edit session: %q", title)
			}
		}(reqData.Value)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Field updated.", nil)
}

// GetEditSession returns the current working copy.
func GetEditSession(c *fiber.Ctx) error {
	s, err := session.Sessions.Edit(c.Params("sessionId"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Edit session not found!", nil)
	}

	mods, title, description, content, videoURL := s.Snapshot()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Edit session fetched.", fiber.Map{
		"sessionId":   s.ID,
		"courseId":    s.CourseID,
		"title":       title,
		"description": description,
		"content":     content,
		"videoUrl":    videoURL,
		"modules":     mods,
	})
}

// SaveEditSession writes the working copy back to the database in one
// update. While a save is running further saves on the same session are
// rejected. On failure the working copy stays intact so the admin can
// retry.
func SaveEditSession(c *fiber.Ctx) error {
	s, err := session.Sessions.Edit(c.Params("sessionId"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Edit session not found!", nil)
	}

	if err := s.BeginSave(); err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A save is already in progress for this session!", nil)
	}
	defer s.EndSave()

	mods, title, description, content, videoURL := s.Snapshot()

	var course courseModels.Course
	if err := course.SetModulesTree(mods); err != nil {
		log.Printf("Error encoding modules for course %d: %v", s.CourseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save course. Your changes are still in the session.", nil)
	}

	db := database.Database.Db
	result := db.Model(&courseModels.Course{}).
		Where("id = ? AND is_deleted = ?", s.CourseID, false).
		Updates(map[string]interface{}{
			"title":       title,
			"description": description,
			"content":     content,
			"video_url":   videoURL,
			"modules":     course.Modules,
		})
	if result.Error != nil {
		log.Printf("Error saving course %d: %v", s.CourseID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save course. Your changes are still in the session.", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course saved successfully.", fiber.Map{
		"courseId": s.CourseID,
	})
}

// CloseEditSession drops the working copy without saving.
func CloseEditSession(c *fiber.Ctx) error {
	session.Sessions.CloseEdit(c.Params("sessionId"))
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Edit session closed.", nil)
}
