package userController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
)

// Dashboard returns the learner's assigned active courses, completion
// state and notifications.
func Dashboard(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	assigned := user.AssignedCourseIDs()

	courses := []courseModels.Course{}
	if len(assigned) > 0 {
		if err := db.
			Where("id IN ? AND is_active = ? AND is_deleted = ?", assigned, true, false).
			Order("id").
			Find(&courses).Error; err != nil {
			log.Printf("Error fetching dashboard courses for user %d: %v", userID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
		}
	}

	type dashboardCourse struct {
		ID          uint   `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Completed   bool   `json:"completed"`
	}

	out := make([]dashboardCourse, 0, len(courses))
	for _, course := range courses {
		_, done := user.CompletionFor(course.ID)
		out = append(out, dashboardCourse{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
			Completed:   done,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully.", fiber.Map{
		"courses":       out,
		"notifications": user.NotificationList(),
		"tipOfTheDay":   utils.TipOfTheDay(),
	})
}

// GetNotifications returns the learner's notification list.
func GetNotifications(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", userID, false).
		First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully.", fiber.Map{
		"notifications": user.NotificationList(),
	})
}

// DeleteNotification removes one notification by list index.
func DeleteNotification(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	index, err := c.ParamsInt("index")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification index!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	list := user.NotificationList()
	if index < 0 || index >= len(list) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Index out of range!", nil)
	}

	list = append(list[:index], list[index+1:]...)
	if err := user.SetNotificationList(list); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete notification!", nil)
	}
	if err := db.Model(&user).Update("notifications", user.Notifications).Error; err != nil {
		log.Printf("Error deleting notification for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification deleted.", fiber.Map{
		"notifications": list,
	})
}
