package courseController

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
)

// DownloadCertificate streams the completion certificate PDF. Only
// available once the course is recorded as completed.
func DownloadCertificate(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	record, ok := user.CompletionFor(uint(courseID))
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You have not completed this course yet!", nil)
	}

	var course courseModels.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	pdfBytes, err := utils.GenerateCertificatePDF(user.Email, course.Title, record.CompletedAt)
	if err != nil {
		log.Printf("Error generating certificate for user %d course %d: %v", userID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="certificate-%d.pdf"`, courseID))
	return c.Send(pdfBytes)
}
