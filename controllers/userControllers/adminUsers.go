package userController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
)

// ListUsers returns every account for the admin panel.
func ListUsers(c *fiber.Ctx) error {
	db := database.Database.Db

	var users []models.User
	if err := db.Where("is_deleted = ?", false).Order("id").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully.", fiber.Map{
		"users": users,
	})
}

// AddUser creates an account on behalf of an admin.
func AddUser(c *fiber.Ctx) error {
	reqData := c.Locals("validatedAddUser").(models.AddUserRequest)

	db := database.Database.Db

	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	role := reqData.Role
	if role == "" {
		role = "USER"
	}

	newUser := models.User{
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Role:     role,
	}
	newUser.EmptyListFields()

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	utils.SendWelcomeEmail(newUser.Email)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully.", fiber.Map{
		"id":    newUser.ID,
		"email": newUser.Email,
		"role":  newUser.Role,
	})
}

func findUserParam(c *fiber.Ctx) (*models.User, error) {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", userID, false).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// BlockUser blocks an account permanently.
func BlockUser(c *fiber.Ctx) error {
	user, err := findUserParam(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(user).Updates(map[string]interface{}{
		"is_blocked":  true,
		"block_until": nil,
	}).Error; err != nil {
		log.Printf("Error blocking user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to block user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User blocked.", nil)
}

// BlockUser24h blocks an account for 24 hours. The scheduler clears the
// block once it expires.
func BlockUser24h(c *fiber.Ctx) error {
	user, err := findUserParam(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	until := time.Now().Add(24 * time.Hour)
	if err := database.Database.Db.Model(user).Updates(map[string]interface{}{
		"is_blocked":  false,
		"block_until": until,
	}).Error; err != nil {
		log.Printf("Error blocking user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to block user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User blocked for 24 hours.", fiber.Map{
		"blockUntil": until,
	})
}

// UnblockUser lifts both permanent and temporary blocks.
func UnblockUser(c *fiber.Ctx) error {
	user, err := findUserParam(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(user).Updates(map[string]interface{}{
		"is_blocked":  false,
		"block_until": nil,
	}).Error; err != nil {
		log.Printf("Error unblocking user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unblock user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User unblocked.", nil)
}

// DeleteUser soft deletes an account.
func DeleteUser(c *fiber.Ctx) error {
	user, err := findUserParam(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	admin := c.Locals("adminUser").(models.User)
	if admin.ID == user.ID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot delete your own account!", nil)
	}

	if err := database.Database.Db.Model(user).Update("is_deleted", true).Error; err != nil {
		log.Printf("Error deleting user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted.", nil)
}

// SetUserRole switches an account between USER and ADMIN.
func SetUserRole(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSetRole").(models.SetRoleRequest)

	user, err := findUserParam(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(user).Update("role", reqData.Role).Error; err != nil {
		log.Printf("Error updating role for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated.", fiber.Map{
		"id":   user.ID,
		"role": reqData.Role,
	})
}

// AssignCourse grants a user access to a course. Assigning twice is a
// no-op, the assignment list behaves as a set.
func AssignCourse(c *fiber.Ctx) error {
	reqData := c.Locals("validatedAssignCourse").(models.AssignCourseRequest)

	user, err := findUserParam(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if user.HasAssignedCourse(course.ID) {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course already assigned.", nil)
	}

	ids := append(user.AssignedCourseIDs(), course.ID)
	if err := user.SetAssignedCourseIDs(ids); err != nil {
		log.Printf("Error encoding assignments for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign course!", nil)
	}

	now := time.Now()
	if err := db.Model(user).Updates(map[string]interface{}{
		"assigned_courses": user.AssignedCourses,
		"access_date":      now,
	}).Error; err != nil {
		log.Printf("Error assigning course to user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign course!", nil)
	}

	appendNotification(user, "A new course was assigned to you: "+course.Title)
	utils.SendCourseAssignedEmail(user.Email, course.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course assigned.", fiber.Map{
		"assignedCourses": ids,
	})
}

// RemoveCourse revokes a user's access to a course. Completion records
// and certificates are kept.
func RemoveCourse(c *fiber.Ctx) error {
	reqData := c.Locals("validatedAssignCourse").(models.AssignCourseRequest)

	user, err := findUserParam(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	ids := user.AssignedCourseIDs()
	kept := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != reqData.CourseID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(ids) {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course was not assigned.", nil)
	}

	if err := user.SetAssignedCourseIDs(kept); err != nil {
		log.Printf("Error encoding assignments for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove course!", nil)
	}

	if err := database.Database.Db.Model(user).Update("assigned_courses", user.AssignedCourses).Error; err != nil {
		log.Printf("Error removing course from user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course removed.", fiber.Map{
		"assignedCourses": kept,
	})
}

// CourseStudents lists every user a course is assigned to, with their
// completion state.
func CourseStudents(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var users []models.User
	if err := db.Where("is_deleted = ?", false).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	type student struct {
		ID          uint       `json:"id"`
		Email       string     `json:"email"`
		Completed   bool       `json:"completed"`
		CompletedAt *time.Time `json:"completedAt,omitempty"`
	}

	students := []student{}
	for i := range users {
		u := &users[i]
		if !u.HasAssignedCourse(course.ID) {
			continue
		}
		entry := student{ID: u.ID, Email: u.Email}
		if record, ok := u.CompletionFor(course.ID); ok {
			entry.Completed = true
			at := record.CompletedAt
			entry.CompletedAt = &at
		}
		students = append(students, entry)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully.", fiber.Map{
		"courseId": course.ID,
		"students": students,
	})
}

// UserProgress shows one user's assignments with a per-course status.
func UserProgress(c *fiber.Ctx) error {
	user, err := findUserParam(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	type courseProgress struct {
		CourseID    uint       `json:"courseId"`
		Title       string     `json:"title"`
		Status      string     `json:"status"`
		CompletedAt *time.Time `json:"completedAt,omitempty"`
	}

	db := database.Database.Db

	assigned := user.AssignedCourseIDs()
	courses := []courseModels.Course{}
	if len(assigned) > 0 {
		if err := db.Where("id IN ? AND is_deleted = ?", assigned, false).Order("id").Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
	}

	out := make([]courseProgress, 0, len(courses))
	for _, course := range courses {
		entry := courseProgress{CourseID: course.ID, Title: course.Title, Status: "IN_PROGRESS"}
		if record, ok := user.CompletionFor(course.ID); ok {
			entry.Status = "COMPLETED"
			at := record.CompletedAt
			entry.CompletedAt = &at
		}
		out = append(out, entry)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully.", fiber.Map{
		"id":         user.ID,
		"email":      user.Email,
		"courses":    out,
		"accessDate": user.AccessDate,
	})
}

// notificationTemplates are the canned messages an admin can send by id
// instead of typing a custom text.
var notificationTemplates = map[string]string{
	"REMINDER":    "Reminder: you have unfinished courses waiting on your dashboard.",
	"ENCOURAGE":   "Keep it up! You are close to finishing your course.",
	"QUIZ_READY":  "Your course quiz is ready. Pass it to earn your certificate.",
	"NEW_CONTENT": "New learning content is available on your dashboard.",
}

// SendNotification pushes a custom message onto a user's notification
// list.
func SendNotification(c *fiber.Ctx) error {
	reqData := c.Locals("validatedNotification").(models.SendNotificationRequest)

	user, err := findUserParam(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	message := reqData.Message
	if reqData.Template != "" {
		canned, ok := notificationTemplates[reqData.Template]
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown notification template!", nil)
		}
		message = canned
	}

	if err := appendNotification(user, message); err != nil {
		log.Printf("Error sending notification to user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification sent.", nil)
}

// appendNotification adds a message to the user's list and persists the
// column. New messages never displace existing ones.
func appendNotification(user *models.User, message string) error {
	list := append(user.NotificationList(), models.Notification{
		Message:   message,
		Timestamp: time.Now(),
	})
	if err := user.SetNotificationList(list); err != nil {
		return err
	}
	return database.Database.Db.Model(user).Update("notifications", user.Notifications).Error
}
