package userRoutes

import (
	contentControllers "lms/controllers/content"
	userControllers "lms/controllers/userControllers"
	"lms/middleware"
	contentValidators "lms/validators/content"
	userValidators "lms/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up the learner dashboard and public content
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user", middleware.JWTMiddleware)

	userGroup.Get("/dashboard", userControllers.Dashboard)
	userGroup.Get("/notifications", userControllers.GetNotifications)
	userGroup.Delete("/notifications/:index", userControllers.DeleteNotification)

	contentGroup := app.Group("/content", middleware.JWTMiddleware)

	contentGroup.Get("/news", contentControllers.ListNews)
	contentGroup.Get("/resources", contentControllers.ListResources)
	contentGroup.Get("/tip", contentControllers.TipOfTheDay)

	adminContent := app.Group("/admin/content", middleware.JWTMiddleware, middleware.AdminOnly())

	adminContent.Post("/news", contentValidators.News(), contentControllers.CreateNews)
	adminContent.Put("/news/:id", contentValidators.News(), contentControllers.UpdateNews)
	adminContent.Delete("/news/:id", contentControllers.DeleteNews)
	adminContent.Post("/resources", contentValidators.Resource(), contentControllers.CreateResource)
	adminContent.Delete("/resources/:id", contentControllers.DeleteResource)

	adminUsers := app.Group("/admin/users", middleware.JWTMiddleware, middleware.AdminOnly())

	adminUsers.Get("/list", userControllers.ListUsers)
	adminUsers.Post("/", userValidators.AddUser(), userControllers.AddUser)
	adminUsers.Patch("/:id/block", userControllers.BlockUser)
	adminUsers.Patch("/:id/block24h", userControllers.BlockUser24h)
	adminUsers.Patch("/:id/unblock", userControllers.UnblockUser)
	adminUsers.Delete("/:id", userControllers.DeleteUser)
	adminUsers.Patch("/:id/role", userValidators.SetRole(), userControllers.SetUserRole)
	adminUsers.Post("/:id/courses", userValidators.AssignCourse(), userControllers.AssignCourse)
	adminUsers.Delete("/:id/courses", userValidators.AssignCourse(), userControllers.RemoveCourse)
	adminUsers.Get("/:id/progress", userControllers.UserProgress)
	adminUsers.Post("/:id/notify", userValidators.SendNotification(), userControllers.SendNotification)

	app.Get("/admin/course/:id/students", middleware.JWTMiddleware, middleware.AdminOnly(), userControllers.CourseStudents)
}
