package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up course management for administrators
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.AdminOnly())

	adminGroup.Post("/", validators.CreateCourse(), controllers.CreateCourse)
	adminGroup.Get("/list", controllers.ListCourses)
	adminGroup.Get("/:id", controllers.GetCourse)
	adminGroup.Patch("/:id/toggle", controllers.ToggleCourseActive)
	adminGroup.Delete("/:id", controllers.DeleteCourse)

	// Edit sessions hold a working copy in memory until saved
	adminGroup.Post("/:id/edit", controllers.OpenEditSession)
	adminGroup.Get("/edit/:sessionId", controllers.GetEditSession)
	adminGroup.Post("/edit/:sessionId/op", validators.EditOp(), controllers.ApplyEditOp)
	adminGroup.Patch("/edit/:sessionId/field", validators.EditField(), controllers.SetEditField)
	adminGroup.Post("/edit/:sessionId/save", controllers.SaveEditSession)
	adminGroup.Delete("/edit/:sessionId", controllers.CloseEditSession)
}
