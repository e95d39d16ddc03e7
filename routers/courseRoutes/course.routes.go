package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course", middleware.JWTMiddleware)

	// Opening a course creates a navigation session
	userGroup.Post("/:id/open", controllers.OpenCourse)

	// Navigation within a session
	userGroup.Get("/session/:sessionId/lesson", controllers.CurrentLesson)
	userGroup.Post("/session/:sessionId/module", validators.SelectModule(), controllers.SelectModule)
	userGroup.Post("/session/:sessionId/next", controllers.NextLesson)
	userGroup.Post("/session/:sessionId/prev", controllers.PrevLesson)
	userGroup.Delete("/session/:sessionId", controllers.CloseCourse)

	// Quiz
	userGroup.Get("/session/:sessionId/quiz", controllers.GetQuiz)
	userGroup.Post("/session/:sessionId/quiz/answer", validators.QuizAnswer(), controllers.AnswerQuestion)
	userGroup.Post("/session/:sessionId/quiz/submit", controllers.SubmitQuiz)

	// Certificate
	userGroup.Get("/:id/certificate", controllers.DownloadCertificate)
}
