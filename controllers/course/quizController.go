package courseController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/progress"
	"lms/session"
	"lms/utils"
)

// GetQuiz returns the course quiz with the correct answers stripped.
func GetQuiz(c *fiber.Ctx) error {
	s, mods, status, msg := learnerSessionAndTree(c)
	if status != 0 {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	quiz, quizModule := progress.FindQuiz(mods)
	if quiz == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This course has no quiz!", nil)
	}

	type publicQuestion struct {
		Question string   `json:"question"`
		Options  []string `json:"options"`
	}
	questions := make([]publicQuestion, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, publicQuestion{Question: q.Question, Options: q.Options})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched.", fiber.Map{
		"quizModule": quizModule,
		"questions":  questions,
		"answered":   len(s.QuizAnswers()),
	})
}

// AnswerQuestion records one answer in the learner session. Selecting a
// different option for the same question overwrites the earlier choice.
func AnswerQuestion(c *fiber.Ctx) error {
	reqData := c.Locals("validatedAnswer").(models.QuizAnswerRequest)

	s, mods, status, msg := learnerSessionAndTree(c)
	if status != 0 {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	quiz, _ := progress.FindQuiz(mods)
	if quiz == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This course has no quiz!", nil)
	}
	if reqData.QuestionIndex >= len(quiz.Questions) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Index out of range!", nil)
	}
	if reqData.OptionIndex >= len(quiz.Questions[reqData.QuestionIndex].Options) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Index out of range!", nil)
	}

	s.QuizAnswer(reqData.QuestionIndex, reqData.OptionIndex)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer recorded.", fiber.Map{
		"answered": len(s.QuizAnswers()),
		"total":    len(quiz.Questions),
	})
}

// SubmitQuiz grades the attempt. A full score marks the course
// completed, exactly once, no matter how often the quiz is retaken.
func SubmitQuiz(c *fiber.Ctx) error {
	s, mods, status, msg := learnerSessionAndTree(c)
	if status != 0 {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	quiz, _ := progress.FindQuiz(mods)
	if quiz == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This course has no quiz!", nil)
	}

	answers := s.QuizAnswers()
	score := progress.Grade(quiz.Questions, answers)
	total := len(quiz.Questions)
	passed := total > 0 && score == total

	completedNow := false
	if passed {
		db := database.Database.Db
		err := db.Transaction(func(tx *gorm.DB) error {
			var user models.User
			if err := tx.Where("id = ? AND is_deleted = ?", s.UserID, false).First(&user).Error; err != nil {
				return err
			}
			if _, ok := user.CompletionFor(s.CourseID); ok {
				return nil
			}
			records := append(user.CompletionRecords(), models.CompletionRecord{
				CourseID:    s.CourseID,
				CompletedAt: time.Now(),
			})
			if err := user.SetCompletionRecords(records); err != nil {
				return err
			}
			completedNow = true
			return tx.Model(&user).Update("completed_courses", user.CompletedCourses).Error
		})
		if err != nil {
			log.Printf("Error recording completion for user %d course %d: %v", s.UserID, s.CourseID, err)
			// The learner still gets the score they earned. Answers
			// stay in the session so submitting again retries the
			// completion write.
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz graded. Completion could not be recorded, submit again to retry.", fiber.Map{
				"score":              score,
				"total":              total,
				"passed":             passed,
				"completedNow":       false,
				"completionRecorded": false,
			})
		}

		if completedNow {
			notifyCompletion(s)
		}
	}

	// The attempt resets after grading so a review run starts clean.
	s.ResetQuiz()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz graded.", fiber.Map{
		"score":        score,
		"total":        total,
		"passed":       passed,
		"completedNow": completedNow,
	})
}

func notifyCompletion(s *session.LearnerSession) {
	db := database.Database.Db

	var user models.User
	if err := db.First(&user, s.UserID).Error; err != nil {
		return
	}
	var course struct{ Title string }
	db.Table("courses").Select("title").Where("id = ?", s.CourseID).Scan(&course)

	list := append(user.NotificationList(), models.Notification{
		Message:   "Congratulations! You completed the course: " + course.Title,
		Timestamp: time.Now(),
	})
	if err := user.SetNotificationList(list); err == nil {
		db.Model(&user).Update("notifications", user.Notifications)
	}

	utils.SendCourseCompletedEmail(user.Email, course.Title)
}
