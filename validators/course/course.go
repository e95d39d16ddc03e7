package courseValidator

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lms/coursetree"
	"lms/middleware"
	"lms/models"
)

var validate = validator.New()

func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				errors[fe.Field()] = "This field is required!"
			case "url":
				errors[fe.Field()] = "Invalid URL!"
			case "oneof":
				errors[fe.Field()] = "Must be one of: " + fe.Param() + "!"
			default:
				errors[fe.Field()] = "Invalid value!"
			}
		}
	} else {
		errors["body"] = "Invalid request body!"
	}
	return errors
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reqData models.CreateCourseRequest
		if err := c.BodyParser(&reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

var knownOps = map[coursetree.OpType]bool{
	coursetree.OpAddModule:           true,
	coursetree.OpDeleteModule:        true,
	coursetree.OpEditModuleTitle:     true,
	coursetree.OpAddLesson:           true,
	coursetree.OpDeleteLesson:        true,
	coursetree.OpEditLessonField:     true,
	coursetree.OpAddTest:             true,
	coursetree.OpDeleteTest:          true,
	coursetree.OpAddQuestion:         true,
	coursetree.OpDeleteQuestion:      true,
	coursetree.OpEditQuestionText:    true,
	coursetree.OpAddOption:           true,
	coursetree.OpDeleteOption:        true,
	coursetree.OpEditOption:          true,
	coursetree.OpSelectCorrectAnswer: true,
}

// EditOp validates a single tree edit operation. Destructive ops must
// carry the confirm flag, the client asks the admin before sending.
func EditOp() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var op coursetree.Op
		if err := c.BodyParser(&op); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !knownOps[op.Type] {
			errors["type"] = "Unknown operation type!"
		}
		if op.Type.Destructive() && !op.Confirm {
			errors["confirm"] = "This operation is destructive and requires confirmation!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOp", op)
		return c.Next()
	}
}

// EditField validates a top-level course field update inside an edit
// session.
func EditField() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reqData models.EditFieldRequest
		if err := c.BodyParser(&reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedField", reqData)
		return c.Next()
	}
}

// SelectModule validates learner module navigation.
func SelectModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reqData models.SelectModuleRequest
		if err := c.BodyParser(&reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedSelectModule", reqData)
		return c.Next()
	}
}

// QuizAnswer validates a single quiz answer submission.
func QuizAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reqData models.QuizAnswerRequest
		if err := c.BodyParser(&reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedAnswer", reqData)
		return c.Next()
	}
}
