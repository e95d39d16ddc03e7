package userValidator

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/models"
)

var validate = validator.New()

func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required", "required_without":
				errors[fe.Field()] = "This field is required!"
			case "email":
				errors[fe.Field()] = "Invalid email!"
			case "min":
				errors[fe.Field()] = "Must be at least " + fe.Param() + " characters long!"
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

// AddUser validates admin user creation.
func AddUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reqData models.AddUserRequest
		if err := c.BodyParser(&reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedAddUser", reqData)
		return c.Next()
	}
}

// SetRole validates a role change.
func SetRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reqData models.SetRoleRequest
		if err := c.BodyParser(&reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedSetRole", reqData)
		return c.Next()
	}
}

// AssignCourse validates a course assignment or removal.
func AssignCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reqData models.AssignCourseRequest
		if err := c.BodyParser(&reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedAssignCourse", reqData)
		return c.Next()
	}
}

// SendNotification validates a custom notification message.
func SendNotification() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reqData models.SendNotificationRequest
		if err := c.BodyParser(&reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedNotification", reqData)
		return c.Next()
	}
}
