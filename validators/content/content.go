package contentValidator

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
			case "required":
				errors[fe.Field()] = "This field is required!"
			case "url":
				errors[fe.Field()] = "Invalid URL!"
			default:
				errors[fe.Field()] = "Invalid value!"
			}
		}
	} else {
		errors["body"] = "Invalid request body!"
	}
	return errors
}

// News validates a news article payload.
func News() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reqData models.NewsRequest
		if err := c.BodyParser(&reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedNews", reqData)
		return c.Next()
	}
}

// Resource validates a free resource payload.
func Resource() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reqData models.ResourceRequest
		if err := c.BodyParser(&reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedResource", reqData)
		return c.Next()
	}
}
