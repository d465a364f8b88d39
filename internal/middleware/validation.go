package middleware

import (
	"quiz-exam/internal/domain"
	"quiz-exam/internal/dto"
	"quiz-exam/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the validation middleware.
const (
	ValidatedCourseKey    = "validated_course"
	ValidatedStartExamKey = "validated_start_exam"
	ValidatedPageKey      = "validated_page"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateCourse validates the :course path parameter.
func (vm *ValidationMiddleware) ValidateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		course := c.Params("course")
		if errors := vm.validator.ValidateCourse(course); len(errors) > 0 {
			return errors
		}
		c.Locals(ValidatedCourseKey, course)
		return c.Next()
	}
}

// ValidateStartExam parses and validates the exam selection body. JSON and
// form bodies are accepted; a single "file" form field also works.
func (vm *ValidationMiddleware) ValidateStartExam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(dto.StartExamRequest)
		if err := c.BodyParser(req); err != nil {
			return domain.NewInvalidInputError("Invalid request body")
		}
		if len(req.Files) == 0 {
			if file := c.FormValue("file"); file != "" {
				req.Files = []string{file}
			}
		}

		if errors := vm.validator.ValidateStartExam(req); len(errors) > 0 {
			return errors
		}
		c.Locals(ValidatedStartExamKey, req)
		return c.Next()
	}
}

// ValidatePageQuery validates the optional ?page= query value.
func (vm *ValidationMiddleware) ValidatePageQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, errors := vm.validator.ValidatePage(c.Query("page"))
		if len(errors) > 0 {
			return errors
		}
		c.Locals(ValidatedPageKey, page)
		return c.Next()
	}
}
