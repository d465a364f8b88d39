package handler

import (
	"quiz-exam/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups the HTTP handlers mounted by RegisterRoutes.
type Handlers struct {
	Exam   *ExamHandler
	Quiz   *QuizHandler
	Health *HealthHandler
}

// RegisterRoutes mounts the API under /api. Every API route resolves the
// session cookie first.
func RegisterRoutes(app *fiber.App, h Handlers, cookie *middleware.SessionCookie, validator *middleware.ValidationMiddleware) {
	if h.Health != nil {
		app.Get("/healthz", h.Health.Health)
	}

	api := app.Group("/api", cookie.Middleware())

	api.Get("/courses", h.Exam.ListCourses)
	api.Get("/courses/:course/exams", validator.ValidateCourse(), h.Exam.ListExamFiles)
	api.Post("/exams", validator.ValidateStartExam(), h.Exam.StartExam)

	api.Get("/quiz", validator.ValidatePageQuery(), h.Quiz.GetPage)
	api.Post("/quiz", h.Quiz.SubmitPage)

	api.Get("/result", h.Quiz.GetResult)
	api.Get("/result/certificate", h.Quiz.DownloadCertificate)
}
