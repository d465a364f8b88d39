package handler

import (
	"quiz-exam/internal/config"
	"quiz-exam/internal/domain"
	"quiz-exam/internal/dto"
	"quiz-exam/internal/logger"
	"quiz-exam/internal/middleware"
	"quiz-exam/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ExamHandler serves course discovery and exam creation.
type ExamHandler struct {
	exams   service.ExamService
	quiz    service.QuizService
	header  domain.HeaderLoader
	cookie  *middleware.SessionCookie
	appName string
	theme   string
}

// NewExamHandler creates a new ExamHandler instance
func NewExamHandler(
	exams service.ExamService,
	quiz service.QuizService,
	header domain.HeaderLoader,
	cookie *middleware.SessionCookie,
	app config.AppConfig,
) *ExamHandler {
	return &ExamHandler{
		exams:   exams,
		quiz:    quiz,
		header:  header,
		cookie:  cookie,
		appName: app.Name,
		theme:   app.Theme,
	}
}

// ListCourses godoc
// @Summary List courses
// @Description Returns the available courses with the header text. Any running exam of the caller is discarded.
// @Tags exams
// @Produce json
// @Success 200 {object} dto.CoursesResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /courses [get]
func (h *ExamHandler) ListCourses(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if sessionID := middleware.SessionID(c); sessionID != "" {
		if err := h.quiz.Abandon(ctx, sessionID); err != nil {
			return err
		}
		h.cookie.Clear(c)
	}

	header, err := h.header.Load(ctx)
	if err != nil {
		logger.Get().Warn("Failed to load header text", zap.Error(err))
		header = ""
	}

	return c.JSON(dto.CoursesResponse{
		AppName: h.appName,
		Theme:   h.theme,
		Header:  header,
		Courses: h.exams.ListCourses(ctx),
	})
}

// ListExamFiles godoc
// @Summary List exam files of a course
// @Tags exams
// @Produce json
// @Param course path string true "Course"
// @Success 200 {object} dto.ExamFilesResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /courses/{course}/exams [get]
func (h *ExamHandler) ListExamFiles(c *fiber.Ctx) error {
	course, _ := c.Locals(middleware.ValidatedCourseKey).(string)
	return c.JSON(dto.ExamFilesResponse{
		Course: course,
		Files:  h.exams.ListExamFiles(c.UserContext(), course),
	})
}

// StartExam godoc
// @Summary Start an exam
// @Description Builds an exam from the selected files, opens a session bound to a cookie and returns page 1.
// @Tags exams
// @Accept json
// @Produce json
// @Param request body dto.StartExamRequest true "Exam selection"
// @Success 201 {object} dto.PageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /exams [post]
func (h *ExamHandler) StartExam(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.ValidatedStartExamKey).(*dto.StartExamRequest)
	if !ok {
		return domain.NewInvalidInputError("Invalid request body")
	}
	ctx := c.UserContext()

	if previous := middleware.SessionID(c); previous != "" {
		if err := h.quiz.Abandon(ctx, previous); err != nil {
			logger.Get().Warn("Failed to discard previous session", zap.String("sessionID", previous), zap.Error(err))
		}
	}

	session, page, err := h.quiz.StartExam(ctx, req.Course, req.Files)
	if err != nil {
		return err
	}
	if err := h.cookie.Issue(c, session.ID); err != nil {
		return domain.NewInternalError("failed to issue session cookie", err)
	}

	return c.Status(fiber.StatusCreated).JSON(toPageResponse(session.Course, page))
}
