package handler

import (
	"strconv"
	"strings"

	"quiz-exam/internal/domain"
	"quiz-exam/internal/dto"
	"quiz-exam/internal/logger"
	"quiz-exam/internal/middleware"
	"quiz-exam/internal/service"
	"quiz-exam/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HeaderResultSigned tells whether the downloaded document carries a signature.
const HeaderResultSigned = "X-Result-Signed"

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GetPage godoc
// @Summary Read a quiz page
// @Description Returns the questions of a page with the answers saved so far. Without page the current page is returned.
// @Tags quiz
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} dto.PageResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /quiz [get]
func (h *QuizHandler) GetPage(c *fiber.Ctx) error {
	page, _ := c.Locals(middleware.ValidatedPageKey).(int)

	session, p, err := h.service.GetPage(c.UserContext(), middleware.SessionID(c), page)
	if err != nil {
		return err
	}
	return c.JSON(toPageResponse(session.Course, p))
}

// SubmitPage godoc
// @Summary Submit a quiz page
// @Description Saves the answers of a page. With finish the exam is scored and the result returned, otherwise the next page.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.SubmitPageRequest true "Answers"
// @Success 200 {object} dto.SubmitPageResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /quiz [post]
func (h *QuizHandler) SubmitPage(c *fiber.Ctx) error {
	req, err := parseSubmission(c)
	if err != nil {
		return err
	}
	if req.Page < 0 {
		return domain.ValidationErrors{domain.NewOutOfRangeError("page", req.Page, 1, 1<<31-1)}
	}
	sessionID := middleware.SessionID(c)

	out, err := h.service.SubmitPage(c.UserContext(), sessionID, req.Page, validation.ParseAnswers(req.Answers), req.Finish)
	if err != nil {
		return err
	}
	if out.Result != nil {
		logger.Get().Debug("Exam finished through submit", zap.String("sessionID", sessionID))
		return c.JSON(dto.SubmitPageResponse{Finished: true, Result: toResultResponse(out.Result)})
	}
	return c.JSON(dto.SubmitPageResponse{Page: toPageResponse(out.Session.Course, out.Page)})
}

// GetResult godoc
// @Summary Get the exam result
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.ResultResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /result [get]
func (h *QuizHandler) GetResult(c *fiber.Ctx) error {
	result, err := h.service.GetResult(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(toResultResponse(result))
}

// DownloadCertificate godoc
// @Summary Download the result document
// @Description Returns the result as PDF, signed when a signing key is configured and usable.
// @Tags quiz
// @Produce application/pdf
// @Success 200 {file} file
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /result/certificate [get]
func (h *QuizHandler) DownloadCertificate(c *fiber.Ctx) error {
	sessionID := middleware.SessionID(c)
	outcome, err := h.service.ExportCertificate(c.UserContext(), sessionID)
	if err != nil {
		return err
	}
	if outcome.Fallback != nil {
		logger.Get().Warn("Delivering unsigned result document", zap.String("sessionID", sessionID), zap.Error(outcome.Fallback))
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="result.pdf"`)
	c.Set(HeaderResultSigned, strconv.FormatBool(outcome.Signed))
	return c.Send(outcome.Bytes)
}

// parseSubmission reads a JSON body or a form where each answer field may
// repeat, one value per selected option.
func parseSubmission(c *fiber.Ctx) (*dto.SubmitPageRequest, error) {
	contentType := strings.ToLower(string(c.Request().Header.ContentType()))
	req := &dto.SubmitPageRequest{Answers: map[string][]string{}}

	switch {
	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		if err := c.BodyParser(req); err != nil {
			return nil, domain.NewInvalidInputError("Invalid request body")
		}
		return req, nil
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, domain.NewInvalidInputError("Invalid form body")
		}
		for k, v := range form.Value {
			req.Answers[k] = append(req.Answers[k], v...)
		}
	default:
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			k := string(key)
			req.Answers[k] = append(req.Answers[k], string(value))
		})
	}

	if pages := req.Answers["page"]; len(pages) > 0 && pages[0] != "" {
		page, err := strconv.Atoi(pages[0])
		if err != nil {
			return nil, domain.ValidationErrors{domain.NewInvalidFormatError("page", pages[0])}
		}
		req.Page = page
	}
	req.Finish = isFinish(req.Answers["action"]) || isFinish(req.Answers["finish"])
	return req, nil
}

func isFinish(values []string) bool {
	for _, v := range values {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "finish", "true", "1", "on":
			return true
		}
	}
	return false
}
