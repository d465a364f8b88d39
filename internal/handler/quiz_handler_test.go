package handler_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quiz-exam/internal/certify"
	"quiz-exam/internal/domain"
	"quiz-exam/internal/handler"
	"quiz-exam/internal/middleware"
	"quiz-exam/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sessionID = "01HZY3J6Q4M8N6ZC1V2W3X4Y5Z"

// MockQuizService is a mock implementation of service.QuizService
type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) StartExam(ctx context.Context, course string, files []string) (*domain.QuizSession, *domain.Page, error) {
	args := m.Called(ctx, course, files)
	session, _ := args.Get(0).(*domain.QuizSession)
	page, _ := args.Get(1).(*domain.Page)
	return session, page, args.Error(2)
}

func (m *MockQuizService) GetPage(ctx context.Context, id string, page int) (*domain.QuizSession, *domain.Page, error) {
	args := m.Called(ctx, id, page)
	session, _ := args.Get(0).(*domain.QuizSession)
	p, _ := args.Get(1).(*domain.Page)
	return session, p, args.Error(2)
}

func (m *MockQuizService) SubmitPage(ctx context.Context, id string, page int, answers map[int][]string, finish bool) (*service.SubmitOutcome, error) {
	args := m.Called(ctx, id, page, answers, finish)
	out, _ := args.Get(0).(*service.SubmitOutcome)
	return out, args.Error(1)
}

func (m *MockQuizService) GetResult(ctx context.Context, id string) (*domain.ScoredResult, error) {
	args := m.Called(ctx, id)
	result, _ := args.Get(0).(*domain.ScoredResult)
	return result, args.Error(1)
}

func (m *MockQuizService) ExportCertificate(ctx context.Context, id string) (*certify.Outcome, error) {
	args := m.Called(ctx, id)
	outcome, _ := args.Get(0).(*certify.Outcome)
	return outcome, args.Error(1)
}

func (m *MockQuizService) Abandon(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// newMockedApp mounts the quiz handler with the session ID preset.
func newMockedApp(svc service.QuizService) *fiber.App {
	h := handler.NewQuizHandler(svc)
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.SessionIDKey, sessionID)
		return c.Next()
	})
	app.Post("/quiz", h.SubmitPage)
	app.Get("/result/certificate", h.DownloadCertificate)
	return app
}

func samplePage() *domain.Page {
	return &domain.Page{Number: 2, TotalPages: 2, Questions: []domain.PageQuestion{{
		Index:    3,
		Question: domain.Question{Text: "Pick ", Answers: []string{"a", "b"}, Correct: []string{"a", "b"}},
		Shape:    domain.ShapeMultiSelect,
	}}}
}

func TestQuizHandler_SubmitPageMultipart(t *testing.T) {
	svc := new(MockQuizService)
	svc.On("SubmitPage", mock.Anything, sessionID, 1, map[int][]string{3: {"a", "b"}}, false).
		Return(&service.SubmitOutcome{Session: &domain.QuizSession{Course: "go"}, Page: samplePage()}, nil).Once()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("page", "1"))
	require.NoError(t, w.WriteField("question3", "a"))
	require.NoError(t, w.WriteField("question3", "b"))
	require.NoError(t, w.WriteField("unrelated", "x"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/quiz", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := newMockedApp(svc).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestQuizHandler_SubmitPageFinishAction(t *testing.T) {
	svc := new(MockQuizService)
	svc.On("SubmitPage", mock.Anything, sessionID, 2, map[int][]string{1: {"Paris"}}, true).
		Return(&service.SubmitOutcome{Result: &domain.ScoredResult{Course: "go", Score: 1, Total: 1}}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/quiz", strings.NewReader("page=2&1=Paris&action=finish"))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, err := newMockedApp(svc).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), `"finished":true`)
	assert.Contains(t, string(raw), `"percentage":"100.00%"`)
	svc.AssertExpectations(t)
}

func TestQuizHandler_SubmitPageBadInput(t *testing.T) {
	svc := new(MockQuizService)
	app := newMockedApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/quiz", strings.NewReader("page=two"))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/quiz", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	svc.AssertNotCalled(t, "SubmitPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestQuizHandler_SubmitPageStateError(t *testing.T) {
	svc := new(MockQuizService)
	svc.On("SubmitPage", mock.Anything, sessionID, 1, map[int][]string{}, false).
		Return(nil, domain.NewInvalidSessionStateError(domain.SessionFinished, "submit_page")).Once()

	req := httptest.NewRequest(http.MethodPost, "/quiz", strings.NewReader(`{"page":1}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := newMockedApp(svc).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestQuizHandler_DownloadCertificate(t *testing.T) {
	t.Run("signed", func(t *testing.T) {
		svc := new(MockQuizService)
		svc.On("ExportCertificate", mock.Anything, sessionID).
			Return(&certify.Outcome{Bytes: []byte("%PDF-signed"), Signed: true}, nil).Once()

		resp, err := newMockedApp(svc).Test(httptest.NewRequest(http.MethodGet, "/result/certificate", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "true", resp.Header.Get(handler.HeaderResultSigned))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
		raw, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "%PDF-signed", string(raw))
	})

	t.Run("signing fell back", func(t *testing.T) {
		svc := new(MockQuizService)
		svc.On("ExportCertificate", mock.Anything, sessionID).
			Return(&certify.Outcome{Bytes: []byte("%PDF-plain"), Fallback: domain.NewSigningError("bad key", errors.New("boom"))}, nil).Once()

		resp, err := newMockedApp(svc).Test(httptest.NewRequest(http.MethodGet, "/result/certificate", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "false", resp.Header.Get(handler.HeaderResultSigned))
	})

	t.Run("render failure", func(t *testing.T) {
		svc := new(MockQuizService)
		svc.On("ExportCertificate", mock.Anything, sessionID).
			Return(nil, domain.NewRenderError(errors.New("font"))).Once()

		resp, err := newMockedApp(svc).Test(httptest.NewRequest(http.MethodGet, "/result/certificate", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}
