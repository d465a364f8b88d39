package service

import (
	"context"
	"time"

	"quiz-exam/internal/certify"
	"quiz-exam/internal/domain"
	"quiz-exam/internal/logger"

	"go.uber.org/zap"
)

// ResultRenderer renders a scored result into a document.
type ResultRenderer interface {
	Render(result *domain.ScoredResult) ([]byte, error)
}

// ResultCertifier optionally signs a rendered document.
type ResultCertifier interface {
	Certify(artifact []byte) certify.Outcome
}

// SubmitOutcome is either the page to show next or, once finished, the result.
type SubmitOutcome struct {
	Session *domain.QuizSession
	Page    *domain.Page
	Result  *domain.ScoredResult
}

// QuizService drives one exam attempt from assembly to certificate.
type QuizService interface {
	StartExam(ctx context.Context, course string, files []string) (*domain.QuizSession, *domain.Page, error)
	GetPage(ctx context.Context, sessionID string, page int) (*domain.QuizSession, *domain.Page, error)
	SubmitPage(ctx context.Context, sessionID string, page int, answers map[int][]string, finish bool) (*SubmitOutcome, error)
	GetResult(ctx context.Context, sessionID string) (*domain.ScoredResult, error)
	ExportCertificate(ctx context.Context, sessionID string) (*certify.Outcome, error)
	Abandon(ctx context.Context, sessionID string) error
}

type quizService struct {
	exams     ExamService
	sessions  SessionService
	results   ResultCacheService
	renderer  ResultRenderer
	certifier ResultCertifier
	now       func() time.Time
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	exams ExamService,
	sessions SessionService,
	results ResultCacheService,
	renderer ResultRenderer,
	certifier ResultCertifier,
) QuizService {
	return &quizService{
		exams:     exams,
		sessions:  sessions,
		results:   results,
		renderer:  renderer,
		certifier: certifier,
		now:       time.Now,
	}
}

// StartExam builds an exam from the selected files and opens a session on page 1.
func (s *quizService) StartExam(ctx context.Context, course string, files []string) (*domain.QuizSession, *domain.Page, error) {
	questions, err := s.exams.BuildExam(ctx, course, files)
	if err != nil {
		return nil, nil, err
	}
	session, err := s.sessions.Start(ctx, course, questions)
	if err != nil {
		return nil, nil, err
	}
	page, err := session.ReadPage(session.CurrentPage)
	if err != nil {
		return nil, nil, err
	}
	return session, page, nil
}

// GetPage reads page of the session; page 0 means the current page.
func (s *quizService) GetPage(ctx context.Context, sessionID string, page int) (*domain.QuizSession, *domain.Page, error) {
	session, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if page == 0 {
		page = session.CurrentPage
	}
	p, err := session.ReadPage(page)
	if err != nil {
		return nil, nil, err
	}
	return session, p, nil
}

// SubmitPage stores the answers of page. Without finish the session moves
// forward when page is its current page and the following page is returned;
// on the last page the same page is returned. With finish the session is
// scored and closed.
func (s *quizService) SubmitPage(ctx context.Context, sessionID string, page int, answers map[int][]string, finish bool) (*SubmitOutcome, error) {
	session, err := s.sessions.SubmitPage(ctx, sessionID, page, answers)
	if err != nil {
		return nil, err
	}
	if page == 0 {
		page = session.CurrentPage
	}

	if finish {
		result, err := s.finish(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		return &SubmitOutcome{Result: result}, nil
	}

	next := page
	if page < session.TotalPages() {
		next = page + 1
		if page == session.CurrentPage {
			if session, err = s.sessions.Advance(ctx, sessionID); err != nil {
				return nil, err
			}
		}
	}
	p, err := session.ReadPage(next)
	if err != nil {
		return nil, err
	}
	return &SubmitOutcome{Session: session, Page: p}, nil
}

func (s *quizService) finish(ctx context.Context, sessionID string) (*domain.ScoredResult, error) {
	snapshot, err := s.sessions.Finish(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	result := Score(snapshot.Questions, snapshot.Answers)
	result.SessionID = snapshot.SessionID
	result.Course = snapshot.Course
	result.FinishedAt = s.now().UTC()

	if err := s.results.Put(ctx, result); err != nil {
		return nil, err
	}
	logger.Get().Info("Exam scored",
		zap.String("sessionID", sessionID),
		zap.String("course", result.Course),
		zap.Int("score", result.Score),
		zap.Int("total", result.Total))
	return result, nil
}

func (s *quizService) GetResult(ctx context.Context, sessionID string) (*domain.ScoredResult, error) {
	return s.results.Get(ctx, sessionID)
}

// ExportCertificate renders the cached result and signs it when possible.
// Only a render failure is an error.
func (s *quizService) ExportCertificate(ctx context.Context, sessionID string) (*certify.Outcome, error) {
	result, err := s.results.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	artifact, err := s.renderer.Render(result)
	if err != nil {
		logger.Get().Error("Failed to render result document", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, err
	}
	outcome := s.certifier.Certify(artifact)
	return &outcome, nil
}

// Abandon drops the running session and any cached result.
func (s *quizService) Abandon(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Abandon(ctx, sessionID); err != nil {
		return err
	}
	return s.results.Delete(ctx, sessionID)
}
