package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"quiz-exam/internal/cache"
	"quiz-exam/internal/domain"
	"quiz-exam/internal/logger"
	"quiz-exam/internal/util"

	"go.uber.org/zap"
)

// SessionService persists quiz sessions in the cache. The session record and
// its answers live under separate keys; answers are one hash field per
// question index so concurrent submits only race per question.
type SessionService interface {
	Start(ctx context.Context, course string, questions domain.ExamSet) (*domain.QuizSession, error)
	Load(ctx context.Context, sessionID string) (*domain.QuizSession, error)
	// ReadPage returns page of the session; page 0 means the current page.
	ReadPage(ctx context.Context, sessionID string, page int) (*domain.Page, error)
	SubmitPage(ctx context.Context, sessionID string, page int, answers map[int][]string) (*domain.QuizSession, error)
	Advance(ctx context.Context, sessionID string) (*domain.QuizSession, error)
	Finish(ctx context.Context, sessionID string) (*domain.Snapshot, error)
	Abandon(ctx context.Context, sessionID string) error
}

type sessionServiceImpl struct {
	cache    domain.Cache
	pageSize int
	ttl      time.Duration
	now      func() time.Time
	newID    func() string
}

// NewSessionService creates a new SessionService. ttl is refreshed on every write.
func NewSessionService(cache domain.Cache, pageSize int, ttl time.Duration) SessionService {
	return &sessionServiceImpl{
		cache:    cache,
		pageSize: pageSize,
		ttl:      ttl,
		now:      time.Now,
		newID:    util.NewULID,
	}
}

func (s *sessionServiceImpl) Start(ctx context.Context, course string, questions domain.ExamSet) (*domain.QuizSession, error) {
	session, err := domain.NewQuizSession(s.newID(), course, questions, s.pageSize, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.saveRecord(ctx, session); err != nil {
		return nil, err
	}
	logger.Get().Info("Quiz session started",
		zap.String("sessionID", session.ID),
		zap.String("course", course),
		zap.Int("questions", len(questions)),
		zap.Int("pages", session.TotalPages()))
	return session, nil
}

func (s *sessionServiceImpl) Load(ctx context.Context, sessionID string) (*domain.QuizSession, error) {
	if sessionID == "" {
		return nil, domain.NewSessionNotFoundError()
	}

	data, err := s.cache.Get(ctx, cache.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Quiz session not found", zap.String("sessionID", sessionID))
			return nil, domain.NewSessionNotFoundError()
		}
		logger.Get().Error("Failed to read quiz session", zap.Error(err), zap.String("sessionID", sessionID))
		return nil, domain.NewInternalError("failed to read quiz session", err)
	}

	var session domain.QuizSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		logger.Get().Error("Corrupt quiz session record", zap.Error(err), zap.String("sessionID", sessionID))
		return nil, domain.NewInternalError("failed to decode quiz session", err)
	}

	fields, err := s.cache.HGetAll(ctx, cache.AnswersKey(sessionID))
	if err != nil {
		logger.Get().Error("Failed to read quiz answers", zap.Error(err), zap.String("sessionID", sessionID))
		return nil, domain.NewInternalError("failed to read quiz answers", err)
	}
	session.Answers = decodeAnswers(sessionID, fields)
	return &session, nil
}

func (s *sessionServiceImpl) ReadPage(ctx context.Context, sessionID string, page int) (*domain.Page, error) {
	session, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if page == 0 {
		page = session.CurrentPage
	}
	return session.ReadPage(page)
}

func (s *sessionServiceImpl) SubmitPage(ctx context.Context, sessionID string, page int, answers map[int][]string) (*domain.QuizSession, error) {
	session, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if page == 0 {
		page = session.CurrentPage
	}
	written, err := session.SubmitPage(page, answers)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string, len(written))
	for idx, values := range written {
		encoded, err := json.Marshal(values)
		if err != nil {
			return nil, domain.NewInternalError("failed to encode answers", err)
		}
		fields[strconv.Itoa(idx)] = string(encoded)
	}
	answersKey := cache.AnswersKey(sessionID)
	if err := s.cache.HSet(ctx, answersKey, fields); err != nil {
		logger.Get().Error("Failed to store quiz answers", zap.Error(err), zap.String("sessionID", sessionID))
		return nil, domain.NewInternalError("failed to store quiz answers", err)
	}
	if err := s.saveRecord(ctx, session); err != nil {
		return nil, err
	}

	logger.Get().Debug("Quiz page submitted",
		zap.String("sessionID", sessionID),
		zap.Int("page", page),
		zap.Int("written", len(written)))
	return session, nil
}

func (s *sessionServiceImpl) Advance(ctx context.Context, sessionID string) (*domain.QuizSession, error) {
	session, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Advance(); err != nil {
		return nil, err
	}
	if err := s.saveRecord(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionServiceImpl) Finish(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	session, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	snapshot, err := session.Finish()
	if err != nil {
		return nil, err
	}
	if err := s.Abandon(ctx, sessionID); err != nil {
		return nil, err
	}
	logger.Get().Info("Quiz session finished", zap.String("sessionID", sessionID), zap.Int("answered", len(snapshot.Answers)))
	return snapshot, nil
}

func (s *sessionServiceImpl) Abandon(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.cache.Delete(ctx, cache.SessionKey(sessionID), cache.AnswersKey(sessionID)); err != nil {
		logger.Get().Error("Failed to delete quiz session", zap.Error(err), zap.String("sessionID", sessionID))
		return domain.NewInternalError("failed to delete quiz session", err)
	}
	return nil
}

// saveRecord writes the session record and refreshes the TTL of both keys.
func (s *sessionServiceImpl) saveRecord(ctx context.Context, session *domain.QuizSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return domain.NewInternalError("failed to encode quiz session", err)
	}
	if err := s.cache.Set(ctx, cache.SessionKey(session.ID), string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to store quiz session", zap.Error(err), zap.String("sessionID", session.ID))
		return domain.NewInternalError("failed to store quiz session", err)
	}
	if err := s.cache.Expire(ctx, cache.AnswersKey(session.ID), s.ttl); err != nil {
		logger.Get().Error("Failed to refresh quiz answers expiration", zap.Error(err), zap.String("sessionID", session.ID))
		return domain.NewInternalError("failed to refresh quiz answers expiration", err)
	}
	return nil
}

// decodeAnswers turns hash fields into the index-keyed answer map. Fields
// that do not decode are dropped.
func decodeAnswers(sessionID string, fields map[string]string) map[int][]string {
	answers := make(map[int][]string, len(fields))
	for field, raw := range fields {
		idx, err := strconv.Atoi(field)
		if err != nil || idx < 1 {
			logger.Get().Warn("Ignoring malformed answer field", zap.String("sessionID", sessionID), zap.String("field", field))
			continue
		}
		var values []string
		if err := json.Unmarshal([]byte(raw), &values); err != nil {
			logger.Get().Warn("Ignoring undecodable answer", zap.String("sessionID", sessionID), zap.String("field", field), zap.Error(err))
			continue
		}
		if values == nil {
			values = []string{}
		}
		answers[idx] = values
	}
	return answers
}
