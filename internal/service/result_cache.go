package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz-exam/internal/cache"
	"quiz-exam/internal/domain"
	"quiz-exam/internal/logger"

	"go.uber.org/zap"
)

// ResultCacheService keeps the scored result of a finished session for a
// limited time so it can be shown again and exported.
type ResultCacheService interface {
	Put(ctx context.Context, result *domain.ScoredResult) error
	Get(ctx context.Context, sessionID string) (*domain.ScoredResult, error)
	Delete(ctx context.Context, sessionID string) error
}

type resultCacheServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewResultCacheService creates a new ResultCacheService.
func NewResultCacheService(cache domain.Cache, ttl time.Duration) ResultCacheService {
	if cache == nil {
		logger.Get().Warn("ResultCacheService initialized with nil cache. Service will be no-op.")
		return &noopResultCacheService{}
	}
	return &resultCacheServiceImpl{
		cache: cache,
		ttl:   ttl,
	}
}

// Put stores result under its session ID.
func (s *resultCacheServiceImpl) Put(ctx context.Context, result *domain.ScoredResult) error {
	if result == nil || result.SessionID == "" {
		return domain.NewInvalidInputError("cannot cache a result without session")
	}

	key := cache.ResultKey(result.SessionID)
	dataBytes, err := json.Marshal(result)
	if err != nil {
		logger.Get().Error("Failed to marshal result for caching", zap.Error(err), zap.String("sessionID", result.SessionID))
		return domain.NewInternalError("failed to marshal result for caching", err)
	}

	if err := s.cache.Set(ctx, key, string(dataBytes), s.ttl); err != nil {
		logger.Get().Error("Failed to cache result", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set result to cache for key %s", key), err)
	}
	logger.Get().Debug("Successfully cached result", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

// Get returns the cached result or a RESULT_NOT_AVAILABLE error.
func (s *resultCacheServiceImpl) Get(ctx context.Context, sessionID string) (*domain.ScoredResult, error) {
	if sessionID == "" {
		return nil, domain.NewResultNotAvailableError()
	}

	key := cache.ResultKey(sessionID)
	dataString, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Result cache miss", zap.String("key", key))
			return nil, domain.NewResultNotAvailableError()
		}
		logger.Get().Error("Failed to get result from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get result from cache for key %s", key), err)
	}
	if dataString == "" {
		return nil, domain.NewResultNotAvailableError()
	}

	var result domain.ScoredResult
	if err := json.Unmarshal([]byte(dataString), &result); err != nil {
		logger.Get().Error("Failed to unmarshal result from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal result from cache for key %s", key), err)
	}
	return &result, nil
}

func (s *resultCacheServiceImpl) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.cache.Delete(ctx, cache.ResultKey(sessionID)); err != nil {
		return domain.NewInternalError("failed to delete cached result", err)
	}
	return nil
}

type noopResultCacheService struct{}

func (s *noopResultCacheService) Put(ctx context.Context, result *domain.ScoredResult) error {
	return nil
}

func (s *noopResultCacheService) Get(ctx context.Context, sessionID string) (*domain.ScoredResult, error) {
	return nil, domain.NewResultNotAvailableError()
}

func (s *noopResultCacheService) Delete(ctx context.Context, sessionID string) error {
	return nil
}
