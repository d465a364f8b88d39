package service_test

import (
	"context"
	"errors"
	"time"

	"quiz-exam/internal/certify"
	"quiz-exam/internal/domain"

	"github.com/stretchr/testify/mock"
)

// ManualMockCache for domain.Cache interface
type ManualMockCache struct {
	GetFunc     func(ctx context.Context, key string) (string, error)
	SetFunc     func(ctx context.Context, key string, value string, ttl time.Duration) error
	DeleteFunc  func(ctx context.Context, keys ...string) error
	HSetFunc    func(ctx context.Context, key string, values map[string]string) error
	HGetAllFunc func(ctx context.Context, key string) (map[string]string, error)
	ExpireFunc  func(ctx context.Context, key string, expiration time.Duration) error
	PingFunc    func(ctx context.Context) error
}

func (m *ManualMockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", errors.New("GetFunc not set")
}

func (m *ManualMockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	return errors.New("SetFunc not set")
}

func (m *ManualMockCache) Delete(ctx context.Context, keys ...string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, keys...)
	}
	return errors.New("DeleteFunc not set")
}

func (m *ManualMockCache) HSet(ctx context.Context, key string, values map[string]string) error {
	if m.HSetFunc != nil {
		return m.HSetFunc(ctx, key, values)
	}
	return errors.New("HSetFunc not set")
}

func (m *ManualMockCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.HGetAllFunc != nil {
		return m.HGetAllFunc(ctx, key)
	}
	return nil, errors.New("HGetAllFunc not set")
}

func (m *ManualMockCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	if m.ExpireFunc != nil {
		return m.ExpireFunc(ctx, key, expiration)
	}
	return errors.New("ExpireFunc not set")
}

func (m *ManualMockCache) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return errors.New("PingFunc not set")
}

// --- MockCourseCatalog ---
type MockCourseCatalog struct {
	mock.Mock
}

func (m *MockCourseCatalog) ListCourses(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func (m *MockCourseCatalog) ListExamFiles(ctx context.Context, course string) []string {
	args := m.Called(ctx, course)
	return args.Get(0).([]string)
}

func (m *MockCourseCatalog) ReadExamFile(ctx context.Context, course, name string) ([]byte, error) {
	args := m.Called(ctx, course, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- MockRenderer ---
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(result *domain.ScoredResult) ([]byte, error) {
	args := m.Called(result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- MockCertifier ---
type MockCertifier struct {
	mock.Mock
}

func (m *MockCertifier) Certify(artifact []byte) certify.Outcome {
	args := m.Called(artifact)
	return args.Get(0).(certify.Outcome)
}
