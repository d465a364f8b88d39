package handler

import (
	"context"
	"time"

	"quiz-exam/internal/domain"
	"quiz-exam/internal/dto"
	"quiz-exam/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports whether the session store answers.
type HealthHandler struct {
	cache domain.Cache
	store string
}

// NewHealthHandler creates a HealthHandler. store names the backing cache
// ("redis" or "memory") in responses.
func NewHealthHandler(cache domain.Cache, store string) *HealthHandler {
	return &HealthHandler{cache: cache, store: store}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	if err := h.cache.Ping(ctx); err != nil {
		logger.Get().Error("Session store health check failed", zap.String("store", h.store), zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "unavailable", Store: h.store})
	}
	return c.JSON(dto.HealthResponse{Status: "ok", Store: h.store})
}
