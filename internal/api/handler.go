package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

type HealthChecker interface {
	Ping(ctx context.Context) error
	Uptime() time.Duration
}

type Handler struct {
	logger *zap.Logger
	health HealthChecker
}

func NewHandler(logger *zap.Logger, health HealthChecker) *Handler {
	return &Handler{logger: logger, health: health}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

func (h *Handler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	response := HealthResponse{
		Status:   "ok",
		Database: "up",
		Uptime:   h.health.Uptime().Truncate(time.Second).String(),
	}

	if err := h.health.Ping(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		response.Status = "degraded"
		response.Database = "down"
		return c.Status(fiber.StatusServiceUnavailable).JSON(response)
	}

	return c.JSON(response)
}
