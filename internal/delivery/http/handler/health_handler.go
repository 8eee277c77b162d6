package handler

import (
	"context"
	"time"

	"sukasamasuka/internal/database"
	"sukasamasuka/internal/infrastructure/cache"
	"sukasamasuka/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, redis *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: redis}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/healthz", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	components := map[string]string{
		"postgres": "ok",
		"redis":    "ok",
	}
	status := fiber.StatusOK

	if h.db == nil || h.db.Ping(ctx) != nil {
		components["postgres"] = "down"
		status = fiber.StatusServiceUnavailable
	}
	// Redis is optional: the app degrades without it, so it never flips
	// the overall status.
	if h.cache.Ping(ctx) != nil {
		components["redis"] = "down"
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "degraded", components)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, components)
}
