package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/store-rating-service/internal/service"
)

// StatsHandler serves the dashboard counters.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{service: statsService}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(c *fiber.Ctx) error {
	totals, err := h.service.Collect(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(totals)
}
