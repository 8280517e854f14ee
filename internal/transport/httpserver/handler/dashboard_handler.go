package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"classifieds-service/internal/app/service"
)

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	adsService *service.AdsService
	logger     *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *service.AdsService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		adsService: svc,
		logger:     logger,
	}
}

// Render handles GET /dashboard
// Renders the dashboard HTML page using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	counts, err := h.adsService.CountByCategory(c.Context())
	if err != nil {
		h.logger.Warn("dashboard counts unavailable", zap.Error(err))
	}

	var total int64
	byCategory := make(map[string]int64, len(counts))
	for category, count := range counts {
		byCategory[string(category)] = count
		total += count
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title":      "Classifieds Dashboard",
		"TotalAds":   total,
		"ByCategory": byCategory,
	}, "layouts/base")
}

// Stats handles GET /api/v1/admin/stats
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	counts, err := h.adsService.CountByCategory(c.Context())
	if err != nil {
		h.logger.Error("stats query failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "stats unavailable",
			"code":  "INTERNAL_ERROR",
		})
	}

	var total int64
	byCategory := make(map[string]int64, len(counts))
	for category, count := range counts {
		byCategory[string(category)] = count
		total += count
	}

	return c.JSON(fiber.Map{
		"totalAds":   total,
		"byCategory": byCategory,
	})
}
