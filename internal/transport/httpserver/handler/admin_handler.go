package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"classifieds-service/internal/app/service"
	"classifieds-service/internal/transport/httpserver/dto"
)

// AdminHandler handles cache and integrity maintenance requests.
type AdminHandler struct {
	adsService  *service.AdsService
	consistency *service.ConsistencyService
	logger      *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adsSvc *service.AdsService, consistencySvc *service.ConsistencyService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adsService:  adsSvc,
		consistency: consistencySvc,
		logger:      logger,
	}
}

// WarmUp handles POST /api/v1/admin/cache/warmup
func (h *AdminHandler) WarmUp(c *fiber.Ctx) error {
	warmed, err := h.adsService.WarmUp(c.Context())
	if err != nil {
		h.logger.Error("manual warm-up failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   "warm-up failed",
			Code:    "INTERNAL_ERROR",
			Details: dto.WarmupResponse{PagesWarmed: warmed},
		})
	}

	return c.JSON(dto.WarmupResponse{PagesWarmed: warmed})
}

// ClearCache handles DELETE /api/v1/admin/cache
func (h *AdminHandler) ClearCache(c *fiber.Ctx) error {
	if err := h.adsService.ClearCache(c.Context()); err != nil {
		h.logger.Error("cache clear failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "cache clear failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ConsistencyScan handles POST /api/v1/admin/consistency/scan
func (h *AdminHandler) ConsistencyScan(c *fiber.Ctx) error {
	var req dto.ScanRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	report, err := h.consistency.Scan(c.Context(), req.Purge)
	if err != nil {
		h.logger.Error("consistency scan failed", zap.Error(err))

		resp := dto.ErrorResponse{
			Error: "consistency scan failed",
			Code:  "INTERNAL_ERROR",
		}
		// Purge failures still report the progress made before the error
		if report != nil {
			resp.Details = dto.FromScanReport(report)
		}

		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}

	return c.JSON(dto.FromScanReport(report))
}
