// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"classifieds-service/internal/app/service"
	"classifieds-service/internal/domain"
	"classifieds-service/internal/transport/httpserver/dto"
	"classifieds-service/internal/validator"
)

// Identity headers set by the API gateway after authentication.
const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"
)

// AdsHandler handles ad-related HTTP requests.
type AdsHandler struct {
	service   *service.AdsService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewAdsHandler creates a new AdsHandler.
func NewAdsHandler(svc *service.AdsService, v *validator.Validator, logger *zap.Logger) *AdsHandler {
	return &AdsHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Search handles GET /api/v1/ads
func (h *AdsHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	result, err := h.service.Search(c.Context(), req.ToFilterSpec())
	if err != nil {
		return h.respondError(c, err, "search failed")
	}

	return c.JSON(dto.FromPaginatedResult(result))
}

// GetByID handles GET /api/v1/ads/:id
func (h *AdsHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	ad, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return h.respondError(c, err, "failed to get ad")
	}

	return c.JSON(dto.FromDetailedAd(ad))
}

// Create handles POST /api/v1/ads
func (h *AdsHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.CreateAdRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	ad, detail := req.ToDomain()
	created, err := h.service.Create(c.Context(), actor, ad, detail)
	if err != nil {
		return h.respondError(c, err, "failed to create ad")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FromDetailedAd(created))
}

// Update handles PATCH /api/v1/ads/:id
func (h *AdsHandler) Update(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.UpdateAdRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	updated, err := h.service.Update(c.Context(), actor, c.Params("id"), req.ToPatch())
	if err != nil {
		return h.respondError(c, err, "failed to update ad")
	}

	return c.JSON(dto.FromDetailedAd(updated))
}

// Delete handles DELETE /api/v1/ads/:id
func (h *AdsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.service.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return h.respondError(c, err, "failed to delete ad")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// respondError maps service errors to HTTP responses. Validation
// failures are 400, missing (or not owned) ads are 404, everything
// else is a logged 500.
func (h *AdsHandler) respondError(c *fiber.Ctx, err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "ad not found",
			Code:  "NOT_FOUND",
		})
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   ve.Message,
			Code:    "VALIDATION_ERROR",
			Details: ve.Fields,
		})
	}

	h.logger.Error(msg,
		zap.String("path", c.Path()),
		zap.Error(err),
	)

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: msg,
		Code:  "INTERNAL_ERROR",
	})
}

// actorFrom reads the gateway identity headers.
func actorFrom(c *fiber.Ctx) (domain.Actor, bool) {
	userID := c.Get(headerUserID)
	if userID == "" {
		return domain.Actor{}, false
	}

	return domain.Actor{
		UserID: userID,
		Role:   c.Get(headerUserRole),
	}, true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: "authentication required",
		Code:  "UNAUTHORIZED",
	})
}
