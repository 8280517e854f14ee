// Package service provides application use cases.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"classifieds-service/internal/domain"
)

// AdsService is the façade over ad reads and writes. It owns input
// validation, inventory reference checks, commercial detection, cache
// consultation and invalidation; persistence stays behind the
// repository port.
type AdsService struct {
	repo     domain.AdRepository
	resolver domain.InventoryResolver
	detector *domain.CommercialDetector
	cache    *QueryCache
	logger   *zap.Logger
}

// NewAdsService creates a new AdsService.
func NewAdsService(
	repo domain.AdRepository,
	resolver domain.InventoryResolver,
	cache *QueryCache,
	logger *zap.Logger,
) *AdsService {
	return &AdsService{
		repo:     repo,
		resolver: resolver,
		detector: domain.NewCommercialDetector(resolver),
		cache:    cache,
		logger:   logger,
	}
}

// Search returns one page of ads for the filter, consulting the cache
// when the query qualifies.
func (s *AdsService) Search(ctx context.Context, f domain.FilterSpec) (*domain.PaginatedResult, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	cacheable := s.cache.Cacheable(f)
	if cacheable {
		if result := s.cache.GetSearch(ctx, f); result != nil {
			s.logger.Debug("search served from cache",
				zap.Int("page", f.Page),
				zap.Int64("total", result.Total),
			)
			return result, nil
		}
	}

	result, err := s.repo.Search(ctx, f)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		return nil, err
	}

	if cacheable {
		s.cache.SetSearch(ctx, f, result)
	}

	s.logger.Debug("search completed",
		zap.Int64("total", result.Total),
		zap.Int("count", len(result.Data)),
		zap.Bool("cacheable", cacheable),
	)

	return result, nil
}

// GetByID returns the denormalized ad, cache first.
func (s *AdsService) GetByID(ctx context.Context, id string) (*domain.DetailedAd, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}

	if ad := s.cache.GetAd(ctx, id); ad != nil {
		return ad, nil
	}

	ad, err := s.repo.GetDetailedByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("get ad failed", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.cache.SetAd(ctx, ad)

	return ad, nil
}

// Create validates and persists a new ad with its detail record, then
// returns the denormalized read-back.
//
// For commercial-vehicle ads the detector fills the commercial-only
// fields the caller left unset; explicit caller values always win.
func (s *AdsService) Create(ctx context.Context, actor domain.Actor, ad *domain.Ad, detail domain.AdDetail) (*domain.DetailedAd, error) {
	ad.PostedBy = actor.UserID

	if err := validateNewAd(ad, detail); err != nil {
		return nil, err
	}

	if err := s.resolveDetailReferences(ctx, detail); err != nil {
		return nil, err
	}

	if ad.Category == domain.CategoryCommercialVehicle {
		result := s.detector.Detect(ctx, detail.Commercial.ModelID)
		result.ApplyDefaults(detail.Commercial)
	}

	if err := s.repo.CreateAd(ctx, ad, detail); err != nil {
		s.logger.Error("create ad failed",
			zap.String("category", string(ad.Category)),
			zap.Error(err),
		)
		return nil, err
	}

	s.cache.Invalidate(ctx, ad.ID)

	s.logger.Info("ad created",
		zap.String("id", ad.ID),
		zap.String("category", string(ad.Category)),
		zap.String("posted_by", ad.PostedBy),
	)

	return s.repo.GetDetailedByID(ctx, ad.ID)
}

// Update applies a partial update to an ad the actor owns (or any ad
// for admins). A missing ad and a non-owned ad both return
// ErrNotFound so that callers cannot probe for existence.
func (s *AdsService) Update(ctx context.Context, actor domain.Actor, id string, patch AdPatch) (*domain.DetailedAd, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}

	existing, err := s.repo.GetDetailedByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(&existing.Ad) {
		return nil, domain.ErrNotFound
	}

	if patch.Category != nil && *patch.Category != existing.Category {
		return nil, domain.NewValidationError("category cannot be changed after creation")
	}
	if err := patch.validateAgainst(existing); err != nil {
		return nil, err
	}

	changedRefs := patch.applyTo(existing)

	if err := validateNewAd(&existing.Ad, existing.Detail); err != nil {
		return nil, err
	}
	if err := s.resolveReferenceIDs(ctx, changedRefs); err != nil {
		return nil, err
	}

	if existing.Category == domain.CategoryCommercialVehicle && changedRefs.modelChanged {
		result := s.detector.Detect(ctx, existing.Detail.Commercial.ModelID)
		result.ApplyDefaults(existing.Detail.Commercial)
	}

	if err := s.repo.UpdateAd(ctx, &existing.Ad, existing.Detail); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("update ad failed", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, id)

	s.logger.Info("ad updated",
		zap.String("id", id),
		zap.String("actor", actor.UserID),
	)

	return s.repo.GetDetailedByID(ctx, id)
}

// Delete removes the base record of an ad the actor owns. The detail
// record is intentionally left for the consistency scan to reap.
func (s *AdsService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}

	ad, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(ad) {
		return domain.ErrNotFound
	}

	if err := s.repo.DeleteAd(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("delete ad failed", zap.String("id", id), zap.Error(err))
		}
		return err
	}

	s.cache.Invalidate(ctx, id)

	s.logger.Info("ad deleted",
		zap.String("id", id),
		zap.String("actor", actor.UserID),
	)

	return nil
}

// WarmUp pre-computes the first default-sorted page for each category
// plus the unfiltered listing. Returns the number of pages cached.
func (s *AdsService) WarmUp(ctx context.Context) (int, error) {
	filters := make([]domain.FilterSpec, 0, len(domain.AllCategories)+1)
	filters = append(filters, domain.DefaultFilterSpec())
	for _, category := range domain.AllCategories {
		f := domain.DefaultFilterSpec()
		f.Category = category
		filters = append(filters, f)
	}

	warmed := 0
	for _, f := range filters {
		result, err := s.repo.Search(ctx, f)
		if err != nil {
			s.logger.Warn("warm-up query failed",
				zap.String("category", string(f.Category)),
				zap.Error(err),
			)
			return warmed, err
		}
		s.cache.SetSearch(ctx, f, result)
		warmed++
	}

	s.logger.Info("cache warm-up completed", zap.Int("pages", warmed))

	return warmed, nil
}

// ClearCache drops every cached search page and single-ad entry.
func (s *AdsService) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

// CountByCategory returns ad counts per category for the dashboard.
func (s *AdsService) CountByCategory(ctx context.Context) (map[domain.AdCategory]int64, error) {
	return s.repo.CountByCategory(ctx)
}

// validateNewAd checks the base fields and the category/detail pairing.
func validateNewAd(ad *domain.Ad, detail domain.AdDetail) error {
	var fields []string

	if ad.Title == "" {
		fields = append(fields, "title")
	}
	if ad.Description == "" {
		fields = append(fields, "description")
	}
	if ad.Price < 0 {
		fields = append(fields, "price")
	}
	if ad.Location == "" {
		fields = append(fields, "location")
	}
	if ad.PostedBy == "" {
		fields = append(fields, "postedBy")
	}
	if !ad.Category.Valid() {
		return domain.NewValidationError("unknown category: " + string(ad.Category))
	}

	switch ad.Category {
	case domain.CategoryProperty:
		if detail.Property == nil || detail.Vehicle != nil || detail.Commercial != nil {
			return domain.NewValidationError("property ads require exactly the property details block")
		}
		if detail.Property.PropertyType == "" {
			fields = append(fields, "details.propertyType")
		}
	case domain.CategoryPrivateVehicle, domain.CategoryTwoWheeler:
		if detail.Vehicle == nil || detail.Property != nil || detail.Commercial != nil {
			return domain.NewValidationError("vehicle ads require exactly the vehicle details block")
		}
		fields = append(fields, missingVehicleFields(
			detail.Vehicle.VehicleType, detail.Vehicle.ManufacturerID, detail.Vehicle.ModelID, detail.Vehicle.Year,
		)...)
	case domain.CategoryCommercialVehicle:
		if detail.Commercial == nil || detail.Property != nil || detail.Vehicle != nil {
			return domain.NewValidationError("commercial vehicle ads require exactly the commercial details block")
		}
		fields = append(fields, missingVehicleFields(
			detail.Commercial.VehicleType, detail.Commercial.ManufacturerID, detail.Commercial.ModelID, detail.Commercial.Year,
		)...)
	}

	if len(fields) > 0 {
		return domain.NewFieldValidationError("missing or invalid fields", fields...)
	}

	return nil
}

func missingVehicleFields(vehicleType, manufacturerID, modelID string, year int) []string {
	var fields []string
	if vehicleType == "" {
		fields = append(fields, "details.vehicleType")
	}
	if manufacturerID == "" {
		fields = append(fields, "details.manufacturerId")
	}
	if modelID == "" {
		fields = append(fields, "details.modelId")
	}
	if year < 1900 {
		fields = append(fields, "details.year")
	}

	return fields
}

// referenceIDs collects the inventory references to resolve for one
// write.
type referenceIDs struct {
	manufacturerID     string
	modelID            string
	variantID          string
	fuelTypeID         string
	transmissionTypeID string
	modelChanged       bool
}

// resolveDetailReferences validates every inventory reference carried
// by a vehicle-category detail block. Individual failures are
// aggregated into one validation error so the caller sees all bad
// references at once.
func (s *AdsService) resolveDetailReferences(ctx context.Context, detail domain.AdDetail) error {
	var refs referenceIDs

	switch {
	case detail.Vehicle != nil:
		refs = referenceIDs{
			manufacturerID:     detail.Vehicle.ManufacturerID,
			modelID:            detail.Vehicle.ModelID,
			variantID:          detail.Vehicle.VariantID,
			fuelTypeID:         detail.Vehicle.FuelTypeID,
			transmissionTypeID: detail.Vehicle.TransmissionTypeID,
		}
	case detail.Commercial != nil:
		refs = referenceIDs{
			manufacturerID:     detail.Commercial.ManufacturerID,
			modelID:            detail.Commercial.ModelID,
			variantID:          detail.Commercial.VariantID,
			fuelTypeID:         detail.Commercial.FuelTypeID,
			transmissionTypeID: detail.Commercial.TransmissionTypeID,
		}
	default:
		return nil
	}

	return s.resolveReferenceIDs(ctx, refs)
}

func (s *AdsService) resolveReferenceIDs(ctx context.Context, refs referenceIDs) error {
	var errs []error

	if refs.manufacturerID != "" {
		if _, err := s.resolver.GetManufacturer(ctx, refs.manufacturerID); err != nil {
			errs = append(errs, err)
		}
	}
	if refs.modelID != "" {
		if _, err := s.resolver.GetVehicleModel(ctx, refs.modelID); err != nil {
			errs = append(errs, err)
		}
	}
	if refs.variantID != "" {
		if _, err := s.resolver.GetVehicleVariant(ctx, refs.variantID); err != nil {
			errs = append(errs, err)
		}
	}
	if refs.fuelTypeID != "" {
		if _, err := s.resolver.GetFuelType(ctx, refs.fuelTypeID); err != nil {
			errs = append(errs, err)
		}
	}
	if refs.transmissionTypeID != "" {
		if _, err := s.resolver.GetTransmissionType(ctx, refs.transmissionTypeID); err != nil {
			errs = append(errs, err)
		}
	}

	return domain.AggregateReferenceErrors(errs)
}
