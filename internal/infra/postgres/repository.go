package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"classifieds-service/internal/domain"
)

// Repository implements domain.AdRepository using PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Search compiles the filter into the staged query and executes the
// count and data passes. The two passes share every stage except the
// trailing sort/offset/limit; they are independent reads and may see
// slightly different snapshots under concurrent writes.
func (r *Repository) Search(ctx context.Context, f domain.FilterSpec) (*domain.PaginatedResult, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	// Count pass
	var total int64
	if err := r.buildSearchQuery(f).WithContext(ctx).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting ads: %w", err)
	}

	// Data pass
	var models []AdModel
	dataQuery := r.buildSearchQuery(f).WithContext(ctx).
		Select("ads.*").
		Offset(f.Offset()).
		Limit(f.Limit).
		Preload("Owner").
		Preload("Property").
		Preload("Vehicle").
		Preload("Commercial")
	dataQuery = r.applyOrdering(dataQuery, f)

	if err := dataQuery.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("searching ads: %w", err)
	}

	ads := make([]*domain.DetailedAd, len(models))
	for i := range models {
		ads[i] = models[i].ToDetailed()
	}

	return domain.NewPaginatedResult(ads, total, f.Page, f.Limit), nil
}

// GetDetailedByID retrieves the denormalized ad by its id.
func (r *Repository) GetDetailedByID(ctx context.Context, id string) (*domain.DetailedAd, error) {
	var model AdModel
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Property").
		Preload("Vehicle").
		Preload("Commercial").
		Where("ads.id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting ad by id: %w", err)
	}

	return model.ToDetailed(), nil
}

// GetByID retrieves the base record only.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Ad, error) {
	var model AdModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting ad by id: %w", err)
	}

	return model.ToDomain(), nil
}

// CreateAd writes the base record, then the detail record. The pair
// is not written in a single transaction (the source design keeps the
// detail table dynamic), so a failed detail write triggers a
// compensating delete of the base record.
func (r *Repository) CreateAd(ctx context.Context, ad *domain.Ad, detail domain.AdDetail) error {
	model := AdFromDomain(ad)
	model.UpdatedAt = time.Now().UTC()

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("creating ad: %w", err)
	}

	ad.ID = model.ID
	ad.CreatedAt = model.CreatedAt
	ad.UpdatedAt = model.UpdatedAt

	if err := r.createDetail(ctx, model.ID, detail); err != nil {
		// Compensating action: never leave a base record without its
		// detail if we can help it.
		if delErr := r.db.WithContext(ctx).Where("id = ?", model.ID).Delete(&AdModel{}).Error; delErr != nil {
			return fmt.Errorf("creating ad detail: %w (compensating delete also failed: %v)", err, delErr)
		}
		return fmt.Errorf("creating ad detail: %w", err)
	}

	return nil
}

// createDetail inserts the detail record for the populated variant.
func (r *Repository) createDetail(ctx context.Context, adID string, detail domain.AdDetail) error {
	switch {
	case detail.Property != nil:
		m := PropertyFromDomain(detail.Property)
		m.AdID = adID
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			return err
		}
		detail.Property.ID = m.ID
		detail.Property.AdID = adID
	case detail.Vehicle != nil:
		m := VehicleFromDomain(detail.Vehicle)
		m.AdID = adID
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			return err
		}
		detail.Vehicle.ID = m.ID
		detail.Vehicle.AdID = adID
	case detail.Commercial != nil:
		m := CommercialFromDomain(detail.Commercial)
		m.AdID = adID
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			return err
		}
		detail.Commercial.ID = m.ID
		detail.Commercial.AdID = adID
	default:
		return errors.New("detail record is required")
	}

	return nil
}

// UpdateAd persists the merged base record and, when a detail variant
// is populated, overwrites the one existing detail row for the ad.
// Merging of changed fields into the loaded records happens in the
// service layer; this method writes what it is given.
func (r *Repository) UpdateAd(ctx context.Context, ad *domain.Ad, detail domain.AdDetail) error {
	model := AdFromDomain(ad)
	model.UpdatedAt = time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&AdModel{}).Where("id = ?", ad.ID).
		Select("title", "description", "price", "images", "location", "is_active", "updated_at").
		Updates(model)
	if res.Error != nil {
		return fmt.Errorf("updating ad: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	ad.UpdatedAt = model.UpdatedAt

	switch {
	case detail.Property != nil:
		m := PropertyFromDomain(detail.Property)
		if err := r.db.WithContext(ctx).Model(&PropertyAdModel{}).
			Where("ad_id = ?", ad.ID).Select("*").Omit("id", "ad_id").Updates(m).Error; err != nil {
			return fmt.Errorf("updating property detail: %w", err)
		}
	case detail.Vehicle != nil:
		m := VehicleFromDomain(detail.Vehicle)
		if err := r.db.WithContext(ctx).Model(&VehicleAdModel{}).
			Where("ad_id = ?", ad.ID).Select("*").Omit("id", "ad_id").Updates(m).Error; err != nil {
			return fmt.Errorf("updating vehicle detail: %w", err)
		}
	case detail.Commercial != nil:
		m := CommercialFromDomain(detail.Commercial)
		if err := r.db.WithContext(ctx).Model(&CommercialVehicleAdModel{}).
			Where("ad_id = ?", ad.ID).Select("*").Omit("id", "ad_id").Updates(m).Error; err != nil {
			return fmt.Errorf("updating commercial detail: %w", err)
		}
	}

	return nil
}

// DeleteAd removes the base record only. The detail row is left
// behind on purpose, matching the source behavior; FindOrphans and
// PurgeOrphans are the cleanup path.
func (r *Repository) DeleteAd(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&AdModel{})
	if res.Error != nil {
		return fmt.Errorf("deleting ad: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// categoryDetailTables pairs each category with its detail table.
var categoryDetailTables = []struct {
	category domain.AdCategory
	table    string
}{
	{domain.CategoryProperty, "property_ads"},
	{domain.CategoryPrivateVehicle, "vehicle_ads"},
	{domain.CategoryTwoWheeler, "vehicle_ads"},
	{domain.CategoryCommercialVehicle, "commercial_vehicle_ads"},
}

// FindOrphans scans both directions of the base/detail relationship:
// ads whose category's detail row is missing, and detail rows whose
// owning ad is gone.
func (r *Repository) FindOrphans(ctx context.Context) ([]domain.OrphanRecord, error) {
	var orphans []domain.OrphanRecord

	for _, cd := range categoryDetailTables {
		var ids []string
		err := r.db.WithContext(ctx).Raw(fmt.Sprintf(`
			SELECT ads.id FROM ads
			LEFT JOIN %s d ON d.ad_id = ads.id
			WHERE ads.category = ? AND d.id IS NULL
		`, cd.table), string(cd.category)).Scan(&ids).Error
		if err != nil {
			return nil, fmt.Errorf("scanning ads without %s: %w", cd.table, err)
		}
		for _, id := range ids {
			orphans = append(orphans, domain.OrphanRecord{
				AdID:     id,
				Category: cd.category,
				Table:    "ads",
				Reason:   "ad has no detail record in " + cd.table,
			})
		}
	}

	for _, table := range []string{"property_ads", "vehicle_ads", "commercial_vehicle_ads"} {
		var ids []string
		err := r.db.WithContext(ctx).Raw(fmt.Sprintf(`
			SELECT d.ad_id FROM %s d
			LEFT JOIN ads ON ads.id = d.ad_id
			WHERE ads.id IS NULL
		`, table)).Scan(&ids).Error
		if err != nil {
			return nil, fmt.Errorf("scanning %s without ads: %w", table, err)
		}
		for _, id := range ids {
			orphans = append(orphans, domain.OrphanRecord{
				AdID:   id,
				Table:  table,
				Reason: "detail record has no owning ad",
			})
		}
	}

	return orphans, nil
}

// PurgeOrphans deletes the given orphan records and returns how many
// rows were removed.
func (r *Repository) PurgeOrphans(ctx context.Context, orphans []domain.OrphanRecord) (int64, error) {
	var purged int64
	for _, o := range orphans {
		var res *gorm.DB
		switch o.Table {
		case "ads":
			res = r.db.WithContext(ctx).Where("id = ?", o.AdID).Delete(&AdModel{})
		case "property_ads":
			res = r.db.WithContext(ctx).Where("ad_id = ?", o.AdID).Delete(&PropertyAdModel{})
		case "vehicle_ads":
			res = r.db.WithContext(ctx).Where("ad_id = ?", o.AdID).Delete(&VehicleAdModel{})
		case "commercial_vehicle_ads":
			res = r.db.WithContext(ctx).Where("ad_id = ?", o.AdID).Delete(&CommercialVehicleAdModel{})
		default:
			continue
		}
		if res.Error != nil {
			return purged, fmt.Errorf("purging orphan %s/%s: %w", o.Table, o.AdID, res.Error)
		}
		purged += res.RowsAffected
	}

	return purged, nil
}

// CountByCategory returns ad counts grouped by category.
func (r *Repository) CountByCategory(ctx context.Context) (map[domain.AdCategory]int64, error) {
	var rows []struct {
		Category string
		Count    int64
	}
	err := r.db.WithContext(ctx).Model(&AdModel{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("counting ads by category: %w", err)
	}

	counts := make(map[domain.AdCategory]int64, len(rows))
	for _, row := range rows {
		counts[domain.AdCategory(row.Category)] = row.Count
	}

	return counts, nil
}
