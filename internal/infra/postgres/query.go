package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"classifieds-service/internal/domain"
)

// buildSearchQuery compiles a FilterSpec into the staged WHERE/JOIN
// clause shared by the count and data passes. All parameters are bound
// through GORM's parameterized queries.
//
// Stage order mirrors the query plan:
//  1. full-text match over title/description/location (only when a
//     search term is present)
//  2. base-ad match: is_active (default true), category, location
//     substring, price range, posted_by
//  3. left-outer joins to the three detail tables by ad_id
//  4. property sub-filter block, applied only when at least one
//     property key is present
//  5. vehicle and commercial sub-filter blocks, same conditionality
//
// The conditionality of stages 4-5 is what keeps a category-agnostic
// search from silently excluding ads that lack a given detail table:
// a filter with no vehicle keys must still return property ads.
func (r *Repository) buildSearchQuery(f domain.FilterSpec) *gorm.DB {
	query := r.db.Model(&AdModel{})

	// Full-Text Search: tsvector @@ websearch_to_tsquery supports
	// user-friendly syntax ("a b" -> a AND b, "a OR b", "-a" -> NOT a).
	if f.Search != "" {
		query = query.Where(
			"ads.search_vector @@ websearch_to_tsquery('english', ?)",
			f.Search,
		)
	}

	// Base-ad match. is_active defaults to true so disabled listings
	// never leak into public results unless explicitly requested.
	isActive := true
	if f.IsActive != nil {
		isActive = *f.IsActive
	}
	query = query.Where("ads.is_active = ?", isActive)

	if f.Category != "" {
		query = query.Where("ads.category = ?", string(f.Category))
	}
	if f.Location != "" {
		query = query.Where("ads.location ILIKE ?", "%"+f.Location+"%")
	}
	if f.MinPrice != nil {
		query = query.Where("ads.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("ads.price <= ?", *f.MaxPrice)
	}
	if f.PostedBy != "" {
		query = query.Where("ads.posted_by = ?", f.PostedBy)
	}

	if f.HasPropertyFilters() {
		query = r.applyPropertyFilters(query, f)
	}
	if f.HasVehicleFilters() {
		query = r.applyVehicleFilters(query, f)
	}
	if f.HasCommercialFilters() {
		query = r.applyCommercialFilters(query, f)
	}

	return query
}

// applyPropertyFilters joins property_ads and requires the joined row
// to exist and satisfy the property sub-filter.
func (r *Repository) applyPropertyFilters(query *gorm.DB, f domain.FilterSpec) *gorm.DB {
	query = query.
		Joins("LEFT JOIN property_ads ON property_ads.ad_id = ads.id").
		Where("property_ads.id IS NOT NULL")

	if f.PropertyType != "" {
		query = query.Where("property_ads.property_type = ?", f.PropertyType)
	}
	if f.MinBedrooms != nil {
		query = query.Where("property_ads.bedrooms >= ?", *f.MinBedrooms)
	}
	if f.MaxBedrooms != nil {
		query = query.Where("property_ads.bedrooms <= ?", *f.MaxBedrooms)
	}
	if f.MinBathrooms != nil {
		query = query.Where("property_ads.bathrooms >= ?", *f.MinBathrooms)
	}
	if f.MaxBathrooms != nil {
		query = query.Where("property_ads.bathrooms <= ?", *f.MaxBathrooms)
	}
	if f.MinArea != nil {
		query = query.Where("property_ads.area_sqft >= ?", *f.MinArea)
	}
	if f.MaxArea != nil {
		query = query.Where("property_ads.area_sqft <= ?", *f.MaxArea)
	}
	if f.IsFurnished != nil {
		query = query.Where("property_ads.is_furnished = ?", *f.IsFurnished)
	}
	if f.HasParking != nil {
		query = query.Where("property_ads.has_parking = ?", *f.HasParking)
	}
	if f.HasGarden != nil {
		query = query.Where("property_ads.has_garden = ?", *f.HasGarden)
	}

	return query
}

// applyVehicleFilters joins vehicle_ads and requires the joined row to
// exist and satisfy the vehicle sub-filter. Id-set filters translate
// to set-membership tests; ids that are not valid UUIDs are dropped
// from the set rather than failing the whole query.
func (r *Repository) applyVehicleFilters(query *gorm.DB, f domain.FilterSpec) *gorm.DB {
	query = query.
		Joins("LEFT JOIN vehicle_ads ON vehicle_ads.ad_id = ads.id").
		Where("vehicle_ads.id IS NOT NULL")

	if f.VehicleType != "" {
		query = query.Where("vehicle_ads.vehicle_type = ?", f.VehicleType)
	}
	query = whereIDSet(query, "vehicle_ads.manufacturer_id", f.ManufacturerIDs)
	query = whereIDSet(query, "vehicle_ads.model_id", f.ModelIDs)
	query = whereIDSet(query, "vehicle_ads.variant_id", f.VariantIDs)
	query = whereIDSet(query, "vehicle_ads.transmission_type_id", f.TransmissionTypeIDs)
	query = whereIDSet(query, "vehicle_ads.fuel_type_id", f.FuelTypeIDs)
	if f.Color != "" {
		query = query.Where("vehicle_ads.color ILIKE ?", "%"+f.Color+"%")
	}
	if f.MaxMileage != nil {
		query = query.Where("vehicle_ads.mileage <= ?", *f.MaxMileage)
	}
	if f.MinYear != nil {
		query = query.Where("vehicle_ads.year >= ?", *f.MinYear)
	}
	if f.MaxYear != nil {
		query = query.Where("vehicle_ads.year <= ?", *f.MaxYear)
	}
	if f.IsFirstOwner != nil {
		query = query.Where("vehicle_ads.is_first_owner = ?", *f.IsFirstOwner)
	}
	if f.HasInsurance != nil {
		query = query.Where("vehicle_ads.has_insurance = ?", *f.HasInsurance)
	}
	if f.HasRcBook != nil {
		query = query.Where("vehicle_ads.has_rc_book = ?", *f.HasRcBook)
	}

	return query
}

// applyCommercialFilters joins commercial_vehicle_ads and requires the
// joined row to exist and satisfy the commercial sub-filter.
func (r *Repository) applyCommercialFilters(query *gorm.DB, f domain.FilterSpec) *gorm.DB {
	query = query.
		Joins("LEFT JOIN commercial_vehicle_ads ON commercial_vehicle_ads.ad_id = ads.id").
		Where("commercial_vehicle_ads.id IS NOT NULL")

	if f.CommercialVehicleType != "" {
		query = query.Where("commercial_vehicle_ads.commercial_vehicle_type = ?", f.CommercialVehicleType)
	}
	if f.BodyType != "" {
		query = query.Where("commercial_vehicle_ads.body_type = ?", f.BodyType)
	}
	if f.MinPayload != nil {
		query = query.Where("commercial_vehicle_ads.payload_capacity >= ?", *f.MinPayload)
	}
	if f.MaxPayload != nil {
		query = query.Where("commercial_vehicle_ads.payload_capacity <= ?", *f.MaxPayload)
	}
	if f.AxleCount != nil {
		query = query.Where("commercial_vehicle_ads.axle_count = ?", *f.AxleCount)
	}
	if f.MinSeating != nil {
		query = query.Where("commercial_vehicle_ads.seating_capacity >= ?", *f.MinSeating)
	}
	if f.MaxSeating != nil {
		query = query.Where("commercial_vehicle_ads.seating_capacity <= ?", *f.MaxSeating)
	}
	if f.HasFitness != nil {
		query = query.Where("commercial_vehicle_ads.has_fitness = ?", *f.HasFitness)
	}
	if f.HasPermit != nil {
		query = query.Where("commercial_vehicle_ads.has_permit = ?", *f.HasPermit)
	}

	return query
}

// applyOrdering adds the ORDER BY clause. The sort column is mapped
// through a whitelist, never interpolated from user input. Rows with
// equal sort keys come back in whatever order Postgres yields; that
// nondeterminism is accepted rather than patched with a secondary key.
func (r *Repository) applyOrdering(query *gorm.DB, f domain.FilterSpec) *gorm.DB {
	direction := "DESC"
	if f.SortOrder == domain.SortOrderAsc {
		direction = "ASC"
	}

	column := "ads.created_at"
	switch f.SortBy {
	case domain.SortFieldPrice:
		column = "ads.price"
	case domain.SortFieldUpdatedAt:
		column = "ads.updated_at"
	case domain.SortFieldCreatedAt:
		column = "ads.created_at"
	}

	return query.Order(column + " " + direction)
}

// whereIDSet adds a set-membership test for the given column. Values
// that do not parse as UUIDs are dropped; a set left empty by the
// filtering is skipped entirely so one bad id never zeroes the result.
func whereIDSet(query *gorm.DB, column string, ids []string) *gorm.DB {
	valid := validUUIDs(ids)
	if len(valid) == 0 {
		return query
	}
	return query.Where(column+" IN ?", valid)
}

// validUUIDs filters ids down to well-formed UUIDs.
func validUUIDs(ids []string) []string {
	var valid []string
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	return valid
}
