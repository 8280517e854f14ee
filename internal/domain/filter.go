package domain

// SortOrder represents the sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "ASC"
	SortOrderDesc SortOrder = "DESC"
)

// SortField represents the field to sort by.
type SortField string

const (
	SortFieldCreatedAt SortField = "createdAt"
	SortFieldUpdatedAt SortField = "updatedAt"
	SortFieldPrice     SortField = "price"
)

const (
	// DefaultLimit is the page size used when none is requested.
	DefaultLimit = 20
	// MaxLimit caps the page size for any list query.
	MaxLimit = 100
)

// FilterSpec is the structured input to the search/list operation.
// All fields are optional; zero values mean "not filtered". Boolean
// filters use pointers so that "false" and "absent" are distinct.
type FilterSpec struct {
	// Base-ad filters
	Category AdCategory // empty means all categories
	Search   string     // full-text over title/description/location
	Location string     // case-insensitive substring
	MinPrice *float64
	MaxPrice *float64
	PostedBy string
	IsActive *bool // defaults to true when nil

	// Property sub-filters
	PropertyType string
	MinBedrooms  *int
	MaxBedrooms  *int
	MinBathrooms *int
	MaxBathrooms *int
	MinArea      *float64
	MaxArea      *float64
	IsFurnished  *bool
	HasParking   *bool
	HasGarden    *bool

	// Vehicle sub-filters (apply to private vehicles and two-wheelers)
	VehicleType         string
	ManufacturerIDs     []string // one-or-many; invalid ids are dropped, not fatal
	ModelIDs            []string
	VariantIDs          []string
	TransmissionTypeIDs []string
	FuelTypeIDs         []string
	Color               string // case-insensitive substring
	MaxMileage          *int
	MinYear             *int
	MaxYear             *int
	IsFirstOwner        *bool
	HasInsurance        *bool
	HasRcBook           *bool

	// Commercial-vehicle sub-filters
	CommercialVehicleType string
	BodyType              string
	MinPayload            *float64
	MaxPayload            *float64
	AxleCount             *int
	MinSeating            *int
	MaxSeating            *int
	HasFitness            *bool
	HasPermit             *bool

	// Sorting and pagination
	SortBy    SortField
	SortOrder SortOrder
	Page      int
	Limit     int
}

// DefaultFilterSpec returns a FilterSpec with pagination and sort
// defaults applied.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		SortBy:    SortFieldCreatedAt,
		SortOrder: SortOrderDesc,
		Page:      1,
		Limit:     DefaultLimit,
	}
}

// Validate checks pagination, sorting and category values. Unlike
// bound-correcting validators, out-of-range values are rejected, not
// silently clamped.
func (f *FilterSpec) Validate() error {
	if f.Page < 1 {
		return NewValidationError("page must be >= 1")
	}
	if f.Limit < 1 || f.Limit > MaxLimit {
		return NewValidationError("limit must be between 1 and 100")
	}
	switch f.SortBy {
	case SortFieldCreatedAt, SortFieldUpdatedAt, SortFieldPrice:
	default:
		return NewValidationError("sortBy must be one of: createdAt, updatedAt, price")
	}
	switch f.SortOrder {
	case SortOrderAsc, SortOrderDesc:
	default:
		return NewValidationError("sortOrder must be ASC or DESC")
	}
	if f.Category != "" && !f.Category.Valid() {
		return NewValidationError("unknown category: " + string(f.Category))
	}
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return NewValidationError("minPrice must be >= 0")
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return NewValidationError("maxPrice must be >= 0")
	}
	return nil
}

// Offset calculates the store offset for pagination.
func (f *FilterSpec) Offset() int {
	return (f.Page - 1) * f.Limit
}

// HasPropertyFilters reports whether at least one property-specific
// sub-filter key is present. The property join predicate is applied
// only in that case, so category-agnostic searches are not implicitly
// restricted to property ads.
func (f *FilterSpec) HasPropertyFilters() bool {
	return f.PropertyType != "" ||
		f.MinBedrooms != nil || f.MaxBedrooms != nil ||
		f.MinBathrooms != nil || f.MaxBathrooms != nil ||
		f.MinArea != nil || f.MaxArea != nil ||
		f.IsFurnished != nil || f.HasParking != nil || f.HasGarden != nil
}

// HasVehicleFilters reports whether at least one vehicle-specific
// sub-filter key is present.
func (f *FilterSpec) HasVehicleFilters() bool {
	return f.VehicleType != "" ||
		len(f.ManufacturerIDs) > 0 || len(f.ModelIDs) > 0 || len(f.VariantIDs) > 0 ||
		len(f.TransmissionTypeIDs) > 0 || len(f.FuelTypeIDs) > 0 ||
		f.Color != "" || f.MaxMileage != nil ||
		f.MinYear != nil || f.MaxYear != nil ||
		f.IsFirstOwner != nil || f.HasInsurance != nil || f.HasRcBook != nil
}

// HasCommercialFilters reports whether at least one commercial-vehicle
// sub-filter key is present.
func (f *FilterSpec) HasCommercialFilters() bool {
	return f.CommercialVehicleType != "" || f.BodyType != "" ||
		f.MinPayload != nil || f.MaxPayload != nil ||
		f.AxleCount != nil ||
		f.MinSeating != nil || f.MaxSeating != nil ||
		f.HasFitness != nil || f.HasPermit != nil
}

// ActiveFilterCount counts the filter keys that are set, excluding
// sort and pagination. The cache layer uses it both for the
// cacheability gate and for the adaptive TTL.
func (f *FilterSpec) ActiveFilterCount() int {
	n := 0
	for _, set := range []bool{
		f.Category != "", f.Search != "", f.Location != "",
		f.MinPrice != nil, f.MaxPrice != nil, f.PostedBy != "", f.IsActive != nil,
		f.PropertyType != "", f.MinBedrooms != nil, f.MaxBedrooms != nil,
		f.MinBathrooms != nil, f.MaxBathrooms != nil, f.MinArea != nil, f.MaxArea != nil,
		f.IsFurnished != nil, f.HasParking != nil, f.HasGarden != nil,
		f.VehicleType != "", len(f.ManufacturerIDs) > 0, len(f.ModelIDs) > 0,
		len(f.VariantIDs) > 0, len(f.TransmissionTypeIDs) > 0, len(f.FuelTypeIDs) > 0,
		f.Color != "", f.MaxMileage != nil, f.MinYear != nil, f.MaxYear != nil,
		f.IsFirstOwner != nil, f.HasInsurance != nil, f.HasRcBook != nil,
		f.CommercialVehicleType != "", f.BodyType != "",
		f.MinPayload != nil, f.MaxPayload != nil, f.AxleCount != nil,
		f.MinSeating != nil, f.MaxSeating != nil, f.HasFitness != nil, f.HasPermit != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// PaginatedResult holds one page of denormalized ads plus pagination
// metadata.
type PaginatedResult struct {
	Data       []*DetailedAd `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
	HasNext    bool          `json:"hasNext"`
	HasPrev    bool          `json:"hasPrev"`
}

// NewPaginatedResult creates a PaginatedResult with calculated
// pagination metadata.
func NewPaginatedResult(data []*DetailedAd, total int64, page, limit int) *PaginatedResult {
	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &PaginatedResult{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    int64(page*limit) < total,
		HasPrev:    page > 1,
	}
}
