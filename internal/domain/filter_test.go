package domain

import (
	"testing"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestFilterSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FilterSpec)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*FilterSpec) {}, wantErr: false},
		{name: "zero page rejected", mutate: func(f *FilterSpec) { f.Page = 0 }, wantErr: true},
		{name: "negative page rejected", mutate: func(f *FilterSpec) { f.Page = -3 }, wantErr: true},
		{name: "zero limit rejected", mutate: func(f *FilterSpec) { f.Limit = 0 }, wantErr: true},
		{name: "limit above 100 rejected", mutate: func(f *FilterSpec) { f.Limit = 101 }, wantErr: true},
		{name: "limit 100 accepted", mutate: func(f *FilterSpec) { f.Limit = 100 }, wantErr: false},
		{name: "unknown sort field rejected", mutate: func(f *FilterSpec) { f.SortBy = "views" }, wantErr: true},
		{name: "price sort accepted", mutate: func(f *FilterSpec) { f.SortBy = SortFieldPrice }, wantErr: false},
		{name: "unknown sort order rejected", mutate: func(f *FilterSpec) { f.SortOrder = "descending" }, wantErr: true},
		{name: "unknown category rejected", mutate: func(f *FilterSpec) { f.Category = "BOAT" }, wantErr: true},
		{name: "known category accepted", mutate: func(f *FilterSpec) { f.Category = CategoryTwoWheeler }, wantErr: false},
		{name: "negative min price rejected", mutate: func(f *FilterSpec) { f.MinPrice = floatPtr(-1) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilterSpec()
			tt.mutate(&f)
			err := f.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
			if tt.wantErr && err != nil && !IsValidationError(err) {
				t.Errorf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestFilterSpec_Offset(t *testing.T) {
	f := FilterSpec{Page: 3, Limit: 10}
	if got := f.Offset(); got != 20 {
		t.Errorf("Offset() = %d, want 20", got)
	}
}

func TestFilterSpec_SubFilterPredicates(t *testing.T) {
	var empty FilterSpec
	if empty.HasPropertyFilters() || empty.HasVehicleFilters() || empty.HasCommercialFilters() {
		t.Error("empty filter must not report any category sub-filters")
	}

	// A base-only filter must not trip the category predicates either;
	// that is what keeps category-agnostic searches from excluding ads
	// lacking a given detail table.
	base := FilterSpec{Search: "sunny", Location: "Mumbai", MinPrice: floatPtr(1000)}
	if base.HasPropertyFilters() || base.HasVehicleFilters() || base.HasCommercialFilters() {
		t.Error("base-only filter must not report category sub-filters")
	}

	prop := FilterSpec{MinBedrooms: intPtr(2)}
	if !prop.HasPropertyFilters() {
		t.Error("bedrooms bound must count as a property sub-filter")
	}
	if prop.HasVehicleFilters() {
		t.Error("bedrooms bound must not count as a vehicle sub-filter")
	}

	veh := FilterSpec{Color: "White"}
	if !veh.HasVehicleFilters() {
		t.Error("color must count as a vehicle sub-filter")
	}

	com := FilterSpec{HasPermit: boolPtr(true)}
	if !com.HasCommercialFilters() {
		t.Error("permit flag must count as a commercial sub-filter")
	}

	flagFalse := FilterSpec{IsFurnished: boolPtr(false)}
	if !flagFalse.HasPropertyFilters() {
		t.Error("explicit false flag must still count as present")
	}
}

func TestFilterSpec_ActiveFilterCount(t *testing.T) {
	var empty FilterSpec
	if got := empty.ActiveFilterCount(); got != 0 {
		t.Errorf("ActiveFilterCount() = %d, want 0", got)
	}

	f := FilterSpec{
		Category: CategoryProperty,
		Location: "Mumbai",
		MinPrice: floatPtr(1000000),
		MaxPrice: floatPtr(10000000),
	}
	if got := f.ActiveFilterCount(); got != 4 {
		t.Errorf("ActiveFilterCount() = %d, want 4", got)
	}
}

func TestNewPaginatedResult(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page       int
		limit      int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{name: "empty result", total: 0, page: 1, limit: 10, totalPages: 0, hasNext: false, hasPrev: false},
		{name: "exact single page", total: 10, page: 1, limit: 10, totalPages: 1, hasNext: false, hasPrev: false},
		{name: "partial last page", total: 11, page: 2, limit: 10, totalPages: 2, hasNext: false, hasPrev: true},
		{name: "middle page", total: 35, page: 2, limit: 10, totalPages: 4, hasNext: true, hasPrev: true},
		{name: "first of many", total: 100, page: 1, limit: 20, totalPages: 5, hasNext: true, hasPrev: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewPaginatedResult(nil, tt.total, tt.page, tt.limit)
			if r.TotalPages != tt.totalPages {
				t.Errorf("TotalPages = %d, want %d", r.TotalPages, tt.totalPages)
			}
			if r.HasNext != tt.hasNext {
				t.Errorf("HasNext = %v, want %v", r.HasNext, tt.hasNext)
			}
			if r.HasPrev != tt.hasPrev {
				t.Errorf("HasPrev = %v, want %v", r.HasPrev, tt.hasPrev)
			}
		})
	}
}

func TestDetailedAd_Year(t *testing.T) {
	property := &DetailedAd{Detail: AdDetail{Property: &PropertyDetails{AreaSqft: 900}}}
	if got := property.Year(); got != 0 {
		t.Errorf("property Year() = %d, want 0", got)
	}

	vehicle := &DetailedAd{Detail: AdDetail{Vehicle: &VehicleDetails{Year: 2019}}}
	if got := vehicle.Year(); got != 2019 {
		t.Errorf("vehicle Year() = %d, want 2019", got)
	}

	commercial := &DetailedAd{Detail: AdDetail{Commercial: &CommercialVehicleDetails{Year: 2021}}}
	if got := commercial.Year(); got != 2021 {
		t.Errorf("commercial Year() = %d, want 2021", got)
	}
}

func TestActor_CanModify(t *testing.T) {
	ad := &Ad{PostedBy: "user-1"}

	if !(Actor{UserID: "user-1"}).CanModify(ad) {
		t.Error("owner must be able to modify")
	}
	if (Actor{UserID: "user-2"}).CanModify(ad) {
		t.Error("non-owner must not be able to modify")
	}
	if !(Actor{UserID: "user-2", Role: RoleAdmin}).CanModify(ad) {
		t.Error("admin must be able to modify any ad")
	}
}
