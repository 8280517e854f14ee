// Package domain contains the core business logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import (
	"time"
)

// AdCategory represents the listing category of an advertisement.
type AdCategory string

const (
	CategoryProperty          AdCategory = "PROPERTY"
	CategoryPrivateVehicle    AdCategory = "PRIVATE_VEHICLE"
	CategoryCommercialVehicle AdCategory = "COMMERCIAL_VEHICLE"
	CategoryTwoWheeler        AdCategory = "TWO_WHEELER"
)

// AllCategories lists every valid ad category.
var AllCategories = []AdCategory{
	CategoryProperty,
	CategoryPrivateVehicle,
	CategoryCommercialVehicle,
	CategoryTwoWheeler,
}

// Valid reports whether the category is one of the known values.
func (c AdCategory) Valid() bool {
	switch c {
	case CategoryProperty, CategoryPrivateVehicle, CategoryCommercialVehicle, CategoryTwoWheeler:
		return true
	}
	return false
}

// IsVehicle reports whether the category stores its detail record in
// the vehicle detail table (private vehicles and two-wheelers share it).
func (c AdCategory) IsVehicle() bool {
	return c == CategoryPrivateVehicle || c == CategoryTwoWheeler
}

// Ad is the category-independent base record of an advertisement.
// The category is immutable after creation: changing it would orphan
// the detail record that shares the ad's lifecycle.
type Ad struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Images      []string   `json:"images,omitempty"`
	Location    string     `json:"location"`
	Category    AdCategory `json:"category"`
	IsActive    bool       `json:"is_active"`
	PostedBy    string     `json:"posted_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewAd creates a new active Ad with timestamps set.
func NewAd(title, description string, price float64, location string, category AdCategory, postedBy string) *Ad {
	now := time.Now().UTC()
	return &Ad{
		Title:       title,
		Description: description,
		Price:       price,
		Location:    location,
		Category:    category,
		IsActive:    true,
		PostedBy:    postedBy,
		Images:      []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// PropertyDetails is the detail record for PROPERTY ads, 1:1 with the
// base Ad via AdID.
type PropertyDetails struct {
	ID           string   `json:"id"`
	AdID         string   `json:"ad_id"`
	PropertyType string   `json:"property_type"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	AreaSqft     float64  `json:"area_sqft"`
	Floor        *int     `json:"floor,omitempty"`
	IsFurnished  bool     `json:"is_furnished"`
	HasParking   bool     `json:"has_parking"`
	HasGarden    bool     `json:"has_garden"`
	Amenities    []string `json:"amenities,omitempty"`
}

// VehicleDetails is the detail record shared by PRIVATE_VEHICLE and
// TWO_WHEELER ads.
type VehicleDetails struct {
	ID                 string   `json:"id"`
	AdID               string   `json:"ad_id"`
	VehicleType        string   `json:"vehicle_type"`
	ManufacturerID     string   `json:"manufacturer_id"`
	ModelID            string   `json:"model_id"`
	VariantID          string   `json:"variant_id,omitempty"`
	Year               int      `json:"year"`
	Mileage            int      `json:"mileage"`
	TransmissionTypeID string   `json:"transmission_type_id,omitempty"`
	FuelTypeID         string   `json:"fuel_type_id,omitempty"`
	Color              string   `json:"color,omitempty"`
	IsFirstOwner       bool     `json:"is_first_owner"`
	HasInsurance       bool     `json:"has_insurance"`
	HasRcBook          bool     `json:"has_rc_book"`
	AdditionalFeatures []string `json:"additional_features,omitempty"`
}

// CommercialVehicleDetails is the detail record for COMMERCIAL_VEHICLE
// ads. It is a superset of VehicleDetails.
type CommercialVehicleDetails struct {
	ID                    string   `json:"id"`
	AdID                  string   `json:"ad_id"`
	VehicleType           string   `json:"vehicle_type"`
	CommercialVehicleType string   `json:"commercial_vehicle_type"`
	BodyType              string   `json:"body_type,omitempty"`
	ManufacturerID        string   `json:"manufacturer_id"`
	ModelID               string   `json:"model_id"`
	VariantID             string   `json:"variant_id,omitempty"`
	Year                  int      `json:"year"`
	Mileage               int      `json:"mileage"`
	TransmissionTypeID    string   `json:"transmission_type_id,omitempty"`
	FuelTypeID            string   `json:"fuel_type_id,omitempty"`
	Color                 string   `json:"color,omitempty"`
	PayloadCapacity       float64  `json:"payload_capacity"`
	PayloadUnit           string   `json:"payload_unit,omitempty"`
	AxleCount             int      `json:"axle_count"`
	SeatingCapacity       int      `json:"seating_capacity"`
	HasFitness            bool     `json:"has_fitness"`
	HasPermit             bool     `json:"has_permit"`
	IsFirstOwner          bool     `json:"is_first_owner"`
	HasInsurance          bool     `json:"has_insurance"`
	HasRcBook             bool     `json:"has_rc_book"`
	AdditionalFeatures    []string `json:"additional_features,omitempty"`
}

// AdDetail is the tagged union of the per-category detail records.
// Exactly one variant is non-nil, selected by the owning Ad's category.
type AdDetail struct {
	Property   *PropertyDetails          `json:"property,omitempty"`
	Vehicle    *VehicleDetails           `json:"vehicle,omitempty"`
	Commercial *CommercialVehicleDetails `json:"commercial,omitempty"`
}

// IsEmpty reports whether no variant is populated.
func (d AdDetail) IsEmpty() bool {
	return d.Property == nil && d.Vehicle == nil && d.Commercial == nil
}

// OwnerProfile is the public profile of the user who posted an ad.
type OwnerProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// DetailedAd is the denormalized read shape: the base record joined
// with its owner profile and the single matching detail record.
type DetailedAd struct {
	Ad
	Owner  *OwnerProfile `json:"posted_by_user,omitempty"`
	Detail AdDetail      `json:"details"`
}

// Year returns the manufacture year from whichever vehicle detail is
// present, or zero for non-vehicle ads.
func (a *DetailedAd) Year() int {
	switch {
	case a.Detail.Vehicle != nil:
		return a.Detail.Vehicle.Year
	case a.Detail.Commercial != nil:
		return a.Detail.Commercial.Year
	default:
		return 0
	}
}

// Actor identifies the caller of a write operation.
type Actor struct {
	UserID string
	Role   string
}

// RoleAdmin bypasses the ownership check on update and delete.
const RoleAdmin = "admin"

// CanModify reports whether the actor may mutate the given ad.
func (a Actor) CanModify(ad *Ad) bool {
	return a.Role == RoleAdmin || a.UserID == ad.PostedBy
}
