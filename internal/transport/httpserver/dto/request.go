// Package dto defines request/response data transfer objects.
package dto

import (
	"strings"

	"classifieds-service/internal/app/service"
	"classifieds-service/internal/domain"
)

// SearchRequest represents search query parameters. Every filter is
// optional; id-set parameters accept either repeated params or one
// comma-separated value.
type SearchRequest struct {
	Category string   `query:"category" validate:"omitempty,oneof=PROPERTY PRIVATE_VEHICLE COMMERCIAL_VEHICLE TWO_WHEELER"`
	Search   string   `query:"search" validate:"omitempty,max=200"`
	Location string   `query:"location" validate:"omitempty,max=200"`
	MinPrice *float64 `query:"minPrice" validate:"omitempty,min=0"`
	MaxPrice *float64 `query:"maxPrice" validate:"omitempty,min=0"`
	PostedBy string   `query:"postedBy" validate:"omitempty,max=64"`
	IsActive *bool    `query:"isActive"`

	PropertyType string   `query:"propertyType" validate:"omitempty,max=50"`
	MinBedrooms  *int     `query:"minBedrooms" validate:"omitempty,min=0"`
	MaxBedrooms  *int     `query:"maxBedrooms" validate:"omitempty,min=0"`
	MinBathrooms *int     `query:"minBathrooms" validate:"omitempty,min=0"`
	MaxBathrooms *int     `query:"maxBathrooms" validate:"omitempty,min=0"`
	MinArea      *float64 `query:"minArea" validate:"omitempty,min=0"`
	MaxArea      *float64 `query:"maxArea" validate:"omitempty,min=0"`
	IsFurnished  *bool    `query:"isFurnished"`
	HasParking   *bool    `query:"hasParking"`
	HasGarden    *bool    `query:"hasGarden"`

	VehicleType         string   `query:"vehicleType" validate:"omitempty,max=50"`
	ManufacturerIDs     []string `query:"manufacturerId"`
	ModelIDs            []string `query:"modelId"`
	VariantIDs          []string `query:"variantId"`
	TransmissionTypeIDs []string `query:"transmissionTypeId"`
	FuelTypeIDs         []string `query:"fuelTypeId"`
	Color               string   `query:"color" validate:"omitempty,max=50"`
	MaxMileage          *int     `query:"maxMileage" validate:"omitempty,min=0"`
	MinYear             *int     `query:"minYear" validate:"omitempty,min=1900"`
	MaxYear             *int     `query:"maxYear" validate:"omitempty,min=1900"`
	IsFirstOwner        *bool    `query:"isFirstOwner"`
	HasInsurance        *bool    `query:"hasInsurance"`
	HasRcBook           *bool    `query:"hasRcBook"`

	CommercialVehicleType string   `query:"commercialVehicleType" validate:"omitempty,max=50"`
	BodyType              string   `query:"bodyType" validate:"omitempty,max=50"`
	MinPayload            *float64 `query:"minPayload" validate:"omitempty,min=0"`
	MaxPayload            *float64 `query:"maxPayload" validate:"omitempty,min=0"`
	AxleCount             *int     `query:"axleCount" validate:"omitempty,min=0,max=10"`
	MinSeating            *int     `query:"minSeating" validate:"omitempty,min=0"`
	MaxSeating            *int     `query:"maxSeating" validate:"omitempty,min=0"`
	HasFitness            *bool    `query:"hasFitness"`
	HasPermit             *bool    `query:"hasPermit"`

	SortBy    string `query:"sortBy" validate:"omitempty,oneof=createdAt updatedAt price"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=ASC DESC"`
	Page      int    `query:"page" validate:"omitempty,min=1"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ToFilterSpec converts the request to a domain FilterSpec, applying
// defaults for the unset sort and pagination fields.
func (r *SearchRequest) ToFilterSpec() domain.FilterSpec {
	f := domain.DefaultFilterSpec()

	f.Category = domain.AdCategory(r.Category)
	f.Search = r.Search
	f.Location = r.Location
	f.MinPrice = r.MinPrice
	f.MaxPrice = r.MaxPrice
	f.PostedBy = r.PostedBy
	f.IsActive = r.IsActive

	f.PropertyType = r.PropertyType
	f.MinBedrooms = r.MinBedrooms
	f.MaxBedrooms = r.MaxBedrooms
	f.MinBathrooms = r.MinBathrooms
	f.MaxBathrooms = r.MaxBathrooms
	f.MinArea = r.MinArea
	f.MaxArea = r.MaxArea
	f.IsFurnished = r.IsFurnished
	f.HasParking = r.HasParking
	f.HasGarden = r.HasGarden

	f.VehicleType = r.VehicleType
	f.ManufacturerIDs = splitIDs(r.ManufacturerIDs)
	f.ModelIDs = splitIDs(r.ModelIDs)
	f.VariantIDs = splitIDs(r.VariantIDs)
	f.TransmissionTypeIDs = splitIDs(r.TransmissionTypeIDs)
	f.FuelTypeIDs = splitIDs(r.FuelTypeIDs)
	f.Color = r.Color
	f.MaxMileage = r.MaxMileage
	f.MinYear = r.MinYear
	f.MaxYear = r.MaxYear
	f.IsFirstOwner = r.IsFirstOwner
	f.HasInsurance = r.HasInsurance
	f.HasRcBook = r.HasRcBook

	f.CommercialVehicleType = r.CommercialVehicleType
	f.BodyType = r.BodyType
	f.MinPayload = r.MinPayload
	f.MaxPayload = r.MaxPayload
	f.AxleCount = r.AxleCount
	f.MinSeating = r.MinSeating
	f.MaxSeating = r.MaxSeating
	f.HasFitness = r.HasFitness
	f.HasPermit = r.HasPermit

	if r.SortBy != "" {
		f.SortBy = domain.SortField(r.SortBy)
	}
	if r.SortOrder != "" {
		f.SortOrder = domain.SortOrder(r.SortOrder)
	}
	if r.Page > 0 {
		f.Page = r.Page
	}
	if r.Limit > 0 {
		f.Limit = r.Limit
	}

	return f
}

// splitIDs flattens repeated params that themselves contain
// comma-separated values, dropping empty elements.
func splitIDs(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	var ids []string
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}

	return ids
}

// CreateAdRequest represents the body of an ad creation request.
// Exactly one detail block must be present, matching the category;
// the service layer enforces the pairing.
type CreateAdRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"required"`
	Price       float64         `json:"price" validate:"min=0"`
	Images      []string        `json:"images" validate:"omitempty,max=20,dive,max=500"`
	Location    string          `json:"location" validate:"required,max=200"`
	Category    string          `json:"category" validate:"required,oneof=PROPERTY PRIVATE_VEHICLE COMMERCIAL_VEHICLE TWO_WHEELER"`
	Details     AdDetailRequest `json:"details"`
}

// AdDetailRequest carries the category-specific detail block.
type AdDetailRequest struct {
	Property   *PropertyDetailsRequest   `json:"property,omitempty"`
	Vehicle    *VehicleDetailsRequest    `json:"vehicle,omitempty"`
	Commercial *CommercialDetailsRequest `json:"commercial,omitempty"`
}

// PropertyDetailsRequest is the detail block for PROPERTY ads.
type PropertyDetailsRequest struct {
	PropertyType string   `json:"propertyType" validate:"required,max=50"`
	Bedrooms     int      `json:"bedrooms" validate:"min=0"`
	Bathrooms    int      `json:"bathrooms" validate:"min=0"`
	AreaSqft     float64  `json:"areaSqft" validate:"min=0"`
	Floor        *int     `json:"floor,omitempty"`
	IsFurnished  bool     `json:"isFurnished"`
	HasParking   bool     `json:"hasParking"`
	HasGarden    bool     `json:"hasGarden"`
	Amenities    []string `json:"amenities,omitempty" validate:"omitempty,max=50,dive,max=100"`
}

// VehicleDetailsRequest is the detail block for PRIVATE_VEHICLE and
// TWO_WHEELER ads.
type VehicleDetailsRequest struct {
	VehicleType        string   `json:"vehicleType" validate:"required,max=50"`
	ManufacturerID     string   `json:"manufacturerId" validate:"required,uuid"`
	ModelID            string   `json:"modelId" validate:"required,uuid"`
	VariantID          string   `json:"variantId,omitempty" validate:"omitempty,uuid"`
	Year               int      `json:"year" validate:"min=1900"`
	Mileage            int      `json:"mileage" validate:"min=0"`
	TransmissionTypeID string   `json:"transmissionTypeId,omitempty" validate:"omitempty,uuid"`
	FuelTypeID         string   `json:"fuelTypeId,omitempty" validate:"omitempty,uuid"`
	Color              string   `json:"color,omitempty" validate:"omitempty,max=50"`
	IsFirstOwner       bool     `json:"isFirstOwner"`
	HasInsurance       bool     `json:"hasInsurance"`
	HasRcBook          bool     `json:"hasRcBook"`
	AdditionalFeatures []string `json:"additionalFeatures,omitempty" validate:"omitempty,max=50,dive,max=100"`
}

// CommercialDetailsRequest is the detail block for COMMERCIAL_VEHICLE
// ads. Commercial-only fields left unset are filled from the model's
// defaults.
type CommercialDetailsRequest struct {
	VehicleDetailsRequest

	CommercialVehicleType string  `json:"commercialVehicleType,omitempty" validate:"omitempty,max=50"`
	BodyType              string  `json:"bodyType,omitempty" validate:"omitempty,max=50"`
	PayloadCapacity       float64 `json:"payloadCapacity" validate:"min=0"`
	PayloadUnit           string  `json:"payloadUnit,omitempty" validate:"omitempty,oneof=kg tons liters"`
	AxleCount             int     `json:"axleCount" validate:"min=0,max=10"`
	SeatingCapacity       int     `json:"seatingCapacity" validate:"min=0"`
	HasFitness            bool    `json:"hasFitness"`
	HasPermit             bool    `json:"hasPermit"`
}

// ToDomain converts the request to the domain base record plus detail.
func (r *CreateAdRequest) ToDomain() (*domain.Ad, domain.AdDetail) {
	ad := domain.NewAd(r.Title, r.Description, r.Price, r.Location, domain.AdCategory(r.Category), "")
	if len(r.Images) > 0 {
		ad.Images = r.Images
	}

	var detail domain.AdDetail
	switch {
	case r.Details.Property != nil:
		detail.Property = r.Details.Property.toDomain()
	case r.Details.Vehicle != nil:
		detail.Vehicle = r.Details.Vehicle.toDomain()
	case r.Details.Commercial != nil:
		detail.Commercial = r.Details.Commercial.toDomain()
	}

	return ad, detail
}

func (r *PropertyDetailsRequest) toDomain() *domain.PropertyDetails {
	return &domain.PropertyDetails{
		PropertyType: r.PropertyType,
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		AreaSqft:     r.AreaSqft,
		Floor:        r.Floor,
		IsFurnished:  r.IsFurnished,
		HasParking:   r.HasParking,
		HasGarden:    r.HasGarden,
		Amenities:    r.Amenities,
	}
}

func (r *VehicleDetailsRequest) toDomain() *domain.VehicleDetails {
	return &domain.VehicleDetails{
		VehicleType:        r.VehicleType,
		ManufacturerID:     r.ManufacturerID,
		ModelID:            r.ModelID,
		VariantID:          r.VariantID,
		Year:               r.Year,
		Mileage:            r.Mileage,
		TransmissionTypeID: r.TransmissionTypeID,
		FuelTypeID:         r.FuelTypeID,
		Color:              r.Color,
		IsFirstOwner:       r.IsFirstOwner,
		HasInsurance:       r.HasInsurance,
		HasRcBook:          r.HasRcBook,
		AdditionalFeatures: r.AdditionalFeatures,
	}
}

func (r *CommercialDetailsRequest) toDomain() *domain.CommercialVehicleDetails {
	return &domain.CommercialVehicleDetails{
		VehicleType:           r.VehicleType,
		CommercialVehicleType: r.CommercialVehicleType,
		BodyType:              r.BodyType,
		ManufacturerID:        r.ManufacturerID,
		ModelID:               r.ModelID,
		VariantID:             r.VariantID,
		Year:                  r.Year,
		Mileage:               r.Mileage,
		TransmissionTypeID:    r.TransmissionTypeID,
		FuelTypeID:            r.FuelTypeID,
		Color:                 r.Color,
		PayloadCapacity:       r.PayloadCapacity,
		PayloadUnit:           r.PayloadUnit,
		AxleCount:             r.AxleCount,
		SeatingCapacity:       r.SeatingCapacity,
		HasFitness:            r.HasFitness,
		HasPermit:             r.HasPermit,
		IsFirstOwner:          r.IsFirstOwner,
		HasInsurance:          r.HasInsurance,
		HasRcBook:             r.HasRcBook,
		AdditionalFeatures:    r.AdditionalFeatures,
	}
}

// UpdateAdRequest represents a partial update. Absent fields are left
// unchanged; nullable fields use pointers so that explicit false/zero
// values survive the trip.
type UpdateAdRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,min=0"`
	Images      *[]string `json:"images,omitempty" validate:"omitempty,max=20,dive,max=500"`
	Location    *string   `json:"location,omitempty" validate:"omitempty,max=200"`
	IsActive    *bool     `json:"isActive,omitempty"`
	Category    *string   `json:"category,omitempty" validate:"omitempty,oneof=PROPERTY PRIVATE_VEHICLE COMMERCIAL_VEHICLE TWO_WHEELER"`

	Details *AdDetailPatchRequest `json:"details,omitempty"`
}

// AdDetailPatchRequest carries the category-specific detail patch.
type AdDetailPatchRequest struct {
	Property   *PropertyPatchRequest   `json:"property,omitempty"`
	Vehicle    *VehiclePatchRequest    `json:"vehicle,omitempty"`
	Commercial *CommercialPatchRequest `json:"commercial,omitempty"`
}

// PropertyPatchRequest is a partial property detail update.
type PropertyPatchRequest struct {
	PropertyType *string   `json:"propertyType,omitempty" validate:"omitempty,max=50"`
	Bedrooms     *int      `json:"bedrooms,omitempty" validate:"omitempty,min=0"`
	Bathrooms    *int      `json:"bathrooms,omitempty" validate:"omitempty,min=0"`
	AreaSqft     *float64  `json:"areaSqft,omitempty" validate:"omitempty,min=0"`
	Floor        *int      `json:"floor,omitempty"`
	IsFurnished  *bool     `json:"isFurnished,omitempty"`
	HasParking   *bool     `json:"hasParking,omitempty"`
	HasGarden    *bool     `json:"hasGarden,omitempty"`
	Amenities    *[]string `json:"amenities,omitempty"`
}

// VehiclePatchRequest is a partial vehicle detail update.
type VehiclePatchRequest struct {
	VehicleType        *string   `json:"vehicleType,omitempty" validate:"omitempty,max=50"`
	ManufacturerID     *string   `json:"manufacturerId,omitempty" validate:"omitempty,uuid"`
	ModelID            *string   `json:"modelId,omitempty" validate:"omitempty,uuid"`
	VariantID          *string   `json:"variantId,omitempty" validate:"omitempty,uuid"`
	Year               *int      `json:"year,omitempty" validate:"omitempty,min=1900"`
	Mileage            *int      `json:"mileage,omitempty" validate:"omitempty,min=0"`
	TransmissionTypeID *string   `json:"transmissionTypeId,omitempty" validate:"omitempty,uuid"`
	FuelTypeID         *string   `json:"fuelTypeId,omitempty" validate:"omitempty,uuid"`
	Color              *string   `json:"color,omitempty" validate:"omitempty,max=50"`
	IsFirstOwner       *bool     `json:"isFirstOwner,omitempty"`
	HasInsurance       *bool     `json:"hasInsurance,omitempty"`
	HasRcBook          *bool     `json:"hasRcBook,omitempty"`
	AdditionalFeatures *[]string `json:"additionalFeatures,omitempty"`
}

// CommercialPatchRequest is a partial commercial vehicle detail update.
type CommercialPatchRequest struct {
	VehiclePatchRequest

	CommercialVehicleType *string  `json:"commercialVehicleType,omitempty" validate:"omitempty,max=50"`
	BodyType              *string  `json:"bodyType,omitempty" validate:"omitempty,max=50"`
	PayloadCapacity       *float64 `json:"payloadCapacity,omitempty" validate:"omitempty,min=0"`
	PayloadUnit           *string  `json:"payloadUnit,omitempty" validate:"omitempty,oneof=kg tons liters"`
	AxleCount             *int     `json:"axleCount,omitempty" validate:"omitempty,min=0,max=10"`
	SeatingCapacity       *int     `json:"seatingCapacity,omitempty" validate:"omitempty,min=0"`
	HasFitness            *bool    `json:"hasFitness,omitempty"`
	HasPermit             *bool    `json:"hasPermit,omitempty"`
}

// ToPatch converts the request to a service-level AdPatch.
func (r *UpdateAdRequest) ToPatch() service.AdPatch {
	patch := service.AdPatch{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Images:      r.Images,
		Location:    r.Location,
		IsActive:    r.IsActive,
	}

	if r.Category != nil {
		category := domain.AdCategory(*r.Category)
		patch.Category = &category
	}

	if r.Details == nil {
		return patch
	}

	if p := r.Details.Property; p != nil {
		patch.Property = &service.PropertyPatch{
			PropertyType: p.PropertyType,
			Bedrooms:     p.Bedrooms,
			Bathrooms:    p.Bathrooms,
			AreaSqft:     p.AreaSqft,
			Floor:        p.Floor,
			IsFurnished:  p.IsFurnished,
			HasParking:   p.HasParking,
			HasGarden:    p.HasGarden,
			Amenities:    p.Amenities,
		}
	}
	if v := r.Details.Vehicle; v != nil {
		patch.Vehicle = v.toPatch()
	}
	if c := r.Details.Commercial; c != nil {
		patch.Commercial = &service.CommercialPatch{
			VehiclePatch:          *c.VehiclePatchRequest.toPatch(),
			CommercialVehicleType: c.CommercialVehicleType,
			BodyType:              c.BodyType,
			PayloadCapacity:       c.PayloadCapacity,
			PayloadUnit:           c.PayloadUnit,
			AxleCount:             c.AxleCount,
			SeatingCapacity:       c.SeatingCapacity,
			HasFitness:            c.HasFitness,
			HasPermit:             c.HasPermit,
		}
	}

	return patch
}

func (v *VehiclePatchRequest) toPatch() *service.VehiclePatch {
	return &service.VehiclePatch{
		VehicleType:        v.VehicleType,
		ManufacturerID:     v.ManufacturerID,
		ModelID:            v.ModelID,
		VariantID:          v.VariantID,
		Year:               v.Year,
		Mileage:            v.Mileage,
		TransmissionTypeID: v.TransmissionTypeID,
		FuelTypeID:         v.FuelTypeID,
		Color:              v.Color,
		IsFirstOwner:       v.IsFirstOwner,
		HasInsurance:       v.HasInsurance,
		HasRcBook:          v.HasRcBook,
		AdditionalFeatures: v.AdditionalFeatures,
	}
}

// ScanRequest represents consistency-scan options.
type ScanRequest struct {
	Purge bool `query:"purge"`
}
