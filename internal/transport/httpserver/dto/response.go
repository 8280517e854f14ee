package dto

import (
	"time"

	"classifieds-service/internal/app/service"
	"classifieds-service/internal/domain"
)

// AdResponse represents one denormalized ad in a response.
type AdResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images,omitempty"`
	Location    string   `json:"location"`
	Category    string   `json:"category"`
	IsActive    bool     `json:"isActive"`
	PostedBy    string   `json:"postedBy"`

	PostedByUser *OwnerResponse   `json:"postedByUser,omitempty"`
	Details      AdDetailResponse `json:"details"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// OwnerResponse is the public profile of the posting user.
type OwnerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// AdDetailResponse carries the one detail block matching the ad's
// category.
type AdDetailResponse struct {
	Property   *PropertyDetailsResponse   `json:"property,omitempty"`
	Vehicle    *VehicleDetailsResponse    `json:"vehicle,omitempty"`
	Commercial *CommercialDetailsResponse `json:"commercial,omitempty"`
}

// PropertyDetailsResponse is the detail block for PROPERTY ads.
type PropertyDetailsResponse struct {
	PropertyType string   `json:"propertyType"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	AreaSqft     float64  `json:"areaSqft"`
	Floor        *int     `json:"floor,omitempty"`
	IsFurnished  bool     `json:"isFurnished"`
	HasParking   bool     `json:"hasParking"`
	HasGarden    bool     `json:"hasGarden"`
	Amenities    []string `json:"amenities,omitempty"`
}

// VehicleDetailsResponse is the detail block for PRIVATE_VEHICLE and
// TWO_WHEELER ads.
type VehicleDetailsResponse struct {
	VehicleType        string   `json:"vehicleType"`
	ManufacturerID     string   `json:"manufacturerId"`
	ModelID            string   `json:"modelId"`
	VariantID          string   `json:"variantId,omitempty"`
	Year               int      `json:"year"`
	Mileage            int      `json:"mileage"`
	TransmissionTypeID string   `json:"transmissionTypeId,omitempty"`
	FuelTypeID         string   `json:"fuelTypeId,omitempty"`
	Color              string   `json:"color,omitempty"`
	IsFirstOwner       bool     `json:"isFirstOwner"`
	HasInsurance       bool     `json:"hasInsurance"`
	HasRcBook          bool     `json:"hasRcBook"`
	AdditionalFeatures []string `json:"additionalFeatures,omitempty"`
}

// CommercialDetailsResponse is the detail block for COMMERCIAL_VEHICLE
// ads.
type CommercialDetailsResponse struct {
	VehicleDetailsResponse

	CommercialVehicleType string  `json:"commercialVehicleType"`
	BodyType              string  `json:"bodyType,omitempty"`
	PayloadCapacity       float64 `json:"payloadCapacity"`
	PayloadUnit           string  `json:"payloadUnit,omitempty"`
	AxleCount             int     `json:"axleCount"`
	SeatingCapacity       int     `json:"seatingCapacity"`
	HasFitness            bool    `json:"hasFitness"`
	HasPermit             bool    `json:"hasPermit"`
}

// FromDetailedAd converts a domain.DetailedAd to AdResponse.
func FromDetailedAd(ad *domain.DetailedAd) AdResponse {
	resp := AdResponse{
		ID:          ad.ID,
		Title:       ad.Title,
		Description: ad.Description,
		Price:       ad.Price,
		Images:      ad.Images,
		Location:    ad.Location,
		Category:    string(ad.Category),
		IsActive:    ad.IsActive,
		PostedBy:    ad.PostedBy,
		CreatedAt:   ad.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   ad.UpdatedAt.Format(time.RFC3339),
	}

	if ad.Owner != nil {
		resp.PostedByUser = &OwnerResponse{
			ID:    ad.Owner.ID,
			Name:  ad.Owner.Name,
			Email: ad.Owner.Email,
			Phone: ad.Owner.Phone,
		}
	}

	switch {
	case ad.Detail.Property != nil:
		resp.Details.Property = fromPropertyDetails(ad.Detail.Property)
	case ad.Detail.Vehicle != nil:
		resp.Details.Vehicle = fromVehicleDetails(ad.Detail.Vehicle)
	case ad.Detail.Commercial != nil:
		resp.Details.Commercial = fromCommercialDetails(ad.Detail.Commercial)
	}

	return resp
}

func fromPropertyDetails(d *domain.PropertyDetails) *PropertyDetailsResponse {
	return &PropertyDetailsResponse{
		PropertyType: d.PropertyType,
		Bedrooms:     d.Bedrooms,
		Bathrooms:    d.Bathrooms,
		AreaSqft:     d.AreaSqft,
		Floor:        d.Floor,
		IsFurnished:  d.IsFurnished,
		HasParking:   d.HasParking,
		HasGarden:    d.HasGarden,
		Amenities:    d.Amenities,
	}
}

func fromVehicleDetails(d *domain.VehicleDetails) *VehicleDetailsResponse {
	return &VehicleDetailsResponse{
		VehicleType:        d.VehicleType,
		ManufacturerID:     d.ManufacturerID,
		ModelID:            d.ModelID,
		VariantID:          d.VariantID,
		Year:               d.Year,
		Mileage:            d.Mileage,
		TransmissionTypeID: d.TransmissionTypeID,
		FuelTypeID:         d.FuelTypeID,
		Color:              d.Color,
		IsFirstOwner:       d.IsFirstOwner,
		HasInsurance:       d.HasInsurance,
		HasRcBook:          d.HasRcBook,
		AdditionalFeatures: d.AdditionalFeatures,
	}
}

func fromCommercialDetails(d *domain.CommercialVehicleDetails) *CommercialDetailsResponse {
	return &CommercialDetailsResponse{
		VehicleDetailsResponse: VehicleDetailsResponse{
			VehicleType:        d.VehicleType,
			ManufacturerID:     d.ManufacturerID,
			ModelID:            d.ModelID,
			VariantID:          d.VariantID,
			Year:               d.Year,
			Mileage:            d.Mileage,
			TransmissionTypeID: d.TransmissionTypeID,
			FuelTypeID:         d.FuelTypeID,
			Color:              d.Color,
			IsFirstOwner:       d.IsFirstOwner,
			HasInsurance:       d.HasInsurance,
			HasRcBook:          d.HasRcBook,
			AdditionalFeatures: d.AdditionalFeatures,
		},
		CommercialVehicleType: d.CommercialVehicleType,
		BodyType:              d.BodyType,
		PayloadCapacity:       d.PayloadCapacity,
		PayloadUnit:           d.PayloadUnit,
		AxleCount:             d.AxleCount,
		SeatingCapacity:       d.SeatingCapacity,
		HasFitness:            d.HasFitness,
		HasPermit:             d.HasPermit,
	}
}

// SearchResponse represents one page of search results.
type SearchResponse struct {
	Ads        []AdResponse   `json:"ads"`
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta holds pagination metadata.
type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// FromPaginatedResult converts a domain.PaginatedResult to
// SearchResponse.
func FromPaginatedResult(result *domain.PaginatedResult) SearchResponse {
	ads := make([]AdResponse, len(result.Data))
	for i, ad := range result.Data {
		ads[i] = FromDetailedAd(ad)
	}

	return SearchResponse{
		Ads: ads,
		Pagination: PaginationMeta{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
			HasNext:    result.HasNext,
			HasPrev:    result.HasPrev,
		},
	}
}

// WarmupResponse represents the result of a cache warm-up run.
type WarmupResponse struct {
	PagesWarmed int `json:"pagesWarmed"`
}

// OrphanResponse describes one integrity violation found by the scan.
type OrphanResponse struct {
	AdID     string `json:"adId"`
	Category string `json:"category,omitempty"`
	Table    string `json:"table"`
	Reason   string `json:"reason"`
}

// ScanResponse represents the result of a consistency scan.
type ScanResponse struct {
	Orphans  []OrphanResponse `json:"orphans"`
	Purged   int64            `json:"purged"`
	Duration string           `json:"duration"`
}

// FromScanReport converts a service.ScanReport to ScanResponse.
func FromScanReport(report *service.ScanReport) ScanResponse {
	orphans := make([]OrphanResponse, len(report.Orphans))
	for i, o := range report.Orphans {
		orphans[i] = OrphanResponse{
			AdID:     o.AdID,
			Category: string(o.Category),
			Table:    o.Table,
			Reason:   o.Reason,
		}
	}

	return ScanResponse{
		Orphans:  orphans,
		Purged:   report.Purged,
		Duration: report.Duration.String(),
	}
}

// StatsResponse represents dashboard stats.
type StatsResponse struct {
	TotalAds   int64            `json:"totalAds"`
	ByCategory map[string]int64 `json:"byCategory"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
