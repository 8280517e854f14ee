package service

import (
	"classifieds-service/internal/domain"
)

// AdPatch is a partial update. Nil fields are left unchanged; the
// pointer indirection keeps "set to false/zero" distinct from "not
// sent".
type AdPatch struct {
	Title       *string
	Description *string
	Price       *float64
	Images      *[]string
	Location    *string
	IsActive    *bool
	Category    *domain.AdCategory

	Property   *PropertyPatch
	Vehicle    *VehiclePatch
	Commercial *CommercialPatch
}

// PropertyPatch is the partial update for property details.
type PropertyPatch struct {
	PropertyType *string
	Bedrooms     *int
	Bathrooms    *int
	AreaSqft     *float64
	Floor        *int
	IsFurnished  *bool
	HasParking   *bool
	HasGarden    *bool
	Amenities    *[]string
}

// VehiclePatch is the partial update for vehicle details.
type VehiclePatch struct {
	VehicleType        *string
	ManufacturerID     *string
	ModelID            *string
	VariantID          *string
	Year               *int
	Mileage            *int
	TransmissionTypeID *string
	FuelTypeID         *string
	Color              *string
	IsFirstOwner       *bool
	HasInsurance       *bool
	HasRcBook          *bool
	AdditionalFeatures *[]string
}

// CommercialPatch is the partial update for commercial vehicle
// details.
type CommercialPatch struct {
	VehiclePatch

	CommercialVehicleType *string
	BodyType              *string
	PayloadCapacity       *float64
	PayloadUnit           *string
	AxleCount             *int
	SeatingCapacity       *int
	HasFitness            *bool
	HasPermit             *bool
}

// validateAgainst rejects a detail patch aimed at the wrong category.
func (p AdPatch) validateAgainst(existing *domain.DetailedAd) error {
	switch existing.Category {
	case domain.CategoryProperty:
		if p.Vehicle != nil || p.Commercial != nil {
			return domain.NewValidationError("detail patch does not match the ad's category")
		}
	case domain.CategoryPrivateVehicle, domain.CategoryTwoWheeler:
		if p.Property != nil || p.Commercial != nil {
			return domain.NewValidationError("detail patch does not match the ad's category")
		}
	case domain.CategoryCommercialVehicle:
		if p.Property != nil || p.Vehicle != nil {
			return domain.NewValidationError("detail patch does not match the ad's category")
		}
	}

	return nil
}

// applyTo merges the patch into the loaded ad and returns the
// inventory references that changed and need re-resolution.
func (p AdPatch) applyTo(existing *domain.DetailedAd) referenceIDs {
	if p.Title != nil {
		existing.Title = *p.Title
	}
	if p.Description != nil {
		existing.Description = *p.Description
	}
	if p.Price != nil {
		existing.Price = *p.Price
	}
	if p.Images != nil {
		existing.Images = *p.Images
	}
	if p.Location != nil {
		existing.Location = *p.Location
	}
	if p.IsActive != nil {
		existing.IsActive = *p.IsActive
	}

	var refs referenceIDs
	switch {
	case p.Property != nil && existing.Detail.Property != nil:
		p.Property.applyTo(existing.Detail.Property)
	case p.Vehicle != nil && existing.Detail.Vehicle != nil:
		refs = p.Vehicle.applyTo(existing.Detail.Vehicle)
	case p.Commercial != nil && existing.Detail.Commercial != nil:
		refs = p.Commercial.applyTo(existing.Detail.Commercial)
	}

	return refs
}

func (p *PropertyPatch) applyTo(d *domain.PropertyDetails) {
	if p.PropertyType != nil {
		d.PropertyType = *p.PropertyType
	}
	if p.Bedrooms != nil {
		d.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		d.Bathrooms = *p.Bathrooms
	}
	if p.AreaSqft != nil {
		d.AreaSqft = *p.AreaSqft
	}
	if p.Floor != nil {
		d.Floor = p.Floor
	}
	if p.IsFurnished != nil {
		d.IsFurnished = *p.IsFurnished
	}
	if p.HasParking != nil {
		d.HasParking = *p.HasParking
	}
	if p.HasGarden != nil {
		d.HasGarden = *p.HasGarden
	}
	if p.Amenities != nil {
		d.Amenities = *p.Amenities
	}
}

func (p *VehiclePatch) applyTo(d *domain.VehicleDetails) referenceIDs {
	var refs referenceIDs

	if p.VehicleType != nil {
		d.VehicleType = *p.VehicleType
	}
	if p.ManufacturerID != nil && *p.ManufacturerID != d.ManufacturerID {
		d.ManufacturerID = *p.ManufacturerID
		refs.manufacturerID = d.ManufacturerID
	}
	if p.ModelID != nil && *p.ModelID != d.ModelID {
		d.ModelID = *p.ModelID
		refs.modelID = d.ModelID
		refs.modelChanged = true
	}
	if p.VariantID != nil && *p.VariantID != d.VariantID {
		d.VariantID = *p.VariantID
		refs.variantID = d.VariantID
	}
	if p.Year != nil {
		d.Year = *p.Year
	}
	if p.Mileage != nil {
		d.Mileage = *p.Mileage
	}
	if p.TransmissionTypeID != nil && *p.TransmissionTypeID != d.TransmissionTypeID {
		d.TransmissionTypeID = *p.TransmissionTypeID
		refs.transmissionTypeID = d.TransmissionTypeID
	}
	if p.FuelTypeID != nil && *p.FuelTypeID != d.FuelTypeID {
		d.FuelTypeID = *p.FuelTypeID
		refs.fuelTypeID = d.FuelTypeID
	}
	if p.Color != nil {
		d.Color = *p.Color
	}
	if p.IsFirstOwner != nil {
		d.IsFirstOwner = *p.IsFirstOwner
	}
	if p.HasInsurance != nil {
		d.HasInsurance = *p.HasInsurance
	}
	if p.HasRcBook != nil {
		d.HasRcBook = *p.HasRcBook
	}
	if p.AdditionalFeatures != nil {
		d.AdditionalFeatures = *p.AdditionalFeatures
	}

	return refs
}

func (p *CommercialPatch) applyTo(d *domain.CommercialVehicleDetails) referenceIDs {
	var refs referenceIDs

	if p.VehicleType != nil {
		d.VehicleType = *p.VehicleType
	}
	if p.ManufacturerID != nil && *p.ManufacturerID != d.ManufacturerID {
		d.ManufacturerID = *p.ManufacturerID
		refs.manufacturerID = d.ManufacturerID
	}
	if p.ModelID != nil && *p.ModelID != d.ModelID {
		d.ModelID = *p.ModelID
		refs.modelID = d.ModelID
		refs.modelChanged = true
	}
	if p.VariantID != nil && *p.VariantID != d.VariantID {
		d.VariantID = *p.VariantID
		refs.variantID = d.VariantID
	}
	if p.Year != nil {
		d.Year = *p.Year
	}
	if p.Mileage != nil {
		d.Mileage = *p.Mileage
	}
	if p.TransmissionTypeID != nil && *p.TransmissionTypeID != d.TransmissionTypeID {
		d.TransmissionTypeID = *p.TransmissionTypeID
		refs.transmissionTypeID = d.TransmissionTypeID
	}
	if p.FuelTypeID != nil && *p.FuelTypeID != d.FuelTypeID {
		d.FuelTypeID = *p.FuelTypeID
		refs.fuelTypeID = d.FuelTypeID
	}
	if p.Color != nil {
		d.Color = *p.Color
	}
	if p.IsFirstOwner != nil {
		d.IsFirstOwner = *p.IsFirstOwner
	}
	if p.HasInsurance != nil {
		d.HasInsurance = *p.HasInsurance
	}
	if p.HasRcBook != nil {
		d.HasRcBook = *p.HasRcBook
	}
	if p.AdditionalFeatures != nil {
		d.AdditionalFeatures = *p.AdditionalFeatures
	}

	if p.CommercialVehicleType != nil {
		d.CommercialVehicleType = *p.CommercialVehicleType
	}
	if p.BodyType != nil {
		d.BodyType = *p.BodyType
	}
	if p.PayloadCapacity != nil {
		d.PayloadCapacity = *p.PayloadCapacity
	}
	if p.PayloadUnit != nil {
		d.PayloadUnit = *p.PayloadUnit
	}
	if p.AxleCount != nil {
		d.AxleCount = *p.AxleCount
	}
	if p.SeatingCapacity != nil {
		d.SeatingCapacity = *p.SeatingCapacity
	}
	if p.HasFitness != nil {
		d.HasFitness = *p.HasFitness
	}
	if p.HasPermit != nil {
		d.HasPermit = *p.HasPermit
	}

	return refs
}
