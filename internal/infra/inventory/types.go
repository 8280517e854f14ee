package inventory

import "classifieds-service/internal/domain"

// manufacturerPayload is the wire shape of a manufacturer record.
type manufacturerPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

func (p *manufacturerPayload) toDomain() *domain.Manufacturer {
	return &domain.Manufacturer{
		ID:       p.ID,
		Name:     p.Name,
		IsActive: p.IsActive,
	}
}

// commercialPayload is the optional commercial metadata block on a
// model record.
type commercialPayload struct {
	CommercialVehicleType string  `json:"commercial_vehicle_type"`
	BodyType              string  `json:"body_type"`
	PayloadCapacity       float64 `json:"payload_capacity"`
	PayloadUnit           string  `json:"payload_unit"`
	AxleCount             int     `json:"axle_count"`
	SeatingCapacity       int     `json:"seating_capacity"`
}

// modelPayload is the wire shape of a vehicle model record.
type modelPayload struct {
	ID             string             `json:"id"`
	ManufacturerID string             `json:"manufacturer_id"`
	Name           string             `json:"name"`
	VehicleType    string             `json:"vehicle_type"`
	IsCommercial   bool               `json:"is_commercial"`
	Commercial     *commercialPayload `json:"commercial,omitempty"`
	IsActive       bool               `json:"is_active"`
}

func (p *modelPayload) toDomain() *domain.VehicleModel {
	model := &domain.VehicleModel{
		ID:             p.ID,
		ManufacturerID: p.ManufacturerID,
		Name:           p.Name,
		VehicleType:    p.VehicleType,
		IsCommercial:   p.IsCommercial,
		IsActive:       p.IsActive,
	}
	if p.Commercial != nil {
		model.Commercial = &domain.CommercialDefaults{
			CommercialVehicleType: p.Commercial.CommercialVehicleType,
			BodyType:              p.Commercial.BodyType,
			PayloadCapacity:       p.Commercial.PayloadCapacity,
			PayloadUnit:           p.Commercial.PayloadUnit,
			AxleCount:             p.Commercial.AxleCount,
			SeatingCapacity:       p.Commercial.SeatingCapacity,
		}
	}

	return model
}

// variantPayload is the wire shape of a vehicle variant record.
type variantPayload struct {
	ID       string `json:"id"`
	ModelID  string `json:"model_id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

func (p *variantPayload) toDomain() *domain.VehicleVariant {
	return &domain.VehicleVariant{
		ID:       p.ID,
		ModelID:  p.ModelID,
		Name:     p.Name,
		IsActive: p.IsActive,
	}
}

// referencePayload is the wire shape of simple named references (fuel
// types, transmission types).
type referencePayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

func (p *referencePayload) toDomain() *domain.ReferenceItem {
	return &domain.ReferenceItem{
		ID:       p.ID,
		Name:     p.Name,
		IsActive: p.IsActive,
	}
}
