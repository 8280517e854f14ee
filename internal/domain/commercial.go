package domain

import (
	"context"
	"strings"
)

// CommercialDefaults holds the default values applied to the
// commercial-only fields of a COMMERCIAL_VEHICLE ad.
type CommercialDefaults struct {
	CommercialVehicleType string  `json:"commercial_vehicle_type"`
	BodyType              string  `json:"body_type"`
	PayloadCapacity       float64 `json:"payload_capacity"`
	PayloadUnit           string  `json:"payload_unit"`
	AxleCount             int     `json:"axle_count"`
	SeatingCapacity       int     `json:"seating_capacity"`
}

// DetectionResult is the detector's decision for one vehicle model.
type DetectionResult struct {
	IsCommercialVehicle bool
	Defaults            CommercialDefaults
}

// commercialTypeDefaults maps a model's declared vehicle type to the
// commercial classification and field defaults used when the model
// record carries no metadata of its own.
//
//	truck   -> truck / flatbed,  5000 kg, 2 axles, 3 seats
//	tipper  -> truck / tipper,   8000 kg, 3 axles, 3 seats
//	bus     -> bus / coach,      8000 kg, 2 axles, 40 seats
//	minibus -> bus / minibus,    3000 kg, 2 axles, 16 seats
//	van     -> van / panel,      1500 kg, 2 axles, 3 seats
//	pickup  -> pickup / open_bed, 1000 kg, 2 axles, 5 seats
//	tractor -> tractor / cab_chassis, 10000 kg, 3 axles, 2 seats
//	trailer -> trailer / flatbed, 20000 kg, 4 axles, 2 seats
var commercialTypeDefaults = map[string]CommercialDefaults{
	"truck":   {CommercialVehicleType: "truck", BodyType: "flatbed", PayloadCapacity: 5000, PayloadUnit: "kg", AxleCount: 2, SeatingCapacity: 3},
	"tipper":  {CommercialVehicleType: "truck", BodyType: "tipper", PayloadCapacity: 8000, PayloadUnit: "kg", AxleCount: 3, SeatingCapacity: 3},
	"bus":     {CommercialVehicleType: "bus", BodyType: "coach", PayloadCapacity: 8000, PayloadUnit: "kg", AxleCount: 2, SeatingCapacity: 40},
	"minibus": {CommercialVehicleType: "bus", BodyType: "minibus", PayloadCapacity: 3000, PayloadUnit: "kg", AxleCount: 2, SeatingCapacity: 16},
	"van":     {CommercialVehicleType: "van", BodyType: "panel", PayloadCapacity: 1500, PayloadUnit: "kg", AxleCount: 2, SeatingCapacity: 3},
	"pickup":  {CommercialVehicleType: "pickup", BodyType: "open_bed", PayloadCapacity: 1000, PayloadUnit: "kg", AxleCount: 2, SeatingCapacity: 5},
	"tractor": {CommercialVehicleType: "tractor", BodyType: "cab_chassis", PayloadCapacity: 10000, PayloadUnit: "kg", AxleCount: 3, SeatingCapacity: 2},
	"trailer": {CommercialVehicleType: "trailer", BodyType: "flatbed", PayloadCapacity: 20000, PayloadUnit: "kg", AxleCount: 4, SeatingCapacity: 2},
}

// fallbackDefaults is used when a model is flagged commercial but
// neither its metadata nor the type table covers a field.
var fallbackDefaults = CommercialDefaults{
	CommercialVehicleType: "truck",
	BodyType:              "flatbed",
	PayloadCapacity:       5000,
	PayloadUnit:           "kg",
	AxleCount:             2,
	SeatingCapacity:       3,
}

// CommercialDetector decides whether a vehicle model is commercial and
// supplies defaults for the commercial-only fields. Its output is
// merged into an incoming create payload only for fields the caller
// left unset; explicit caller values always win.
type CommercialDetector struct {
	resolver InventoryResolver
}

// NewCommercialDetector creates a detector over the given resolver.
func NewCommercialDetector(resolver InventoryResolver) *CommercialDetector {
	return &CommercialDetector{resolver: resolver}
}

// Detect resolves modelID and classifies it.
//
// Precedence: an explicit commercial flag on the model record wins and
// its stored metadata is used verbatim, with the static tables filling
// any missing field. Otherwise the model's declared vehicle type is
// classified against the fixed commercial-type table. An unresolvable
// model fails open to "not commercial" rather than raising.
func (d *CommercialDetector) Detect(ctx context.Context, modelID string) DetectionResult {
	model, err := d.resolver.GetVehicleModel(ctx, modelID)
	if err != nil || model == nil {
		return DetectionResult{}
	}

	typeDefaults, knownType := commercialTypeDefaults[strings.ToLower(model.VehicleType)]

	if model.IsCommercial {
		base := typeDefaults
		if !knownType {
			base = fallbackDefaults
		}
		if model.Commercial != nil {
			base = mergeDefaults(*model.Commercial, base)
		}
		return DetectionResult{IsCommercialVehicle: true, Defaults: base}
	}

	if knownType {
		return DetectionResult{IsCommercialVehicle: true, Defaults: typeDefaults}
	}

	return DetectionResult{}
}

// mergeDefaults overlays the model's stored metadata on top of the
// static defaults, keeping the static value for any unset field.
func mergeDefaults(stored, static CommercialDefaults) CommercialDefaults {
	out := static
	if stored.CommercialVehicleType != "" {
		out.CommercialVehicleType = stored.CommercialVehicleType
	}
	if stored.BodyType != "" {
		out.BodyType = stored.BodyType
	}
	if stored.PayloadCapacity > 0 {
		out.PayloadCapacity = stored.PayloadCapacity
	}
	if stored.PayloadUnit != "" {
		out.PayloadUnit = stored.PayloadUnit
	}
	if stored.AxleCount > 0 {
		out.AxleCount = stored.AxleCount
	}
	if stored.SeatingCapacity > 0 {
		out.SeatingCapacity = stored.SeatingCapacity
	}
	return out
}

// ApplyDefaults fills unset commercial-only fields of the detail
// record from the detection result. Explicit values are never
// overwritten.
func (r DetectionResult) ApplyDefaults(detail *CommercialVehicleDetails) {
	if !r.IsCommercialVehicle || detail == nil {
		return
	}
	if detail.CommercialVehicleType == "" {
		detail.CommercialVehicleType = r.Defaults.CommercialVehicleType
	}
	if detail.BodyType == "" {
		detail.BodyType = r.Defaults.BodyType
	}
	if detail.PayloadCapacity == 0 {
		detail.PayloadCapacity = r.Defaults.PayloadCapacity
	}
	if detail.PayloadUnit == "" {
		detail.PayloadUnit = r.Defaults.PayloadUnit
	}
	if detail.AxleCount == 0 {
		detail.AxleCount = r.Defaults.AxleCount
	}
	if detail.SeatingCapacity == 0 {
		detail.SeatingCapacity = r.Defaults.SeatingCapacity
	}
}
