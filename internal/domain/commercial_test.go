package domain

import (
	"context"
	"errors"
	"testing"
)

// stubResolver returns canned models keyed by id.
type stubResolver struct {
	models map[string]*VehicleModel
}

func (s *stubResolver) GetManufacturer(context.Context, string) (*Manufacturer, error) {
	return nil, errors.New("not implemented")
}

func (s *stubResolver) GetVehicleModel(_ context.Context, id string) (*VehicleModel, error) {
	m, ok := s.models[id]
	if !ok {
		return nil, &ReferenceNotFoundError{Kind: "model", ID: id}
	}
	return m, nil
}

func (s *stubResolver) GetVehicleVariant(context.Context, string) (*VehicleVariant, error) {
	return nil, errors.New("not implemented")
}

func (s *stubResolver) GetFuelType(context.Context, string) (*ReferenceItem, error) {
	return nil, errors.New("not implemented")
}

func (s *stubResolver) GetTransmissionType(context.Context, string) (*ReferenceItem, error) {
	return nil, errors.New("not implemented")
}

func TestCommercialDetector_Detect(t *testing.T) {
	resolver := &stubResolver{models: map[string]*VehicleModel{
		"hatchback-1": {ID: "hatchback-1", VehicleType: "hatchback"},
		"truck-1":     {ID: "truck-1", VehicleType: "truck"},
		"tipper-1":    {ID: "tipper-1", VehicleType: "tipper"},
		"flagged-1": {
			ID:           "flagged-1",
			VehicleType:  "hatchback", // type says private, flag wins
			IsCommercial: true,
			Commercial:   &CommercialDefaults{AxleCount: 3, PayloadCapacity: 7500},
		},
		"flagged-bare": {ID: "flagged-bare", VehicleType: "van", IsCommercial: true},
	}}
	detector := NewCommercialDetector(resolver)
	ctx := context.Background()

	t.Run("private model is not commercial", func(t *testing.T) {
		res := detector.Detect(ctx, "hatchback-1")
		if res.IsCommercialVehicle {
			t.Error("hatchback must not classify as commercial")
		}
	})

	t.Run("truck classifies by type table", func(t *testing.T) {
		res := detector.Detect(ctx, "truck-1")
		if !res.IsCommercialVehicle {
			t.Fatal("truck must classify as commercial")
		}
		if res.Defaults.BodyType != "flatbed" || res.Defaults.PayloadCapacity != 5000 ||
			res.Defaults.AxleCount != 2 || res.Defaults.SeatingCapacity != 3 {
			t.Errorf("unexpected truck defaults: %+v", res.Defaults)
		}
	})

	t.Run("tipper maps to truck type with tipper body", func(t *testing.T) {
		res := detector.Detect(ctx, "tipper-1")
		if !res.IsCommercialVehicle {
			t.Fatal("tipper must classify as commercial")
		}
		if res.Defaults.CommercialVehicleType != "truck" || res.Defaults.BodyType != "tipper" {
			t.Errorf("unexpected tipper defaults: %+v", res.Defaults)
		}
	})

	t.Run("explicit flag wins over type and keeps stored metadata", func(t *testing.T) {
		res := detector.Detect(ctx, "flagged-1")
		if !res.IsCommercialVehicle {
			t.Fatal("flagged model must classify as commercial")
		}
		if res.Defaults.AxleCount != 3 {
			t.Errorf("AxleCount = %d, want stored 3", res.Defaults.AxleCount)
		}
		if res.Defaults.PayloadCapacity != 7500 {
			t.Errorf("PayloadCapacity = %v, want stored 7500", res.Defaults.PayloadCapacity)
		}
		// Fields missing from stored metadata fall back to defaults.
		if res.Defaults.BodyType == "" || res.Defaults.PayloadUnit == "" {
			t.Errorf("missing fields must be default-filled: %+v", res.Defaults)
		}
	})

	t.Run("flagged model without metadata uses type defaults", func(t *testing.T) {
		res := detector.Detect(ctx, "flagged-bare")
		if !res.IsCommercialVehicle {
			t.Fatal("flagged van must classify as commercial")
		}
		if res.Defaults.CommercialVehicleType != "van" || res.Defaults.BodyType != "panel" {
			t.Errorf("unexpected van defaults: %+v", res.Defaults)
		}
	})

	t.Run("unresolvable model fails open to not commercial", func(t *testing.T) {
		res := detector.Detect(ctx, "no-such-model")
		if res.IsCommercialVehicle {
			t.Error("unresolvable model must fail open to not commercial")
		}
	})
}

func TestDetectionResult_ApplyDefaults(t *testing.T) {
	res := DetectionResult{
		IsCommercialVehicle: true,
		Defaults: CommercialDefaults{
			CommercialVehicleType: "truck",
			BodyType:              "flatbed",
			PayloadCapacity:       5000,
			PayloadUnit:           "kg",
			AxleCount:             3,
			SeatingCapacity:       3,
		},
	}

	t.Run("unset fields are filled", func(t *testing.T) {
		detail := &CommercialVehicleDetails{}
		res.ApplyDefaults(detail)
		if detail.AxleCount != 3 {
			t.Errorf("AxleCount = %d, want 3", detail.AxleCount)
		}
		if detail.BodyType != "flatbed" || detail.PayloadCapacity != 5000 {
			t.Errorf("defaults not applied: %+v", detail)
		}
	})

	t.Run("explicit caller values win", func(t *testing.T) {
		detail := &CommercialVehicleDetails{AxleCount: 4, BodyType: "container"}
		res.ApplyDefaults(detail)
		if detail.AxleCount != 4 {
			t.Errorf("AxleCount = %d, want caller's 4", detail.AxleCount)
		}
		if detail.BodyType != "container" {
			t.Errorf("BodyType = %q, want caller's container", detail.BodyType)
		}
		if detail.PayloadUnit != "kg" {
			t.Errorf("unset PayloadUnit must still be filled, got %q", detail.PayloadUnit)
		}
	})

	t.Run("non-commercial result is a no-op", func(t *testing.T) {
		detail := &CommercialVehicleDetails{}
		DetectionResult{}.ApplyDefaults(detail)
		if detail.AxleCount != 0 || detail.BodyType != "" {
			t.Errorf("non-commercial result must not mutate detail: %+v", detail)
		}
	})
}
