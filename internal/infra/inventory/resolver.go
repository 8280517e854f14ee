package inventory

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"classifieds-service/internal/domain"
)

// API paths of the inventory reference service.
const (
	manufacturerEndpoint = "/api/v1/manufacturers/{id}"
	modelEndpoint        = "/api/v1/models/{id}"
	variantEndpoint      = "/api/v1/variants/{id}"
	fuelTypeEndpoint     = "/api/v1/fuel-types/{id}"
	transmissionEndpoint = "/api/v1/transmission-types/{id}"
)

// Resolver implements domain.InventoryResolver over the inventory
// service's HTTP API. All calls go through a shared circuit breaker:
// the inventory service is a single upstream and a partial brown-out
// affects every reference kind equally.
type Resolver struct {
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// NewResolver creates a new inventory resolver.
func NewResolver(cfg ClientConfig, logger *zap.Logger) *Resolver {
	return &Resolver{
		client: newRestyClient(cfg),
		cb:     newCircuitBreaker("inventory", cfg.CB),
		logger: logger,
	}
}

// GetManufacturer resolves a manufacturer reference.
func (r *Resolver) GetManufacturer(ctx context.Context, id string) (*domain.Manufacturer, error) {
	var payload manufacturerPayload
	if err := r.get(ctx, manufacturerEndpoint, id, "manufacturer", &payload); err != nil {
		return nil, err
	}
	if !payload.IsActive {
		return nil, &domain.ReferenceNotFoundError{Kind: "manufacturer", ID: id}
	}

	return payload.toDomain(), nil
}

// GetVehicleModel resolves a vehicle model reference.
func (r *Resolver) GetVehicleModel(ctx context.Context, id string) (*domain.VehicleModel, error) {
	var payload modelPayload
	if err := r.get(ctx, modelEndpoint, id, "model", &payload); err != nil {
		return nil, err
	}
	if !payload.IsActive {
		return nil, &domain.ReferenceNotFoundError{Kind: "model", ID: id}
	}

	return payload.toDomain(), nil
}

// GetVehicleVariant resolves a vehicle variant reference.
func (r *Resolver) GetVehicleVariant(ctx context.Context, id string) (*domain.VehicleVariant, error) {
	var payload variantPayload
	if err := r.get(ctx, variantEndpoint, id, "variant", &payload); err != nil {
		return nil, err
	}
	if !payload.IsActive {
		return nil, &domain.ReferenceNotFoundError{Kind: "variant", ID: id}
	}

	return payload.toDomain(), nil
}

// GetFuelType resolves a fuel type reference.
func (r *Resolver) GetFuelType(ctx context.Context, id string) (*domain.ReferenceItem, error) {
	var payload referencePayload
	if err := r.get(ctx, fuelTypeEndpoint, id, "fuel_type", &payload); err != nil {
		return nil, err
	}
	if !payload.IsActive {
		return nil, &domain.ReferenceNotFoundError{Kind: "fuel_type", ID: id}
	}

	return payload.toDomain(), nil
}

// GetTransmissionType resolves a transmission type reference.
func (r *Resolver) GetTransmissionType(ctx context.Context, id string) (*domain.ReferenceItem, error) {
	var payload referencePayload
	if err := r.get(ctx, transmissionEndpoint, id, "transmission_type", &payload); err != nil {
		return nil, err
	}
	if !payload.IsActive {
		return nil, &domain.ReferenceNotFoundError{Kind: "transmission_type", ID: id}
	}

	return payload.toDomain(), nil
}

// get performs one resolving GET through the circuit breaker.
//
// A 404 maps to ReferenceNotFoundError (bad input, not an outage);
// everything else that fails maps to InfrastructureError so the
// service layer can distinguish the two.
func (r *Resolver) get(ctx context.Context, endpoint, id, kind string, out any) error {
	resp, err := r.cb.Execute(func() (*resty.Response, error) {
		res, err := r.client.R().
			SetContext(ctx).
			SetPathParam("id", id).
			SetResult(out).
			Get(endpoint)
		if err != nil {
			return nil, err
		}
		if res.StatusCode() == http.StatusNotFound {
			// Definitive answer, does not count against the breaker
			return res, nil
		}
		if res.IsError() {
			return nil, fmt.Errorf("inventory returned status %d", res.StatusCode())
		}

		return res, nil
	})
	if err != nil {
		r.logger.Warn("inventory lookup failed",
			zap.String("kind", kind),
			zap.String("id", id),
			zap.String("state", r.cb.State().String()),
			zap.Error(err),
		)

		return domain.NewInfrastructureError("resolving "+kind, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return &domain.ReferenceNotFoundError{Kind: kind, ID: id}
	}

	return nil
}

// HealthCheck verifies the inventory service is accessible.
func (r *Resolver) HealthCheck(ctx context.Context) error {
	resp, err := r.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
