package inventory

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"classifieds-service/internal/domain"
)

const testBaseURL = "https://inventory.example.com"

func newTestResolver() *Resolver {
	cfg := ClientConfig{
		BaseURL: testBaseURL,
		Timeout: 5 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 2,
			WaitTime:    50 * time.Millisecond,
			MaxWaitTime: 200 * time.Millisecond,
		},
		CB: CBConfig{
			MaxRequests:  5,
			Interval:     60 * time.Second,
			Timeout:      15 * time.Second,
			FailureRatio: 0.6,
		},
	}
	resolver := NewResolver(cfg, zap.NewNop())

	// Activate httpmock for this resolver's HTTP transport
	httpmock.ActivateNonDefault(resolver.client.GetClient())

	return resolver
}

func TestResolver_GetManufacturer_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testBaseURL+"/api/v1/manufacturers/mfr-1",
		httpmock.NewJsonResponderOrPanic(200, manufacturerPayload{
			ID:       "mfr-1",
			Name:     "Tata Motors",
			IsActive: true,
		}))

	resolver := newTestResolver()
	m, err := resolver.GetManufacturer(context.Background(), "mfr-1")

	require.NoError(t, err)
	assert.Equal(t, "mfr-1", m.ID)
	assert.Equal(t, "Tata Motors", m.Name)
	assert.True(t, m.IsActive)
}

func TestResolver_GetManufacturer_NotFound(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testBaseURL+"/api/v1/manufacturers/missing",
		httpmock.NewStringResponder(404, "not found"))

	resolver := newTestResolver()
	_, err := resolver.GetManufacturer(context.Background(), "missing")

	var refErr *domain.ReferenceNotFoundError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "manufacturer", refErr.Kind)
	assert.Equal(t, "missing", refErr.ID)
}

func TestResolver_GetManufacturer_InactiveTreatedAsMissing(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testBaseURL+"/api/v1/manufacturers/mfr-1",
		httpmock.NewJsonResponderOrPanic(200, manufacturerPayload{
			ID:       "mfr-1",
			Name:     "Defunct Motors",
			IsActive: false,
		}))

	resolver := newTestResolver()
	_, err := resolver.GetManufacturer(context.Background(), "mfr-1")

	var refErr *domain.ReferenceNotFoundError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "manufacturer", refErr.Kind)
}

func TestResolver_GetVehicleModel_WithCommercialMetadata(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testBaseURL+"/api/v1/models/model-1",
		httpmock.NewJsonResponderOrPanic(200, modelPayload{
			ID:             "model-1",
			ManufacturerID: "mfr-1",
			Name:           "LPT 1613",
			VehicleType:    "truck",
			IsCommercial:   true,
			Commercial: &commercialPayload{
				CommercialVehicleType: "truck",
				BodyType:              "flatbed",
				PayloadCapacity:       9000,
				PayloadUnit:           "kg",
				AxleCount:             2,
				SeatingCapacity:       3,
			},
			IsActive: true,
		}))

	resolver := newTestResolver()
	model, err := resolver.GetVehicleModel(context.Background(), "model-1")

	require.NoError(t, err)
	assert.True(t, model.IsCommercial)
	require.NotNil(t, model.Commercial)
	assert.Equal(t, 9000.0, model.Commercial.PayloadCapacity)
	assert.Equal(t, 2, model.Commercial.AxleCount)
}

func TestResolver_GetVehicleModel_PrivateModel(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testBaseURL+"/api/v1/models/model-2",
		httpmock.NewJsonResponderOrPanic(200, modelPayload{
			ID:             "model-2",
			ManufacturerID: "mfr-2",
			Name:           "Swift",
			VehicleType:    "hatchback",
			IsCommercial:   false,
			IsActive:       true,
		}))

	resolver := newTestResolver()
	model, err := resolver.GetVehicleModel(context.Background(), "model-2")

	require.NoError(t, err)
	assert.False(t, model.IsCommercial)
	assert.Nil(t, model.Commercial)
}

func TestResolver_GetFuelType_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testBaseURL+"/api/v1/fuel-types/diesel",
		httpmock.NewJsonResponderOrPanic(200, referencePayload{
			ID:       "diesel",
			Name:     "Diesel",
			IsActive: true,
		}))

	resolver := newTestResolver()
	ft, err := resolver.GetFuelType(context.Background(), "diesel")

	require.NoError(t, err)
	assert.Equal(t, "Diesel", ft.Name)
}

func TestResolver_ServerError_IsInfrastructure(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testBaseURL+"/api/v1/variants/v-1",
		httpmock.NewStringResponder(500, "boom"))

	resolver := newTestResolver()
	_, err := resolver.GetVehicleVariant(context.Background(), "v-1")

	require.Error(t, err)
	var infraErr *domain.InfrastructureError
	assert.ErrorAs(t, err, &infraErr)
	var refErr *domain.ReferenceNotFoundError
	assert.False(t, errors.As(err, &refErr), "5xx must not look like bad input")
}

func TestResolver_Retry_ThenSuccess(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	callCount := 0
	httpmock.RegisterResponder("GET", testBaseURL+"/api/v1/transmission-types/amt",
		func(_ *http.Request) (*http.Response, error) {
			callCount++
			if callCount < 2 {
				return httpmock.NewStringResponse(502, "bad gateway"), nil
			}
			return httpmock.NewJsonResponse(200, referencePayload{
				ID: "amt", Name: "AMT", IsActive: true,
			})
		})

	resolver := newTestResolver()
	item, err := resolver.GetTransmissionType(context.Background(), "amt")

	require.NoError(t, err)
	assert.Equal(t, "AMT", item.Name)
	assert.Equal(t, 2, callCount, "should succeed on the retry")
}

func TestResolver_CircuitBreaker_Opens(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testBaseURL+"/api/v1/manufacturers/mfr-1",
		httpmock.NewStringResponder(500, "down"))

	resolver := newTestResolver()

	for i := 0; i < 5; i++ {
		_, err := resolver.GetManufacturer(context.Background(), "mfr-1")
		require.Error(t, err)
	}

	// Breaker is open now: the next call fails fast without a request
	before := httpmock.GetTotalCallCount()
	_, err := resolver.GetManufacturer(context.Background(), "mfr-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Equal(t, before, httpmock.GetTotalCallCount())
}

func TestResolver_NotFound_DoesNotTripBreaker(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testBaseURL+"/api/v1/manufacturers/missing",
		httpmock.NewStringResponder(404, "not found"))

	resolver := newTestResolver()

	for i := 0; i < 10; i++ {
		_, err := resolver.GetManufacturer(context.Background(), "missing")
		var refErr *domain.ReferenceNotFoundError
		require.ErrorAs(t, err, &refErr, "call %d should still be a clean 404", i)
	}
}

func TestResolver_ContextCancellation(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testBaseURL+"/api/v1/manufacturers/mfr-1",
		func(_ *http.Request) (*http.Response, error) {
			time.Sleep(200 * time.Millisecond)
			return httpmock.NewJsonResponse(200, manufacturerPayload{ID: "mfr-1", IsActive: true})
		})

	resolver := newTestResolver()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := resolver.GetManufacturer(ctx, "mfr-1")
	require.Error(t, err)
}
