package domain

import (
	"context"
	"time"
)

// AdRepository defines persistence for ads and their detail records.
// Implementations: internal/infra/postgres/repository.go
type AdRepository interface {
	// Search compiles the filter into a multi-stage query and returns
	// one page of denormalized ads. Count and data are two independent
	// passes; they may observe different snapshots under concurrent
	// writes.
	Search(ctx context.Context, filter FilterSpec) (*PaginatedResult, error)

	// GetDetailedByID returns the denormalized ad, or ErrNotFound.
	GetDetailedByID(ctx context.Context, id string) (*DetailedAd, error)

	// GetByID returns the base record only, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Ad, error)

	// CreateAd writes the base record and its detail record. The two
	// writes are not transactional across collections in the source
	// design; the implementation compensates by deleting the base when
	// the detail write fails.
	CreateAd(ctx context.Context, ad *Ad, detail AdDetail) error

	// UpdateAd persists changed base fields and merges the detail
	// patch into the one existing detail record for the ad's category.
	UpdateAd(ctx context.Context, ad *Ad, detail AdDetail) error

	// DeleteAd removes the base record. The detail record is left in
	// place, matching the source behavior; the orphan scan is the
	// cleanup path.
	DeleteAd(ctx context.Context, id string) error

	// FindOrphans scans for ads lacking their category's detail record
	// and detail records lacking an owning ad.
	FindOrphans(ctx context.Context) ([]OrphanRecord, error)

	// PurgeOrphans deletes the given orphan records.
	PurgeOrphans(ctx context.Context, orphans []OrphanRecord) (int64, error)

	// CountByCategory returns ad counts grouped by category, used by
	// the operations dashboard.
	CountByCategory(ctx context.Context) (map[AdCategory]int64, error)
}

// OrphanRecord describes one integrity violation found by the scan.
type OrphanRecord struct {
	AdID     string     `json:"ad_id"`
	Category AdCategory `json:"category,omitempty"`
	Table    string     `json:"table"`
	Reason   string     `json:"reason"`
}

// Manufacturer is a resolved inventory manufacturer reference.
type Manufacturer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// VehicleModel is a resolved inventory model reference. Models may
// explicitly flag themselves commercial and carry their own defaults.
type VehicleModel struct {
	ID             string              `json:"id"`
	ManufacturerID string              `json:"manufacturer_id"`
	Name           string              `json:"name"`
	VehicleType    string              `json:"vehicle_type"`
	IsCommercial   bool                `json:"is_commercial"`
	Commercial     *CommercialDefaults `json:"commercial,omitempty"`
	IsActive       bool                `json:"is_active"`
}

// VehicleVariant is a resolved inventory variant reference.
type VehicleVariant struct {
	ID       string `json:"id"`
	ModelID  string `json:"model_id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// ReferenceItem is a simple named inventory reference (fuel type,
// transmission type).
type ReferenceItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// InventoryResolver resolves manufacturer/model/variant/fuel-type/
// transmission-type references used by vehicle-category ads. Each
// getter fails with ReferenceNotFoundError when the id is invalid or
// the entity is inactive.
// Implementations: internal/infra/inventory/resolver.go
type InventoryResolver interface {
	GetManufacturer(ctx context.Context, id string) (*Manufacturer, error)
	GetVehicleModel(ctx context.Context, id string) (*VehicleModel, error)
	GetVehicleVariant(ctx context.Context, id string) (*VehicleVariant, error)
	GetFuelType(ctx context.Context, id string) (*ReferenceItem, error)
	GetTransmissionType(ctx context.Context, id string) (*ReferenceItem, error)
}

// Cache defines the cache-store operations the query cache needs.
// Implementations: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil, nil on miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every key under the given prefix. Used
	// for the coarse list-namespace invalidation on writes.
	DeleteByPrefix(ctx context.Context, prefix string) error
}
