package service

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"classifieds-service/internal/domain"
)

// Cache key namespaces. Search results live under one shared prefix so
// that write invalidation can drop every list in a single prefix
// delete.
const (
	searchKeyPrefix = "search:"
	adKeyPrefix     = "ad:"
)

// TTL tiers. Narrow queries change rarely and are cheap to hold;
// broad, hot queries get the short tier so stale pages age out fast.
const (
	baseTTL     = 180 * time.Second
	volatileTTL = 60 * time.Second
	stableTTL   = 300 * time.Second
	singleAdTTL = 900 * time.Second
)

// Bucket sizes for normalizing numeric range bounds. Without
// bucketing, near-identical queries (minPrice=100000 vs 100001) would
// each get their own entry and the hit rate would collapse.
const (
	priceBucket   = 1000
	areaBucket    = 100
	mileageBucket = 5000
)

// maxCacheableFilters is the cacheability cutoff: queries with more
// active filter keys than this are too specific to ever be asked
// twice.
const maxCacheableFilters = 6

// QueryCache caches search pages and single-ad reads on top of the
// byte-level cache port. All cache failures degrade to a miss or a
// no-op; the caller never sees them.
type QueryCache struct {
	cache  domain.Cache
	logger *zap.Logger
}

// NewQueryCache creates a new QueryCache.
func NewQueryCache(cache domain.Cache, logger *zap.Logger) *QueryCache {
	return &QueryCache{
		cache:  cache,
		logger: logger,
	}
}

// Cacheable decides whether a search result is worth caching.
//
// Excluded: free-text searches (unbounded key space), user-scoped
// listings (postedBy), id-set filters (manufacturer/model/variant)
// and anything with more than maxCacheableFilters active keys.
func (q *QueryCache) Cacheable(f domain.FilterSpec) bool {
	if f.Search != "" || f.PostedBy != "" {
		return false
	}
	if len(f.ManufacturerIDs) > 0 || len(f.ModelIDs) > 0 || len(f.VariantIDs) > 0 {
		return false
	}

	return f.ActiveFilterCount() <= maxCacheableFilters
}

// TTLFor returns the adaptive TTL for a search result.
func (q *QueryCache) TTLFor(f domain.FilterSpec) time.Duration {
	active := f.ActiveFilterCount()

	switch {
	case f.Search != "" || active > 5:
		return volatileTTL
	case active <= 2:
		return stableTTL
	default:
		return baseTTL
	}
}

// SearchKey builds the canonical cache key for a filter. Equivalent
// queries must collide: values are normalized (trimmed, lowercased,
// range bounds bucketed) and pairs are emitted in sorted key order.
func (q *QueryCache) SearchKey(f domain.FilterSpec) string {
	pairs := map[string]string{}

	put := func(key, val string) {
		if val != "" {
			pairs[key] = val
		}
	}
	putInt := func(key string, val *int) {
		if val != nil {
			pairs[key] = strconv.Itoa(*val)
		}
	}
	putBool := func(key string, val *bool) {
		if val != nil {
			pairs[key] = strconv.FormatBool(*val)
		}
	}

	put("category", string(f.Category))
	put("search", normalizeText(f.Search))
	put("location", normalizeText(f.Location))
	put("minPrice", bucketFloat(f.MinPrice, priceBucket))
	put("maxPrice", bucketFloat(f.MaxPrice, priceBucket))
	put("postedBy", f.PostedBy)
	putBool("isActive", f.IsActive)

	put("propertyType", f.PropertyType)
	putInt("minBedrooms", f.MinBedrooms)
	putInt("maxBedrooms", f.MaxBedrooms)
	putInt("minBathrooms", f.MinBathrooms)
	putInt("maxBathrooms", f.MaxBathrooms)
	put("minArea", bucketFloat(f.MinArea, areaBucket))
	put("maxArea", bucketFloat(f.MaxArea, areaBucket))
	putBool("isFurnished", f.IsFurnished)
	putBool("hasParking", f.HasParking)
	putBool("hasGarden", f.HasGarden)

	put("vehicleType", f.VehicleType)
	put("manufacturerIds", joinIDs(f.ManufacturerIDs))
	put("modelIds", joinIDs(f.ModelIDs))
	put("variantIds", joinIDs(f.VariantIDs))
	put("transmissionTypeIds", joinIDs(f.TransmissionTypeIDs))
	put("fuelTypeIds", joinIDs(f.FuelTypeIDs))
	put("color", normalizeText(f.Color))
	put("maxMileage", bucketInt(f.MaxMileage, mileageBucket))
	putInt("minYear", f.MinYear)
	putInt("maxYear", f.MaxYear)
	putBool("isFirstOwner", f.IsFirstOwner)
	putBool("hasInsurance", f.HasInsurance)
	putBool("hasRcBook", f.HasRcBook)

	put("commercialVehicleType", f.CommercialVehicleType)
	put("bodyType", f.BodyType)
	put("minPayload", bucketFloat(f.MinPayload, priceBucket))
	put("maxPayload", bucketFloat(f.MaxPayload, priceBucket))
	putInt("axleCount", f.AxleCount)
	putInt("minSeating", f.MinSeating)
	putInt("maxSeating", f.MaxSeating)
	putBool("hasFitness", f.HasFitness)
	putBool("hasPermit", f.HasPermit)

	pairs["sortBy"] = string(f.SortBy)
	pairs["sortOrder"] = string(f.SortOrder)
	pairs["page"] = strconv.Itoa(f.Page)
	pairs["limit"] = strconv.Itoa(f.Limit)

	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(searchKeyPrefix)
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(pairs[k])
	}

	return b.String()
}

// Enabled reports whether a backing store is configured. With no
// store every lookup is a miss and every write a no-op.
func (q *QueryCache) Enabled() bool {
	return q.cache != nil
}

// GetSearch returns the cached page for the filter, or nil on miss.
// Store errors are logged and reported as a miss.
func (q *QueryCache) GetSearch(ctx context.Context, f domain.FilterSpec) *domain.PaginatedResult {
	if q.cache == nil {
		return nil
	}
	key := q.SearchKey(f)

	data, err := q.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}

	var result domain.PaginatedResult
	if err := json.Unmarshal(data, &result); err != nil {
		q.logger.Warn("dropping undecodable cache entry",
			zap.String("key", key),
			zap.Error(err),
		)
		_ = q.cache.Delete(ctx, key)
		return nil
	}

	return &result
}

// SetSearch stores the page under the canonical key with the adaptive
// TTL. Failures are logged and swallowed.
func (q *QueryCache) SetSearch(ctx context.Context, f domain.FilterSpec, result *domain.PaginatedResult) {
	if q.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		q.logger.Warn("marshaling search result for cache", zap.Error(err))
		return
	}

	if err := q.cache.Set(ctx, q.SearchKey(f), data, q.TTLFor(f)); err != nil {
		q.logger.Warn("caching search result", zap.Error(err))
	}
}

// GetAd returns the cached single ad, or nil on miss.
func (q *QueryCache) GetAd(ctx context.Context, id string) *domain.DetailedAd {
	if q.cache == nil {
		return nil
	}
	key := adKeyPrefix + id

	data, err := q.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}

	var ad domain.DetailedAd
	if err := json.Unmarshal(data, &ad); err != nil {
		q.logger.Warn("dropping undecodable cache entry",
			zap.String("key", key),
			zap.Error(err),
		)
		_ = q.cache.Delete(ctx, key)
		return nil
	}

	return &ad
}

// SetAd stores the single ad with the flat single-ad TTL.
func (q *QueryCache) SetAd(ctx context.Context, ad *domain.DetailedAd) {
	if q.cache == nil {
		return
	}

	data, err := json.Marshal(ad)
	if err != nil {
		q.logger.Warn("marshaling ad for cache", zap.Error(err))
		return
	}

	if err := q.cache.Set(ctx, adKeyPrefix+ad.ID, data, singleAdTTL); err != nil {
		q.logger.Warn("caching ad", zap.Error(err))
	}
}

// Invalidate drops the single-ad entry and the entire search
// namespace. List keys cannot be enumerated per ad, so every write
// invalidates all cached pages; warm-up repopulates the hot ones.
func (q *QueryCache) Invalidate(ctx context.Context, adID string) {
	if q.cache == nil {
		return
	}

	if err := q.cache.Delete(ctx, adKeyPrefix+adID); err != nil {
		q.logger.Warn("invalidating ad cache entry",
			zap.String("ad_id", adID),
			zap.Error(err),
		)
	}

	if err := q.cache.DeleteByPrefix(ctx, searchKeyPrefix); err != nil {
		q.logger.Warn("invalidating search cache namespace", zap.Error(err))
	}
}

// Clear drops every cached search page and single-ad entry.
func (q *QueryCache) Clear(ctx context.Context) error {
	if q.cache == nil {
		return nil
	}

	if err := q.cache.DeleteByPrefix(ctx, searchKeyPrefix); err != nil {
		return err
	}

	return q.cache.DeleteByPrefix(ctx, adKeyPrefix)
}

// normalizeText lowercases and trims a free-text filter value.
func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// bucketFloat rounds a range bound down to its bucket size.
func bucketFloat(v *float64, bucket int) string {
	if v == nil {
		return ""
	}
	b := (int64(*v) / int64(bucket)) * int64(bucket)

	return strconv.FormatInt(b, 10)
}

// bucketInt rounds a range bound down to its bucket size.
func bucketInt(v *int, bucket int) string {
	if v == nil {
		return ""
	}

	return strconv.Itoa((*v / bucket) * bucket)
}

// joinIDs joins an id set in sorted order so that order-only
// differences collide.
func joinIDs(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	return strings.Join(sorted, ",")
}
