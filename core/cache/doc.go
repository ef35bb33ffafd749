// Package cache provides a TTL-based in-memory cache with stampede protection.
//
// The query server reads the full aggregated table on every request; TTL keeps one copy of
// that read in memory and uses singleflight so a burst of requests after expiry triggers a
// single reload.
//
// # Usage
//
//	c := cache.NewTTL[[]models.AggregatedRecord](time.Minute)
//	records, err := c.Get(ctx, store.LatestAggregated)
package cache
