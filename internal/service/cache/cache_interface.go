// Package cache provides the in-process caches used by the services.
package cache

// Cache is a string-keyed cache of V.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	// Generation changes on every Clear.
	Generation() uint64
	// SetIfGeneration stores value only while the cache is still at generation gen, so a
	// value computed before a Clear is never written back after it.
	SetIfGeneration(key string, value V, gen uint64) bool
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics[V any] interface {
	Cache[V]
	Metrics() Metrics
}
