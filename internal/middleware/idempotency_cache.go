package middleware

import (
	"time"

	"github.com/guttosm/translation-service/internal/service/cache"
)

const idempotencyCacheCapacity = 10000

// cachedResponse is a replayable 2xx response.
type cachedResponse struct {
	StatusCode  int
	ContentType string
	Headers     map[string]string
	Body        []byte
}

// idempotencyCache stores responses by idempotency key on the shared sharded TTL cache.
type idempotencyCache = cache.ShardedCache[*cachedResponse]

func newIdempotencyCache(ttl time.Duration, record cache.Recorder) *idempotencyCache {
	return cache.NewShardedCache[*cachedResponse](cache.Options{
		Name:     "idempotency",
		Capacity: idempotencyCacheCapacity,
		TTL:      ttl,
		Shards:   16,
		Recorder: record,
	})
}
