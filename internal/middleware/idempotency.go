package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/translation-service/internal/service/cache"
)

const (
	// IdempotencyKeyHeader is the request header carrying the client's idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the idempotency cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long responses are kept for replay.
	IdempotencyKeyTTL = 5 * time.Minute

	maxIdempotentBody = 1 << 20
)

// IdempotencyConfig holds configuration for the idempotency middleware.
type IdempotencyConfig struct {
	Cache   *idempotencyCache
	Enabled bool
}

// NewIdempotencyConfig returns an enabled config with a cache of the given TTL. record may be
// nil.
func NewIdempotencyConfig(ttl time.Duration, record cache.Recorder) IdempotencyConfig {
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	return IdempotencyConfig{Cache: newIdempotencyCache(ttl, record), Enabled: true}
}

// DefaultIdempotencyConfig returns an enabled config with IdempotencyKeyTTL.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return NewIdempotencyConfig(IdempotencyKeyTTL, nil)
}

// Idempotency replays the stored response when a POST, PUT or PATCH repeats an
// Idempotency-Key with the same method, path, caller and body. Only 2xx responses are stored.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		cacheKey, ok := idempotencyCacheKey(c, key)
		if !ok {
			c.Next()
			return
		}

		if cached, ok := cfg.Cache.Get(cacheKey); ok {
			for k, v := range cached.Headers {
				c.Header(k, v)
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		writer := &responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status >= 200 && status < 300 {
			cfg.Cache.Set(cacheKey, &cachedResponse{
				StatusCode:  status,
				ContentType: writer.Header().Get("Content-Type"),
				Headers:     replayHeaders(writer.Header()),
				Body:        writer.body.Bytes(),
			})
		}
	}
}

// idempotencyCacheKey hashes the key with the method, path, caller and body. Bodies over
// 1 MiB are not cached.
func idempotencyCacheKey(c *gin.Context, key string) (string, bool) {
	h := sha256.New()
	h.Write([]byte(key))
	h.Write([]byte{0})
	h.Write([]byte(c.Request.Method))
	h.Write([]byte(c.Request.URL.Path))
	h.Write([]byte{0})
	if id := CurrentUserID(c); id != nil {
		h.Write([]byte(strconv.FormatInt(*id, 10)))
	}
	h.Write([]byte{0})

	if c.Request.Body != nil {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxIdempotentBody+1))
		if err != nil {
			return "", false
		}
		c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), c.Request.Body))
		if len(body) > maxIdempotentBody {
			return "", false
		}
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil)), true
}

// replayHeaders keeps the headers worth returning on a replay.
func replayHeaders(h http.Header) map[string]string {
	out := make(map[string]string)
	for _, k := range []string{"Location", "Content-Language"} {
		if v := h.Get(k); v != "" {
			out[k] = v
		}
	}
	return out
}

// responseWriter tees the body into a buffer.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
