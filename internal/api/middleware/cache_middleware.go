package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/youssefmohamed45/stridetrack/internal/infrastructure/cache"
)

// CacheMiddleware serves GET responses from Redis. Activity data caches per
// user; the pub/sub invalidation listener and the write paths clear it.
type CacheMiddleware struct {
	cache *cache.RedisClient
}

func NewCacheMiddleware(cache *cache.RedisClient) *CacheMiddleware {
	return &CacheMiddleware{cache: cache}
}

// responseBuffer is a custom ResponseWriter that stores the response
type responseBuffer struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func newResponseBuffer(original gin.ResponseWriter) *responseBuffer {
	return &responseBuffer{
		ResponseWriter: original,
		body:           bytes.NewBufferString(""),
	}
}

func (r *responseBuffer) Write(b []byte) (int, error) {
	r.ResponseWriter.Write(b)
	return r.body.Write(b)
}

func (r *responseBuffer) WriteString(s string) (int, error) {
	r.ResponseWriter.WriteString(s)
	return r.body.WriteString(s)
}

// CacheResponse caches GET responses under the given cache type's TTL.
func (m *CacheMiddleware) CacheResponse(cacheType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := m.cacheKey(cacheType, c)

		if data, err := m.cache.Get(c, key); err == nil {
			var response map[string]interface{}
			if err := json.Unmarshal(data, &response); err == nil {
				c.JSON(http.StatusOK, response)
				c.Abort()
				return
			}
		} else if !errors.Is(err, cache.ErrCacheNotFound) {
			log.Error("Cache read failed", zap.Error(err), zap.String("key", key))
		}

		writer := c.Writer
		buff := newResponseBuffer(writer)
		c.Writer = buff

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			if err := m.cache.Set(c, key, buff.body.Bytes(), m.cache.TTLFor(cacheType)); err != nil {
				log.Error("Failed to cache response", zap.Error(err))
			}
		}

		c.Writer = writer
	}
}

// CacheInvalidate clears a user's cached responses after a successful write.
func (m *CacheMiddleware) CacheInvalidate(cacheTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}

		userID, _ := GetUserID(c)
		for _, cacheType := range cacheTypes {
			pattern := cacheType + ":" + userID.String() + ":*"
			if err := m.cache.DeletePattern(c, pattern); err != nil {
				log.Error("Failed to invalidate cache",
					zap.Error(err),
					zap.String("pattern", pattern))
			}
		}
	}
}

// InvalidateUser clears every cached response of the given type for a user.
// Used by the pub/sub listener when another instance writes.
func (m *CacheMiddleware) InvalidateUser(c *gin.Context, cacheType string, userID uuid.UUID) error {
	return m.cache.DeletePattern(c, cacheType+":"+userID.String()+":*")
}

func (m *CacheMiddleware) cacheKey(cacheType string, c *gin.Context) string {
	userID, _ := GetUserID(c)

	parts := []string{cacheType, userID.String(), c.Request.URL.Path}
	if len(c.Request.URL.RawQuery) > 0 {
		parts = append(parts, c.Request.URL.RawQuery)
	}
	return strings.Join(parts, ":")
}
