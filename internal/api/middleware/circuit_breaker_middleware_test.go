package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/youssefmohamed45/stridetrack/pkg/config"
)

func breakerRouter(cfg config.BreakerConfig, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewStoreBreaker(cfg).Guard())
	router.GET("/steps", handler)
	return router
}

func doRequest(router *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/steps", nil)
	router.ServeHTTP(w, req)
	return w.Code
}

func TestStoreBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	router := breakerRouter(config.BreakerConfig{
		FailureThreshold:    2,
		SuccessThreshold:    1,
		ResetTimeout:        time.Hour,
		HalfOpenMaxRequests: 1,
	}, func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store down"})
	})

	assert.Equal(t, http.StatusInternalServerError, doRequest(router))
	assert.Equal(t, http.StatusInternalServerError, doRequest(router))

	// Threshold reached: requests are shed without touching the store.
	assert.Equal(t, http.StatusServiceUnavailable, doRequest(router))
	assert.Equal(t, http.StatusServiceUnavailable, doRequest(router))
}

func TestStoreBreakerClosesAfterSuccessfulProbe(t *testing.T) {
	healthy := false
	router := breakerRouter(config.BreakerConfig{
		FailureThreshold:    1,
		SuccessThreshold:    1,
		ResetTimeout:        0,
		HalfOpenMaxRequests: 1,
	}, func(c *gin.Context) {
		if healthy {
			c.JSON(http.StatusOK, gin.H{"data": "ok"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store down"})
	})

	assert.Equal(t, http.StatusInternalServerError, doRequest(router))

	// Zero reset timeout: the next request is admitted as a half-open probe.
	healthy = true
	assert.Equal(t, http.StatusOK, doRequest(router))

	// Probe succeeded; the breaker is closed again.
	assert.Equal(t, http.StatusOK, doRequest(router))
	assert.Equal(t, http.StatusOK, doRequest(router))
}

func TestStoreBreakerFailedProbeReopens(t *testing.T) {
	breaker := NewStoreBreaker(config.BreakerConfig{
		FailureThreshold:    3,
		SuccessThreshold:    2,
		ResetTimeout:        time.Hour,
		HalfOpenMaxRequests: 1,
	})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(breaker.Guard())
	router.GET("/steps", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store down"})
	})

	breaker.mu.Lock()
	breaker.state = breakerHalfOpen
	breaker.mu.Unlock()

	// The probe is admitted and fails; a single failure reopens regardless
	// of the closed-state failure threshold.
	assert.Equal(t, http.StatusInternalServerError, doRequest(router))
	assert.Equal(t, http.StatusServiceUnavailable, doRequest(router))
}
