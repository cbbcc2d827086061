package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youssefmohamed45/stridetrack/pkg/config"
	"github.com/youssefmohamed45/stridetrack/pkg/logger"
)

// breakerState tracks whether the step store is considered healthy.
type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

func (s breakerState) String() string {
	switch s {
	case breakerOpen:
		return "open"
	case breakerHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// StoreBreaker sheds activity requests while the step store is failing,
// instead of piling every window query onto a sick connection pool. It opens
// after consecutive 5xx responses, rejects traffic until the reset timeout
// elapses, then lets a bounded trickle through to probe recovery.
type StoreBreaker struct {
	cfg config.BreakerConfig

	mu        sync.Mutex
	state     breakerState
	failures  int
	successes int
	inFlight  int
	openedAt  time.Time

	log *logger.Logger
}

func NewStoreBreaker(cfg config.BreakerConfig) *StoreBreaker {
	return &StoreBreaker{
		cfg:   cfg,
		state: breakerClosed,
		log:   logger.NewLogger(),
	}
}

// Guard is the gin middleware enforcing the breaker.
func (b *StoreBreaker) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !b.admit() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "activity store temporarily unavailable",
			})
			c.Abort()
			return
		}

		c.Next()

		b.observe(c.Writer.Status() >= http.StatusInternalServerError, c.FullPath())
	}
}

// admit decides whether a request may pass in the current state.
func (b *StoreBreaker) admit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerOpen:
		if time.Since(b.openedAt) < b.cfg.ResetTimeout {
			return false
		}
		b.transition(breakerHalfOpen)
		fallthrough
	case breakerHalfOpen:
		if b.inFlight >= b.cfg.HalfOpenMaxRequests {
			return false
		}
		b.inFlight++
		return true
	default:
		return true
	}
}

// observe folds one response outcome into the breaker state.
func (b *StoreBreaker) observe(failed bool, path string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == breakerHalfOpen && b.inFlight > 0 {
		b.inFlight--
	}

	if failed {
		b.successes = 0
		b.failures++
		// Half-open probes trip back to open on the first failure.
		if b.state == breakerHalfOpen || b.failures >= b.cfg.FailureThreshold {
			if b.state != breakerOpen {
				b.log.Error("Step store breaker opened",
					zap.String("path", path),
					zap.Int("failures", b.failures))
			}
			b.transition(breakerOpen)
			b.openedAt = time.Now()
		}
		return
	}

	b.failures = 0
	if b.state == breakerHalfOpen {
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.transition(breakerClosed)
			b.log.Info("Step store breaker closed", zap.String("path", path))
		}
	}
}

func (b *StoreBreaker) transition(next breakerState) {
	b.state = next
	b.failures = 0
	b.successes = 0
	b.inFlight = 0
}
