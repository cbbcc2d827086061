package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/youssefmohamed45/stridetrack/internal/infrastructure/cache"
)

// StepRecord is the unit a mirror pushes downstream.
type StepRecord struct {
	UserID uuid.UUID `json:"user_id"`
	DayKey string    `json:"day_key"`
	Steps  int       `json:"steps"`
	SyncAt time.Time `json:"sync_at"`
}

// Mirror replicates step records to a secondary store on a best-effort
// basis. Contract: fire-and-forget, no retry, failures are logged and never
// surfaced; the primary row stays authoritative regardless of outcome.
type Mirror interface {
	Mirror(record StepRecord)
}

// RedisMirror keeps the latest value per (user, day) in Redis so paired
// clients can read fresh counts without hitting Postgres.
type RedisMirror struct {
	redis   *cache.RedisClient
	timeout time.Duration
	ttl     time.Duration
	log     *logrus.Logger
}

func NewRedisMirror(redis *cache.RedisClient, timeout time.Duration, log *logrus.Logger) *RedisMirror {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RedisMirror{
		redis:   redis,
		timeout: timeout,
		ttl:     48 * time.Hour,
		log:     log,
	}
}

// Mirror schedules the write and returns immediately.
func (m *RedisMirror) Mirror(record StepRecord) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		payload, err := json.Marshal(record)
		if err != nil {
			m.log.WithError(err).Warn("mirror: failed to encode step record")
			return
		}

		key := fmt.Sprintf("mirror:steps:%s:%s", record.UserID, record.DayKey)
		if err := m.redis.Set(ctx, key, payload, m.ttl); err != nil {
			m.log.WithFields(logrus.Fields{
				"user_id": record.UserID,
				"day_key": record.DayKey,
			}).WithError(err).Warn("mirror: step record write failed")
		}
	}()
}

// NopMirror discards records; used in tests and when Redis is disabled.
type NopMirror struct{}

func (NopMirror) Mirror(StepRecord) {}
