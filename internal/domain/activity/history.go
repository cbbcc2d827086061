package activity

import (
	"sync"

	"github.com/google/uuid"
)

// liveReading is the most recent pedometer value pushed for a user's
// current day. While a session is active it wins over the persisted row,
// so the UI never shows a stale count for today.
type liveReading struct {
	dayKey string
	steps  int
}

// LiveStore holds per-user live "today" overrides in memory. Entries for
// past days are ignored once the day key rolls over, so no expiry pass is
// needed.
type LiveStore struct {
	mu       sync.RWMutex
	readings map[uuid.UUID]liveReading
}

func NewLiveStore() *LiveStore {
	return &LiveStore{
		readings: make(map[uuid.UUID]liveReading),
	}
}

// Set records a live reading for the user's given day.
func (s *LiveStore) Set(userID uuid.UUID, dayKey string, steps int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readings[userID] = liveReading{dayKey: dayKey, steps: steps}
}

// Get returns the live reading for (user, day) if one exists.
func (s *LiveStore) Get(userID uuid.UUID, dayKey string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reading, ok := s.readings[userID]
	if !ok || reading.dayKey != dayKey {
		return 0, false
	}
	return reading.steps, true
}

// Clear drops the user's live reading, e.g. on full history reset.
func (s *LiveStore) Clear(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.readings, userID)
}
