package activity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLiveStoreOverride(t *testing.T) {
	store := NewLiveStore()
	userID := uuid.New()

	_, ok := store.Get(userID, "2026-03-15")
	assert.False(t, ok)

	store.Set(userID, "2026-03-15", 4200)
	steps, ok := store.Get(userID, "2026-03-15")
	assert.True(t, ok)
	assert.Equal(t, 4200, steps)

	// A reading for yesterday is invisible once the day key moves on.
	_, ok = store.Get(userID, "2026-03-16")
	assert.False(t, ok)

	store.Clear(userID)
	_, ok = store.Get(userID, "2026-03-15")
	assert.False(t, ok)
}

func TestLiveStoreIsPerUser(t *testing.T) {
	store := NewLiveStore()
	a, b := uuid.New(), uuid.New()

	store.Set(a, "2026-03-15", 100)
	_, ok := store.Get(b, "2026-03-15")
	assert.False(t, ok)
}
