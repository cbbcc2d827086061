package milestone

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/youssefmohamed45/stridetrack/internal/domain/activity"
)

// fakeActivityRepo is an in-memory stand-in for the step history store.
type fakeActivityRepo struct {
	steps  map[string]int
	events []*activity.ActivityEventLog
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{steps: make(map[string]int)}
}

func (f *fakeActivityRepo) UpsertSteps(_ context.Context, _ uuid.UUID, dayKey string, steps int) error {
	f.steps[dayKey] = steps
	return nil
}

func (f *fakeActivityRepo) GetSteps(_ context.Context, _ uuid.UUID, dayKey string) (int, error) {
	return f.steps[dayKey], nil
}

func (f *fakeActivityRepo) GetRange(_ context.Context, _ uuid.UUID, fromKey, toKey string) (map[string]int, error) {
	out := make(map[string]int)
	for key, steps := range f.steps {
		if key >= fromKey && key <= toKey {
			out[key] = steps
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) GetHistory(_ context.Context, _ uuid.UUID) (map[string]int, error) {
	return f.steps, nil
}

func (f *fakeActivityRepo) TotalSteps(_ context.Context, _ uuid.UUID) (int64, error) {
	var total int64
	for _, steps := range f.steps {
		total += int64(steps)
	}
	return total, nil
}

func (f *fakeActivityRepo) ResetHistory(_ context.Context, _ uuid.UUID) (int64, error) {
	removed := int64(len(f.steps))
	f.steps = make(map[string]int)
	return removed, nil
}

func (f *fakeActivityRepo) RecordEvent(_ context.Context, event *activity.ActivityEventLog) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeActivityRepo) GetEventSummary(_ context.Context, _ uuid.UUID, _, _ time.Time) (map[string]int, error) {
	summary := make(map[string]int)
	for _, event := range f.events {
		summary[event.Action]++
	}
	return summary, nil
}

// fakeRepo is an in-memory achievement store.
type fakeRepo struct {
	achievement Achievement
	ledger      []CelebrationRecord
}

func (f *fakeRepo) GetOrCreate(_ context.Context, userID uuid.UUID) (*Achievement, error) {
	if f.achievement.UserID == uuid.Nil {
		f.achievement = Achievement{ID: uuid.New(), UserID: userID}
	}
	snapshot := f.achievement
	return &snapshot, nil
}

func (f *fakeRepo) Save(_ context.Context, achievement *Achievement) error {
	f.achievement = *achievement
	return nil
}

func (f *fakeRepo) RaiseCounters(_ context.Context, _ uuid.UUID, totalSteps int64, goalDays, challengeDays, lastLevel int) error {
	if totalSteps > f.achievement.TotalSteps {
		f.achievement.TotalSteps = totalSteps
	}
	if goalDays > f.achievement.ConsecutiveGoalDays {
		f.achievement.ConsecutiveGoalDays = goalDays
	}
	if challengeDays > f.achievement.MaxChallengeDays {
		f.achievement.MaxChallengeDays = challengeDays
	}
	if lastLevel > f.achievement.LastCelebratedLevel {
		f.achievement.LastCelebratedLevel = lastLevel
	}
	return nil
}

func (f *fakeRepo) TakePendingTier(_ context.Context, _ uuid.UUID) (int, error) {
	pending := f.achievement.PendingTierDays
	f.achievement.PendingTierDays = 0
	return pending, nil
}

func (f *fakeRepo) SetPendingTier(_ context.Context, _ uuid.UUID, tierDays int) error {
	f.achievement.PendingTierDays = tierDays
	return nil
}

func (f *fakeRepo) IncrementGoalStreak(_ context.Context, _ uuid.UUID) (int, error) {
	f.achievement.ConsecutiveGoalDays++
	return f.achievement.ConsecutiveGoalDays, nil
}

func (f *fakeRepo) ResetGoalStreak(_ context.Context, _ uuid.UUID) error {
	f.achievement.ConsecutiveGoalDays = 0
	return nil
}

func (f *fakeRepo) RecordCelebration(_ context.Context, record *CelebrationRecord) error {
	f.ledger = append(f.ledger, *record)
	return nil
}

func (f *fakeRepo) GetLedger(_ context.Context, _ uuid.UUID, _ int) ([]CelebrationRecord, error) {
	return f.ledger, nil
}

func (f *fakeRepo) Reset(_ context.Context, _ uuid.UUID) error {
	userID := f.achievement.UserID
	id := f.achievement.ID
	f.achievement = Achievement{ID: id, UserID: userID}
	f.ledger = nil
	return nil
}

func TestReconcileNeverLowers(t *testing.T) {
	userID := uuid.New()
	activityRepo := newFakeActivityRepo()
	activityRepo.steps["2026-03-14"] = 8000
	activityRepo.steps["2026-03-15"] = 2000

	repo := &fakeRepo{}
	svc := NewService(repo, activityRepo, nil, zap.NewNop())

	result, err := svc.Reconcile(context.Background(), userID, RemoteSnapshot{
		DailySteps: map[string]int{
			"2026-03-14": 5000,  // lower: must not shrink the stored day
			"2026-03-15": 6000,  // higher: raised
			"2026-03-13": 3000,  // unseen: created
		},
		ConsecutiveGoalDays: 4,
		MaxChallengeDays:    14,
		LastCelebratedLevel: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.DaysRaised)
	assert.Equal(t, 1, result.DaysUnchanged)

	assert.Equal(t, 8000, activityRepo.steps["2026-03-14"])
	assert.Equal(t, 6000, activityRepo.steps["2026-03-15"])
	assert.Equal(t, 3000, activityRepo.steps["2026-03-13"])
	assert.Equal(t, int64(17_000), result.TotalSteps)

	assert.Equal(t, 4, repo.achievement.ConsecutiveGoalDays)
	assert.Equal(t, 14, repo.achievement.MaxChallengeDays)
	assert.Equal(t, 2, repo.achievement.LastCelebratedLevel)

	// A second pass with the same stale snapshot changes nothing.
	again, err := svc.Reconcile(context.Background(), userID, RemoteSnapshot{
		DailySteps: map[string]int{
			"2026-03-14": 5000,
			"2026-03-15": 6000,
			"2026-03-13": 3000,
		},
		ConsecutiveGoalDays: 2,
		MaxChallengeDays:    7,
		LastCelebratedLevel: 1,
	})
	require.NoError(t, err)
	assert.Zero(t, again.DaysRaised)
	assert.Equal(t, 3, again.DaysUnchanged)
	assert.Equal(t, 4, repo.achievement.ConsecutiveGoalDays)
	assert.Equal(t, 14, repo.achievement.MaxChallengeDays)
	assert.Equal(t, 2, repo.achievement.LastCelebratedLevel)
}

func TestReconcileRejectsMalformedDayKey(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, newFakeActivityRepo(), nil, zap.NewNop())

	_, err := svc.Reconcile(context.Background(), uuid.New(), RemoteSnapshot{
		DailySteps: map[string]int{"15/03/2026": 1000},
	})

	assert.ErrorIs(t, err, activity.ErrInvalidDayKey)
}

func TestEvaluateQuietCycleLeavesNoLedgerRows(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, newFakeActivityRepo(), nil, zap.NewNop())

	celebration, err := svc.Evaluate(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, celebration)
	assert.Empty(t, repo.ledger)
}
