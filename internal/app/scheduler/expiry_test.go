package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/app/repositories/memory"
	"github.com/yigit/campus-election/internal/app/services"
)

type harness struct {
	ctx       context.Context
	store     *memory.Store
	elections services.ElectionService
	scheduler *ExpiryScheduler
	position  *models.Position
}

func newHarness(t *testing.T, sweep time.Duration) *harness {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	elections := services.NewElectionService(store, time.Now, zerolog.Nop())
	sched := NewExpiryScheduler(store, elections, Config{SweepInterval: sweep, EndTimeout: time.Second}, zerolog.Nop())
	elections.SetExpiryWatcher(sched)
	t.Cleanup(sched.Stop)

	p := &models.Position{Name: "President", VoteLimit: 1, DisplayOrder: 1}
	require.NoError(t, store.CreatePosition(ctx, p))

	return &harness{ctx: ctx, store: store, elections: elections, scheduler: sched, position: p}
}

func (h *harness) create(t *testing.T, end time.Time) *models.Election {
	t.Helper()
	e, err := h.elections.CreateElection(h.ctx, services.ElectionInput{Title: "Council", EndTime: &end}, []int64{h.position.ID}, nil)
	require.NoError(t, err)
	return e
}

func (h *harness) status(id int64) models.ElectionStatus {
	e, err := h.store.GetElection(h.ctx, id)
	if err != nil {
		return ""
	}
	return e.Status
}

func TestTimerEndsElection(t *testing.T) {
	h := newHarness(t, time.Hour)
	require.NoError(t, h.scheduler.Start(h.ctx))

	e := h.create(t, time.Now().Add(50*time.Millisecond))
	_, err := h.elections.StartElection(h.ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, h.scheduler.HasTimer(e.ID))

	require.Eventually(t, func() bool {
		return h.status(e.ID) == models.ElectionEnded
	}, 2*time.Second, 10*time.Millisecond)
	assert.False(t, h.scheduler.HasTimer(e.ID))
}

func TestSweepRecoversLostTimer(t *testing.T) {
	h := newHarness(t, 20*time.Millisecond)
	require.NoError(t, h.scheduler.Start(h.ctx))

	e := h.create(t, time.Now().Add(30*time.Millisecond))
	h.scheduler.mu.Lock()
	for id, entry := range h.scheduler.timers {
		entry.timer.Stop()
		delete(h.scheduler.timers, id)
	}
	h.scheduler.mu.Unlock()

	require.Eventually(t, func() bool {
		return h.status(e.ID) == models.ElectionEnded
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStartEndsOverdueElections(t *testing.T) {
	h := newHarness(t, time.Hour)
	e := h.create(t, time.Now().Add(-time.Minute))
	assert.False(t, h.scheduler.HasTimer(e.ID))

	require.NoError(t, h.scheduler.Start(h.ctx))

	assert.Equal(t, models.ElectionEnded, h.status(e.ID))
	assert.False(t, h.scheduler.HasTimer(e.ID))
}

func TestStartArmsFutureElections(t *testing.T) {
	h := newHarness(t, time.Hour)
	e := h.create(t, time.Now().Add(time.Hour))

	require.NoError(t, h.scheduler.Start(h.ctx))
	assert.True(t, h.scheduler.HasTimer(e.ID))
	assert.ErrorIs(t, h.scheduler.Start(h.ctx), ErrAlreadyStarted)

	h.scheduler.Stop()
	assert.False(t, h.scheduler.HasTimer(e.ID))
	assert.Equal(t, models.ElectionPending, h.status(e.ID))

	// a stopped scheduler ignores new schedules and can be started again
	h.scheduler.Schedule(h.ctx, e)
	assert.False(t, h.scheduler.HasTimer(e.ID))
	require.NoError(t, h.scheduler.Start(h.ctx))
	assert.True(t, h.scheduler.HasTimer(e.ID))
}

func TestPausedElectionIsNotExpired(t *testing.T) {
	h := newHarness(t, 20*time.Millisecond)
	require.NoError(t, h.scheduler.Start(h.ctx))

	e := h.create(t, time.Now().Add(100*time.Millisecond))
	_, err := h.elections.StartElection(h.ctx, e.ID)
	require.NoError(t, err)
	_, err = h.elections.PauseElection(h.ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, h.scheduler.HasTimer(e.ID))

	assert.Never(t, func() bool {
		return h.status(e.ID) != models.ElectionPaused
	}, 250*time.Millisecond, 10*time.Millisecond)

	// resuming an overdue election hands it back to the scheduler
	_, err = h.elections.ResumeElection(h.ctx, e.ID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return h.status(e.ID) == models.ElectionEnded
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRescheduleReplacesTimer(t *testing.T) {
	h := newHarness(t, time.Hour)
	require.NoError(t, h.scheduler.Start(h.ctx))

	e := h.create(t, time.Now().Add(40*time.Millisecond))
	later := time.Now().Add(time.Hour)
	_, err := h.elections.UpdateElection(h.ctx, e.ID, services.ElectionUpdate{EndTime: &later})
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, models.ElectionPending, h.status(e.ID))
	assert.True(t, h.scheduler.HasTimer(e.ID))
}

type stubSource struct {
	overdue []*models.Election
	err     error
}

func (s *stubSource) ListExpirableElections(context.Context) ([]*models.Election, error) {
	return s.overdue, s.err
}

func (s *stubSource) ListOverdueElections(context.Context, time.Time) ([]*models.Election, error) {
	return s.overdue, s.err
}

type failingExpirer struct {
	calls []int64
}

func (f *failingExpirer) ExpireElection(_ context.Context, id int64) (*models.Election, error) {
	f.calls = append(f.calls, id)
	if id == 2 {
		return nil, errors.New("store unavailable")
	}
	return &models.Election{ID: id, Status: models.ElectionEnded}, nil
}

func TestSweepOnceJoinsFailures(t *testing.T) {
	source := &stubSource{overdue: []*models.Election{{ID: 1}, {ID: 2}, {ID: 3}}}
	expirer := &failingExpirer{}
	sched := NewExpiryScheduler(source, expirer, Config{}, zerolog.Nop())

	err := sched.SweepOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "election 2")
	assert.Equal(t, []int64{1, 2, 3}, expirer.calls)

	source.err = errors.New("connection refused")
	assert.Error(t, sched.SweepOnce(context.Background()))
}

func TestStartFailsWhenReloadFails(t *testing.T) {
	source := &stubSource{err: errors.New("connection refused")}
	sched := NewExpiryScheduler(source, &failingExpirer{}, Config{}, zerolog.Nop())

	require.Error(t, sched.Start(context.Background()))
	// a failed start leaves the scheduler stopped
	source.err = nil
	require.NoError(t, sched.Start(context.Background()))
	sched.Stop()
}

func TestStartSurvivesFailedExpiry(t *testing.T) {
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)
	source := &stubSource{overdue: []*models.Election{
		{ID: 1, EndTime: &past},
		{ID: 2, EndTime: &past},
		{ID: 3, EndTime: &future},
	}}
	expirer := &failingExpirer{}
	sched := NewExpiryScheduler(source, expirer, Config{SweepInterval: time.Hour}, zerolog.Nop())

	require.NoError(t, sched.Start(context.Background()))
	t.Cleanup(sched.Stop)

	assert.Equal(t, []int64{1, 2}, expirer.calls)
	assert.True(t, sched.HasTimer(3))

	// ReloadAll still reports expiry failures to its caller
	err := sched.ReloadAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "election 2")
}
