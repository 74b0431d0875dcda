// Package scheduler ends elections once their end time passes. One-shot timers give
// prompt expiry; a periodic sweep over the store catches anything a timer missed,
// including elections that expired while the process was down.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/app/services"
)

// Default timings
const (
	DefaultSweepInterval = time.Minute
	DefaultEndTimeout    = 10 * time.Second
)

// ErrAlreadyStarted is returned when Start is called on a running scheduler
var ErrAlreadyStarted = errors.New("expiry scheduler already started")

// Expirer ends an election whose end time has passed
type Expirer interface {
	ExpireElection(ctx context.Context, id int64) (*models.Election, error)
}

// Source lists the elections the scheduler watches
type Source interface {
	ListExpirableElections(ctx context.Context) ([]*models.Election, error)
	ListOverdueElections(ctx context.Context, now time.Time) ([]*models.Election, error)
}

// Config holds scheduler settings
type Config struct {
	SweepInterval time.Duration
	EndTimeout    time.Duration
	Clock         func() time.Time
}

type timerEntry struct {
	timer *time.Timer
	gen   uint64
}

// ExpiryScheduler owns the per-election expiry timers and the reconciliation sweep
type ExpiryScheduler struct {
	source  Source
	expirer Expirer
	cfg     Config
	now     func() time.Time
	logger  zerolog.Logger

	mu      sync.Mutex
	timers  map[int64]timerEntry
	gen     uint64
	running bool
	runCtx  context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

var _ services.ExpiryWatcher = (*ExpiryScheduler)(nil)

// NewExpiryScheduler creates a stopped scheduler
func NewExpiryScheduler(source Source, expirer Expirer, cfg Config, logger zerolog.Logger) *ExpiryScheduler {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	if cfg.EndTimeout <= 0 {
		cfg.EndTimeout = DefaultEndTimeout
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &ExpiryScheduler{
		source:  source,
		expirer: expirer,
		cfg:     cfg,
		now:     now,
		logger:  logger.With().Str("component", "expiry_scheduler").Logger(),
		timers:  make(map[int64]timerEntry),
	}
}

// Start reloads every timed election from the store, ending overdue ones before it
// returns, then starts the periodic sweep. Only a failure to list elections fails
// Start; elections that cannot be ended are left to the sweep.
func (s *ExpiryScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.runCtx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.done = make(chan struct{})
	s.running = true
	runCtx, done := s.runCtx, s.done
	s.mu.Unlock()

	elections, err := s.source.ListExpirableElections(ctx)
	if err != nil {
		s.halt()
		return fmt.Errorf("failed to reload election timers: %w", err)
	}
	if err := s.reload(ctx, elections); err != nil {
		s.logger.Warn().Err(err).Msg("Overdue elections left for the next sweep")
	}

	go s.loop(runCtx, done)

	s.logger.Info().Dur("sweepInterval", s.cfg.SweepInterval).Msg("Expiry scheduler started")
	return nil
}

// Stop halts the sweep and discards every timer. Elections still due are picked up by
// the next Start.
func (s *ExpiryScheduler) Stop() {
	done, ok := s.halt()
	if !ok {
		return
	}
	<-done
	s.logger.Info().Msg("Expiry scheduler stopped")
}

// halt cancels the run context and drops every timer. It returns the channel the
// sweep loop closes on exit, and false when the scheduler was not running.
func (s *ExpiryScheduler) halt() (chan struct{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil, false
	}
	s.running = false
	s.cancel()
	for id, entry := range s.timers {
		entry.timer.Stop()
		delete(s.timers, id)
	}
	return s.done, true
}

func (s *ExpiryScheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SweepOnce(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("Expiry sweep incomplete, retrying next cycle")
			}
		}
	}
}

// ReloadAll rebuilds the timer map from the store. Elections already past their end
// time are ended synchronously.
func (s *ExpiryScheduler) ReloadAll(ctx context.Context) error {
	elections, err := s.source.ListExpirableElections(ctx)
	if err != nil {
		return err
	}
	return s.reload(ctx, elections)
}

func (s *ExpiryScheduler) reload(ctx context.Context, elections []*models.Election) error {
	armed, expired := 0, 0
	var errs []error
	for _, e := range elections {
		if e.EndTime == nil {
			continue
		}
		remaining := e.EndTime.Sub(s.now())
		if remaining > 0 {
			s.arm(e.ID, remaining)
			armed++
			continue
		}
		s.Cancel(e.ID)
		if err := s.expire(ctx, e.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		expired++
	}

	s.logger.Info().
		Int("armed", armed).
		Int("expired", expired).
		Int("failed", len(errs)).
		Msg("Election timers reloaded")
	return errors.Join(errs...)
}

// Schedule arms or re-arms the timer of an election. Elections that are not pending or
// active, or have no end time, lose any timer they had.
func (s *ExpiryScheduler) Schedule(_ context.Context, e *models.Election) {
	if e == nil {
		return
	}
	if !e.Status.IsExpirable() || e.EndTime == nil {
		s.Cancel(e.ID)
		return
	}
	remaining := e.EndTime.Sub(s.now())
	if remaining < 0 {
		remaining = 0
	}
	s.arm(e.ID, remaining)
}

// Cancel discards the timer of an election, if any
func (s *ExpiryScheduler) Cancel(electionID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.timers[electionID]; ok {
		entry.timer.Stop()
		delete(s.timers, electionID)
	}
}

// HasTimer reports whether an election currently has an armed timer
func (s *ExpiryScheduler) HasTimer(electionID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[electionID]
	return ok
}

func (s *ExpiryScheduler) arm(electionID int64, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}

	if old, ok := s.timers[electionID]; ok {
		old.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.timers[electionID] = timerEntry{
		timer: time.AfterFunc(d, func() { s.fire(electionID, gen) }),
		gen:   gen,
	}

	s.logger.Debug().
		Int64("electionID", electionID).
		Dur("in", d).
		Msg("Election timer armed")
}

// fire runs on the timer goroutine. A timer replaced or cancelled after it started
// firing finds a different generation and does nothing.
func (s *ExpiryScheduler) fire(electionID int64, gen uint64) {
	s.mu.Lock()
	entry, ok := s.timers[electionID]
	if !ok || entry.gen != gen {
		s.mu.Unlock()
		return
	}
	delete(s.timers, electionID)
	ctx := s.runCtx
	s.mu.Unlock()

	if err := s.expire(ctx, electionID); err != nil {
		s.logger.Warn().Err(err).Int64("electionID", electionID).Msg("Timed expiry failed, sweep will retry")
	}
}

// SweepOnce ends every pending or active election whose end time has passed
func (s *ExpiryScheduler) SweepOnce(ctx context.Context) error {
	overdue, err := s.source.ListOverdueElections(ctx, s.now())
	if err != nil {
		return fmt.Errorf("failed to list overdue elections: %w", err)
	}

	var errs []error
	for _, e := range overdue {
		s.Cancel(e.ID)
		if err := s.expire(ctx, e.ID); err != nil {
			errs = append(errs, err)
		}
	}
	if len(overdue) > 0 {
		s.logger.Info().
			Int("overdue", len(overdue)).
			Int("failed", len(errs)).
			Msg("Expiry sweep completed")
	}
	return errors.Join(errs...)
}

func (s *ExpiryScheduler) expire(ctx context.Context, electionID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.EndTimeout)
	defer cancel()

	e, err := s.expirer.ExpireElection(ctx, electionID)
	if err != nil {
		return fmt.Errorf("election %d: %w", electionID, err)
	}
	if e.Status == models.ElectionEnded {
		s.logger.Info().Int64("electionID", electionID).Msg("Election expired")
	}
	return nil
}
