package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/app/repositories/memory"
)

type recordingWatcher struct {
	mu        sync.Mutex
	scheduled []int64
	cancelled []int64
}

func (w *recordingWatcher) Schedule(_ context.Context, e *models.Election) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.scheduled = append(w.scheduled, e.ID)
}

func (w *recordingWatcher) Cancel(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancelled = append(w.cancelled, id)
}

func (w *recordingWatcher) calls() (scheduled, cancelled []int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]int64(nil), w.scheduled...), append([]int64(nil), w.cancelled...)
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []int64
}

func (p *recordingPublisher) Publish(_ context.Context, electionID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, electionID)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

type fixture struct {
	ctx       context.Context
	store     *memory.Store
	elections ElectionService
	ballots   BallotService
	results   ResultService
	watcher   *recordingWatcher
	publisher *recordingPublisher
	now       time.Time
	voters    int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	store := memory.NewStore()
	store.SetClock(clock)

	f := &fixture{
		ctx:       context.Background(),
		store:     store,
		watcher:   &recordingWatcher{},
		publisher: &recordingPublisher{},
		now:       now,
	}
	f.elections = NewElectionService(store, clock, zerolog.Nop())
	f.elections.SetExpiryWatcher(f.watcher)
	f.elections.SetResultsPublisher(f.publisher)
	f.ballots = NewBallotService(store, BallotConfig{MaxSelections: 10, AllowPartial: true}, f.publisher, zerolog.Nop())
	f.results = NewResultService(store, clock)
	return f
}

func (f *fixture) position(t *testing.T, name string, limit, order int) *models.Position {
	t.Helper()
	p := &models.Position{Name: name, VoteLimit: limit, DisplayOrder: order}
	require.NoError(t, f.store.CreatePosition(f.ctx, p))
	return p
}

func (f *fixture) candidate(t *testing.T, position *models.Position, name string) *models.Candidate {
	t.Helper()
	c := &models.Candidate{Name: name, PositionID: position.ID, Department: "Engineering"}
	require.NoError(t, f.store.CreateCandidate(f.ctx, c))
	return c
}

func (f *fixture) voter(t *testing.T) *models.Voter {
	t.Helper()
	f.voters++
	v := &models.Voter{StudentID: fmt.Sprintf("2026%04d", f.voters), FullName: "Test Voter"}
	require.NoError(t, f.store.CreateVoter(f.ctx, v))
	return v
}

func positionIDs(positions []*models.Position) []int64 {
	out := make([]int64, 0, len(positions))
	for _, p := range positions {
		out = append(out, p.ID)
	}
	return out
}

func candidateIDs(candidates []*models.Candidate) []int64 {
	out := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.ID)
	}
	return out
}

func (f *fixture) election(t *testing.T, positions []*models.Position, candidates []*models.Candidate) *models.Election {
	t.Helper()
	e, err := f.elections.CreateElection(f.ctx, ElectionInput{Title: "Student Council", CreatedBy: 1}, positionIDs(positions), candidateIDs(candidates))
	require.NoError(t, err)
	return e
}

func (f *fixture) activeElection(t *testing.T, positions []*models.Position, candidates []*models.Candidate) *models.Election {
	t.Helper()
	e := f.election(t, positions, candidates)
	e, err := f.elections.StartElection(f.ctx, e.ID)
	require.NoError(t, err)
	return e
}

func sel(e *models.Election, p *models.Position, c *models.Candidate) models.Selection {
	return models.Selection{ElectionID: e.ID, PositionID: p.ID, CandidateID: c.ID}
}

// ballot is a standard catalog: a president seat with limit 1 and a senate with limit 2
type ballot struct {
	president  *models.Position
	senate     *models.Position
	presCands  []*models.Candidate
	senateCand []*models.Candidate
	election   *models.Election
}

func (f *fixture) standardBallot(t *testing.T) *ballot {
	t.Helper()
	b := &ballot{
		president: f.position(t, "President", 1, 1),
		senate:    f.position(t, "Senate", 2, 2),
	}
	b.presCands = []*models.Candidate{
		f.candidate(t, b.president, "Ada"),
		f.candidate(t, b.president, "Grace"),
	}
	b.senateCand = []*models.Candidate{
		f.candidate(t, b.senate, "Alan"),
		f.candidate(t, b.senate, "Barbara"),
		f.candidate(t, b.senate, "Claude"),
	}
	all := append(append([]*models.Candidate{}, b.presCands...), b.senateCand...)
	b.election = f.activeElection(t, []*models.Position{b.president, b.senate}, all)
	return b
}
