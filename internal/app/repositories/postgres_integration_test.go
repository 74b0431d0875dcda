//go:build integration

package repositories_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campus-election/internal/app/migrations"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/app/repositories"
	"github.com/yigit/campus-election/internal/app/services"
	"github.com/yigit/campus-election/internal/db"
	"github.com/yigit/campus-election/internal/pkg/apperrors"
	"github.com/yigit/campus-election/internal/pkg/dberrors"
)

// testDSNEnv names the database the integration tests run against. The tests truncate
// every election table, so point it at a disposable database.
const testDSNEnv = "CAMPUS_ELECTION_TEST_DSN"

func newPostgresStore(t *testing.T) *repositories.PostgresStore {
	t.Helper()
	dsn := os.Getenv(testDSNEnv)
	if dsn == "" {
		t.Skipf("%s is not set", testDSNEnv)
	}
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(ctx))

	migrator := migrations.NewMigrator(pool, zerolog.Nop())
	require.NoError(t, migrator.MigrateFromDirectory(ctx, filepath.Join("..", "..", "..", "migrations")))

	_, err = pool.Exec(ctx, `TRUNCATE votes, election_candidates, election_positions, elections, candidates, positions, voters RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return repositories.NewPostgresStore(&db.PostgresDB{Pool: pool})
}

type senateBallot struct {
	election   *models.Election
	position   *models.Position
	candidates []*models.Candidate
	voter      *models.Voter
}

func newSenateBallot(t *testing.T, ctx context.Context, store repositories.Store, elections services.ElectionService) *senateBallot {
	t.Helper()
	b := &senateBallot{position: &models.Position{Name: "Senate", VoteLimit: 2, DisplayOrder: 1}}
	require.NoError(t, store.CreatePosition(ctx, b.position))

	candidateIDs := []int64{}
	for i := 0; i < 4; i++ {
		c := &models.Candidate{Name: fmt.Sprintf("Candidate %d", i+1), PositionID: b.position.ID}
		require.NoError(t, store.CreateCandidate(ctx, c))
		b.candidates = append(b.candidates, c)
		candidateIDs = append(candidateIDs, c.ID)
	}

	b.voter = &models.Voter{StudentID: "20269001", FullName: "Integration Voter"}
	require.NoError(t, store.CreateVoter(ctx, b.voter))

	e, err := elections.CreateElection(ctx, services.ElectionInput{Title: "Senate 2026", CreatedBy: 1}, []int64{b.position.ID}, candidateIDs)
	require.NoError(t, err)
	b.election, err = elections.StartElection(ctx, e.ID)
	require.NoError(t, err)
	return b
}

func TestPostgres_ConcurrentBallotsRespectVoteLimit(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	elections := services.NewElectionService(store, time.Now, zerolog.Nop())
	ballots := services.NewBallotService(store, services.BallotConfig{MaxSelections: 10}, nil, zerolog.Nop())
	b := newSenateBallot(t, ctx, store, elections)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		committed int
		codes     []string
	)
	start := make(chan struct{})
	for _, c := range b.candidates {
		wg.Add(1)
		go func(c *models.Candidate) {
			defer wg.Done()
			<-start
			report, err := ballots.SubmitBallot(ctx, b.voter.ID, []models.Selection{
				{ElectionID: b.election.ID, PositionID: b.position.ID, CandidateID: c.ID},
			}, models.BallotOptions{})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if report.Committed {
				committed++
				return
			}
			for _, e := range report.Errors {
				codes = append(codes, e.Code)
			}
		}(c)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 2, committed)
	assert.Equal(t, []string{apperrors.KindVoteLimitExceeded, apperrors.KindVoteLimitExceeded}, codes)

	count, err := store.CountVoterPositionVotes(ctx, b.voter.ID, b.election.ID, b.position.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPostgres_InsertVoteIgnoresDuplicateTuple(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	elections := services.NewElectionService(store, time.Now, zerolog.Nop())
	b := newSenateBallot(t, ctx, store, elections)

	vote := func() *models.Vote {
		return &models.Vote{ElectionID: b.election.ID, PositionID: b.position.ID, CandidateID: b.candidates[0].ID, VoterID: b.voter.ID}
	}
	first := vote()
	inserted, err := store.InsertVote(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotZero(t, first.ID)

	inserted, err = store.InsertVote(ctx, vote())
	require.NoError(t, err)
	assert.False(t, inserted)

	byPosition, err := store.CountPositionVoters(ctx, b.election.ID)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{b.position.ID: 1}, byPosition)
}

func TestPostgres_SingleLiveElectionIndex(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateElection(ctx, &models.Election{Title: "First", Status: models.ElectionPending}))
	err := store.CreateElection(ctx, &models.Election{Title: "Second", Status: models.ElectionPending})
	require.Error(t, err)

	classified := dberrors.Classify("create election", err)
	assert.Equal(t, apperrors.KindConflict, apperrors.Kind(classified))
	assert.Equal(t, apperrors.CodeLiveElectionExists, apperrors.CodeOf(classified))

	require.NoError(t, store.CreateElection(ctx, &models.Election{Title: "Archived", Status: models.ElectionEnded}))
}

func TestPostgres_WithTxRollsBack(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	cause := errors.New("abort")

	err := store.WithTx(ctx, func(ctx context.Context, q repositories.Queries) error {
		if err := q.CreatePosition(ctx, &models.Position{Name: "Treasurer", VoteLimit: 1}); err != nil {
			return err
		}
		return cause
	})
	require.ErrorIs(t, err, cause)

	n, err := store.CountPositions(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
