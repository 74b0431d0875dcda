package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/app/repositories"
	"github.com/yigit/campus-election/internal/pkg/apperrors"
)

type seeded struct {
	election  *models.Election
	position  *models.Position
	candidate *models.Candidate
	voter     *models.Voter
}

func seed(t *testing.T, s *Store) seeded {
	t.Helper()
	ctx := context.Background()
	out := seeded{
		election:  &models.Election{Title: "Council", Status: models.ElectionActive},
		position:  &models.Position{Name: "President", VoteLimit: 1},
		voter:     &models.Voter{StudentID: "20260001", FullName: "Test Voter"},
		candidate: &models.Candidate{Name: "Ada"},
	}
	require.NoError(t, s.CreateElection(ctx, out.election))
	require.NoError(t, s.CreatePosition(ctx, out.position))
	out.candidate.PositionID = out.position.ID
	require.NoError(t, s.CreateCandidate(ctx, out.candidate))
	require.NoError(t, s.CreateVoter(ctx, out.voter))
	require.NoError(t, s.ReplaceElectionPositions(ctx, out.election.ID, []int64{out.position.ID}))
	require.NoError(t, s.ReplaceElectionCandidates(ctx, out.election.ID, []int64{out.candidate.ID}))
	return out
}

func (d seeded) vote() *models.Vote {
	return &models.Vote{
		ElectionID:  d.election.ID,
		PositionID:  d.position.ID,
		CandidateID: d.candidate.ID,
		VoterID:     d.voter.ID,
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	s := NewStore()
	d := seed(t, s)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(ctx context.Context, q repositories.Queries) error {
		inserted, err := q.InsertVote(ctx, d.vote())
		require.NoError(t, err)
		require.True(t, inserted)
		_, err = q.MarkVoterVoted(ctx, d.voter.ID)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, 0, s.VoteCount())
	v, err := s.GetVoter(ctx, d.voter.ID)
	require.NoError(t, err)
	assert.False(t, v.HasVoted)
}

func TestWithTx_CommitFailure(t *testing.T) {
	s := NewStore()
	d := seed(t, s)
	ctx := context.Background()
	s.FailOn("Commit", errors.New("commit lost"))

	err := s.WithTx(ctx, func(ctx context.Context, q repositories.Queries) error {
		_, err := q.InsertVote(ctx, d.vote())
		return err
	})
	require.Error(t, err)
	assert.Equal(t, 0, s.VoteCount())

	// failures are one-shot
	require.NoError(t, s.WithTx(ctx, func(ctx context.Context, q repositories.Queries) error {
		_, err := q.InsertVote(ctx, d.vote())
		return err
	}))
	assert.Equal(t, 1, s.VoteCount())
}

func TestWithTx_CancelledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.WithTx(ctx, func(context.Context, repositories.Queries) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestInsertVote_UniqueTuple(t *testing.T) {
	s := NewStore()
	d := seed(t, s)
	ctx := context.Background()

	inserted, err := s.InsertVote(ctx, d.vote())
	require.NoError(t, err)
	assert.True(t, inserted)

	again := d.vote()
	inserted, err = s.InsertVote(ctx, again)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Zero(t, again.ID)

	missing := d.vote()
	missing.CandidateID = 999
	_, err = s.InsertVote(ctx, missing)
	assert.Equal(t, apperrors.KindValidation, apperrors.Kind(err))
}

func TestSingleLiveElection(t *testing.T) {
	s := NewStore()
	d := seed(t, s)
	ctx := context.Background()

	second := &models.Election{Title: "Second", Status: models.ElectionPending}
	err := s.CreateElection(ctx, second)
	assert.Equal(t, apperrors.CodeLiveElectionExists, apperrors.CodeOf(err))

	now := time.Now()
	require.NoError(t, s.UpdateElectionStatus(ctx, d.election.ID, models.ElectionEnded, now))
	require.NoError(t, s.CreateElection(ctx, second))

	err = s.UpdateElectionStatus(ctx, d.election.ID, models.ElectionActive, now)
	assert.Equal(t, apperrors.CodeLiveElectionExists, apperrors.CodeOf(err))
}

func TestMarkVoterVoted_FlipsOnce(t *testing.T) {
	s := NewStore()
	d := seed(t, s)
	ctx := context.Background()

	flipped, err := s.MarkVoterVoted(ctx, d.voter.ID)
	require.NoError(t, err)
	assert.True(t, flipped)

	flipped, err = s.MarkVoterVoted(ctx, d.voter.ID)
	require.NoError(t, err)
	assert.False(t, flipped)
}

func TestTallyElection_IncludesZeroVoteAndDetachedCandidates(t *testing.T) {
	s := NewStore()
	d := seed(t, s)
	ctx := context.Background()

	grace := &models.Candidate{Name: "Grace", PositionID: d.position.ID}
	require.NoError(t, s.CreateCandidate(ctx, grace))
	require.NoError(t, s.ReplaceElectionCandidates(ctx, d.election.ID, []int64{d.candidate.ID, grace.ID}))

	vote := d.vote()
	vote.CandidateID = grace.ID
	_, err := s.InsertVote(ctx, vote)
	require.NoError(t, err)

	// Grace keeps her vote after being detached from the ballot
	require.NoError(t, s.ReplaceElectionCandidates(ctx, d.election.ID, []int64{d.candidate.ID}))

	tallies, err := s.TallyElection(ctx, d.election.ID)
	require.NoError(t, err)
	require.Len(t, tallies, 2)
	assert.Equal(t, "Grace", tallies[0].CandidateName)
	assert.Equal(t, int64(1), tallies[0].Votes)
	assert.Equal(t, "Ada", tallies[1].CandidateName)
	assert.Zero(t, tallies[1].Votes)

	voters, err := s.CountElectionVoters(ctx, d.election.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), voters)

	byPosition, err := s.CountPositionVoters(ctx, d.election.ID)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{d.position.ID: 1}, byPosition)
}

func TestDeleteElection_RequiresCleanup(t *testing.T) {
	s := NewStore()
	d := seed(t, s)
	ctx := context.Background()

	err := s.DeleteElection(ctx, d.election.ID)
	assert.Equal(t, apperrors.KindValidation, apperrors.Kind(err))

	require.NoError(t, s.DeleteElectionCandidates(ctx, d.election.ID))
	require.NoError(t, s.DeleteElectionPositions(ctx, d.election.ID))
	require.NoError(t, s.DeleteElection(ctx, d.election.ID))

	_, err = s.GetElection(ctx, d.election.ID)
	assert.ErrorIs(t, err, repositories.ErrElectionNotFound)
}
