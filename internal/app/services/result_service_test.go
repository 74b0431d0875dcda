package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/pkg/apperrors"
)

func TestRankTallies(t *testing.T) {
	tallies := []models.CandidateTally{
		{PositionID: 1, PositionName: "President", VoteLimit: 1, CandidateID: 2, CandidateName: "Grace", Votes: 5},
		{PositionID: 1, PositionName: "President", VoteLimit: 1, CandidateID: 1, CandidateName: "Ada", Votes: 3},
		{PositionID: 2, PositionName: "Senate", VoteLimit: 2, CandidateID: 3, CandidateName: "Alan", Votes: 4},
		{PositionID: 2, PositionName: "Senate", VoteLimit: 2, CandidateID: 4, CandidateName: "Barbara", Votes: 0},
		{PositionID: 2, PositionName: "Senate", VoteLimit: 2, CandidateID: 5, CandidateName: "Claude", Votes: 0},
	}

	results := RankTallies(tallies)
	require.Len(t, results, 2)

	president := results[0]
	assert.Equal(t, int64(8), president.TotalVotes)
	require.Len(t, president.Candidates, 2)
	assert.Equal(t, models.CandidateResult{CandidateID: 2, CandidateName: "Grace", Votes: 5, Rank: 1, IsWinner: true}, president.Candidates[0])
	assert.Equal(t, models.CandidateResult{CandidateID: 1, CandidateName: "Ada", Votes: 3, Rank: 2}, president.Candidates[1])

	senate := results[1]
	assert.Equal(t, int64(4), senate.TotalVotes)
	assert.True(t, senate.Candidates[0].IsWinner)
	// a seat without votes has no winner
	assert.False(t, senate.Candidates[1].IsWinner)
	assert.Equal(t, 2, senate.Candidates[1].Rank)
	assert.Equal(t, 3, senate.Candidates[2].Rank)

	assert.Empty(t, RankTallies(nil))
}

func TestGetResults(t *testing.T) {
	f := newFixture(t)
	b := f.standardBallot(t)

	ballots := [][]models.Selection{
		{sel(b.election, b.president, b.presCands[1]), sel(b.election, b.senate, b.senateCand[0]), sel(b.election, b.senate, b.senateCand[2])},
		{sel(b.election, b.president, b.presCands[1]), sel(b.election, b.senate, b.senateCand[2])},
		{sel(b.election, b.president, b.presCands[0])},
	}
	for _, selections := range ballots {
		v := f.voter(t)
		report, err := f.ballots.SubmitBallot(f.ctx, v.ID, selections, models.BallotOptions{Final: true})
		require.NoError(t, err)
		require.True(t, report.Committed)
	}
	f.voter(t)

	results, err := f.results.GetResults(f.ctx, b.election.ID)
	require.NoError(t, err)

	assert.Equal(t, b.election.ID, results.ElectionID)
	assert.Equal(t, models.ElectionActive, results.Status)
	assert.Equal(t, int64(3), results.VotersVoted)
	assert.Equal(t, int64(6), results.TotalVotes)
	assert.Equal(t, f.now, results.GeneratedAt)
	require.Len(t, results.Positions, 2)

	president := results.Positions[0]
	assert.Equal(t, "President", president.PositionName)
	assert.Equal(t, int64(3), president.TotalVotes)
	assert.Equal(t, int64(3), president.VotersVoted)
	require.Len(t, president.Candidates, 2)
	assert.Equal(t, "Grace", president.Candidates[0].CandidateName)
	assert.Equal(t, int64(2), president.Candidates[0].Votes)
	assert.True(t, president.Candidates[0].IsWinner)
	assert.False(t, president.Candidates[1].IsWinner)

	senate := results.Positions[1]
	assert.Equal(t, int64(3), senate.TotalVotes)
	assert.Equal(t, int64(2), senate.VotersVoted)
	require.Len(t, senate.Candidates, 3)
	assert.Equal(t, "Claude", senate.Candidates[0].CandidateName)
	assert.Equal(t, "Alan", senate.Candidates[1].CandidateName)
	assert.Equal(t, "Barbara", senate.Candidates[2].CandidateName)
	assert.Equal(t, int64(0), senate.Candidates[2].Votes)
	assert.True(t, senate.Candidates[1].IsWinner)
	assert.False(t, senate.Candidates[2].IsWinner)

	live, err := f.results.GetLiveResults(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, results.TotalVotes, live.TotalVotes)

	_, err = f.results.GetResults(f.ctx, 999)
	assert.Equal(t, apperrors.KindNotFound, apperrors.Kind(err))
	_, err = f.results.GetResults(f.ctx, 0)
	assert.Equal(t, apperrors.KindValidation, apperrors.Kind(err))
}

func TestGetLiveResults_NoLiveElection(t *testing.T) {
	f := newFixture(t)

	_, err := f.results.GetLiveResults(f.ctx)
	assert.Equal(t, apperrors.KindNotFound, apperrors.Kind(err))
}

func TestGetCountdown(t *testing.T) {
	f := newFixture(t)
	p := f.position(t, "President", 1, 1)

	end := f.now.Add(90*time.Second + 500*time.Millisecond)
	e, err := f.elections.CreateElection(f.ctx, ElectionInput{Title: "Countdown", EndTime: &end}, []int64{p.ID}, nil)
	require.NoError(t, err)

	countdown, err := f.results.GetCountdown(f.ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(91), countdown.RemainingSeconds)
	assert.False(t, countdown.Expired)
	assert.Equal(t, f.now, countdown.ServerTime)
	assert.Equal(t, models.ElectionPending, countdown.Status)

	_, err = f.elections.EndElection(f.ctx, e.ID, "")
	require.NoError(t, err)

	past := f.now.Add(-time.Minute)
	overdue, err := f.elections.CreateElection(f.ctx, ElectionInput{Title: "Overdue", EndTime: &past}, []int64{p.ID}, nil)
	require.NoError(t, err)
	countdown, err = f.results.GetCountdown(f.ctx, overdue.ID)
	require.NoError(t, err)
	assert.Zero(t, countdown.RemainingSeconds)
	assert.True(t, countdown.Expired)

	_, err = f.elections.EndElection(f.ctx, overdue.ID, "")
	require.NoError(t, err)

	open, err := f.elections.CreateElection(f.ctx, ElectionInput{Title: "Open ended"}, []int64{p.ID}, nil)
	require.NoError(t, err)
	countdown, err = f.results.GetCountdown(f.ctx, open.ID)
	require.NoError(t, err)
	assert.Zero(t, countdown.RemainingSeconds)
	assert.False(t, countdown.Expired)
	assert.Nil(t, countdown.EndTime)
}
