package services

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/app/repositories"
	"github.com/yigit/campus-election/internal/pkg/websocket"
)

// ResultService defines read-only tally and countdown queries
type ResultService interface {
	GetResults(ctx context.Context, electionID int64) (*models.ElectionResults, error)
	// GetLiveResults returns the results of the election that has not ended yet
	GetLiveResults(ctx context.Context) (*models.ElectionResults, error)
	GetCountdown(ctx context.Context, electionID int64) (*models.Countdown, error)
}

// resultServiceImpl implements the ResultService interface
type resultServiceImpl struct {
	store repositories.Store
	now   Clock
}

// NewResultService creates a new result service instance
func NewResultService(store repositories.Store, now Clock) ResultService {
	if now == nil {
		now = time.Now
	}
	return &resultServiceImpl{store: store, now: now}
}

// GetResults aggregates the vote ledger of an election
func (s *resultServiceImpl) GetResults(ctx context.Context, electionID int64) (*models.ElectionResults, error) {
	if err := validateID("election", electionID); err != nil {
		return nil, err
	}
	election, err := s.store.GetElection(ctx, electionID)
	if err != nil {
		return nil, storeError("get election", err)
	}
	return s.buildResults(ctx, election)
}

// GetLiveResults aggregates the vote ledger of the live election
func (s *resultServiceImpl) GetLiveResults(ctx context.Context) (*models.ElectionResults, error) {
	election, err := s.store.GetLiveElection(ctx)
	if err != nil {
		return nil, storeError("get live election", err)
	}
	return s.buildResults(ctx, election)
}

func (s *resultServiceImpl) buildResults(ctx context.Context, election *models.Election) (*models.ElectionResults, error) {
	tallies, err := s.store.TallyElection(ctx, election.ID)
	if err != nil {
		return nil, storeError("tally election", err)
	}
	voters, err := s.store.CountElectionVoters(ctx, election.ID)
	if err != nil {
		return nil, storeError("count election voters", err)
	}
	positionVoters, err := s.store.CountPositionVoters(ctx, election.ID)
	if err != nil {
		return nil, storeError("count position voters", err)
	}

	results := RankTallies(tallies)
	for i := range results {
		results[i].VotersVoted = positionVoters[results[i].PositionID]
	}
	out := &models.ElectionResults{
		ElectionID:  election.ID,
		Title:       election.Title,
		Status:      election.Status,
		VotersVoted: voters,
		Positions:   results,
		GeneratedAt: s.now(),
	}
	for _, p := range results {
		out.TotalVotes += p.TotalVotes
	}
	return out, nil
}

// RankTallies groups tally rows by position and ranks candidates. Rows must already be
// ordered by display order, position, votes descending, candidate name and id. The
// first VoteLimit candidates with at least one vote are winners.
func RankTallies(tallies []models.CandidateTally) []models.PositionResult {
	positions := []models.PositionResult{}
	for _, t := range tallies {
		if n := len(positions); n == 0 || positions[n-1].PositionID != t.PositionID {
			positions = append(positions, models.PositionResult{
				PositionID:   t.PositionID,
				PositionName: t.PositionName,
				VoteLimit:    t.VoteLimit,
				DisplayOrder: t.DisplayOrder,
				Candidates:   []models.CandidateResult{},
			})
		}
		p := &positions[len(positions)-1]
		rank := len(p.Candidates) + 1
		p.Candidates = append(p.Candidates, models.CandidateResult{
			CandidateID:   t.CandidateID,
			CandidateName: t.CandidateName,
			Votes:         t.Votes,
			Rank:          rank,
			IsWinner:      t.Votes > 0 && rank <= t.VoteLimit,
		})
		p.TotalVotes += t.Votes
	}
	return positions
}

// GetCountdown reports the time left before an election's end time
func (s *resultServiceImpl) GetCountdown(ctx context.Context, electionID int64) (*models.Countdown, error) {
	if err := validateID("election", electionID); err != nil {
		return nil, err
	}
	election, err := s.store.GetElection(ctx, electionID)
	if err != nil {
		return nil, storeError("get election", err)
	}

	now := s.now()
	countdown := &models.Countdown{
		ElectionID: election.ID,
		Status:     election.Status,
		StartTime:  election.StartTime,
		EndTime:    election.EndTime,
		ServerTime: now,
		Expired:    election.Status == models.ElectionEnded,
	}
	if remaining, ok := election.Remaining(now); ok {
		if remaining > 0 {
			countdown.RemainingSeconds = int64(math.Ceil(remaining.Seconds()))
		} else {
			countdown.Expired = true
		}
	}
	return countdown, nil
}

// liveResultsPublisher pushes results snapshots to websocket subscribers
type liveResultsPublisher struct {
	results ResultService
	hub     *websocket.Hub
	logger  zerolog.Logger
}

// NewLiveResultsPublisher creates a ResultsPublisher backed by the websocket hub
func NewLiveResultsPublisher(results ResultService, hub *websocket.Hub, logger zerolog.Logger) ResultsPublisher {
	return &liveResultsPublisher{
		results: results,
		hub:     hub,
		logger:  logger.With().Str("component", "results_publisher").Logger(),
	}
}

// Publish computes a fresh snapshot only when someone is watching the election
func (p *liveResultsPublisher) Publish(ctx context.Context, electionID int64) {
	if p.hub.GetClientsCount(electionID) == 0 {
		return
	}
	results, err := p.results.GetResults(ctx, electionID)
	if err != nil {
		p.logger.Warn().Err(err).Int64("electionID", electionID).Msg("Failed to build results snapshot")
		return
	}
	p.hub.Broadcast(websocket.NewMessage(websocket.MessageTypeResults, electionID, results))
}
