package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/app/repositories"
	"github.com/yigit/campus-election/internal/pkg/apperrors"
)

// Eligibility reasons
const (
	ReasonElectionNotActive = "ELECTION_NOT_ACTIVE"
	ReasonBallotFinalized   = "BALLOT_ALREADY_FINALIZED"
	ReasonVoteLimitReached  = "VOTE_LIMIT_REACHED"
)

// DefaultMaxSelections bounds the number of selections in one submission
const DefaultMaxSelections = 50

// errBallotRejected aborts the admission transaction without being a failure of the call
var errBallotRejected = errors.New("ballot rejected")

// BallotConfig holds admission policy settings
type BallotConfig struct {
	MaxSelections int
	AllowPartial  bool
}

// BallotService defines vote admission and voter-facing ballot queries
type BallotService interface {
	// SubmitBallot admits a voter's selections in one transaction and reports the outcome per selection
	SubmitBallot(ctx context.Context, voterID int64, selections []models.Selection, opts models.BallotOptions) (*models.BallotReport, error)
	GetVoterVotes(ctx context.Context, voterID, electionID int64) ([]models.VoteDetail, error)
	CheckEligibility(ctx context.Context, voterID, electionID, positionID int64) (*models.Eligibility, error)
}

// ballotServiceImpl implements the BallotService interface
type ballotServiceImpl struct {
	store     repositories.Store
	cfg       BallotConfig
	publisher ResultsPublisher
	logger    zerolog.Logger
}

// NewBallotService creates a new ballot service instance
func NewBallotService(store repositories.Store, cfg BallotConfig, publisher ResultsPublisher, logger zerolog.Logger) BallotService {
	if cfg.MaxSelections <= 0 {
		cfg.MaxSelections = DefaultMaxSelections
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &ballotServiceImpl{
		store:     store,
		cfg:       cfg,
		publisher: publisher,
		logger:    logger.With().Str("component", "ballot_service").Logger(),
	}
}

type indexedSelection struct {
	index int
	models.Selection
}

type ballotPair struct {
	positionID  int64
	candidateID int64
}

// orderSelections sorts selections by position, keeping request order within a position
func orderSelections(selections []models.Selection) []indexedSelection {
	ordered := make([]indexedSelection, len(selections))
	for i, sel := range selections {
		ordered[i] = indexedSelection{index: i, Selection: sel}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PositionID < ordered[j].PositionID
	})
	return ordered
}

func (s *ballotServiceImpl) validateSubmission(voterID int64, selections []models.Selection, opts models.BallotOptions) error {
	if err := validateID("voter", voterID); err != nil {
		return err
	}
	if len(selections) == 0 {
		return apperrors.NewValidationError("a ballot needs at least one selection")
	}
	if len(selections) > s.cfg.MaxSelections {
		return apperrors.NewValidationError(fmt.Sprintf("a ballot may hold at most %d selections", s.cfg.MaxSelections))
	}
	if opts.Partial && !s.cfg.AllowPartial {
		return apperrors.NewValidationError("partial submissions are disabled")
	}

	electionID := selections[0].ElectionID
	for i, sel := range selections {
		if sel.ElectionID <= 0 || sel.PositionID <= 0 || sel.CandidateID <= 0 {
			return apperrors.NewValidationError(fmt.Sprintf("selection %d has an invalid ID", i))
		}
		if sel.ElectionID != electionID {
			return apperrors.NewValidationError("all selections of a ballot must target the same election")
		}
	}
	return nil
}

func selectionError(sel indexedSelection, err error) models.SelectionError {
	se := models.SelectionError{
		Index:       sel.index,
		ElectionID:  sel.ElectionID,
		PositionID:  sel.PositionID,
		CandidateID: sel.CandidateID,
		Code:        apperrors.Kind(err),
		Message:     err.Error(),
	}
	var limitErr *apperrors.VoteLimitError
	if errors.As(err, &limitErr) {
		se.Limit = limitErr.Limit
		se.TotalAfter = limitErr.TotalAfter
	}
	return se
}

// ballotRun holds the per-transaction state of one admission attempt
type ballotRun struct {
	q        repositories.Queries
	voterID  int64
	report   *models.BallotReport
	status   models.ElectionStatus
	batch    map[ballotPair]int
	limits   map[int64]*models.Position
	stored   map[int64]int
	accepted map[int64]int
}

// admit runs the ordered checks for one selection and inserts it when they all pass
func (r *ballotRun) admit(ctx context.Context, sel indexedSelection) error {
	if !r.status.AcceptsVotes() {
		return apperrors.ErrElectionNotActive
	}

	position, ok := r.limits[sel.PositionID]
	if !ok {
		p, err := r.q.GetElectionPosition(ctx, sel.ElectionID, sel.PositionID)
		if err != nil && !errors.Is(err, repositories.ErrPositionNotFound) {
			return err
		}
		position = p
		r.limits[sel.PositionID] = p
	}
	if position == nil {
		return apperrors.ErrPositionNotFound
	}

	onBallot, err := r.q.IsCandidateOnBallot(ctx, sel.ElectionID, sel.PositionID, sel.CandidateID)
	if err != nil {
		return err
	}
	if !onBallot {
		return apperrors.ErrCandidateNotOnBallot
	}

	key := models.VoteKey{VoterID: r.voterID, ElectionID: sel.ElectionID, PositionID: sel.PositionID, CandidateID: sel.CandidateID}
	exists, err := r.q.VoteExists(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: candidate already voted for", apperrors.ErrDuplicateVote)
	}
	if r.batch[ballotPair{sel.PositionID, sel.CandidateID}] > 1 {
		return fmt.Errorf("%w: candidate selected more than once in this ballot", apperrors.ErrDuplicateVote)
	}

	stored, ok := r.stored[sel.PositionID]
	if !ok {
		stored, err = r.q.CountVoterPositionVotes(ctx, r.voterID, sel.ElectionID, sel.PositionID)
		if err != nil {
			return err
		}
		r.stored[sel.PositionID] = stored
	}
	totalAfter := stored + r.accepted[sel.PositionID] + 1
	if totalAfter > position.VoteLimit {
		return &apperrors.VoteLimitError{PositionID: sel.PositionID, Limit: position.VoteLimit, TotalAfter: totalAfter}
	}

	vote := &models.Vote{
		ElectionID:  sel.ElectionID,
		PositionID:  sel.PositionID,
		CandidateID: sel.CandidateID,
		VoterID:     r.voterID,
	}
	inserted, err := r.q.InsertVote(ctx, vote)
	if err != nil {
		return err
	}
	if !inserted {
		return fmt.Errorf("%w: candidate already voted for", apperrors.ErrDuplicateVote)
	}

	r.accepted[sel.PositionID]++
	r.report.Results = append(r.report.Results, models.SelectionResult{
		Index:       sel.index,
		ElectionID:  sel.ElectionID,
		PositionID:  sel.PositionID,
		CandidateID: sel.CandidateID,
		VoteID:      vote.ID,
	})
	return nil
}

// isSelectionFailure reports errors that reject one selection without aborting the ballot
func isSelectionFailure(err error) bool {
	return apperrors.Is(err, apperrors.ErrElectionNotActive,
		apperrors.ErrPositionNotFound,
		apperrors.ErrCandidateNotOnBallot,
		apperrors.ErrDuplicateVote,
		apperrors.ErrVoteLimitExceeded,
	)
}

// SubmitBallot validates and records a voter's selections
func (s *ballotServiceImpl) SubmitBallot(ctx context.Context, voterID int64, selections []models.Selection, opts models.BallotOptions) (*models.BallotReport, error) {
	if err := s.validateSubmission(voterID, selections, opts); err != nil {
		return nil, err
	}
	electionID := selections[0].ElectionID
	ordered := orderSelections(selections)

	var report *models.BallotReport
	err := s.store.WithTx(ctx, func(ctx context.Context, q repositories.Queries) error {
		report = &models.BallotReport{
			Results: []models.SelectionResult{},
			Errors:  []models.SelectionError{},
		}

		voter, err := q.LockVoter(ctx, voterID)
		if err != nil {
			return err
		}
		if voter.HasVoted {
			return apperrors.NewConflictError(apperrors.CodeBallotAlreadyFinalized, "ballot has already been finalized")
		}

		status, err := q.GetElectionStatusForShare(ctx, electionID)
		if err != nil {
			return err
		}

		run := &ballotRun{
			q:        q,
			voterID:  voterID,
			report:   report,
			status:   status,
			batch:    make(map[ballotPair]int, len(ordered)),
			limits:   map[int64]*models.Position{},
			stored:   map[int64]int{},
			accepted: map[int64]int{},
		}
		for _, sel := range ordered {
			run.batch[ballotPair{sel.PositionID, sel.CandidateID}]++
		}

		for _, sel := range ordered {
			if err := run.admit(ctx, sel); err != nil {
				if !isSelectionFailure(err) {
					return err
				}
				report.Errors = append(report.Errors, selectionError(sel, err))
			}
		}

		if report.HasErrors() && !opts.Partial {
			return errBallotRejected
		}
		if opts.Final && !report.HasErrors() {
			flipped, err := q.MarkVoterVoted(ctx, voterID)
			if err != nil {
				return err
			}
			report.HasVoted = flipped
		}
		return nil
	})

	if errors.Is(err, errBallotRejected) {
		for i := range report.Results {
			report.Results[i].VoteID = 0
		}
		report.Committed = false
		s.logger.Info().
			Int64("voterID", voterID).
			Int64("electionID", electionID).
			Int("rejected", len(report.Errors)).
			Msg("Ballot rejected")
		return report, nil
	}
	if err != nil {
		return nil, storeError("submit ballot", err)
	}

	report.Committed = true
	s.logger.Info().
		Int64("voterID", voterID).
		Int64("electionID", electionID).
		Int("accepted", len(report.Results)).
		Int("rejected", len(report.Errors)).
		Bool("final", opts.Final).
		Bool("hasVoted", report.HasVoted).
		Msg("Ballot committed")

	if len(report.Results) > 0 {
		s.publisher.Publish(ctx, electionID)
	}
	return report, nil
}

// GetVoterVotes returns the voter's committed votes in an election
func (s *ballotServiceImpl) GetVoterVotes(ctx context.Context, voterID, electionID int64) ([]models.VoteDetail, error) {
	if err := validateID("voter", voterID); err != nil {
		return nil, err
	}
	if err := validateID("election", electionID); err != nil {
		return nil, err
	}

	if _, err := s.store.GetElection(ctx, electionID); err != nil {
		return nil, storeError("get election", err)
	}
	votes, err := s.store.ListVoterVotes(ctx, voterID, electionID)
	if err != nil {
		return nil, storeError("list voter votes", err)
	}
	return votes, nil
}

// CheckEligibility reports whether the voter can still vote for a position
func (s *ballotServiceImpl) CheckEligibility(ctx context.Context, voterID, electionID, positionID int64) (*models.Eligibility, error) {
	if err := validateID("voter", voterID); err != nil {
		return nil, err
	}
	if err := validateID("election", electionID); err != nil {
		return nil, err
	}
	if err := validateID("position", positionID); err != nil {
		return nil, err
	}

	election, err := s.store.GetElection(ctx, electionID)
	if err != nil {
		return nil, storeError("get election", err)
	}
	voter, err := s.store.GetVoter(ctx, voterID)
	if err != nil {
		return nil, storeError("get voter", err)
	}
	position, err := s.store.GetElectionPosition(ctx, electionID, positionID)
	if err != nil {
		if errors.Is(err, repositories.ErrPositionNotFound) {
			return nil, apperrors.ErrPositionNotFound
		}
		return nil, storeError("get election position", err)
	}
	cast, err := s.store.CountVoterPositionVotes(ctx, voterID, electionID, positionID)
	if err != nil {
		return nil, storeError("count voter votes", err)
	}

	result := &models.Eligibility{
		VoterID:        voterID,
		ElectionID:     electionID,
		PositionID:     positionID,
		ElectionStatus: election.Status,
		VoteLimit:      position.VoteLimit,
		VotesCast:      cast,
		Remaining:      max(position.VoteLimit-cast, 0),
		HasVoted:       voter.HasVoted,
	}
	switch {
	case !election.Status.AcceptsVotes():
		result.Reason = ReasonElectionNotActive
	case voter.HasVoted:
		result.Reason = ReasonBallotFinalized
	case result.Remaining == 0:
		result.Reason = ReasonVoteLimitReached
	default:
		result.Eligible = true
	}
	return result, nil
}
