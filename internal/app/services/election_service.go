package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/app/repositories"
	"github.com/yigit/campus-election/internal/pkg/apperrors"
)

const maxTitleLength = 200

// ReasonExpired is logged for elections ended by their end time
const ReasonExpired = "expired"

// ElectionInput carries the fields of a new election
type ElectionInput struct {
	Title       string
	Description string
	StartTime   *time.Time
	EndTime     *time.Time
	CreatedBy   int64
}

// ElectionUpdate carries the fields to change on an election. Nil fields are left
// as they are; non-nil id slices replace the whole assignment set.
type ElectionUpdate struct {
	Title        *string
	Description  *string
	StartTime    *time.Time
	EndTime      *time.Time
	PositionIDs  []int64
	CandidateIDs []int64
}

// ElectionService defines the election lifecycle operations
type ElectionService interface {
	CreateElection(ctx context.Context, input ElectionInput, positionIDs, candidateIDs []int64) (*models.Election, error)
	GetElection(ctx context.Context, id int64) (*models.Election, error)
	GetLiveElection(ctx context.Context) (*models.Election, error)
	ListElections(ctx context.Context, filter models.ElectionFilter, offset uint64, limit int) ([]*models.Election, int64, error)
	UpdateElection(ctx context.Context, id int64, update ElectionUpdate) (*models.Election, error)
	DeleteElection(ctx context.Context, id int64) error
	StartElection(ctx context.Context, id int64) (*models.Election, error)
	PauseElection(ctx context.Context, id int64) (*models.Election, error)
	ResumeElection(ctx context.Context, id int64) (*models.Election, error)
	StopElection(ctx context.Context, id int64) (*models.Election, error)
	// EndElection is idempotent: ending an ended election returns it unchanged
	EndElection(ctx context.Context, id int64, reason string) (*models.Election, error)
	// ExpireElection ends the election only if it is pending or active and past its end time
	ExpireElection(ctx context.Context, id int64) (*models.Election, error)
	SetExpiryWatcher(watcher ExpiryWatcher)
	SetResultsPublisher(publisher ResultsPublisher)
}

// electionServiceImpl implements the ElectionService interface
type electionServiceImpl struct {
	store  repositories.Store
	now    Clock
	logger zerolog.Logger

	mu        sync.RWMutex
	watcher   ExpiryWatcher
	publisher ResultsPublisher
}

// NewElectionService creates a new election service instance
func NewElectionService(store repositories.Store, now Clock, logger zerolog.Logger) ElectionService {
	if now == nil {
		now = time.Now
	}
	return &electionServiceImpl{
		store:     store,
		now:       now,
		logger:    logger.With().Str("component", "election_service").Logger(),
		watcher:   noopWatcher{},
		publisher: noopPublisher{},
	}
}

// SetExpiryWatcher registers the component that tracks election end times
func (s *electionServiceImpl) SetExpiryWatcher(watcher ExpiryWatcher) {
	if watcher == nil {
		watcher = noopWatcher{}
	}
	s.mu.Lock()
	s.watcher = watcher
	s.mu.Unlock()
}

// SetResultsPublisher registers the live results broadcaster
func (s *electionServiceImpl) SetResultsPublisher(publisher ResultsPublisher) {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	s.mu.Lock()
	s.publisher = publisher
	s.mu.Unlock()
}

func (s *electionServiceImpl) notify(ctx context.Context, e *models.Election, deleted bool) {
	s.mu.RLock()
	watcher, publisher := s.watcher, s.publisher
	s.mu.RUnlock()

	if !deleted && e.Status.IsExpirable() {
		watcher.Schedule(ctx, e)
	} else {
		watcher.Cancel(e.ID)
	}
	if !deleted {
		publisher.Publish(ctx, e.ID)
	}
}

func validateSchedule(start, end *time.Time) error {
	if start != nil && end != nil && !end.After(*start) {
		return apperrors.NewValidationError("end time must be after start time")
	}
	return nil
}

func uniqueIDs(name string, ids []int64) error {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return apperrors.NewValidationError(fmt.Sprintf("invalid %s ID %d", name, id))
		}
		if _, dup := seen[id]; dup {
			return apperrors.NewValidationError(fmt.Sprintf("%s ID %d listed more than once", name, id))
		}
		seen[id] = struct{}{}
	}
	return nil
}

// checkAssignments verifies that every id exists and every candidate runs for an assigned position
func checkAssignments(ctx context.Context, q repositories.Queries, positionIDs, candidateIDs []int64) error {
	if len(positionIDs) == 0 {
		return apperrors.NewValidationError("at least one position is required")
	}
	if err := uniqueIDs("position", positionIDs); err != nil {
		return err
	}
	if err := uniqueIDs("candidate", candidateIDs); err != nil {
		return err
	}

	positions, err := q.ListPositionsByIDs(ctx, positionIDs)
	if err != nil {
		return err
	}
	if len(positions) != len(positionIDs) {
		return apperrors.NewResourceNotFoundError("one or more positions do not exist")
	}
	assigned := make(map[int64]struct{}, len(positions))
	for _, p := range positions {
		assigned[p.ID] = struct{}{}
	}

	if len(candidateIDs) == 0 {
		return nil
	}
	candidates, err := q.ListCandidatesByIDs(ctx, candidateIDs)
	if err != nil {
		return err
	}
	if len(candidates) != len(candidateIDs) {
		return apperrors.NewResourceNotFoundError("one or more candidates do not exist")
	}
	for _, c := range candidates {
		if _, ok := assigned[c.PositionID]; !ok {
			return apperrors.NewValidationError(
				fmt.Sprintf("candidate %d runs for position %d which is not assigned to the election", c.ID, c.PositionID))
		}
	}
	return nil
}

// CreateElection creates a pending election with its position and candidate assignments
func (s *electionServiceImpl) CreateElection(ctx context.Context, input ElectionInput, positionIDs, candidateIDs []int64) (*models.Election, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, apperrors.NewValidationError("title cannot be empty")
	}
	if len(input.Title) > maxTitleLength {
		return nil, apperrors.NewValidationError("title is too long")
	}
	if err := validateSchedule(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	var created *models.Election
	err := s.store.WithTx(ctx, func(ctx context.Context, q repositories.Queries) error {
		live, err := q.LiveElectionExists(ctx, 0)
		if err != nil {
			return err
		}
		if live {
			return apperrors.NewConflictError(apperrors.CodeLiveElectionExists, "another election is already live")
		}
		if err := checkAssignments(ctx, q, positionIDs, candidateIDs); err != nil {
			return err
		}

		e := &models.Election{
			Title:       input.Title,
			Description: input.Description,
			StartTime:   input.StartTime,
			EndTime:     input.EndTime,
			Status:      models.ElectionPending,
			CreatedBy:   input.CreatedBy,
		}
		if err := q.CreateElection(ctx, e); err != nil {
			return err
		}
		if err := q.ReplaceElectionPositions(ctx, e.ID, positionIDs); err != nil {
			return err
		}
		if err := q.ReplaceElectionCandidates(ctx, e.ID, candidateIDs); err != nil {
			return err
		}

		e.PositionIDs, e.CandidateIDs, err = q.GetElectionAssignments(ctx, e.ID)
		if err != nil {
			return err
		}
		created = e
		return nil
	})
	if err != nil {
		return nil, storeError("create election", err)
	}

	s.logger.Info().
		Int64("electionID", created.ID).
		Int64("createdBy", created.CreatedBy).
		Int("positions", len(created.PositionIDs)).
		Int("candidates", len(created.CandidateIDs)).
		Msg("Election created")
	s.notify(ctx, created, false)
	return created, nil
}

// GetElection retrieves an election with its assignments
func (s *electionServiceImpl) GetElection(ctx context.Context, id int64) (*models.Election, error) {
	if err := validateID("election", id); err != nil {
		return nil, err
	}

	e, err := s.store.GetElection(ctx, id)
	if err != nil {
		return nil, storeError("get election", err)
	}
	e.PositionIDs, e.CandidateIDs, err = s.store.GetElectionAssignments(ctx, id)
	if err != nil {
		return nil, storeError("get election assignments", err)
	}
	return e, nil
}

// GetLiveElection retrieves the election that is not yet ended, if any
func (s *electionServiceImpl) GetLiveElection(ctx context.Context) (*models.Election, error) {
	e, err := s.store.GetLiveElection(ctx)
	if err != nil {
		return nil, storeError("get live election", err)
	}
	e.PositionIDs, e.CandidateIDs, err = s.store.GetElectionAssignments(ctx, e.ID)
	if err != nil {
		return nil, storeError("get election assignments", err)
	}
	return e, nil
}

// ListElections returns a page of elections, newest first
func (s *electionServiceImpl) ListElections(ctx context.Context, filter models.ElectionFilter, offset uint64, limit int) ([]*models.Election, int64, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, apperrors.NewValidationError(fmt.Sprintf("unknown election status %q", *filter.Status))
	}
	elections, total, err := s.store.ListElections(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, storeError("list elections", err)
	}
	return elections, total, nil
}

// UpdateElection changes the fields and assignments of an election that has not ended
func (s *electionServiceImpl) UpdateElection(ctx context.Context, id int64, update ElectionUpdate) (*models.Election, error) {
	if err := validateID("election", id); err != nil {
		return nil, err
	}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title cannot be empty")
		}
		if len(title) > maxTitleLength {
			return nil, apperrors.NewValidationError("title is too long")
		}
		update.Title = &title
	}

	var updated *models.Election
	err := s.store.WithTx(ctx, func(ctx context.Context, q repositories.Queries) error {
		e, err := q.GetElectionForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if e.Status == models.ElectionEnded {
			return apperrors.NewConflictError(apperrors.CodeElectionEnded, "an ended election cannot be modified")
		}

		if update.Title != nil {
			e.Title = *update.Title
		}
		if update.Description != nil {
			e.Description = *update.Description
		}
		if update.StartTime != nil {
			e.StartTime = update.StartTime
		}
		if update.EndTime != nil {
			e.EndTime = update.EndTime
		}
		if err := validateSchedule(e.StartTime, e.EndTime); err != nil {
			return err
		}
		e.UpdatedAt = s.now()
		if err := q.UpdateElection(ctx, e); err != nil {
			return err
		}

		if update.PositionIDs != nil || update.CandidateIDs != nil {
			positionIDs, candidateIDs, err := q.GetElectionAssignments(ctx, id)
			if err != nil {
				return err
			}
			if update.PositionIDs != nil {
				positionIDs = update.PositionIDs
			}
			if update.CandidateIDs != nil {
				candidateIDs = update.CandidateIDs
			}
			if err := checkAssignments(ctx, q, positionIDs, candidateIDs); err != nil {
				return err
			}
			if update.PositionIDs != nil {
				if err := q.ReplaceElectionPositions(ctx, id, positionIDs); err != nil {
					return err
				}
			}
			if update.CandidateIDs != nil {
				if err := q.ReplaceElectionCandidates(ctx, id, candidateIDs); err != nil {
					return err
				}
			}
		}

		e.PositionIDs, e.CandidateIDs, err = q.GetElectionAssignments(ctx, id)
		if err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, storeError("update election", err)
	}

	s.logger.Info().Int64("electionID", id).Msg("Election updated")
	s.notify(ctx, updated, false)
	return updated, nil
}

// DeleteElection removes an election together with its votes and assignments
func (s *electionServiceImpl) DeleteElection(ctx context.Context, id int64) error {
	if err := validateID("election", id); err != nil {
		return err
	}

	var deleted *models.Election
	var removedVotes int64
	err := s.store.WithTx(ctx, func(ctx context.Context, q repositories.Queries) error {
		e, err := q.GetElectionForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if removedVotes, err = q.DeleteElectionVotes(ctx, id); err != nil {
			return err
		}
		if err := q.DeleteElectionCandidates(ctx, id); err != nil {
			return err
		}
		if err := q.DeleteElectionPositions(ctx, id); err != nil {
			return err
		}
		if err := q.DeleteElection(ctx, id); err != nil {
			return err
		}
		deleted = e
		return nil
	})
	if err != nil {
		return storeError("delete election", err)
	}

	s.logger.Info().
		Int64("electionID", id).
		Int64("votesRemoved", removedVotes).
		Msg("Election deleted")
	s.notify(ctx, deleted, true)
	return nil
}

// StartElection opens a pending election for voting
func (s *electionServiceImpl) StartElection(ctx context.Context, id int64) (*models.Election, error) {
	return s.transition(ctx, id, models.ElectionActive, "start", allowFrom(models.ElectionActive, models.ElectionPending))
}

// PauseElection temporarily stops an active election from accepting votes
func (s *electionServiceImpl) PauseElection(ctx context.Context, id int64) (*models.Election, error) {
	return s.transition(ctx, id, models.ElectionPaused, "pause", allowFrom(models.ElectionPaused))
}

// ResumeElection reopens a paused election
func (s *electionServiceImpl) ResumeElection(ctx context.Context, id int64) (*models.Election, error) {
	return s.transition(ctx, id, models.ElectionActive, "resume", allowFrom(models.ElectionActive, models.ElectionPaused))
}

// StopElection halts an active or paused election
func (s *electionServiceImpl) StopElection(ctx context.Context, id int64) (*models.Election, error) {
	return s.transition(ctx, id, models.ElectionStopped, "stop", allowFrom(models.ElectionStopped))
}

// EndElection moves an election to its terminal state
func (s *electionServiceImpl) EndElection(ctx context.Context, id int64, reason string) (*models.Election, error) {
	if reason == "" {
		reason = "end"
	}
	return s.transition(ctx, id, models.ElectionEnded, reason, allowFrom(models.ElectionEnded))
}

// ExpireElection ends a pending or active election whose end time has passed.
// Elections in any other state, or not yet due, are returned unchanged.
func (s *electionServiceImpl) ExpireElection(ctx context.Context, id int64) (*models.Election, error) {
	return s.transition(ctx, id, models.ElectionEnded, ReasonExpired, expiryCheck)
}

// transitionCheck decides, under the row lock, whether a transition applies.
// Returning false without an error leaves the election unchanged.
type transitionCheck func(e *models.Election, now time.Time) (bool, error)

// allowFrom follows the lifecycle rules. When from is given the current status must
// also be one of them. Ending an ended election is a no-op.
func allowFrom(to models.ElectionStatus, from ...models.ElectionStatus) transitionCheck {
	return func(e *models.Election, _ time.Time) (bool, error) {
		if to == models.ElectionEnded && e.Status == models.ElectionEnded {
			return false, nil
		}
		if !models.CanTransition(e.Status, to) || (len(from) > 0 && !containsStatus(from, e.Status)) {
			return false, invalidTransition(e.Status, to)
		}
		return true, nil
	}
}

func expiryCheck(e *models.Election, now time.Time) (bool, error) {
	if !e.Status.IsExpirable() || e.EndTime == nil {
		return false, nil
	}
	return !e.EndTime.After(now), nil
}

func containsStatus(list []models.ElectionStatus, status models.ElectionStatus) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}

func invalidTransition(from, to models.ElectionStatus) error {
	return apperrors.NewConflictError(apperrors.CodeInvalidTransition,
		fmt.Sprintf("cannot move election from %s to %s", from, to))
}

// transition applies one lifecycle step under a row lock
func (s *electionServiceImpl) transition(ctx context.Context, id int64, to models.ElectionStatus, reason string, check transitionCheck) (*models.Election, error) {
	if err := validateID("election", id); err != nil {
		return nil, err
	}

	var result *models.Election
	var previous models.ElectionStatus
	var changed bool
	err := s.store.WithTx(ctx, func(ctx context.Context, q repositories.Queries) error {
		changed = false
		e, err := q.GetElectionForUpdate(ctx, id)
		if err != nil {
			return err
		}
		previous = e.Status
		result = e

		now := s.now()
		apply, err := check(e, now)
		if err != nil || !apply {
			return err
		}
		if err := q.UpdateElectionStatus(ctx, id, to, now); err != nil {
			return err
		}
		e.Status = to
		e.UpdatedAt = now
		changed = true
		return nil
	})
	if err != nil {
		return nil, storeError(reason+" election", err)
	}
	if !changed {
		s.logger.Debug().
			Int64("electionID", id).
			Str("status", string(previous)).
			Str("reason", reason).
			Msg("Election left unchanged")
		return result, nil
	}

	s.logger.Info().
		Int64("electionID", id).
		Str("from", string(previous)).
		Str("to", string(to)).
		Str("reason", reason).
		Msg("Election status changed")
	s.notify(ctx, result, false)
	return result, nil
}
