package services

import (
	"context"
	"errors"
	"time"

	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/app/repositories"
	"github.com/yigit/campus-election/internal/pkg/apperrors"
	"github.com/yigit/campus-election/internal/pkg/dberrors"
)

// Services defined in this package:
// - ElectionService: lifecycle state machine and the single-live-election rule
// - BallotService: vote admission, voter history and eligibility
// - ResultService: ledger tallies, live results and countdowns

// Clock returns the current time
type Clock func() time.Time

// ExpiryWatcher is told about every committed lifecycle change so it can keep
// end-time timers in step with the store
type ExpiryWatcher interface {
	Schedule(ctx context.Context, election *models.Election)
	Cancel(electionID int64)
}

// ResultsPublisher pushes a fresh results snapshot to live subscribers
type ResultsPublisher interface {
	Publish(ctx context.Context, electionID int64)
}

type noopWatcher struct{}

func (noopWatcher) Schedule(context.Context, *models.Election) {}
func (noopWatcher) Cancel(int64)                               {}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, int64) {}

// storeError maps repository lookups and driver failures onto the application taxonomy
func storeError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrElectionNotFound):
		return apperrors.NewResourceNotFoundError("election not found")
	case errors.Is(err, repositories.ErrVoterNotFound):
		return apperrors.NewResourceNotFoundError("voter not found")
	case errors.Is(err, repositories.ErrPositionNotFound):
		return apperrors.NewResourceNotFoundError("position not found")
	case errors.Is(err, repositories.ErrCandidateNotFound):
		return apperrors.NewResourceNotFoundError("candidate not found")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewStorageError(op, err)
	}
	return dberrors.Classify(op, err)
}

func validateID(name string, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid " + name + " ID")
	}
	return nil
}
