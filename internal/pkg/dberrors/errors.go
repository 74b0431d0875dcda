package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/campus-election/internal/pkg/apperrors"
)

// PostgreSQL SQLSTATE codes the application reacts to
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeCheckViolation       = "23514"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// Constraint names declared in migrations
const (
	ConstraintVoteTuple          = "votes_voter_election_position_candidate_key"
	ConstraintSingleLiveElection = "elections_single_live_idx"
	ConstraintElectionPosition   = "election_positions_election_id_position_id_key"
	ConstraintElectionCandidate  = "election_candidates_election_id_candidate_id_key"
	ConstraintVoterStudentID     = "voters_student_id_key"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeUniqueViolation && pgErr.ConstraintName == constraintName
}

// IsUniqueViolation reports any unique_violation regardless of constraint
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeUniqueViolation
}

// IsRetryable reports serialization failures and deadlocks
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == CodeSerializationFailure || pgErr.Code == CodeDeadlockDetected
}

// IsNoRows reports an empty single-row result
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Classify maps store-specific failures onto the application error taxonomy.
// Errors that already carry a taxonomy kind are returned unchanged.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.Kind(err) != apperrors.KindInternal {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case CodeUniqueViolation:
			switch pgErr.ConstraintName {
			case ConstraintVoteTuple:
				return apperrors.ErrDuplicateVote
			case ConstraintSingleLiveElection:
				return apperrors.NewConflictError(apperrors.CodeLiveElectionExists, "another election is already live")
			default:
				return apperrors.NewConflictError("", "resource already exists")
			}
		case CodeForeignKeyViolation:
			return apperrors.NewValidationError("referenced resource does not exist")
		case CodeCheckViolation:
			return apperrors.NewValidationError("value violates a store constraint")
		}
	}

	return apperrors.NewStorageError(op, err)
}
