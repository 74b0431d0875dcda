package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Storage errors
	ErrStorage = errors.New("storage failure")
)

// Ballot admission errors
var (
	ErrElectionNotActive    = errors.New("election is not accepting votes")
	ErrPositionNotFound     = errors.New("position not found")
	ErrCandidateNotOnBallot = errors.New("candidate is not on the ballot for this position")
	ErrDuplicateVote        = errors.New("duplicate vote")
	ErrVoteLimitExceeded    = errors.New("vote limit exceeded")
)

// Kind names reported per ballot selection
const (
	KindConflict             = "CONFLICT"
	KindElectionNotActive    = "ELECTION_NOT_ACTIVE"
	KindPositionNotFound     = "POSITION_NOT_FOUND"
	KindCandidateNotOnBallot = "CANDIDATE_NOT_ON_BALLOT"
	KindDuplicateVote        = "DUPLICATE_VOTE"
	KindVoteLimitExceeded    = "VOTE_LIMIT_EXCEEDED"
	KindNotFound             = "NOT_FOUND"
	KindValidation           = "VALIDATION_FAILED"
	KindStorage              = "STORAGE_ERROR"
	KindInternal             = "INTERNAL"
)

// Conflict sub-codes
const (
	CodeLiveElectionExists     = "LIVE_ELECTION_EXISTS"
	CodeInvalidTransition      = "INVALID_TRANSITION"
	CodeElectionEnded          = "ELECTION_ENDED"
	CodeBallotAlreadyFinalized = "BALLOT_ALREADY_FINALIZED"
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(code, message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
		Code:    code,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for malformed requests
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// VoteLimitError reports a selection that would push a voter past a position's limit
type VoteLimitError struct {
	PositionID int64
	Limit      int
	TotalAfter int
}

func (e *VoteLimitError) Error() string {
	return fmt.Sprintf("vote limit exceeded for position %d: limit %d, would reach %d", e.PositionID, e.Limit, e.TotalAfter)
}

func (e *VoteLimitError) Unwrap() error {
	return ErrVoteLimitExceeded
}

// StorageError wraps a failure of the relational store
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError wraps err as a StorageError for operation op
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes both the storage kind and the underlying driver error
func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// Kind classifies err into one of the Kind* names
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrElectionNotActive):
		return KindElectionNotActive
	case errors.Is(err, ErrPositionNotFound):
		return KindPositionNotFound
	case errors.Is(err, ErrCandidateNotOnBallot):
		return KindCandidateNotOnBallot
	case errors.Is(err, ErrDuplicateVote):
		return KindDuplicateVote
	case errors.Is(err, ErrVoteLimitExceeded):
		return KindVoteLimitExceeded
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrResourceNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidationFailed):
		return KindValidation
	case errors.Is(err, ErrStorage):
		return KindStorage
	default:
		return KindInternal
	}
}

// CodeOf returns the sub-code carried by a CustomError in err's chain
func CodeOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
