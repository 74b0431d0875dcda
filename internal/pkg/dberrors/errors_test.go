package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/campus-election/internal/pkg/apperrors"
)

func pgError(code, constraint string) error {
	return fmt.Errorf("exec insert: %w", &pgconn.PgError{Code: code, ConstraintName: constraint})
}

func TestIsDuplicateConstraintError(t *testing.T) {
	err := pgError(CodeUniqueViolation, ConstraintVoteTuple)

	assert.True(t, IsDuplicateConstraintError(err, ConstraintVoteTuple))
	assert.False(t, IsDuplicateConstraintError(err, ConstraintSingleLiveElection))
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(pgError(CodeSerializationFailure, "")))
	assert.True(t, IsRetryable(pgError(CodeDeadlockDetected, "")))
	assert.False(t, IsRetryable(pgError(CodeUniqueViolation, "")))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind string
		wantCode string
	}{
		{"nil", nil, "", ""},
		{"vote tuple", pgError(CodeUniqueViolation, ConstraintVoteTuple), apperrors.KindDuplicateVote, ""},
		{"single live election", pgError(CodeUniqueViolation, ConstraintSingleLiveElection), apperrors.KindConflict, apperrors.CodeLiveElectionExists},
		{"other unique", pgError(CodeUniqueViolation, ConstraintVoterStudentID), apperrors.KindConflict, ""},
		{"foreign key", pgError(CodeForeignKeyViolation, "votes_candidate_id_fkey"), apperrors.KindValidation, ""},
		{"connection failure", errors.New("connection reset"), apperrors.KindStorage, ""},
		{"no rows", pgx.ErrNoRows, apperrors.KindStorage, ""},
		{"already classified", apperrors.ErrElectionNotActive, apperrors.KindElectionNotActive, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("test op", tt.err)
			assert.Equal(t, tt.wantKind, apperrors.Kind(got))
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(got))
		})
	}
}

func TestClassify_StorageErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	got := Classify("insert vote", cause)

	assert.ErrorIs(t, got, apperrors.ErrStorage)
	assert.ErrorIs(t, got, cause)
	assert.Contains(t, got.Error(), "insert vote")
}
