package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/db"
)

// VoterRepository handles voter database operations
type VoterRepository struct {
	db db.Querier
}

// NewVoterRepository creates a new VoterRepository
func NewVoterRepository(q db.Querier) *VoterRepository {
	return &VoterRepository{db: q}
}

func (r *VoterRepository) getVoter(ctx context.Context, query string, id int64) (*models.Voter, error) {
	v := &models.Voter{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID,
		&v.StudentID,
		&v.FullName,
		&v.Department,
		&v.HasVoted,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVoterNotFound
		}
		return nil, fmt.Errorf("error getting voter: %w", err)
	}
	return v, nil
}

// GetVoter retrieves a voter by ID
func (r *VoterRepository) GetVoter(ctx context.Context, id int64) (*models.Voter, error) {
	return r.getVoter(ctx, `
		SELECT id, student_id, full_name, department, has_voted, created_at
		FROM voters WHERE id = $1
	`, id)
}

// LockVoter retrieves a voter by ID and holds its row lock for the rest of the transaction
func (r *VoterRepository) LockVoter(ctx context.Context, id int64) (*models.Voter, error) {
	return r.getVoter(ctx, `
		SELECT id, student_id, full_name, department, has_voted, created_at
		FROM voters WHERE id = $1
		FOR UPDATE
	`, id)
}

// CreateVoter inserts a voter
func (r *VoterRepository) CreateVoter(ctx context.Context, voter *models.Voter) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO voters (student_id, full_name, department)
		VALUES ($1, $2, $3)
		RETURNING id, has_voted, created_at
	`, voter.StudentID, voter.FullName, voter.Department).Scan(&voter.ID, &voter.HasVoted, &voter.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating voter: %w", err)
	}
	return nil
}

// MarkVoterVoted sets has_voted and reports whether this call changed it
func (r *VoterRepository) MarkVoterVoted(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE voters SET has_voted = TRUE WHERE id = $1 AND has_voted = FALSE`, id)
	if err != nil {
		return false, fmt.Errorf("error marking voter as voted: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
