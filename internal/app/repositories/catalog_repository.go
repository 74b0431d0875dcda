package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/db"
)

// CatalogRepository handles position and candidate database operations
type CatalogRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(q db.Querier) *CatalogRepository {
	return &CatalogRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetPosition retrieves a position by ID
func (r *CatalogRepository) GetPosition(ctx context.Context, id int64) (*models.Position, error) {
	p := &models.Position{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, vote_limit, display_order FROM positions WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.VoteLimit, &p.DisplayOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPositionNotFound
		}
		return nil, fmt.Errorf("error getting position by ID: %w", err)
	}
	return p, nil
}

// GetElectionPosition retrieves a position only if it is assigned to the election
func (r *CatalogRepository) GetElectionPosition(ctx context.Context, electionID, positionID int64) (*models.Position, error) {
	p := &models.Position{}
	err := r.db.QueryRow(ctx, `
		SELECT p.id, p.name, p.vote_limit, p.display_order
		FROM positions p
		JOIN election_positions ep ON ep.position_id = p.id
		WHERE ep.election_id = $1 AND p.id = $2
	`, electionID, positionID).Scan(&p.ID, &p.Name, &p.VoteLimit, &p.DisplayOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPositionNotFound
		}
		return nil, fmt.Errorf("error getting election position: %w", err)
	}
	return p, nil
}

// GetCandidate retrieves a candidate by ID
func (r *CatalogRepository) GetCandidate(ctx context.Context, id int64) (*models.Candidate, error) {
	c := &models.Candidate{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, position_id, department, bio FROM candidates WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.PositionID, &c.Department, &c.Bio)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("error getting candidate by ID: %w", err)
	}
	return c, nil
}

// IsCandidateOnBallot reports whether the candidate runs for the position in the election
func (r *CatalogRepository) IsCandidateOnBallot(ctx context.Context, electionID, positionID, candidateID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM election_candidates ec
			JOIN candidates c ON c.id = ec.candidate_id
			WHERE ec.election_id = $1 AND c.id = $2 AND c.position_id = $3
		)
	`, electionID, candidateID, positionID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("error checking candidate ballot: %w", err)
	}
	return ok, nil
}

// ListPositionsByIDs returns the positions among ids that exist, ordered for display
func (r *CatalogRepository) ListPositionsByIDs(ctx context.Context, ids []int64) ([]*models.Position, error) {
	sql, args, err := r.sb.Select("id", "name", "vote_limit", "display_order").
		From("positions").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("display_order ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list positions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying positions: %w", err)
	}
	defer rows.Close()

	positions := []*models.Position{}
	for rows.Next() {
		p := &models.Position{}
		if err := rows.Scan(&p.ID, &p.Name, &p.VoteLimit, &p.DisplayOrder); err != nil {
			return nil, fmt.Errorf("error scanning position row: %w", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position rows: %w", err)
	}
	return positions, nil
}

// ListCandidatesByIDs returns the candidates among ids that exist
func (r *CatalogRepository) ListCandidatesByIDs(ctx context.Context, ids []int64) ([]*models.Candidate, error) {
	sql, args, err := r.sb.Select("id", "name", "position_id", "department", "bio").
		From("candidates").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list candidates query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying candidates: %w", err)
	}
	defer rows.Close()

	candidates := []*models.Candidate{}
	for rows.Next() {
		c := &models.Candidate{}
		if err := rows.Scan(&c.ID, &c.Name, &c.PositionID, &c.Department, &c.Bio); err != nil {
			return nil, fmt.Errorf("error scanning candidate row: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidate rows: %w", err)
	}
	return candidates, nil
}

// CreatePosition inserts a position
func (r *CatalogRepository) CreatePosition(ctx context.Context, position *models.Position) error {
	sql, args, err := r.sb.Insert("positions").
		Columns("name", "vote_limit", "display_order").
		Values(position.Name, position.VoteLimit, position.DisplayOrder).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create position query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&position.ID); err != nil {
		return fmt.Errorf("error creating position: %w", err)
	}
	return nil
}

// CreateCandidate inserts a candidate
func (r *CatalogRepository) CreateCandidate(ctx context.Context, candidate *models.Candidate) error {
	sql, args, err := r.sb.Insert("candidates").
		Columns("name", "position_id", "department", "bio").
		Values(candidate.Name, candidate.PositionID, candidate.Department, candidate.Bio).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create candidate query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&candidate.ID); err != nil {
		return fmt.Errorf("error creating candidate: %w", err)
	}
	return nil
}

// CountPositions returns the number of positions in the catalog
func (r *CatalogRepository) CountPositions(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM positions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting positions: %w", err)
	}
	return n, nil
}
