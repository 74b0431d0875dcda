package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/db"
	"github.com/yigit/campus-election/internal/pkg/logger"
)

var electionColumns = []string{
	"id", "title", "description", "start_time", "end_time", "status", "created_by", "created_at", "updated_at",
}

// ElectionRepository handles election database operations
type ElectionRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewElectionRepository creates a new ElectionRepository
func NewElectionRepository(q db.Querier) *ElectionRepository {
	return &ElectionRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanElection(row pgx.Row) (*models.Election, error) {
	e := &models.Election{}
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.StartTime,
		&e.EndTime,
		&e.Status,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *ElectionRepository) queryElections(ctx context.Context, sql string, args ...interface{}) ([]*models.Election, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying elections: %w", err)
	}
	defer rows.Close()

	elections := []*models.Election{}
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning election row: %w", err)
		}
		elections = append(elections, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating election rows: %w", err)
	}
	return elections, nil
}

// CreateElection inserts an election and fills its id and timestamps
func (r *ElectionRepository) CreateElection(ctx context.Context, election *models.Election) error {
	sql, args, err := r.sb.Insert("elections").
		Columns("title", "description", "start_time", "end_time", "status", "created_by").
		Values(election.Title, election.Description, election.StartTime, election.EndTime, election.Status, election.CreatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create election query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&election.ID, &election.CreatedAt, &election.UpdatedAt); err != nil {
		return fmt.Errorf("error creating election: %w", err)
	}
	return nil
}

func (r *ElectionRepository) getElection(ctx context.Context, id int64, suffix string) (*models.Election, error) {
	query := r.sb.Select(electionColumns...).
		From("elections").
		Where(squirrel.Eq{"id": id})
	if suffix != "" {
		query = query.Suffix(suffix)
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get election query: %w", err)
	}

	e, err := scanElection(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrElectionNotFound
		}
		return nil, fmt.Errorf("error getting election by ID: %w", err)
	}
	return e, nil
}

// GetElection retrieves an election by ID
func (r *ElectionRepository) GetElection(ctx context.Context, id int64) (*models.Election, error) {
	return r.getElection(ctx, id, "")
}

// GetElectionForUpdate retrieves an election by ID and locks the row
func (r *ElectionRepository) GetElectionForUpdate(ctx context.Context, id int64) (*models.Election, error) {
	return r.getElection(ctx, id, "FOR UPDATE")
}

// GetElectionStatusForShare reads the election status under a shared row lock
func (r *ElectionRepository) GetElectionStatusForShare(ctx context.Context, id int64) (models.ElectionStatus, error) {
	var status models.ElectionStatus
	err := r.db.QueryRow(ctx, `SELECT status FROM elections WHERE id = $1 FOR SHARE`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrElectionNotFound
		}
		return "", fmt.Errorf("error reading election status: %w", err)
	}
	return status, nil
}

// GetLiveElection returns the single non-ended election
func (r *ElectionRepository) GetLiveElection(ctx context.Context) (*models.Election, error) {
	sql, args, err := r.sb.Select(electionColumns...).
		From("elections").
		Where(squirrel.NotEq{"status": models.ElectionEnded}).
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get live election query: %w", err)
	}

	e, err := scanElection(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrElectionNotFound
		}
		return nil, fmt.Errorf("error getting live election: %w", err)
	}
	return e, nil
}

// LiveElectionExists reports whether a non-ended election other than excludeID exists
func (r *ElectionRepository) LiveElectionExists(ctx context.Context, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM elections WHERE status <> $1 AND id <> $2)`,
		models.ElectionEnded, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking live elections: %w", err)
	}
	return exists, nil
}

// ListElections returns a page of elections, newest first, with the total count
func (r *ElectionRepository) ListElections(ctx context.Context, filter models.ElectionFilter, offset uint64, limit int) ([]*models.Election, int64, error) {
	where := squirrel.And{}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("elections").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count elections query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting elections: %w", err)
	}

	sql, args, err := r.sb.Select(electionColumns...).
		From("elections").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list elections query: %w", err)
	}

	elections, err := r.queryElections(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	return elections, total, nil
}

// ListExpirableElections returns pending and active elections that have an end time
func (r *ElectionRepository) ListExpirableElections(ctx context.Context) ([]*models.Election, error) {
	sql, args, err := r.sb.Select(electionColumns...).
		From("elections").
		Where(squirrel.Eq{"status": models.ExpirableStatuses}).
		Where(squirrel.NotEq{"end_time": nil}).
		OrderBy("end_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build expirable elections query: %w", err)
	}
	return r.queryElections(ctx, sql, args...)
}

// ListOverdueElections returns pending and active elections whose end time has passed
func (r *ElectionRepository) ListOverdueElections(ctx context.Context, now time.Time) ([]*models.Election, error) {
	sql, args, err := r.sb.Select(electionColumns...).
		From("elections").
		Where(squirrel.Eq{"status": models.ExpirableStatuses}).
		Where(squirrel.LtOrEq{"end_time": now}).
		OrderBy("end_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build overdue elections query: %w", err)
	}
	return r.queryElections(ctx, sql, args...)
}

// UpdateElection writes the mutable fields of an election
func (r *ElectionRepository) UpdateElection(ctx context.Context, election *models.Election) error {
	sql, args, err := r.sb.Update("elections").
		SetMap(map[string]interface{}{
			"title":       election.Title,
			"description": election.Description,
			"start_time":  election.StartTime,
			"end_time":    election.EndTime,
			"updated_at":  election.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": election.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update election query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating election: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrElectionNotFound
	}
	return nil
}

// UpdateElectionStatus sets the lifecycle status of an election
func (r *ElectionRepository) UpdateElectionStatus(ctx context.Context, id int64, status models.ElectionStatus, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE elections SET status = $1, updated_at = $2 WHERE id = $3`,
		status, updatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("error updating election status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrElectionNotFound
	}
	return nil
}

// GetElectionAssignments returns the position and candidate ids attached to an election
func (r *ElectionRepository) GetElectionAssignments(ctx context.Context, electionID int64) ([]int64, []int64, error) {
	positionIDs, err := r.collectIDs(ctx,
		`SELECT position_id FROM election_positions WHERE election_id = $1 ORDER BY position_id`, electionID)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading election positions: %w", err)
	}
	candidateIDs, err := r.collectIDs(ctx,
		`SELECT candidate_id FROM election_candidates WHERE election_id = $1 ORDER BY candidate_id`, electionID)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading election candidates: %w", err)
	}
	return positionIDs, candidateIDs, nil
}

func (r *ElectionRepository) collectIDs(ctx context.Context, sql string, args ...interface{}) ([]int64, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ReplaceElectionPositions swaps the full set of positions assigned to an election
func (r *ElectionRepository) ReplaceElectionPositions(ctx context.Context, electionID int64, positionIDs []int64) error {
	if err := r.DeleteElectionPositions(ctx, electionID); err != nil {
		return err
	}
	if len(positionIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO election_positions (election_id, position_id)
		 SELECT $1, unnest($2::bigint[])`,
		electionID, positionIDs,
	)
	if err != nil {
		return fmt.Errorf("error assigning election positions: %w", err)
	}
	return nil
}

// ReplaceElectionCandidates swaps the full set of candidates attached to an election
func (r *ElectionRepository) ReplaceElectionCandidates(ctx context.Context, electionID int64, candidateIDs []int64) error {
	if err := r.DeleteElectionCandidates(ctx, electionID); err != nil {
		return err
	}
	if len(candidateIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO election_candidates (election_id, candidate_id)
		 SELECT $1, unnest($2::bigint[])`,
		electionID, candidateIDs,
	)
	if err != nil {
		return fmt.Errorf("error assigning election candidates: %w", err)
	}
	return nil
}

// DeleteElectionVotes removes every vote of an election and returns how many were removed
func (r *ElectionRepository) DeleteElectionVotes(ctx context.Context, electionID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM votes WHERE election_id = $1`, electionID)
	if err != nil {
		return 0, fmt.Errorf("error deleting election votes: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteElectionCandidates removes the candidate assignments of an election
func (r *ElectionRepository) DeleteElectionCandidates(ctx context.Context, electionID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM election_candidates WHERE election_id = $1`, electionID); err != nil {
		return fmt.Errorf("error deleting election candidates: %w", err)
	}
	return nil
}

// DeleteElectionPositions removes the position assignments of an election
func (r *ElectionRepository) DeleteElectionPositions(ctx context.Context, electionID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM election_positions WHERE election_id = $1`, electionID); err != nil {
		return fmt.Errorf("error deleting election positions: %w", err)
	}
	return nil
}

// DeleteElection removes the election row
func (r *ElectionRepository) DeleteElection(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM elections WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("electionID", id).Msg("Error deleting election")
		return fmt.Errorf("error deleting election: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrElectionNotFound
	}
	return nil
}
