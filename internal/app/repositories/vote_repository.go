package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/db"
)

// VoteRepository handles the vote ledger
type VoteRepository struct {
	db db.Querier
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(q db.Querier) *VoteRepository {
	return &VoteRepository{db: q}
}

// VoteExists reports whether the voter already recorded the exact 4-tuple
func (r *VoteRepository) VoteExists(ctx context.Context, key models.VoteKey) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM votes
			WHERE voter_id = $1 AND election_id = $2 AND position_id = $3 AND candidate_id = $4
		)
	`, key.VoterID, key.ElectionID, key.PositionID, key.CandidateID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking existing vote: %w", err)
	}
	return exists, nil
}

// CountVoterPositionVotes counts the voter's stored votes for one position of an election
func (r *VoteRepository) CountVoterPositionVotes(ctx context.Context, voterID, electionID, positionID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM votes
		WHERE voter_id = $1 AND election_id = $2 AND position_id = $3
	`, voterID, electionID, positionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting voter votes: %w", err)
	}
	return n, nil
}

// InsertVote appends a vote to the ledger. A duplicate 4-tuple inserts nothing and returns false.
func (r *VoteRepository) InsertVote(ctx context.Context, vote *models.Vote) (bool, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO votes (election_id, position_id, candidate_id, voter_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT votes_voter_election_position_candidate_key DO NOTHING
		RETURNING id, created_at
	`, vote.ElectionID, vote.PositionID, vote.CandidateID, vote.VoterID).Scan(&vote.ID, &vote.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error inserting vote: %w", err)
	}
	return true, nil
}

// ListVoterVotes returns the voter's committed votes in an election with catalog names
func (r *VoteRepository) ListVoterVotes(ctx context.Context, voterID, electionID int64) ([]models.VoteDetail, error) {
	rows, err := r.db.Query(ctx, `
		SELECT v.id, v.election_id, v.position_id, v.candidate_id, v.voter_id, v.created_at,
		       p.name, c.name
		FROM votes v
		JOIN positions p ON p.id = v.position_id
		JOIN candidates c ON c.id = v.candidate_id
		WHERE v.voter_id = $1 AND v.election_id = $2
		ORDER BY p.display_order, p.id, c.name, c.id
	`, voterID, electionID)
	if err != nil {
		return nil, fmt.Errorf("error querying voter votes: %w", err)
	}
	defer rows.Close()

	votes := []models.VoteDetail{}
	for rows.Next() {
		var d models.VoteDetail
		if err := rows.Scan(
			&d.ID,
			&d.ElectionID,
			&d.PositionID,
			&d.CandidateID,
			&d.VoterID,
			&d.CreatedAt,
			&d.PositionName,
			&d.CandidateName,
		); err != nil {
			return nil, fmt.Errorf("error scanning voter vote row: %w", err)
		}
		votes = append(votes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voter vote rows: %w", err)
	}
	return votes, nil
}

// TallyElection counts votes per candidate straight from the ledger. Candidates attached
// to the election appear with zero votes; candidates that received votes appear even
// if they were detached afterwards.
func (r *VoteRepository) TallyElection(ctx context.Context, electionID int64) ([]models.CandidateTally, error) {
	rows, err := r.db.Query(ctx, `
		WITH ballot AS (
			SELECT c.id AS candidate_id, c.position_id
			FROM election_candidates ec
			JOIN candidates c ON c.id = ec.candidate_id
			WHERE ec.election_id = $1
			UNION
			SELECT DISTINCT candidate_id, position_id
			FROM votes
			WHERE election_id = $1
		)
		SELECT p.id, p.name, p.vote_limit, p.display_order, c.id, c.name, COUNT(v.id) AS votes
		FROM ballot b
		JOIN positions p ON p.id = b.position_id
		JOIN candidates c ON c.id = b.candidate_id
		LEFT JOIN votes v
			ON v.election_id = $1 AND v.position_id = b.position_id AND v.candidate_id = b.candidate_id
		GROUP BY p.id, p.name, p.vote_limit, p.display_order, c.id, c.name
		ORDER BY p.display_order, p.id, votes DESC, c.name, c.id
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("error querying election tally: %w", err)
	}
	defer rows.Close()

	tallies := []models.CandidateTally{}
	for rows.Next() {
		var t models.CandidateTally
		if err := rows.Scan(
			&t.PositionID,
			&t.PositionName,
			&t.VoteLimit,
			&t.DisplayOrder,
			&t.CandidateID,
			&t.CandidateName,
			&t.Votes,
		); err != nil {
			return nil, fmt.Errorf("error scanning tally row: %w", err)
		}
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tally rows: %w", err)
	}
	return tallies, nil
}

// CountElectionVoters counts distinct voters with at least one vote in the election
func (r *VoteRepository) CountElectionVoters(ctx context.Context, electionID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(DISTINCT voter_id) FROM votes WHERE election_id = $1`, electionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting election voters: %w", err)
	}
	return n, nil
}

// CountPositionVoters counts distinct voters per position of the election
func (r *VoteRepository) CountPositionVoters(ctx context.Context, electionID int64) (map[int64]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT position_id, COUNT(DISTINCT voter_id)
		FROM votes
		WHERE election_id = $1
		GROUP BY position_id
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("error counting position voters: %w", err)
	}
	defer rows.Close()

	counts := map[int64]int64{}
	for rows.Next() {
		var positionID, n int64
		if err := rows.Scan(&positionID, &n); err != nil {
			return nil, fmt.Errorf("error scanning position voters row: %w", err)
		}
		counts[positionID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position voters rows: %w", err)
	}
	return counts, nil
}
