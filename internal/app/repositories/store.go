package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/db"
)

// Lookup errors shared by every Store implementation
var (
	ErrElectionNotFound  = errors.New("election not found")
	ErrPositionNotFound  = errors.New("position not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrVoterNotFound     = errors.New("voter not found")
)

// ElectionQueries covers the elections table and its assignment tables
type ElectionQueries interface {
	CreateElection(ctx context.Context, election *models.Election) error
	GetElection(ctx context.Context, id int64) (*models.Election, error)
	// GetElectionForUpdate reads the row and locks it until the transaction ends
	GetElectionForUpdate(ctx context.Context, id int64) (*models.Election, error)
	// GetElectionStatusForShare reads the status under a shared lock so it cannot change mid-transaction
	GetElectionStatusForShare(ctx context.Context, id int64) (models.ElectionStatus, error)
	GetLiveElection(ctx context.Context) (*models.Election, error)
	// LiveElectionExists reports a non-ended election other than excludeID
	LiveElectionExists(ctx context.Context, excludeID int64) (bool, error)
	ListElections(ctx context.Context, filter models.ElectionFilter, offset uint64, limit int) ([]*models.Election, int64, error)
	// ListExpirableElections returns pending and active elections with an end time
	ListExpirableElections(ctx context.Context) ([]*models.Election, error)
	// ListOverdueElections returns pending and active elections whose end time is at or before now
	ListOverdueElections(ctx context.Context, now time.Time) ([]*models.Election, error)
	UpdateElection(ctx context.Context, election *models.Election) error
	UpdateElectionStatus(ctx context.Context, id int64, status models.ElectionStatus, updatedAt time.Time) error
	GetElectionAssignments(ctx context.Context, electionID int64) (positionIDs, candidateIDs []int64, err error)
	ReplaceElectionPositions(ctx context.Context, electionID int64, positionIDs []int64) error
	ReplaceElectionCandidates(ctx context.Context, electionID int64, candidateIDs []int64) error
	DeleteElectionVotes(ctx context.Context, electionID int64) (int64, error)
	DeleteElectionCandidates(ctx context.Context, electionID int64) error
	DeleteElectionPositions(ctx context.Context, electionID int64) error
	DeleteElection(ctx context.Context, id int64) error
}

// CatalogQueries covers positions and candidates
type CatalogQueries interface {
	GetPosition(ctx context.Context, id int64) (*models.Position, error)
	GetCandidate(ctx context.Context, id int64) (*models.Candidate, error)
	ListPositionsByIDs(ctx context.Context, ids []int64) ([]*models.Position, error)
	ListCandidatesByIDs(ctx context.Context, ids []int64) ([]*models.Candidate, error)
	CreatePosition(ctx context.Context, position *models.Position) error
	CreateCandidate(ctx context.Context, candidate *models.Candidate) error
	CountPositions(ctx context.Context) (int64, error)
	// GetElectionPosition returns the position only when it is assigned to the election
	GetElectionPosition(ctx context.Context, electionID, positionID int64) (*models.Position, error)
	// IsCandidateOnBallot reports whether the candidate is attached to the election for the given position
	IsCandidateOnBallot(ctx context.Context, electionID, positionID, candidateID int64) (bool, error)
}

// VoterQueries covers the voters table
type VoterQueries interface {
	GetVoter(ctx context.Context, id int64) (*models.Voter, error)
	// LockVoter reads the voter row and locks it until the transaction ends
	LockVoter(ctx context.Context, id int64) (*models.Voter, error)
	CreateVoter(ctx context.Context, voter *models.Voter) error
	// MarkVoterVoted flips has_voted once and reports whether this call flipped it
	MarkVoterVoted(ctx context.Context, id int64) (bool, error)
}

// VoteQueries covers the append-only vote ledger
type VoteQueries interface {
	VoteExists(ctx context.Context, key models.VoteKey) (bool, error)
	CountVoterPositionVotes(ctx context.Context, voterID, electionID, positionID int64) (int, error)
	// InsertVote records the vote and reports false when the 4-tuple already exists
	InsertVote(ctx context.Context, vote *models.Vote) (bool, error)
	ListVoterVotes(ctx context.Context, voterID, electionID int64) ([]models.VoteDetail, error)
	// TallyElection aggregates the ledger per candidate, including attached candidates without votes
	TallyElection(ctx context.Context, electionID int64) ([]models.CandidateTally, error)
	CountElectionVoters(ctx context.Context, electionID int64) (int64, error)
	// CountPositionVoters counts distinct voters per position, keyed by position id
	CountPositionVoters(ctx context.Context, electionID int64) (map[int64]int64, error)
}

// Queries is the full statement surface available inside and outside transactions
type Queries interface {
	ElectionQueries
	CatalogQueries
	VoterQueries
	VoteQueries
}

// TxFn is a function that executes within a store transaction.
// It may be invoked more than once when the store retries aborted transactions.
type TxFn func(ctx context.Context, q Queries) error

// Store is the persistence gateway. Queries called on the Store itself run outside
// any transaction; WithTx runs fn atomically and rolls back when it returns an error.
type Store interface {
	Queries
	WithTx(ctx context.Context, fn TxFn) error
}

// PostgresStore implements Store on a pgx connection pool
type PostgresStore struct {
	*pgQueries
	database *db.PostgresDB
}

// NewPostgresStore creates a Store backed by PostgreSQL
func NewPostgresStore(database *db.PostgresDB) *PostgresStore {
	return &PostgresStore{
		pgQueries: newPgQueries(database.Pool),
		database:  database,
	}
}

// WithTx runs fn inside a database transaction
func (s *PostgresStore) WithTx(ctx context.Context, fn TxFn) error {
	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, newPgQueries(tx))
	})
}

// pgQueries binds every repository to one Querier (pool or transaction)
type pgQueries struct {
	*ElectionRepository
	*CatalogRepository
	*VoterRepository
	*VoteRepository
}

func newPgQueries(q db.Querier) *pgQueries {
	return &pgQueries{
		ElectionRepository: NewElectionRepository(q),
		CatalogRepository:  NewCatalogRepository(q),
		VoterRepository:    NewVoterRepository(q),
		VoteRepository:     NewVoteRepository(q),
	}
}
