package memory

import (
	"context"
	"sort"
	"time"

	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/app/repositories"
	"github.com/yigit/campus-election/internal/pkg/apperrors"
)

// queries runs against a transaction draft when st is set, otherwise against the
// shared state under the store mutex
type queries struct {
	s  *Store
	st *state
}

func (q *queries) acquire(ctx context.Context, op string) (*state, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if err := q.s.injected(op); err != nil {
		return nil, nil, err
	}
	if q.st != nil {
		return q.st, func() {}, nil
	}
	q.s.mu.Lock()
	return q.s.st, q.s.mu.Unlock, nil
}

func withAssignments(st *state, e models.Election) *models.Election {
	e.PositionIDs = sortedIDs(st.electionPositions[e.ID])
	e.CandidateIDs = sortedIDs(st.electionCandidates[e.ID])
	return &e
}

func bare(e models.Election) *models.Election {
	e.PositionIDs = nil
	e.CandidateIDs = nil
	return &e
}

func sortedIDs(set idSet) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortElections(list []*models.Election, less func(a, b *models.Election) bool) {
	sort.SliceStable(list, func(i, j int) bool { return less(list[i], list[j]) })
}

func liveElectionConflict() error {
	return apperrors.NewConflictError(apperrors.CodeLiveElectionExists, "another election is already live")
}

// Elections

func (q *queries) CreateElection(ctx context.Context, election *models.Election) error {
	st, release, err := q.acquire(ctx, "CreateElection")
	if err != nil {
		return err
	}
	defer release()

	if election.Status.IsLive() && st.hasLiveElection(0) {
		return liveElectionConflict()
	}

	now := q.s.now()
	election.ID = st.nextID("elections")
	election.CreatedAt = now
	election.UpdatedAt = now
	st.elections[election.ID] = *bare(*election)
	return nil
}

func (q *queries) GetElection(ctx context.Context, id int64) (*models.Election, error) {
	st, release, err := q.acquire(ctx, "GetElection")
	if err != nil {
		return nil, err
	}
	defer release()

	e, ok := st.elections[id]
	if !ok {
		return nil, repositories.ErrElectionNotFound
	}
	return bare(e), nil
}

func (q *queries) GetElectionForUpdate(ctx context.Context, id int64) (*models.Election, error) {
	return q.GetElection(ctx, id)
}

func (q *queries) GetElectionStatusForShare(ctx context.Context, id int64) (models.ElectionStatus, error) {
	e, err := q.GetElection(ctx, id)
	if err != nil {
		return "", err
	}
	return e.Status, nil
}

func (q *queries) GetLiveElection(ctx context.Context) (*models.Election, error) {
	st, release, err := q.acquire(ctx, "GetLiveElection")
	if err != nil {
		return nil, err
	}
	defer release()

	var live *models.Election
	for _, e := range st.elections {
		if e.Status.IsLive() && (live == nil || e.ID > live.ID) {
			live = bare(e)
		}
	}
	if live == nil {
		return nil, repositories.ErrElectionNotFound
	}
	return live, nil
}

func (q *queries) LiveElectionExists(ctx context.Context, excludeID int64) (bool, error) {
	st, release, err := q.acquire(ctx, "LiveElectionExists")
	if err != nil {
		return false, err
	}
	defer release()
	return st.hasLiveElection(excludeID), nil
}

func (q *queries) ListElections(ctx context.Context, filter models.ElectionFilter, offset uint64, limit int) ([]*models.Election, int64, error) {
	st, release, err := q.acquire(ctx, "ListElections")
	if err != nil {
		return nil, 0, err
	}
	defer release()

	matched := []*models.Election{}
	for _, e := range st.elections {
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		matched = append(matched, bare(e))
	}
	sortElections(matched, func(a, b *models.Election) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	total := int64(len(matched))
	if offset >= uint64(len(matched)) {
		return []*models.Election{}, total, nil
	}
	end := int(offset) + limit
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (q *queries) listExpirable(ctx context.Context, op string, keep func(end time.Time) bool) ([]*models.Election, error) {
	st, release, err := q.acquire(ctx, op)
	if err != nil {
		return nil, err
	}
	defer release()

	list := []*models.Election{}
	for _, e := range st.elections {
		if e.Status.IsExpirable() && e.EndTime != nil && keep(*e.EndTime) {
			list = append(list, bare(e))
		}
	}
	sortElections(list, func(a, b *models.Election) bool {
		if !a.EndTime.Equal(*b.EndTime) {
			return a.EndTime.Before(*b.EndTime)
		}
		return a.ID < b.ID
	})
	return list, nil
}

func (q *queries) ListExpirableElections(ctx context.Context) ([]*models.Election, error) {
	return q.listExpirable(ctx, "ListExpirableElections", func(time.Time) bool { return true })
}

func (q *queries) ListOverdueElections(ctx context.Context, now time.Time) ([]*models.Election, error) {
	return q.listExpirable(ctx, "ListOverdueElections", func(end time.Time) bool { return !end.After(now) })
}

func (q *queries) UpdateElection(ctx context.Context, election *models.Election) error {
	st, release, err := q.acquire(ctx, "UpdateElection")
	if err != nil {
		return err
	}
	defer release()

	current, ok := st.elections[election.ID]
	if !ok {
		return repositories.ErrElectionNotFound
	}
	current.Title = election.Title
	current.Description = election.Description
	current.StartTime = election.StartTime
	current.EndTime = election.EndTime
	current.UpdatedAt = election.UpdatedAt
	st.elections[election.ID] = current
	return nil
}

func (q *queries) UpdateElectionStatus(ctx context.Context, id int64, status models.ElectionStatus, updatedAt time.Time) error {
	st, release, err := q.acquire(ctx, "UpdateElectionStatus")
	if err != nil {
		return err
	}
	defer release()

	current, ok := st.elections[id]
	if !ok {
		return repositories.ErrElectionNotFound
	}
	if status.IsLive() && st.hasLiveElection(id) {
		return liveElectionConflict()
	}
	current.Status = status
	current.UpdatedAt = updatedAt
	st.elections[id] = current
	return nil
}

func (q *queries) GetElectionAssignments(ctx context.Context, electionID int64) ([]int64, []int64, error) {
	st, release, err := q.acquire(ctx, "GetElectionAssignments")
	if err != nil {
		return nil, nil, err
	}
	defer release()

	e := withAssignments(st, models.Election{ID: electionID})
	return e.PositionIDs, e.CandidateIDs, nil
}

func (q *queries) ReplaceElectionPositions(ctx context.Context, electionID int64, positionIDs []int64) error {
	st, release, err := q.acquire(ctx, "ReplaceElectionPositions")
	if err != nil {
		return err
	}
	defer release()

	if _, ok := st.elections[electionID]; !ok {
		return apperrors.NewValidationError("referenced resource does not exist")
	}
	set := idSet{}
	for _, id := range positionIDs {
		if _, ok := st.positions[id]; !ok {
			return apperrors.NewValidationError("referenced resource does not exist")
		}
		if _, dup := set[id]; dup {
			return apperrors.NewConflictError("", "resource already exists")
		}
		set[id] = struct{}{}
	}
	st.electionPositions[electionID] = set
	return nil
}

func (q *queries) ReplaceElectionCandidates(ctx context.Context, electionID int64, candidateIDs []int64) error {
	st, release, err := q.acquire(ctx, "ReplaceElectionCandidates")
	if err != nil {
		return err
	}
	defer release()

	if _, ok := st.elections[electionID]; !ok {
		return apperrors.NewValidationError("referenced resource does not exist")
	}
	set := idSet{}
	for _, id := range candidateIDs {
		if _, ok := st.candidates[id]; !ok {
			return apperrors.NewValidationError("referenced resource does not exist")
		}
		if _, dup := set[id]; dup {
			return apperrors.NewConflictError("", "resource already exists")
		}
		set[id] = struct{}{}
	}
	st.electionCandidates[electionID] = set
	return nil
}

func (q *queries) DeleteElectionVotes(ctx context.Context, electionID int64) (int64, error) {
	st, release, err := q.acquire(ctx, "DeleteElectionVotes")
	if err != nil {
		return 0, err
	}
	defer release()

	var n int64
	for id, v := range st.votes {
		if v.ElectionID == electionID {
			delete(st.voteKeys, v.Key())
			delete(st.votes, id)
			n++
		}
	}
	return n, nil
}

func (q *queries) DeleteElectionCandidates(ctx context.Context, electionID int64) error {
	st, release, err := q.acquire(ctx, "DeleteElectionCandidates")
	if err != nil {
		return err
	}
	defer release()
	delete(st.electionCandidates, electionID)
	return nil
}

func (q *queries) DeleteElectionPositions(ctx context.Context, electionID int64) error {
	st, release, err := q.acquire(ctx, "DeleteElectionPositions")
	if err != nil {
		return err
	}
	defer release()
	delete(st.electionPositions, electionID)
	return nil
}

func (q *queries) DeleteElection(ctx context.Context, id int64) error {
	st, release, err := q.acquire(ctx, "DeleteElection")
	if err != nil {
		return err
	}
	defer release()

	if _, ok := st.elections[id]; !ok {
		return repositories.ErrElectionNotFound
	}
	if st.electionReferenced(id) {
		return apperrors.NewValidationError("referenced resource does not exist")
	}
	delete(st.elections, id)
	return nil
}

// Catalog

func (q *queries) GetPosition(ctx context.Context, id int64) (*models.Position, error) {
	st, release, err := q.acquire(ctx, "GetPosition")
	if err != nil {
		return nil, err
	}
	defer release()

	p, ok := st.positions[id]
	if !ok {
		return nil, repositories.ErrPositionNotFound
	}
	return &p, nil
}

func (q *queries) GetElectionPosition(ctx context.Context, electionID, positionID int64) (*models.Position, error) {
	st, release, err := q.acquire(ctx, "GetElectionPosition")
	if err != nil {
		return nil, err
	}
	defer release()

	p, ok := st.positions[positionID]
	if _, assigned := st.electionPositions[electionID][positionID]; !ok || !assigned {
		return nil, repositories.ErrPositionNotFound
	}
	return &p, nil
}

func (q *queries) GetCandidate(ctx context.Context, id int64) (*models.Candidate, error) {
	st, release, err := q.acquire(ctx, "GetCandidate")
	if err != nil {
		return nil, err
	}
	defer release()

	c, ok := st.candidates[id]
	if !ok {
		return nil, repositories.ErrCandidateNotFound
	}
	return &c, nil
}

func (q *queries) IsCandidateOnBallot(ctx context.Context, electionID, positionID, candidateID int64) (bool, error) {
	st, release, err := q.acquire(ctx, "IsCandidateOnBallot")
	if err != nil {
		return false, err
	}
	defer release()

	c, ok := st.candidates[candidateID]
	if !ok || c.PositionID != positionID {
		return false, nil
	}
	_, attached := st.electionCandidates[electionID][candidateID]
	return attached, nil
}

func (q *queries) ListPositionsByIDs(ctx context.Context, ids []int64) ([]*models.Position, error) {
	st, release, err := q.acquire(ctx, "ListPositionsByIDs")
	if err != nil {
		return nil, err
	}
	defer release()

	seen := idSet{}
	positions := []*models.Position{}
	for _, id := range ids {
		p, ok := st.positions[id]
		if _, dup := seen[id]; !ok || dup {
			continue
		}
		seen[id] = struct{}{}
		positions = append(positions, &p)
	}
	sort.SliceStable(positions, func(i, j int) bool {
		if positions[i].DisplayOrder != positions[j].DisplayOrder {
			return positions[i].DisplayOrder < positions[j].DisplayOrder
		}
		return positions[i].ID < positions[j].ID
	})
	return positions, nil
}

func (q *queries) ListCandidatesByIDs(ctx context.Context, ids []int64) ([]*models.Candidate, error) {
	st, release, err := q.acquire(ctx, "ListCandidatesByIDs")
	if err != nil {
		return nil, err
	}
	defer release()

	seen := idSet{}
	candidates := []*models.Candidate{}
	for _, id := range ids {
		c, ok := st.candidates[id]
		if _, dup := seen[id]; !ok || dup {
			continue
		}
		seen[id] = struct{}{}
		candidates = append(candidates, &c)
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	return candidates, nil
}

func (q *queries) CreatePosition(ctx context.Context, position *models.Position) error {
	st, release, err := q.acquire(ctx, "CreatePosition")
	if err != nil {
		return err
	}
	defer release()

	if position.VoteLimit <= 0 {
		return apperrors.NewValidationError("value violates a store constraint")
	}
	position.ID = st.nextID("positions")
	st.positions[position.ID] = *position
	return nil
}

func (q *queries) CreateCandidate(ctx context.Context, candidate *models.Candidate) error {
	st, release, err := q.acquire(ctx, "CreateCandidate")
	if err != nil {
		return err
	}
	defer release()

	if _, ok := st.positions[candidate.PositionID]; !ok {
		return apperrors.NewValidationError("referenced resource does not exist")
	}
	candidate.ID = st.nextID("candidates")
	st.candidates[candidate.ID] = *candidate
	return nil
}

func (q *queries) CountPositions(ctx context.Context) (int64, error) {
	st, release, err := q.acquire(ctx, "CountPositions")
	if err != nil {
		return 0, err
	}
	defer release()
	return int64(len(st.positions)), nil
}

// Voters

func (q *queries) GetVoter(ctx context.Context, id int64) (*models.Voter, error) {
	st, release, err := q.acquire(ctx, "GetVoter")
	if err != nil {
		return nil, err
	}
	defer release()

	v, ok := st.voters[id]
	if !ok {
		return nil, repositories.ErrVoterNotFound
	}
	return &v, nil
}

func (q *queries) LockVoter(ctx context.Context, id int64) (*models.Voter, error) {
	return q.GetVoter(ctx, id)
}

func (q *queries) CreateVoter(ctx context.Context, voter *models.Voter) error {
	st, release, err := q.acquire(ctx, "CreateVoter")
	if err != nil {
		return err
	}
	defer release()

	for _, existing := range st.voters {
		if existing.StudentID == voter.StudentID {
			return apperrors.NewConflictError("", "resource already exists")
		}
	}
	voter.ID = st.nextID("voters")
	voter.HasVoted = false
	voter.CreatedAt = q.s.now()
	st.voters[voter.ID] = *voter
	return nil
}

func (q *queries) MarkVoterVoted(ctx context.Context, id int64) (bool, error) {
	st, release, err := q.acquire(ctx, "MarkVoterVoted")
	if err != nil {
		return false, err
	}
	defer release()

	v, ok := st.voters[id]
	if !ok || v.HasVoted {
		return false, nil
	}
	v.HasVoted = true
	st.voters[id] = v
	return true, nil
}

// Votes

func (q *queries) VoteExists(ctx context.Context, key models.VoteKey) (bool, error) {
	st, release, err := q.acquire(ctx, "VoteExists")
	if err != nil {
		return false, err
	}
	defer release()

	_, ok := st.voteKeys[key]
	return ok, nil
}

func (q *queries) CountVoterPositionVotes(ctx context.Context, voterID, electionID, positionID int64) (int, error) {
	st, release, err := q.acquire(ctx, "CountVoterPositionVotes")
	if err != nil {
		return 0, err
	}
	defer release()

	n := 0
	for key := range st.voteKeys {
		if key.VoterID == voterID && key.ElectionID == electionID && key.PositionID == positionID {
			n++
		}
	}
	return n, nil
}

func (q *queries) InsertVote(ctx context.Context, vote *models.Vote) (bool, error) {
	st, release, err := q.acquire(ctx, "InsertVote")
	if err != nil {
		return false, err
	}
	defer release()

	if _, dup := st.voteKeys[vote.Key()]; dup {
		return false, nil
	}
	_, electionOK := st.elections[vote.ElectionID]
	_, positionOK := st.positions[vote.PositionID]
	_, candidateOK := st.candidates[vote.CandidateID]
	_, voterOK := st.voters[vote.VoterID]
	if !electionOK || !positionOK || !candidateOK || !voterOK {
		return false, apperrors.NewValidationError("referenced resource does not exist")
	}

	vote.ID = st.nextID("votes")
	vote.CreatedAt = q.s.now()
	st.votes[vote.ID] = *vote
	st.voteKeys[vote.Key()] = vote.ID
	return true, nil
}

func (q *queries) ListVoterVotes(ctx context.Context, voterID, electionID int64) ([]models.VoteDetail, error) {
	st, release, err := q.acquire(ctx, "ListVoterVotes")
	if err != nil {
		return nil, err
	}
	defer release()

	votes := []models.VoteDetail{}
	for _, v := range st.votes {
		if v.VoterID != voterID || v.ElectionID != electionID {
			continue
		}
		votes = append(votes, models.VoteDetail{
			Vote:          v,
			PositionName:  st.positions[v.PositionID].Name,
			CandidateName: st.candidates[v.CandidateID].Name,
		})
	}
	sort.Slice(votes, func(i, j int) bool {
		pi, pj := st.positions[votes[i].PositionID], st.positions[votes[j].PositionID]
		switch {
		case pi.DisplayOrder != pj.DisplayOrder:
			return pi.DisplayOrder < pj.DisplayOrder
		case pi.ID != pj.ID:
			return pi.ID < pj.ID
		case votes[i].CandidateName != votes[j].CandidateName:
			return votes[i].CandidateName < votes[j].CandidateName
		default:
			return votes[i].CandidateID < votes[j].CandidateID
		}
	})
	return votes, nil
}

type ballotEntry struct {
	positionID  int64
	candidateID int64
}

func (q *queries) TallyElection(ctx context.Context, electionID int64) ([]models.CandidateTally, error) {
	st, release, err := q.acquire(ctx, "TallyElection")
	if err != nil {
		return nil, err
	}
	defer release()

	counts := map[ballotEntry]int64{}
	for candidateID := range st.electionCandidates[electionID] {
		if c, ok := st.candidates[candidateID]; ok {
			counts[ballotEntry{c.PositionID, c.ID}] = 0
		}
	}
	for _, v := range st.votes {
		if v.ElectionID == electionID {
			counts[ballotEntry{v.PositionID, v.CandidateID}]++
		}
	}

	tallies := []models.CandidateTally{}
	for entry, n := range counts {
		p, pok := st.positions[entry.positionID]
		c, cok := st.candidates[entry.candidateID]
		if !pok || !cok {
			continue
		}
		tallies = append(tallies, models.CandidateTally{
			PositionID:    p.ID,
			PositionName:  p.Name,
			VoteLimit:     p.VoteLimit,
			DisplayOrder:  p.DisplayOrder,
			CandidateID:   c.ID,
			CandidateName: c.Name,
			Votes:         n,
		})
	}
	sort.Slice(tallies, func(i, j int) bool {
		a, b := tallies[i], tallies[j]
		switch {
		case a.DisplayOrder != b.DisplayOrder:
			return a.DisplayOrder < b.DisplayOrder
		case a.PositionID != b.PositionID:
			return a.PositionID < b.PositionID
		case a.Votes != b.Votes:
			return a.Votes > b.Votes
		case a.CandidateName != b.CandidateName:
			return a.CandidateName < b.CandidateName
		default:
			return a.CandidateID < b.CandidateID
		}
	})
	return tallies, nil
}

func (q *queries) CountElectionVoters(ctx context.Context, electionID int64) (int64, error) {
	st, release, err := q.acquire(ctx, "CountElectionVoters")
	if err != nil {
		return 0, err
	}
	defer release()

	voters := idSet{}
	for _, v := range st.votes {
		if v.ElectionID == electionID {
			voters[v.VoterID] = struct{}{}
		}
	}
	return int64(len(voters)), nil
}

func (q *queries) CountPositionVoters(ctx context.Context, electionID int64) (map[int64]int64, error) {
	st, release, err := q.acquire(ctx, "CountPositionVoters")
	if err != nil {
		return nil, err
	}
	defer release()

	voters := map[int64]idSet{}
	for _, v := range st.votes {
		if v.ElectionID != electionID {
			continue
		}
		if voters[v.PositionID] == nil {
			voters[v.PositionID] = idSet{}
		}
		voters[v.PositionID][v.VoterID] = struct{}{}
	}
	counts := make(map[int64]int64, len(voters))
	for positionID, set := range voters {
		counts[positionID] = int64(len(set))
	}
	return counts, nil
}
