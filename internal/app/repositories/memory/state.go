package memory

import (
	"github.com/yigit/campus-election/internal/app/models"
)

type idSet map[int64]struct{}

func (s idSet) clone() idSet {
	out := make(idSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// state is one consistent snapshot of every table
type state struct {
	seq                map[string]int64
	elections          map[int64]models.Election
	positions          map[int64]models.Position
	candidates         map[int64]models.Candidate
	voters             map[int64]models.Voter
	votes              map[int64]models.Vote
	voteKeys           map[models.VoteKey]int64
	electionPositions  map[int64]idSet
	electionCandidates map[int64]idSet
}

func newState() *state {
	return &state{
		seq:                map[string]int64{},
		elections:          map[int64]models.Election{},
		positions:          map[int64]models.Position{},
		candidates:         map[int64]models.Candidate{},
		voters:             map[int64]models.Voter{},
		votes:              map[int64]models.Vote{},
		voteKeys:           map[models.VoteKey]int64{},
		electionPositions:  map[int64]idSet{},
		electionCandidates: map[int64]idSet{},
	}
}

func (s *state) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneSets(m map[int64]idSet) map[int64]idSet {
	out := make(map[int64]idSet, len(m))
	for k, v := range m {
		out[k] = v.clone()
	}
	return out
}

// clone returns a deep copy that a transaction can mutate freely
func (s *state) clone() *state {
	return &state{
		seq:                copyMap(s.seq),
		elections:          copyMap(s.elections),
		positions:          copyMap(s.positions),
		candidates:         copyMap(s.candidates),
		voters:             copyMap(s.voters),
		votes:              copyMap(s.votes),
		voteKeys:           copyMap(s.voteKeys),
		electionPositions:  cloneSets(s.electionPositions),
		electionCandidates: cloneSets(s.electionCandidates),
	}
}

// hasLiveElection reports a non-ended election other than excludeID
func (s *state) hasLiveElection(excludeID int64) bool {
	for id, e := range s.elections {
		if id != excludeID && e.Status.IsLive() {
			return true
		}
	}
	return false
}

func (s *state) electionReferenced(id int64) bool {
	if len(s.electionPositions[id]) > 0 || len(s.electionCandidates[id]) > 0 {
		return true
	}
	for _, v := range s.votes {
		if v.ElectionID == id {
			return true
		}
	}
	return false
}
