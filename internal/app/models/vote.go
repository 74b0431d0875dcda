package models

import "time"

// VoteKey identifies the unique 4-tuple a voter may record at most once
type VoteKey struct {
	VoterID     int64
	ElectionID  int64
	PositionID  int64
	CandidateID int64
}

// Vote is one row of the append-only vote ledger
type Vote struct {
	ID          int64     `json:"id" db:"id"`
	ElectionID  int64     `json:"electionId" db:"election_id"`
	PositionID  int64     `json:"positionId" db:"position_id"`
	CandidateID int64     `json:"candidateId" db:"candidate_id"`
	VoterID     int64     `json:"voterId" db:"voter_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Key returns the uniqueness tuple of v
func (v *Vote) Key() VoteKey {
	return VoteKey{
		VoterID:     v.VoterID,
		ElectionID:  v.ElectionID,
		PositionID:  v.PositionID,
		CandidateID: v.CandidateID,
	}
}

// VoteDetail is a committed vote joined with its catalog names
type VoteDetail struct {
	Vote
	PositionName  string `json:"positionName"`
	CandidateName string `json:"candidateName"`
}
