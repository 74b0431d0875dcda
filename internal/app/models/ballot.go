package models

// Selection is one (position, candidate) choice inside a ballot submission
type Selection struct {
	ElectionID  int64 `json:"electionId" binding:"required,gt=0"`
	PositionID  int64 `json:"positionId" binding:"required,gt=0"`
	CandidateID int64 `json:"candidateId" binding:"required,gt=0"`
}

// BallotOptions controls commit policy for a submission
type BallotOptions struct {
	// Final marks the last submission of the voter's ballot
	Final bool
	// Partial commits the selections that passed validation even if others failed
	Partial bool
}

// SelectionResult reports an admitted selection
type SelectionResult struct {
	Index       int   `json:"index"`
	ElectionID  int64 `json:"electionId"`
	PositionID  int64 `json:"positionId"`
	CandidateID int64 `json:"candidateId"`
	VoteID      int64 `json:"voteId,omitempty"`
}

// SelectionError reports a rejected selection
type SelectionError struct {
	Index       int    `json:"index"`
	ElectionID  int64  `json:"electionId"`
	PositionID  int64  `json:"positionId"`
	CandidateID int64  `json:"candidateId"`
	Code        string `json:"code"`
	Message     string `json:"message"`
	Limit       int    `json:"limit,omitempty"`
	TotalAfter  int    `json:"totalAfter,omitempty"`
}

// BallotReport is the structured outcome of one submission
type BallotReport struct {
	Committed bool              `json:"committed"`
	HasVoted  bool              `json:"hasVoted"`
	Results   []SelectionResult `json:"results"`
	Errors    []SelectionError  `json:"errors"`
}

// HasErrors reports whether any selection was rejected
func (r *BallotReport) HasErrors() bool {
	return len(r.Errors) > 0
}

// Eligibility describes whether a voter may still vote for a position
type Eligibility struct {
	VoterID        int64          `json:"voterId"`
	ElectionID     int64          `json:"electionId"`
	PositionID     int64          `json:"positionId"`
	Eligible       bool           `json:"eligible"`
	Reason         string         `json:"reason,omitempty"`
	ElectionStatus ElectionStatus `json:"electionStatus"`
	VoteLimit      int            `json:"voteLimit"`
	VotesCast      int            `json:"votesCast"`
	Remaining      int            `json:"remaining"`
	HasVoted       bool           `json:"hasVoted"`
}
