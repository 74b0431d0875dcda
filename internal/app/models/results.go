package models

import "time"

// CandidateTally is one aggregated row of the vote ledger
type CandidateTally struct {
	PositionID    int64  `json:"positionId"`
	PositionName  string `json:"positionName"`
	VoteLimit     int    `json:"voteLimit"`
	DisplayOrder  int    `json:"displayOrder"`
	CandidateID   int64  `json:"candidateId"`
	CandidateName string `json:"candidateName"`
	Votes         int64  `json:"votes"`
}

// CandidateResult is a ranked candidate inside a position result
type CandidateResult struct {
	CandidateID   int64  `json:"candidateId"`
	CandidateName string `json:"candidateName"`
	Votes         int64  `json:"votes"`
	Rank          int    `json:"rank"`
	IsWinner      bool   `json:"isWinner"`
}

// PositionResult groups ranked candidates of a position
type PositionResult struct {
	PositionID   int64             `json:"positionId"`
	PositionName string            `json:"positionName"`
	VoteLimit    int               `json:"voteLimit"`
	DisplayOrder int               `json:"displayOrder"`
	TotalVotes   int64             `json:"totalVotes"`
	VotersVoted  int64             `json:"votersVoted"`
	Candidates   []CandidateResult `json:"candidates"`
}

// ElectionResults is the full tally of an election
type ElectionResults struct {
	ElectionID  int64            `json:"electionId"`
	Title       string           `json:"title"`
	Status      ElectionStatus   `json:"status"`
	VotersVoted int64            `json:"votersVoted"`
	TotalVotes  int64            `json:"totalVotes"`
	Positions   []PositionResult `json:"positions"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

// Countdown describes the time left in an election
type Countdown struct {
	ElectionID       int64          `json:"electionId"`
	Status           ElectionStatus `json:"status"`
	StartTime        *time.Time     `json:"startTime,omitempty"`
	EndTime          *time.Time     `json:"endTime,omitempty"`
	ServerTime       time.Time      `json:"serverTime"`
	RemainingSeconds int64          `json:"remainingSeconds"`
	Expired          bool           `json:"expired"`
}
