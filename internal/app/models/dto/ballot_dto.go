package dto

import "github.com/yigit/campus-election/internal/app/models"

// SubmitBallotRequest represents one ballot submission
type SubmitBallotRequest struct {
	Selections []models.Selection `json:"selections" binding:"required,min=1,dive"`
	// Final marks the voter's ballot as complete once every selection is admitted
	Final bool `json:"final" example:"true"`
	// Partial commits admitted selections even when others are rejected
	Partial bool `json:"partial" example:"false"`
}

// Options converts the request flags into admission options
func (r *SubmitBallotRequest) Options() models.BallotOptions {
	return models.BallotOptions{Final: r.Final, Partial: r.Partial}
}

// VoterVotesResponse lists a voter's committed votes in an election
type VoterVotesResponse struct {
	ElectionID int64               `json:"electionId"`
	Votes      []models.VoteDetail `json:"votes"`
}
