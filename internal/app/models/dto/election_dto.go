package dto

import (
	"time"

	"github.com/yigit/campus-election/internal/app/models"
)

// CreateElectionRequest represents election creation data
type CreateElectionRequest struct {
	Title        string     `json:"title" binding:"required,max=200" example:"Student Council 2026"`
	Description  string     `json:"description" binding:"max=2000"`
	StartTime    *time.Time `json:"startTime,omitempty"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	PositionIDs  []int64    `json:"positionIds" binding:"required,min=1,dive,gt=0"`
	CandidateIDs []int64    `json:"candidateIds" binding:"omitempty,dive,gt=0"`
}

// UpdateElectionRequest represents election update data.
// Omitted id lists leave the current assignments untouched.
type UpdateElectionRequest struct {
	Title        *string    `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description  *string    `json:"description,omitempty" binding:"omitempty,max=2000"`
	StartTime    *time.Time `json:"startTime,omitempty"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	PositionIDs  *[]int64   `json:"positionIds,omitempty" binding:"omitempty,dive,gt=0"`
	CandidateIDs *[]int64   `json:"candidateIds,omitempty" binding:"omitempty,dive,gt=0"`
}

// TransitionRequest carries an optional reason for a lifecycle change
type TransitionRequest struct {
	Reason string `json:"reason" binding:"max=200" example:"scheduled maintenance"`
}

// ElectionResponse represents an election with its assignments
type ElectionResponse struct {
	ID           int64                 `json:"id" example:"1"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	StartTime    *time.Time            `json:"startTime,omitempty"`
	EndTime      *time.Time            `json:"endTime,omitempty"`
	Status       models.ElectionStatus `json:"status" example:"active"`
	CreatedBy    int64                 `json:"createdBy"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	PositionIDs  []int64               `json:"positionIds"`
	CandidateIDs []int64               `json:"candidateIds"`
}

// ElectionListResponse represents a page of elections
type ElectionListResponse struct {
	Elections []ElectionResponse `json:"elections"`
	PaginationInfo
}

// FromElection converts a models.Election to an ElectionResponse
func FromElection(e *models.Election) ElectionResponse {
	resp := ElectionResponse{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		Status:       e.Status,
		CreatedBy:    e.CreatedBy,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
		PositionIDs:  e.PositionIDs,
		CandidateIDs: e.CandidateIDs,
	}
	if resp.PositionIDs == nil {
		resp.PositionIDs = []int64{}
	}
	if resp.CandidateIDs == nil {
		resp.CandidateIDs = []int64{}
	}
	return resp
}
