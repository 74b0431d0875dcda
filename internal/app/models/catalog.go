package models

// Position defines a contested seat based on the 'positions' table
type Position struct {
	ID           int64  `json:"id" db:"id" example:"1"`
	Name         string `json:"name" db:"name" example:"President"`
	VoteLimit    int    `json:"voteLimit" db:"vote_limit" example:"1"`
	DisplayOrder int    `json:"displayOrder" db:"display_order" example:"1"`
}

// Candidate defines a candidate based on the 'candidates' table
type Candidate struct {
	ID         int64  `json:"id" db:"id" example:"7"`
	Name       string `json:"name" db:"name" example:"Ada Lovelace"`
	PositionID int64  `json:"positionId" db:"position_id" example:"1"`
	Department string `json:"department,omitempty" db:"department"`
	Bio        string `json:"bio,omitempty" db:"bio"`
}
