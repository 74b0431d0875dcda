package models

import "time"

// Voter defines the voter model based on the 'voters' table
type Voter struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  string    `json:"studentId" db:"student_id" example:"20231234"`
	FullName   string    `json:"fullName" db:"full_name"`
	Department string    `json:"department,omitempty" db:"department"`
	HasVoted   bool      `json:"hasVoted" db:"has_voted"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
