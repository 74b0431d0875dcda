package models

import (
	"time"
)

// ElectionStatus is the lifecycle state of an election
type ElectionStatus string

const (
	ElectionPending ElectionStatus = "pending"
	ElectionActive  ElectionStatus = "active"
	ElectionPaused  ElectionStatus = "paused"
	ElectionStopped ElectionStatus = "stopped"
	ElectionEnded   ElectionStatus = "ended"
)

// LiveStatuses lists every status other than ended
var LiveStatuses = []ElectionStatus{ElectionPending, ElectionActive, ElectionPaused, ElectionStopped}

// ExpirableStatuses lists the statuses watched by the expiry scheduler
var ExpirableStatuses = []ElectionStatus{ElectionPending, ElectionActive}

// Valid reports whether s is a known status
func (s ElectionStatus) Valid() bool {
	switch s {
	case ElectionPending, ElectionActive, ElectionPaused, ElectionStopped, ElectionEnded:
		return true
	}
	return false
}

// IsLive reports whether s counts against the single-live-election rule
func (s ElectionStatus) IsLive() bool {
	return s.Valid() && s != ElectionEnded
}

// IsExpirable reports whether the expiry scheduler watches elections in s
func (s ElectionStatus) IsExpirable() bool {
	return s == ElectionPending || s == ElectionActive
}

// AcceptsVotes reports whether ballots may be admitted in s
func (s ElectionStatus) AcceptsVotes() bool {
	return s == ElectionActive
}

// transitions lists, per target status, the statuses it may be entered from
var transitions = map[ElectionStatus][]ElectionStatus{
	ElectionActive:  {ElectionPending, ElectionPaused},
	ElectionPaused:  {ElectionActive},
	ElectionStopped: {ElectionActive, ElectionPaused},
	ElectionEnded:   {ElectionPending, ElectionActive, ElectionPaused, ElectionStopped},
}

// CanTransition reports whether the lifecycle allows from -> to
func CanTransition(from, to ElectionStatus) bool {
	for _, allowed := range transitions[to] {
		if allowed == from {
			return true
		}
	}
	return false
}

// Election defines the election model based on the 'elections' table
type Election struct {
	ID          int64          `json:"id" db:"id" example:"1"`
	Title       string         `json:"title" db:"title" example:"Student Council 2026"`
	Description string         `json:"description" db:"description"`
	StartTime   *time.Time     `json:"startTime,omitempty" db:"start_time"`
	EndTime     *time.Time     `json:"endTime,omitempty" db:"end_time"`
	Status      ElectionStatus `json:"status" db:"status" example:"pending"`
	CreatedBy   int64          `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`

	// Assignments (populated when needed)
	PositionIDs  []int64 `json:"positionIds,omitempty"`
	CandidateIDs []int64 `json:"candidateIds,omitempty"`
}

// Remaining returns the time left until EndTime, and false when there is no end time
func (e *Election) Remaining(now time.Time) (time.Duration, bool) {
	if e.EndTime == nil {
		return 0, false
	}
	return e.EndTime.Sub(now), true
}

// ElectionFilter narrows election listings
type ElectionFilter struct {
	Status *ElectionStatus
}
