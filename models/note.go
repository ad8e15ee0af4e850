package models

import "time"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
)

// Rank orders priorities for focus mode, lower first
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow, PriorityNormal:
		return true
	}
	return false
}

// Note is a task recorded for a day. Its day is derived from Timestamp.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Timestamp time.Time `json:"timestamp"`
	Priority  Priority  `json:"priority"`
	Recurring bool      `json:"recurring"`
}

func (n Note) RecordID() string { return n.ID }

// NotePatch is a partial update; nil fields are left untouched
type NotePatch struct {
	Completed *bool `json:"completed,omitempty"`
}
