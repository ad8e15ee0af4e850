package models

import (
	"regexp"
	"time"
)

type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryFitness  Category = "fitness"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryFitness:
		return true
	}
	return false
}

// DefaultReminderTime is used when a reminder is submitted without a time
const DefaultReminderTime = "12:00"

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidClock reports whether s is a zero-padded 24-hour HH:MM time
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

type Reminder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Time      string    `json:"time"`
	Category  Category  `json:"category"`
	Completed bool      `json:"completed"`
	Date      DateKey   `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

func (r Reminder) RecordID() string { return r.ID }

// StartsAt returns the instant the reminder is due in loc
func (r Reminder) StartsAt(loc *time.Location) time.Time {
	start := r.Date.Start(loc)
	clock, err := time.Parse("15:04", r.Time)
	if err != nil {
		return start
	}
	return start.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
}

type ReminderPatch struct {
	Completed *bool `json:"completed,omitempty"`
}
