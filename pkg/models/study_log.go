package models

import "time"

// StudyLogEntry records one logged study session. Entries are append-only.
type StudyLogEntry struct {
	ID              int64     `json:"id" db:"id"`
	SessionDate     time.Time `json:"session_date" db:"session_date"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
