package database

import (
	"fmt"
	"time"

	"github.com/example/engstudy/pkg/models"
)

// StudyLogRepository handles database operations for the study-time log
type StudyLogRepository struct{}

// NewStudyLogRepository creates a new repository instance
func NewStudyLogRepository() *StudyLogRepository {
	return &StudyLogRepository{}
}

// Log appends one study session stamped with today's date.
func (r *StudyLogRepository) Log(durationMinutes int) error {
	if durationMinutes < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	query := DB.Rebind("INSERT INTO study_log (session_date, duration_minutes) VALUES (CURRENT_DATE, ?)")
	if _, err := DB.Exec(query, durationMinutes); err != nil {
		return fmt.Errorf("failed to log study session: %w", err)
	}
	return nil
}

// GetAll returns every logged session, oldest first.
func (r *StudyLogRepository) GetAll() ([]models.StudyLogEntry, error) {
	entries := []models.StudyLogEntry{}
	err := DB.Select(&entries, `
		SELECT id, session_date, duration_minutes, created_at
		FROM study_log
		ORDER BY session_date, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get study log: %w", err)
	}
	return entries, nil
}

// SummaryBucket is one aggregated slice of study time.
type SummaryBucket struct {
	Label   string `json:"label"`
	Minutes int    `json:"minutes"`
}

// Summarize groups entries into daily, weekly (Monday-based), monthly or
// total buckets. Bucket labels sort chronologically.
func Summarize(entries []models.StudyLogEntry, period string) []SummaryBucket {
	totals := map[string]int{}
	order := []string{}

	label := func(d time.Time) string {
		switch period {
		case "weekly":
			// back up to Monday
			offset := (int(d.Weekday()) + 6) % 7
			return d.AddDate(0, 0, -offset).Format("2006-01-02")
		case "monthly":
			return d.Format("2006-01")
		case "total":
			return "total"
		default: // daily
			return d.Format("2006-01-02")
		}
	}

	for _, e := range entries {
		key := label(e.SessionDate)
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += e.DurationMinutes
	}

	buckets := make([]SummaryBucket, 0, len(order))
	for _, key := range order {
		buckets = append(buckets, SummaryBucket{Label: key, Minutes: totals[key]})
	}
	return buckets
}
