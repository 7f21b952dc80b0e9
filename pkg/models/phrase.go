package models

import "time"

// Phrase is a paired study unit: the learner's native-language text and its
// English counterpart, filed under a folder.
type Phrase struct {
	ID         int64     `json:"id" db:"id"`
	Folder     string    `json:"folder" db:"folder"`
	SourceText string    `json:"source_text" db:"source_text"`
	TargetText string    `json:"target_text" db:"target_text"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ExportRecord is the portable form of a phrase used by the full-store export.
type ExportRecord struct {
	ID         int64  `json:"id"`
	Folder     string `json:"folder"`
	SourceText string `json:"source_text"`
	TargetText string `json:"target_text"`
}
