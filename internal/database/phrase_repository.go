package database

import (
	"fmt"

	"github.com/example/engstudy/pkg/models"
)

// PhraseRepository handles database operations for phrases
type PhraseRepository struct{}

// NewPhraseRepository creates a new repository instance
func NewPhraseRepository() *PhraseRepository {
	return &PhraseRepository{}
}

// Create inserts a new phrase and fills in the store-assigned id and
// timestamp. Duplicate content is allowed; deduplication is the importer's
// concern, not the store's.
func (r *PhraseRepository) Create(phrase *models.Phrase) error {
	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO phrases (folder, source_text, target_text)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`
		return DB.QueryRow(query, phrase.Folder, phrase.SourceText, phrase.TargetText).
			Scan(&phrase.ID, &phrase.CreatedAt)
	}

	// SQLite has no RETURNING on this driver version
	result, err := DB.Exec(
		"INSERT INTO phrases (folder, source_text, target_text) VALUES (?, ?, ?)",
		phrase.Folder, phrase.SourceText, phrase.TargetText,
	)
	if err != nil {
		return fmt.Errorf("failed to create phrase: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	phrase.ID = id

	err = DB.QueryRow("SELECT created_at FROM phrases WHERE id = ?", phrase.ID).Scan(&phrase.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to get created_at: %w", err)
	}
	return nil
}

// GetByFolder returns all phrases in a folder ordered by creation time
// ascending. An unknown or empty folder yields an empty slice, not an error.
func (r *PhraseRepository) GetByFolder(folder string) ([]models.Phrase, error) {
	phrases := []models.Phrase{}
	query := DB.Rebind(`
		SELECT id, folder, source_text, target_text, created_at
		FROM phrases
		WHERE folder = ?
		ORDER BY created_at, id
	`)
	if err := DB.Select(&phrases, query, folder); err != nil {
		return nil, fmt.Errorf("failed to get phrases by folder: %w", err)
	}
	return phrases, nil
}

// Update replaces both text fields of a phrase. The folder and id never
// change. Returns ErrNotFound when the id does not exist.
func (r *PhraseRepository) Update(id int64, sourceText, targetText string) error {
	query := DB.Rebind("UPDATE phrases SET source_text = ?, target_text = ? WHERE id = ?")
	result, err := DB.Exec(query, sourceText, targetText, id)
	if err != nil {
		return fmt.Errorf("failed to update phrase: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a phrase. Returns ErrNotFound when the id does not exist.
func (r *PhraseRepository) Delete(id int64) error {
	query := DB.Rebind("DELETE FROM phrases WHERE id = ?")
	result, err := DB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete phrase: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ExportAll returns the whole phrase store in a portable form, ordered by
// folder and then by creation time, for the backup export.
func (r *PhraseRepository) ExportAll() ([]models.ExportRecord, error) {
	var phrases []models.Phrase
	err := DB.Select(&phrases, `
		SELECT id, folder, source_text, target_text, created_at
		FROM phrases
		ORDER BY folder, created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to export phrases: %w", err)
	}

	records := make([]models.ExportRecord, len(phrases))
	for i, p := range phrases {
		records[i] = models.ExportRecord{
			ID:         p.ID,
			Folder:     p.Folder,
			SourceText: p.SourceText,
			TargetText: p.TargetText,
		}
	}
	return records, nil
}
