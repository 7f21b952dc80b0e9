package database

import (
	"fmt"
	"strings"
)

// FolderRepository handles database operations for folders
type FolderRepository struct{}

// NewFolderRepository creates a new repository instance
func NewFolderRepository() *FolderRepository {
	return &FolderRepository{}
}

// Create adds a new folder. It returns false (with a nil error) when the name
// is already taken, so callers can surface a rejection instead of a fault.
func (r *FolderRepository) Create(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("folder name cannot be empty")
	}

	query := DB.Rebind("INSERT INTO folders (name) VALUES (?) ON CONFLICT (name) DO NOTHING")
	result, err := DB.Exec(query, name)
	if err != nil {
		return false, fmt.Errorf("failed to create folder: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// GetAll returns all folder names sorted by name
func (r *FolderRepository) GetAll() ([]string, error) {
	var names []string
	err := DB.Select(&names, "SELECT name FROM folders ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to get folders: %w", err)
	}
	return names, nil
}

// Exists reports whether a folder with the given name is registered
func (r *FolderRepository) Exists(name string) (bool, error) {
	var count int
	query := DB.Rebind("SELECT COUNT(*) FROM folders WHERE name = ?")
	if err := DB.Get(&count, query, name); err != nil {
		return false, fmt.Errorf("failed to check folder: %w", err)
	}
	return count > 0, nil
}
