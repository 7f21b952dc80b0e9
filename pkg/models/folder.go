package models

// Folder is a named grouping of phrases, unique by name.
type Folder struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
