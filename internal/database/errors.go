package database

import "errors"

// ErrNotFound is returned by update/delete operations when the target row
// does not exist. Callers that want the old silent no-op behavior can ignore
// it with errors.Is.
var ErrNotFound = errors.New("record not found")
