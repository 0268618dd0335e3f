package domain

import "strings"

// ChangeType classifies how a file was locally modified.
type ChangeType string

const (
	// ChangeModified indicates the file content changed.
	ChangeModified ChangeType = "modified"
	// ChangeAdded indicates the file is newly tracked.
	ChangeAdded ChangeType = "added"
	// ChangeDeleted indicates the file was removed.
	ChangeDeleted ChangeType = "deleted"
	// ChangeRenamed indicates the file was moved.
	ChangeRenamed ChangeType = "renamed"
	// ChangeUntracked indicates the file is not known to version control yet.
	ChangeUntracked ChangeType = "untracked"
)

// ChangeRecord is one locally modified file as reported by the
// version-control status query. Records live for a single run and are
// never persisted.
type ChangeRecord struct {
	StatusCode string
	Path       string
	Type       ChangeType
}

// ChangeTypeFromStatus maps a two-character porcelain status code to a
// ChangeType. The first status character decides; "??" means untracked.
func ChangeTypeFromStatus(code string) ChangeType {
	if strings.HasPrefix(code, "??") {
		return ChangeUntracked
	}
	switch {
	case strings.HasPrefix(code, "A"):
		return ChangeAdded
	case strings.HasPrefix(code, "D"):
		return ChangeDeleted
	case strings.HasPrefix(code, "R"):
		return ChangeRenamed
	default:
		return ChangeModified
	}
}
