// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"sift/internal/core/domain"
)

// ChangeDetector enumerates locally modified files.
//
//go:generate mockgen -source=detector.go -destination=mocks/mock_detector.go -package=mocks
type ChangeDetector interface {
	// Detect returns the changed files in status order. A failing status
	// query degrades to an empty list; it never surfaces an error.
	Detect(ctx context.Context) []domain.ChangeRecord
}
