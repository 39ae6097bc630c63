package ports

import (
	"context"

	"github.com/aretw0/storypath/pkg/domain"
)

// ReportStore defines the interface for persisting search reports.
type ReportStore interface {
	// Save persists a report under its ID.
	Save(ctx context.Context, report *domain.Report) error

	// Load retrieves a report by ID.
	// Returns domain.ErrReportNotFound if the report does not exist.
	Load(ctx context.Context, id string) (*domain.Report, error)

	// Delete removes a report. Deleting a missing report is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored reports, newest first.
	List(ctx context.Context) ([]string, error)
}
