package ports

import (
	"context"

	"github.com/jugendhilfe/casework-system/internal/core/domain"
)

// ReportRepository defines persistence operations for reports. Update and
// Delete operate on a single record by id; the record is the unit of
// atomicity.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) (*domain.Report, error)
	FindByID(ctx context.Context, id string) (*domain.Report, error)
	// FindByClient returns all reports for the client, newest first.
	FindByClient(ctx context.Context, clientID string) ([]*domain.Report, error)
	Update(ctx context.Context, report *domain.Report) error
	Delete(ctx context.Context, id string) error
}
