package repository

import (
	"context"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
)

// ArchiveRepository keeps a copy of every downloaded report.
type ArchiveRepository interface {
	// Store uploads the report and returns the location it was written to.
	Store(ctx context.Context, report entity.RenderedReport) (string, error)
	// Identity returns the account that owns the archive, used as a startup check.
	Identity(ctx context.Context) (string, error)
}
