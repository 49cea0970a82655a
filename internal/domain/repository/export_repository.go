package repository

import (
	"context"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
)

// ExportRepository renders report requests into documents and persists them.
type ExportRepository interface {
	// Render builds the document for req in the given format. Rendering problems inside
	// the document (bad cells, table failures) are contained by the renderer; an error is
	// only returned when no document could be produced at all.
	Render(ctx context.Context, format entity.Format, req entity.ReportRequest) (entity.RenderedReport, error)

	// SaveToFile writes the report under outputDir using a timestamped name derived from
	// baseName and returns the absolute path.
	SaveToFile(report entity.RenderedReport, baseName string, outputDir string) (string, error)

	// Formats lists the supported output formats.
	Formats() []entity.Format
}
