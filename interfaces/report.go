package interfaces

import (
	"context"
)

type ReportRequest struct {
	Domain       string
	IndexPattern string
	// RecordWindowDays bounds the record fetch; TotalWindowDays bounds
	// the independent total-count aggregation. They are configured
	// separately and are not required to match.
	RecordWindowDays  int
	TotalWindowDays   int
	IncludeTotalCount bool
}

type ReportResult struct {
	Domain      string
	OutputPath  string
	RecordCount int
	// ArchiveKey is set when the finished report was uploaded to the
	// archive bucket.
	ArchiveKey string
}

type ReportService interface {
	GenerateDomainReport(ctx context.Context, request ReportRequest) (*ReportResult, error)
}
