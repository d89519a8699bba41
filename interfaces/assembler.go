package interfaces

import (
	"context"

	"github.com/neozeit/dmarcscope/internal/models"
)

type ReportAssembler interface {
	// WriteReport lays out the document and writes it to the assembler's
	// output directory, returning the full path. Reruns for the same
	// domain overwrite the previous report.
	WriteReport(ctx context.Context, document models.ReportDocument) (string, error)
}
