package interfaces

import "context"

type ArchiveService interface {
	// ArchiveReport uploads a finished report and returns its object key.
	ArchiveReport(ctx context.Context, filename string, data []byte) (string, error)
	ListReports(ctx context.Context) ([]string, error)
	FetchReport(ctx context.Context, key string) ([]byte, error)
	DeleteReport(ctx context.Context, key string) error
}
