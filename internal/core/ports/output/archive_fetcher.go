package ports

import "context"

// ArchiveFetcher downloads an artifact as a zip archive
type ArchiveFetcher interface {
	FetchArchive(ctx context.Context, artifactID int64) ([]byte, error)
}
