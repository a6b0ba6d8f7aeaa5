package services

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
	log "github.com/sirupsen/logrus"

	"firmware-artifacts-service/internal/core/domain"
	output "firmware-artifacts-service/internal/core/ports/output"
)

// Asset is a single file extracted from an artifact archive.
type Asset struct {
	Name string
	Data []byte
}

type AssetProxyService struct {
	fetcher  output.ArchiveFetcher
	maxBytes int64
}

// NewAssetProxyService caps each extracted file at maxBytes. A non-positive
// maxBytes disables the cap.
func NewAssetProxyService(fetcher output.ArchiveFetcher, maxBytes int64) *AssetProxyService {
	return &AssetProxyService{fetcher: fetcher, maxBytes: maxBytes}
}

// Fetch downloads the artifact archive and returns the first file in it.
// Archives are expected to hold exactly one file; extra entries are ignored.
func (s *AssetProxyService) Fetch(ctx context.Context, artifactID int64) (*Asset, error) {
	if artifactID <= 0 {
		return nil, domain.ErrInvalidArtifactID
	}

	archive, err := s.fetcher.FetchArchive(ctx, artifactID)
	if err != nil {
		return nil, fmt.Errorf("fetch artifact %d: %w", artifactID, err)
	}

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("artifact %d: open archive: %w: %v", artifactID, domain.ErrUpstreamUnavailable, err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		data, err := s.readFile(f)
		if err != nil {
			return nil, fmt.Errorf("artifact %d: %w", artifactID, err)
		}

		log.WithFields(log.Fields{
			"artifact_id": artifactID,
			"file":        f.Name,
			"bytes":       len(data),
		}).Debug("extracted artifact file")

		return &Asset{Name: f.Name, Data: data}, nil
	}

	return nil, fmt.Errorf("artifact %d: %w", artifactID, domain.ErrEmptyArchive)
}

func (s *AssetProxyService) readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %v", f.Name, domain.ErrUpstreamUnavailable, err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if s.maxBytes > 0 {
		r = io.LimitReader(rc, s.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %v", f.Name, domain.ErrUpstreamUnavailable, err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%s: %w", f.Name, domain.ErrArchiveTooLarge)
	}
	return data, nil
}
