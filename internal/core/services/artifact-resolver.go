package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"firmware-artifacts-service/internal/core/domain"
	output "firmware-artifacts-service/internal/core/ports/output"
)

type ArtifactResolverService struct {
	ci output.CIProvider
}

func NewArtifactResolverService(ci output.CIProvider) *ArtifactResolverService {
	return &ArtifactResolverService{ci: ci}
}

// Resolve looks up the artifact named bin in a run. Names match exactly.
func (s *ArtifactResolverService) Resolve(ctx context.Context, runID int64, bin string) (*domain.Artifact, error) {
	if runID <= 0 {
		return nil, domain.ErrInvalidRunID
	}
	if bin == "" {
		return nil, domain.ErrInvalidBinaryName
	}

	artifacts, err := s.ci.ListRunArtifacts(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("list artifacts for run %d: %w", runID, err)
	}

	artifact, ok := domain.FindArtifact(artifacts, bin)
	if !ok {
		return nil, fmt.Errorf("%w: %s in run %d", domain.ErrArtifactNotFound, bin, runID)
	}

	log.WithFields(log.Fields{
		"run_id":      runID,
		"bin":         bin,
		"artifact_id": artifact.ID,
	}).Debug("resolved artifact")

	return artifact, nil
}
