package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"firmware-artifacts-service/internal/core/domain"
	output "firmware-artifacts-service/internal/core/ports/output"
)

type ManifestService struct {
	ci      output.CIProvider
	product string
}

func NewManifestService(ci output.CIProvider, product string) *ManifestService {
	return &ManifestService{ci: ci, product: product}
}

// Build assembles the install manifest for a run. flavor selects a variant
// build, falling back to the plain binaries when no flavored one exists.
func (s *ManifestService) Build(ctx context.Context, runID int64, flavor string) (*domain.Manifest, error) {
	if runID <= 0 {
		return nil, domain.ErrInvalidRunID
	}

	artifacts, err := s.ci.ListRunArtifacts(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("list artifacts for run %d: %w", runID, err)
	}
	if len(artifacts) == 0 || artifacts[0].WorkflowRun == nil {
		return nil, fmt.Errorf("%w: run %d", domain.ErrWorkflowRunNotFound, runID)
	}

	manifest := &domain.Manifest{
		Name:                  s.manifestName(artifacts[0].WorkflowRun.HeadBranch, flavor),
		NewInstallPromptErase: true,
		Builds:                []domain.Build{},
	}

	selections := []struct {
		chip  domain.ChipFamily
		names []string
	}{
		{domain.ChipESP32, esp32Candidates(flavor)},
		{domain.ChipESP32C3, esp32c3Candidates(flavor)},
	}

	for _, sel := range selections {
		artifact, ok := domain.FindFirstArtifact(artifacts, sel.names...)
		if !ok {
			continue
		}
		build, err := domain.NewBuild(sel.chip, domain.AssetPath(artifact))
		if err != nil {
			return nil, err
		}
		manifest.Builds = append(manifest.Builds, build)
	}

	log.WithFields(log.Fields{
		"run_id": runID,
		"flavor": flavor,
		"builds": len(manifest.Builds),
	}).Debug("built manifest")

	return manifest, nil
}

func (s *ManifestService) manifestName(branch, flavor string) string {
	name := fmt.Sprintf("%s %s branch", s.product, branch)
	if flavor != "" {
		name += fmt.Sprintf(" (%s)", flavor)
	}
	return name
}

func esp32Candidates(flavor string) []string {
	if flavor == "" {
		return []string{"esp32.bin"}
	}
	return []string{"esp32-" + flavor + ".bin", flavor + ".bin", "esp32.bin"}
}

func esp32c3Candidates(flavor string) []string {
	if flavor == "" {
		return []string{"esp32c3.bin"}
	}
	return []string{"esp32c3-" + flavor + ".bin", "esp32c3.bin"}
}
