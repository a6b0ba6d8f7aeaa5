package ports

import (
	"context"

	"firmware-artifacts-service/internal/core/domain"
)

// CIProvider defines the contract for reading workflow runs and their artifacts
type CIProvider interface {
	// ListSuccessfulRuns returns successful runs of the build workflow on branch,
	// in the provider's own order.
	ListSuccessfulRuns(ctx context.Context, branch string) ([]domain.WorkflowRun, error)

	// ListRunArtifacts returns the artifacts uploaded by a run.
	ListRunArtifacts(ctx context.Context, runID int64) ([]domain.Artifact, error)
}
