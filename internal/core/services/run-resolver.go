package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"firmware-artifacts-service/internal/core/domain"
	output "firmware-artifacts-service/internal/core/ports/output"
)

// RunTarget identifies a binary within a specific run.
type RunTarget struct {
	RunID    int64
	ShortSHA string
	Binary   string
}

type RunResolverService struct {
	ci output.CIProvider
}

func NewRunResolverService(ci output.CIProvider) *RunResolverService {
	return &RunResolverService{ci: ci}
}

// ResolveLatest finds the newest successful run on branch.
func (s *RunResolverService) ResolveLatest(ctx context.Context, branch, bin string) (*RunTarget, error) {
	if branch == "" {
		return nil, domain.ErrInvalidBranch
	}
	if bin == "" {
		return nil, domain.ErrInvalidBinaryName
	}

	runs, err := s.ci.ListSuccessfulRuns(ctx, branch)
	if err != nil {
		return nil, fmt.Errorf("list runs for branch %q: %w", branch, err)
	}

	run, ok := domain.LatestRun(runs)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRunNotFound, branch)
	}

	log.WithFields(log.Fields{
		"branch": branch,
		"bin":    bin,
		"run_id": run.ID,
	}).Debug("resolved latest run")

	return &RunTarget{
		RunID:    run.ID,
		ShortSHA: domain.ShortSHA(run.HeadSHA),
		Binary:   bin,
	}, nil
}
