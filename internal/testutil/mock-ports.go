package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"firmware-artifacts-service/internal/core/domain"
)

// MockCIProvider is a mock of CIProvider.
type MockCIProvider struct {
	mock.Mock
}

func (m *MockCIProvider) ListSuccessfulRuns(ctx context.Context, branch string) ([]domain.WorkflowRun, error) {
	args := m.Called(ctx, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkflowRun), args.Error(1)
}

func (m *MockCIProvider) ListRunArtifacts(ctx context.Context, runID int64) ([]domain.Artifact, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Artifact), args.Error(1)
}

// MockArchiveFetcher is a mock of ArchiveFetcher.
type MockArchiveFetcher struct {
	mock.Mock
}

func (m *MockArchiveFetcher) FetchArchive(ctx context.Context, artifactID int64) ([]byte, error) {
	args := m.Called(ctx, artifactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockUpstreamObserver is a mock of UpstreamObserver.
type MockUpstreamObserver struct {
	mock.Mock
}

func (m *MockUpstreamObserver) ObserveUpstream(service, operation string, statusCode int, d time.Duration) {
	m.Called(service, operation, statusCode, d)
}
