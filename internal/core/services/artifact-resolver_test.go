package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"firmware-artifacts-service/internal/core/domain"
	"firmware-artifacts-service/internal/testutil"
)

func TestArtifactResolverService_Resolve(t *testing.T) {
	ci := new(testutil.MockCIProvider)
	svc := NewArtifactResolverService(ci)

	artifacts := testutil.Artifacts(nil, 100, "esp32.bin", "esp32c3.bin", "esp32-ota.bin")
	ci.On("ListRunArtifacts", mock.Anything, int64(42)).Return(artifacts, nil)

	artifact, err := svc.Resolve(context.Background(), 42, "esp32c3.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(101), artifact.ID)
	assert.Equal(t, "esp32c3.bin", artifact.Name)
}

func TestArtifactResolverService_Resolve_FirstMatchWins(t *testing.T) {
	ci := new(testutil.MockCIProvider)
	svc := NewArtifactResolverService(ci)

	artifacts := testutil.Artifacts(nil, 1, "esp32.bin", "esp32.bin")
	ci.On("ListRunArtifacts", mock.Anything, int64(5)).Return(artifacts, nil)

	artifact, err := svc.Resolve(context.Background(), 5, "esp32.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(1), artifact.ID)
}

func TestArtifactResolverService_Resolve_ExactNameOnly(t *testing.T) {
	ci := new(testutil.MockCIProvider)
	svc := NewArtifactResolverService(ci)

	artifacts := testutil.Artifacts(nil, 1, "ESP32.bin", "esp32.bin.sha256", "esp32")
	ci.On("ListRunArtifacts", mock.Anything, int64(5)).Return(artifacts, nil)

	_, err := svc.Resolve(context.Background(), 5, "esp32.bin")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestArtifactResolverService_Resolve_InvalidRunID(t *testing.T) {
	ci := new(testutil.MockCIProvider)
	svc := NewArtifactResolverService(ci)

	_, err := svc.Resolve(context.Background(), 0, "esp32.bin")
	assert.ErrorIs(t, err, domain.ErrInvalidRunID)
	ci.AssertNotCalled(t, "ListRunArtifacts", mock.Anything, mock.Anything)
}
