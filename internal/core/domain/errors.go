package domain

import (
	"errors"
	"fmt"
)

// ============================================================================
// Lookup Errors
// ============================================================================

var (
	ErrRunNotFound         = errors.New("no successful workflow run found for branch")
	ErrArtifactNotFound    = errors.New("artifact not found")
	ErrWorkflowRunNotFound = errors.New("no workflow run found")
)

// ============================================================================
// Validation Errors
// ============================================================================

var (
	ErrInvalidRunID      = errors.New("run id must be a positive integer")
	ErrInvalidArtifactID = errors.New("artifact id must be a positive integer")
	ErrInvalidBranch     = errors.New("branch is required")
	ErrInvalidBinaryName = errors.New("binary name is required")
	ErrUnknownChipFamily = errors.New("unknown chip family")
)

// ============================================================================
// Upstream Errors
// ============================================================================

var (
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamTimeout     = errors.New("upstream timeout")
	ErrEmptyArchive        = errors.New("artifact archive contains no files")
	ErrArchiveTooLarge     = errors.New("artifact archive exceeds size limit")
)

// UpstreamError reports a non-success status from an upstream service.
type UpstreamError struct {
	Service    string
	Resource   string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s status code %d", e.Service, e.Resource, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstreamUnavailable
}
