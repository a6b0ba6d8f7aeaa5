package handlers

import (
	"errors"
	"net/http"

	"firmware-artifacts-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func mapDomainError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	// Not found errors
	case errors.Is(err, domain.ErrRunNotFound),
		errors.Is(err, domain.ErrArtifactNotFound),
		errors.Is(err, domain.ErrWorkflowRunNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidRunID),
		errors.Is(err, domain.ErrInvalidArtifactID),
		errors.Is(err, domain.ErrInvalidBranch),
		errors.Is(err, domain.ErrInvalidBinaryName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Upstream errors
	case errors.Is(err, domain.ErrUpstreamTimeout):
		log.WithError(err).Warn("upstream timed out")
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrUpstreamUnavailable),
		errors.Is(err, domain.ErrEmptyArchive),
		errors.Is(err, domain.ErrArchiveTooLarge):
		log.WithError(err).Warn("upstream failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

	default:
		log.WithError(err).Error("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
