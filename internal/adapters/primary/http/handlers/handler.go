package handlers

import (
	"firmware-artifacts-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	runSvc      *services.RunResolverService
	artifactSvc *services.ArtifactResolverService
	assetSvc    *services.AssetProxyService
	manifestSvc *services.ManifestService
	basePath    string
}

// New wires the handlers. basePath is the prefix the routes are mounted
// under and is used to build redirect targets.
func New(
	runSvc *services.RunResolverService,
	artifactSvc *services.ArtifactResolverService,
	assetSvc *services.AssetProxyService,
	manifestSvc *services.ManifestService,
	basePath string,
) *Handler {
	return &Handler{
		runSvc:      runSvc,
		artifactSvc: artifactSvc,
		assetSvc:    assetSvc,
		manifestSvc: manifestSvc,
		basePath:    basePath,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Redirect chain: branch -> run -> artifact
	r.Any("/latest/download/:branch/:bin", h.RedirectLatest)
	r.Any("/download/runs/:run_id/:sha/:bin", h.RedirectRunArtifact)

	// Artifact bytes, trailing segment kept for the file extension
	r.GET("/download/:artifact_id/*name", h.DownloadAsset)
	r.HEAD("/download/:artifact_id/*name", h.DownloadAsset)

	// Install manifest: /<run_id>.json
	r.GET("/:manifest", h.GetManifest)
	r.HEAD("/:manifest", h.GetManifest)
}
