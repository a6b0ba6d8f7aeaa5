package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"firmware-artifacts-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

// RedirectLatest sends the client to the run-scoped download of bin for the
// newest successful run on branch.
func (h *Handler) RedirectLatest(c *gin.Context) {
	branch := c.Param("branch")
	bin := c.Param("bin")

	target, err := h.runSvc.ResolveLatest(c.Request.Context(), branch, bin)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s/download/runs/%d/%s/%s",
		h.basePath, target.RunID, url.PathEscape(target.ShortSHA), url.PathEscape(target.Binary)))
}

// RedirectRunArtifact sends the client to the artifact download. The sha
// segment only makes the URL unique per commit and is not used in the lookup.
func (h *Handler) RedirectRunArtifact(c *gin.Context) {
	runID, err := parseID(c.Param("run_id"), domain.ErrInvalidRunID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	artifact, err := h.artifactSvc.Resolve(c.Request.Context(), runID, c.Param("bin"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s/download/%d/%s",
		h.basePath, artifact.ID, url.PathEscape(artifact.Name)))
}

// DownloadAsset streams the unzipped artifact back as raw bytes.
func (h *Handler) DownloadAsset(c *gin.Context) {
	artifactID, err := parseID(c.Param("artifact_id"), domain.ErrInvalidArtifactID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	asset, err := h.assetSvc.Fetch(c.Request.Context(), artifactID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", asset.Data)
}

func parseID(raw string, invalid error) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", invalid, raw)
	}
	return id, nil
}
