package handlers

import (
	"net/http"
	"regexp"

	"firmware-artifacts-service/internal/adapters/primary/http/dto"
	"firmware-artifacts-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

var manifestPattern = regexp.MustCompile(`^([^.]+)\.json$`)

// GetManifest serves the web flasher manifest for a run. Any pretty query
// parameter indents the body.
func (h *Handler) GetManifest(c *gin.Context) {
	m := manifestPattern.FindStringSubmatch(c.Param("manifest"))
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	runID, err := parseID(m[1], domain.ErrInvalidRunID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	manifest, err := h.manifestSvc.Build(c.Request.Context(), runID, c.Query("flavor"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	resp := dto.ToManifestResponse(manifest)
	if _, pretty := c.GetQuery("pretty"); pretty {
		c.IndentedJSON(http.StatusOK, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
