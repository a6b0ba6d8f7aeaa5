package dto

import "firmware-artifacts-service/internal/core/domain"

// ============================================================================
// Response DTOs
// ============================================================================

// ManifestResponse is the install manifest served to the web flasher
type ManifestResponse struct {
	Name                  string          `json:"name"`
	NewInstallPromptErase bool            `json:"new_install_prompt_erase"`
	Builds                []BuildResponse `json:"builds"`
}

// BuildResponse lists the flash images for one chip family
type BuildResponse struct {
	ChipFamily string         `json:"chipFamily"`
	Parts      []PartResponse `json:"parts"`
}

// PartResponse is a single image and its flash offset
type PartResponse struct {
	Path   string `json:"path"`
	Offset int    `json:"offset"`
}

// ============================================================================
// Mappers
// ============================================================================

func ToManifestResponse(m *domain.Manifest) ManifestResponse {
	builds := make([]BuildResponse, 0, len(m.Builds))
	for _, b := range m.Builds {
		parts := make([]PartResponse, 0, len(b.Parts))
		for _, p := range b.Parts {
			parts = append(parts, PartResponse{Path: p.Path, Offset: p.Offset})
		}
		builds = append(builds, BuildResponse{
			ChipFamily: string(b.ChipFamily),
			Parts:      parts,
		})
	}

	return ManifestResponse{
		Name:                  m.Name,
		NewInstallPromptErase: m.NewInstallPromptErase,
		Builds:                builds,
	}
}
