package testutil

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"

	"firmware-artifacts-service/internal/core/domain"
)

// ZipEntry is one file written by BuildZip. A name ending in "/" is a directory.
type ZipEntry struct {
	Name string
	Data []byte
}

// BuildZip writes entries into an in-memory zip archive, in order.
func BuildZip(t *testing.T, entries ...ZipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		require.NoError(t, err)
		if len(e.Data) > 0 {
			_, err = w.Write(e.Data)
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// Artifacts builds artifact records for run, numbering ids from firstID.
func Artifacts(run *domain.WorkflowRunRef, firstID int64, names ...string) []domain.Artifact {
	out := make([]domain.Artifact, 0, len(names))
	for i, name := range names {
		out = append(out, domain.Artifact{
			ID:          firstID + int64(i),
			Name:        name,
			WorkflowRun: run,
		})
	}
	return out
}
