package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension_RecursesAndFilters(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	nested := filepath.Join(dir, "runs", "predictor")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.hcl"), []byte("run"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "eval.hcl"), []byte("run"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "notes.txt"), []byte("x"), 0o600))

	// --- Act ---
	files, err := FindFilesByExtension(dir, ".hcl")

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Contains(t, files, filepath.Join(dir, "main.hcl"))
	require.Contains(t, files, filepath.Join(nested, "eval.hcl"))
}

func TestFindFilesByExtension_EmptyExtensionPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_, _ = FindFilesByExtension(t.TempDir(), "")
	})
}
