package inbox

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seb.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ICA.CSV"), []byte("data!"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "ICA.CSV", files[0].Name)
	assert.Equal(t, int64(5), files[0].Size)
	assert.Equal(t, "seb.csv", files[1].Name)
	assert.Equal(t, filepath.Join(dir, "seb.csv"), files[1].Path)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ProcessedDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProcessedDir, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bank.csv"), []byte("data"), 0o644))

	dst, err := MarkProcessed(dir, "bank.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ProcessedDir, "bank.csv"), dst)

	// Source gone.
	_, err = os.Stat(filepath.Join(dir, "bank.csv"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	// Destination exists.
	_, err = os.Stat(dst)
	assert.NoError(t, err)
}

func TestMarkProcessed_DoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ProcessedDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProcessedDir, "a.csv"), []byte("old"), 0o644))

	_, err := MarkProcessed(dir, "a.csv")
	assert.ErrorIs(t, err, fs.ErrExist)

	data, err := os.ReadFile(filepath.Join(dir, ProcessedDir, "a.csv"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestMarkProcessed_RejectsPaths(t *testing.T) {
	_, err := MarkProcessed(t.TempDir(), "../escape.csv")
	assert.Error(t, err)
}
