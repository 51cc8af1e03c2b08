package organizer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFile_PreservesContentAndMetadata(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "nist_policy.pdf")
	dest := filepath.Join(dir, "copy.pdf")

	require.NoError(t, os.WriteFile(src, []byte("policy body"), 0o600))
	modTime := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, modTime, modTime))

	require.NoError(t, copyFile(src, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "policy body", string(data))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(modTime))

	// Source untouched.
	_, err = os.Stat(src)
	assert.NoError(t, err)
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := copyFile(filepath.Join(dir, "missing.pdf"), filepath.Join(dir, "out.pdf"))
	require.Error(t, err)
}

func TestCopyFile_RejectsNonRegularSource(t *testing.T) {
	dir := t.TempDir()
	err := copyFile(dir, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a regular file")
}

func TestFanoutCopy_OnePerFramework(t *testing.T) {
	dir := t.TempDir()
	destRoot := filepath.Join(dir, "frameworks")
	src := filepath.Join(dir, "iso_and_nist.docx")
	require.NoError(t, os.WriteFile(src, []byte("doc"), 0o644))

	outcomes := fanoutCopy(destRoot, src, []string{"ISO", "NIST"})
	require.Len(t, outcomes, 2)

	for i, fw := range []string{"ISO", "NIST"} {
		assert.Equal(t, fw, outcomes[i].Framework)
		assert.NoError(t, outcomes[i].Err)
		assert.Equal(t, filepath.Join(destRoot, fw, "iso_and_nist.docx"), outcomes[i].Dest)

		data, err := os.ReadFile(outcomes[i].Dest)
		require.NoError(t, err)
		assert.Equal(t, "doc", string(data))
	}
}

func TestFanoutCopy_RerunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	destRoot := filepath.Join(dir, "frameworks")
	src := filepath.Join(dir, "glba.txt")
	require.NoError(t, os.WriteFile(src, []byte("v1"), 0o644))

	first := fanoutCopy(destRoot, src, []string{"GLBA"})
	require.NoError(t, first[0].Err)
	second := fanoutCopy(destRoot, src, []string{"GLBA"})
	require.NoError(t, second[0].Err)

	data, err := os.ReadFile(second[0].Dest)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))
}

func TestFanoutCopy_OneFailureDoesNotStopOthers(t *testing.T) {
	dir := t.TempDir()
	destRoot := filepath.Join(dir, "frameworks")
	src := filepath.Join(dir, "multi.pdf")
	require.NoError(t, os.WriteFile(src, []byte("doc"), 0o644))

	// Block the first framework's directory by pre-creating it as a file.
	require.NoError(t, os.MkdirAll(destRoot, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(destRoot, "BAD"), []byte("in the way"), 0o644))

	outcomes := fanoutCopy(destRoot, src, []string{"BAD", "GOOD"})
	require.Len(t, outcomes, 2)

	assert.Error(t, outcomes[0].Err)
	assert.NoError(t, outcomes[1].Err)

	data, err := os.ReadFile(filepath.Join(destRoot, "GOOD", "multi.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "doc", string(data))
}
