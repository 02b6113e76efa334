package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNestedDirectory(t *testing.T) {
	tmp := t.TempDir()

	got, err := EnsureDir(filepath.Join(tmp, "downloads", "papers"))
	require.NoError(t, err)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "d")
	_, err := EnsureDir(dir)
	require.NoError(t, err)
	_, err = EnsureDir(dir)
	require.NoError(t, err)
}

func TestWriteUnique_AddsSuffixOnCollision(t *testing.T) {
	dir := t.TempDir()

	first, err := WriteUnique(dir, "paper.pdf", []byte("one"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "paper.pdf"), first)

	second, err := WriteUnique(dir, "paper.pdf", []byte("two"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "paper (1).pdf"), second)

	b, err := os.ReadFile(second)
	require.NoError(t, err)
	require.Equal(t, "two", string(b))
}

func TestWriteUnique_StripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()

	got, err := WriteUnique(dir, "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "passwd"), got)
}

func TestWriteUnique_EmptyNameFallsBack(t *testing.T) {
	dir := t.TempDir()

	got, err := WriteUnique(dir, "", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "file"), got)
}
