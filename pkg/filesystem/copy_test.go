package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyNoClobber(t *testing.T) {
	t.Run("copies_new_file", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "libtiff.6.dylib")
		dst := filepath.Join(dir, "out", "libtiff.6.dylib")
		require.NoError(t, os.WriteFile(src, []byte("tiff"), 0755))
		require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0755))

		created, err := CopyNoClobber(NewOS(), src, dst)
		require.NoError(t, err)
		assert.True(t, created)

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "tiff", string(data))

		entries, err := os.ReadDir(filepath.Dir(dst))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary file must be cleaned up")
	})

	t.Run("never_overwrites", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "new")
		dst := filepath.Join(dir, "existing")
		require.NoError(t, os.WriteFile(src, []byte("new"), 0644))
		require.NoError(t, os.WriteFile(dst, []byte("old"), 0644))

		created, err := CopyNoClobber(NewOS(), src, dst)
		require.NoError(t, err)
		assert.False(t, created)

		data, _ := os.ReadFile(dst)
		assert.Equal(t, "old", string(data))
	})

	t.Run("missing_source", func(t *testing.T) {
		dir := t.TempDir()
		_, err := CopyNoClobber(NewOS(), filepath.Join(dir, "gone"), filepath.Join(dir, "dst"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("rejects_directory_source", func(t *testing.T) {
		dir := t.TempDir()
		_, err := CopyNoClobber(NewOS(), dir, filepath.Join(dir, "dst"))
		assert.Error(t, err)
	})
}

func TestNewOS(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "target")
	link := filepath.Join(tmpDir, "link")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))

	require.NoError(t, fs.Symlink("target", link))
	dest, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, "target", dest)

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	require.NoError(t, fs.MkdirAll(filepath.Join(tmpDir, "a", "b"), 0755))
	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	require.NoError(t, fs.Remove(link))
	_, err = fs.Lstat(link)
	assert.True(t, os.IsNotExist(err))
}
