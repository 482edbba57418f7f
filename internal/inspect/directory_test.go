package inspect

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fs-inspect-server/internal/errors"
	"fs-inspect-server/internal/models"
)

func entryPaths(entries []models.FileEntry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths
}

func TestListDirectory(t *testing.T) {
	ins := newTestInspector(t)
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "hello")
	writeFile(t, dir, ".hidden", "secret")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "nested.txt", "deep")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "node_modules"), 0o755))
	writeFile(t, dir, "distance.txt", "name contains dist")

	t.Run("depth zero lists immediate children", func(t *testing.T) {
		result, errDetail := ins.ListDirectory(dir, 0)
		require.Nil(t, errDetail)
		assert.Equal(t, result.TotalCount, len(result.Entries))
		assert.ElementsMatch(t, []string{"a.txt", "sub"}, entryPaths(result.Entries))
	})

	t.Run("depth two reaches nested entries", func(t *testing.T) {
		result, errDetail := ins.ListDirectory(dir, 2)
		require.Nil(t, errDetail)
		assert.ElementsMatch(t,
			[]string{"a.txt", "sub", filepath.Join("sub", "nested.txt")},
			entryPaths(result.Entries))
	})

	t.Run("preorder traversal", func(t *testing.T) {
		result, errDetail := ins.ListDirectory(dir, 2)
		require.Nil(t, errDetail)
		paths := entryPaths(result.Entries)
		// sub's children come right after sub, before any later sibling.
		assert.Equal(t, []string{"a.txt", "sub", filepath.Join("sub", "nested.txt")}, paths)
	})

	t.Run("root itself is never included", func(t *testing.T) {
		result, errDetail := ins.ListDirectory(dir, 1)
		require.Nil(t, errDetail)
		assert.NotContains(t, entryPaths(result.Entries), ".")
		assert.NotContains(t, entryPaths(result.Entries), dir)
	})

	t.Run("entry metadata", func(t *testing.T) {
		result, errDetail := ins.ListDirectory(dir, 1)
		require.Nil(t, errDetail)
		for _, entry := range result.Entries {
			switch entry.Path {
			case "a.txt":
				assert.False(t, entry.IsDir)
				assert.Equal(t, int64(5), entry.Size)
				require.NotNil(t, entry.Modified)
				assert.Positive(t, *entry.Modified)
			case "sub":
				assert.True(t, entry.IsDir)
				assert.Zero(t, entry.Size)
			}
		}
	})

	t.Run("missing path", func(t *testing.T) {
		_, errDetail := ins.ListDirectory(filepath.Join(dir, "nope"), 0)
		require.NotNil(t, errDetail)
		assert.Equal(t, errors.KindPathNotFound, errDetail.Kind)
	})

	t.Run("file target is an invalid path", func(t *testing.T) {
		_, errDetail := ins.ListDirectory(filepath.Join(dir, "a.txt"), 0)
		require.NotNil(t, errDetail)
		assert.Equal(t, errors.KindInvalidPath, errDetail.Kind)
	})
}

func TestListDirectoryIgnoreFilter(t *testing.T) {
	ins := newTestInspector(t)
	dir := t.TempDir()
	for _, name := range []string{".git", "node_modules", "target", "dist", "build", "__pycache__", "venv"} {
		require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0o755))
	}
	keep := filepath.Join(dir, "keep")
	require.NoError(t, os.Mkdir(keep, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(keep, "build"), 0o755))
	writeFile(t, keep, "ok.txt", "x")

	t.Run("ignored names excluded at the top level", func(t *testing.T) {
		result, errDetail := ins.ListDirectory(dir, 1)
		require.Nil(t, errDetail)
		assert.Equal(t, []string{"keep"}, entryPaths(result.Entries))
	})

	t.Run("ignored names excluded at any depth", func(t *testing.T) {
		result, errDetail := ins.ListDirectory(dir, 3)
		require.Nil(t, errDetail)
		assert.ElementsMatch(t,
			[]string{"keep", filepath.Join("keep", "ok.txt")},
			entryPaths(result.Entries))
	})

	t.Run("substring match excludes", func(t *testing.T) {
		writeFile(t, dir, "distance.txt", "contains dist")
		result, errDetail := ins.ListDirectory(dir, 1)
		require.Nil(t, errDetail)
		assert.NotContains(t, entryPaths(result.Entries), "distance.txt")
	})
}

func TestListDirectoryAbortsOnTraversalError(t *testing.T) {
	fs := newMockAdapter()
	fs.addDir("/repo",
		dirEntry("locked"),
		fileEntry("ok.txt", 1),
	)
	fs.listErr["/repo/locked"] = fmt.Errorf("open /repo/locked: %w", os.ErrPermission)

	ins := newMockInspector(t, fs)
	_, errDetail := ins.ListDirectory("/repo", 2)
	require.NotNil(t, errDetail)
	assert.Equal(t, errors.KindPermissionDenied, errDetail.Kind)
}
