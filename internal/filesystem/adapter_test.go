package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdapter() *DefaultFileSystemAdapter {
	return NewDefaultFileSystemAdapter()
}

func TestReadFileBytes(t *testing.T) {
	fs := newAdapter()
	dir := t.TempDir()

	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	content, err := fs.ReadFileBytes(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), content)

	_, err = fs.ReadFileBytes(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestPathExists(t *testing.T) {
	fs := newAdapter()
	dir := t.TempDir()

	exists, err := fs.PathExists(dir)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = fs.PathExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStat(t *testing.T) {
	fs := newAdapter()
	dir := t.TempDir()

	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o644))

	stats, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Size)
	assert.False(t, stats.IsDir)
	assert.False(t, stats.ModTime.IsZero())

	stats, err = fs.Stat(dir)
	require.NoError(t, err)
	assert.True(t, stats.IsDir)

	_, err = fs.Stat(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestListDir(t *testing.T) {
	fs := newAdapter()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("h"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	infos, err := fs.ListDir(dir)
	require.NoError(t, err)
	require.Len(t, infos, 3)

	byName := make(map[string]DirEntryInfo, len(infos))
	for _, info := range infos {
		byName[info.Name] = info
	}

	assert.False(t, byName["a.txt"].IsDir)
	assert.False(t, byName["a.txt"].IsHidden)
	assert.Equal(t, int64(1), byName["a.txt"].Size)
	assert.True(t, byName[".hidden"].IsHidden)
	assert.True(t, byName["sub"].IsDir)

	_, err = fs.ListDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestIsValidUTF8(t *testing.T) {
	fs := newAdapter()
	assert.True(t, fs.IsValidUTF8([]byte("héllo wörld")))
	assert.True(t, fs.IsValidUTF8(nil))
	assert.False(t, fs.IsValidUTF8([]byte{0xff, 0xfe, 0x00}))
}

func TestNormalizeNewlines(t *testing.T) {
	fs := newAdapter()
	assert.Equal(t, []byte("a\nb\nc"), fs.NormalizeNewlines([]byte("a\r\nb\rc")))
	assert.Equal(t, []byte{}, fs.NormalizeNewlines(nil))
}

func TestSplitLines(t *testing.T) {
	fs := newAdapter()

	cases := []struct {
		name    string
		content string
		want    []string
	}{
		{"plain lines", "a\nb\nc", []string{"a", "b", "c"}},
		{"trailing newline drops no line", "a\nb\n", []string{"a", "b"}},
		{"empty content is zero lines", "", []string{}},
		{"lone newline is one empty line", "\n", []string{""}},
		{"crlf normalized", "a\r\nb\r\n", []string{"a", "b"}},
		{"bare cr normalized", "a\rb", []string{"a", "b"}},
		{"interior blank lines kept", "a\n\nb", []string{"a", "", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, fs.SplitLines([]byte(tc.content)))
		})
	}
}

func TestJoinLines(t *testing.T) {
	fs := newAdapter()
	assert.Equal(t, "a\nb", fs.JoinLines([]string{"a", "b"}))
	assert.Equal(t, "", fs.JoinLines(nil))
	assert.Equal(t, "only", fs.JoinLines([]string{"only"}))
}
