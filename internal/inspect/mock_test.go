package inspect

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fs-inspect-server/internal/config"
	"fs-inspect-server/internal/filesystem"
)

// newTestInspector builds an Inspector over the real filesystem with no
// root confinement, so tests can pass absolute t.TempDir paths.
func newTestInspector(t *testing.T) *Inspector {
	t.Helper()
	cfg := &config.Config{MaxFileSizeMB: 10, LockTimeoutSec: 1}
	ins, err := New(filesystem.NewDefaultFileSystemAdapter(), nil, cfg)
	require.NoError(t, err)
	return ins
}

// mockAdapter is an in-memory FileSystemAdapter with per-path fault
// injection, for the failure modes that are awkward to provoke on a real
// filesystem.
type mockAdapter struct {
	filesystem.DefaultFileSystemAdapter // line helpers are pure, reuse them

	files   map[string]string
	dirs    map[string][]filesystem.DirEntryInfo
	readErr map[string]error
	listErr map[string]error
	statErr map[string]error
}

func newMockAdapter() *mockAdapter {
	return &mockAdapter{
		files:   make(map[string]string),
		dirs:    make(map[string][]filesystem.DirEntryInfo),
		readErr: make(map[string]error),
		listErr: make(map[string]error),
		statErr: make(map[string]error),
	}
}

func (m *mockAdapter) addFile(path, content string) {
	m.files[path] = content
}

func (m *mockAdapter) addDir(path string, entries ...filesystem.DirEntryInfo) {
	m.dirs[path] = entries
}

func fileEntry(name string, size int64) filesystem.DirEntryInfo {
	return filesystem.DirEntryInfo{Name: name, Size: size, ModTime: time.Unix(1700000000, 0)}
}

func dirEntry(name string) filesystem.DirEntryInfo {
	return filesystem.DirEntryInfo{Name: name, IsDir: true, ModTime: time.Unix(1700000000, 0)}
}

func (m *mockAdapter) ReadFileBytes(path string) ([]byte, error) {
	if err, ok := m.readErr[path]; ok {
		return nil, err
	}
	content, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", path, os.ErrNotExist)
	}
	return []byte(content), nil
}

func (m *mockAdapter) PathExists(path string) (bool, error) {
	_, isFile := m.files[path]
	_, isDir := m.dirs[path]
	return isFile || isDir, nil
}

func (m *mockAdapter) Stat(path string) (*filesystem.FileStats, error) {
	if err, ok := m.statErr[path]; ok {
		return nil, err
	}
	if content, ok := m.files[path]; ok {
		return &filesystem.FileStats{Size: int64(len(content))}, nil
	}
	if _, ok := m.dirs[path]; ok {
		return &filesystem.FileStats{IsDir: true}, nil
	}
	return nil, fmt.Errorf("stat %s: %w", path, os.ErrNotExist)
}

func (m *mockAdapter) ListDir(path string) ([]filesystem.DirEntryInfo, error) {
	if err, ok := m.listErr[path]; ok {
		return nil, err
	}
	entries, ok := m.dirs[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return entries, nil
}

var _ filesystem.FileSystemAdapter = (*mockAdapter)(nil)

// newMockInspector builds an Inspector over a mock adapter.
func newMockInspector(t *testing.T, fs filesystem.FileSystemAdapter) *Inspector {
	t.Helper()
	cfg := &config.Config{MaxFileSizeMB: 10, LockTimeoutSec: 1}
	ins, err := New(fs, nil, cfg)
	require.NoError(t, err)
	return ins
}
