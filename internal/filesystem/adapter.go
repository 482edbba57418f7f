package filesystem

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

// FileStats holds basic statistics about a file.
type FileStats struct {
	Size    int64
	IsDir   bool
	ModTime time.Time
}

// DirEntryInfo holds information about a single directory entry.
type DirEntryInfo struct {
	Name     string
	IsDir    bool
	IsHidden bool // name starts with "."
	ModTime  time.Time
	Size     int64
}

// FileSystemAdapter defines an interface for interacting with the file
// system. This allows for easier testing and potential future extensions
// (e.g., virtual file systems).
type FileSystemAdapter interface {
	ReadFileBytes(path string) ([]byte, error)
	PathExists(path string) (bool, error)
	Stat(path string) (*FileStats, error)
	ListDir(path string) ([]DirEntryInfo, error)
	IsValidUTF8(content []byte) bool
	NormalizeNewlines(content []byte) []byte // converts \r\n and \r to \n
	SplitLines(content []byte) []string      // uses normalized newlines
	JoinLines(lines []string) string         // joins with \n
}

// DefaultFileSystemAdapter is the standard implementation of
// FileSystemAdapter using the os package.
type DefaultFileSystemAdapter struct{}

// NewDefaultFileSystemAdapter creates a new DefaultFileSystemAdapter.
func NewDefaultFileSystemAdapter() *DefaultFileSystemAdapter {
	return &DefaultFileSystemAdapter{}
}

// ReadFileBytes reads the entire file into a byte slice.
func (fs *DefaultFileSystemAdapter) ReadFileBytes(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return content, nil
}

// PathExists checks whether a path exists.
func (fs *DefaultFileSystemAdapter) PathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("error checking path %s: %w", path, err)
}

// Stat retrieves statistics for a given path.
func (fs *DefaultFileSystemAdapter) Stat(path string) (*FileStats, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return &FileStats{
		Size:    info.Size(),
		IsDir:   info.IsDir(),
		ModTime: info.ModTime(),
	}, nil
}

// ListDir lists the immediate contents of a directory. "." and ".." are
// never included.
func (fs *DefaultFileSystemAdapter) ListDir(path string) ([]DirEntryInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	infos := make([]DirEntryInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			// The entry may have been removed between ReadDir and
			// Info. Partial listings are misleading, so surface it.
			return nil, fmt.Errorf("failed to stat entry %s in %s: %w", entry.Name(), path, err)
		}
		infos = append(infos, DirEntryInfo{
			Name:     info.Name(),
			IsDir:    info.IsDir(),
			IsHidden: strings.HasPrefix(info.Name(), "."),
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
	}
	return infos, nil
}

// IsValidUTF8 checks whether the byte slice is valid UTF-8.
func (fs *DefaultFileSystemAdapter) IsValidUTF8(content []byte) bool {
	return utf8.Valid(content)
}

// NormalizeNewlines converts all newline variations (\r\n and \r) to \n.
func (fs *DefaultFileSystemAdapter) NormalizeNewlines(content []byte) []byte {
	if len(content) == 0 {
		return []byte{}
	}
	normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(normalized, []byte("\r"), []byte("\n"))
}

// SplitLines splits the content on \n after normalizing newlines. A
// trailing newline does not produce a final empty line, so "a\n" is one
// line and an empty file is zero lines.
func (fs *DefaultFileSystemAdapter) SplitLines(content []byte) []string {
	if len(content) == 0 {
		return []string{}
	}
	sContent := string(fs.NormalizeNewlines(content))
	lines := strings.Split(sContent, "\n")
	if strings.HasSuffix(sContent, "\n") {
		if sContent == "\n" {
			// A file holding only a newline is a single empty line.
			return []string{""}
		}
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines joins lines with a single \n separator and no trailing newline.
func (fs *DefaultFileSystemAdapter) JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// Ensure DefaultFileSystemAdapter implements FileSystemAdapter.
var _ FileSystemAdapter = (*DefaultFileSystemAdapter)(nil)
