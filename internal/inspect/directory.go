package inspect

import (
	"fmt"
	"path/filepath"
	"strings"

	"fs-inspect-server/internal/errors"
	"fs-inspect-server/internal/filesystem"
	"fs-inspect-server/internal/models"
)

// DefaultIgnorePatterns lists conventional names excluded from directory
// listings: version control, dependency caches and build outputs. An entry
// is excluded when its name contains any of these substrings.
var DefaultIgnorePatterns = []string{
	".git",
	"node_modules",
	"__pycache__",
	".venv",
	"venv",
	"target",
	"dist",
	"build",
}

// ListDirectory enumerates descendants of the directory at path up to the
// requested depth, in pre-order depth-first traversal order. A depth of 0
// is treated as 1: immediate children only. The root itself, hidden names
// (leading dot) and names matching DefaultIgnorePatterns are excluded;
// excluded directories are not descended into. Unlike Search, a traversal
// failure aborts the whole listing.
func (ins *Inspector) ListDirectory(path string, depth uint) (*models.DirectoryResult, *errors.Error) {
	resolved, errDetail := ins.resolvePath(path)
	if errDetail != nil {
		return nil, errDetail
	}

	stats, err := ins.fs.Stat(resolved)
	if err != nil {
		return nil, errors.FromOSError(path, err)
	}
	if !stats.IsDir {
		return nil, errors.NewInvalidPath(path, fmt.Sprintf("%s is not a directory", path))
	}

	maxDepth := int(depth)
	if maxDepth == 0 {
		maxDepth = 1
	}

	entries := []models.FileEntry{}
	if errDetail := ins.listInto(resolved, "", 1, maxDepth, &entries); errDetail != nil {
		return nil, errDetail
	}

	return &models.DirectoryResult{
		Entries:    entries,
		TotalCount: len(entries),
	}, nil
}

// listInto appends the surviving entries of one directory level and recurses
// into subdirectories while level < maxDepth. rel is the path of dir
// relative to the listed root ("" for the root itself).
func (ins *Inspector) listInto(root, rel string, level, maxDepth int, out *[]models.FileEntry) *errors.Error {
	dir := filepath.Join(root, rel)
	children, err := ins.fs.ListDir(dir)
	if err != nil {
		return errors.FromOSError(dir, err)
	}

	for _, child := range children {
		if excludeEntry(child) {
			continue
		}
		childRel := filepath.Join(rel, child.Name)
		*out = append(*out, toFileEntry(childRel, child))
		if child.IsDir && level < maxDepth {
			if errDetail := ins.listInto(root, childRel, level+1, maxDepth, out); errDetail != nil {
				return errDetail
			}
		}
	}
	return nil
}

// excludeEntry applies the hidden-name and ignore-pattern filter.
func excludeEntry(entry filesystem.DirEntryInfo) bool {
	if entry.IsHidden {
		return true
	}
	for _, pattern := range DefaultIgnorePatterns {
		if strings.Contains(entry.Name, pattern) {
			return true
		}
	}
	return false
}

func toFileEntry(rel string, entry filesystem.DirEntryInfo) models.FileEntry {
	fe := models.FileEntry{
		Path:  rel,
		IsDir: entry.IsDir,
	}
	if !entry.IsDir {
		fe.Size = entry.Size
	}
	if !entry.ModTime.IsZero() {
		if epoch := entry.ModTime.Unix(); epoch >= 0 {
			fe.Modified = &epoch
		}
	}
	return fe
}
