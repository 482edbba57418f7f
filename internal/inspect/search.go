package inspect

import (
	"fmt"
	"path/filepath"
	"regexp"

	"fs-inspect-server/internal/errors"
	"fs-inspect-server/internal/models"
)

// Search scans the file at path, or every regular file beneath it when path
// is a directory, for unanchored matches of pattern. Each matching line is
// returned with up to contextLines lines of context on either side. The
// existence check and pattern compilation are both preconditions; no
// traversal starts until both pass.
//
// Directory scans are best-effort: a file that cannot be opened or decoded
// is skipped rather than failing the whole call. A direct file target is
// not; its read errors propagate.
func (ins *Inspector) Search(path, pattern string, contextLines int) (*models.SearchResult, *errors.Error) {
	resolved, errDetail := ins.resolvePath(path)
	if errDetail != nil {
		return nil, errDetail
	}

	stats, err := ins.fs.Stat(resolved)
	if err != nil {
		return nil, errors.FromOSError(path, err)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.NewInvalidPattern(err.Error())
	}

	var matches []models.SearchMatch
	if stats.IsDir {
		matches = ins.searchDirectory(resolved, re, contextLines)
	} else {
		matches, errDetail = ins.searchFile(resolved, re, contextLines)
		if errDetail != nil {
			return nil, errDetail
		}
	}

	return &models.SearchResult{
		Matches:      matches,
		TotalMatches: len(matches),
	}, nil
}

// searchFile scans a single file line by line.
func (ins *Inspector) searchFile(path string, re *regexp.Regexp, contextLines int) ([]models.SearchMatch, *errors.Error) {
	if ins.maxFileSize > 0 {
		stats, err := ins.fs.Stat(path)
		if err != nil {
			return nil, errors.FromOSError(path, err)
		}
		if stats.Size > ins.maxFileSize {
			return nil, errors.NewFileTooLarge(path, stats.Size, int(ins.maxFileSize/(1024*1024)))
		}
	}

	release := ins.acquireSharedLock(path)
	defer release()

	content, err := ins.fs.ReadFileBytes(path)
	if err != nil {
		return nil, errors.FromOSError(path, err)
	}
	if !ins.fs.IsValidUTF8(content) {
		return nil, errors.NewIOError(path, fmt.Errorf("file content is not valid UTF-8"))
	}

	lines := ins.fs.SplitLines(content)

	var matches []models.SearchMatch
	for i, line := range lines {
		if !re.MatchString(line) {
			continue
		}
		before, after := ContextWindow(lines, i, contextLines)
		matches = append(matches, models.SearchMatch{
			FilePath:      path,
			LineNumber:    i + 1,
			LineContent:   line,
			ContextBefore: before,
			ContextAfter:  after,
		})
	}
	return matches, nil
}

// searchDirectory walks the whole tree beneath dir, with no depth limit and
// no ignore filtering, scanning every regular file in discovery order.
// Unreadable directories and files are skipped so one bad entry does not
// blank out matches from the rest of the tree.
func (ins *Inspector) searchDirectory(dir string, re *regexp.Regexp, contextLines int) []models.SearchMatch {
	entries, err := ins.fs.ListDir(dir)
	if err != nil {
		ins.logger.Debug("skipping unreadable directory during search", "dir", dir, "error", err)
		return nil
	}

	var matches []models.SearchMatch
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name)
		if entry.IsDir {
			matches = append(matches, ins.searchDirectory(child, re, contextLines)...)
			continue
		}
		fileMatches, errDetail := ins.searchFile(child, re, contextLines)
		if errDetail != nil {
			ins.logger.Debug("skipping unreadable file during search", "file", child, "error", errDetail)
			continue
		}
		matches = append(matches, fileMatches...)
	}
	return matches
}
