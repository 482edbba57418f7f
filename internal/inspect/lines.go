package inspect

import (
	"fmt"

	"fs-inspect-server/internal/errors"
	"fs-inspect-server/internal/models"
)

// ReadLines reads the file at path and returns the range of lines selected
// by start and end, joined with a single newline. Both bounds follow the
// ResolveRange conventions. The path must reference an existing regular
// file; that is checked before any range work.
func (ins *Inspector) ReadLines(path string, start, end *int) (*models.LineResult, *errors.Error) {
	resolved, errDetail := ins.resolvePath(path)
	if errDetail != nil {
		return nil, errDetail
	}

	stats, err := ins.fs.Stat(resolved)
	if err != nil {
		return nil, errors.FromOSError(path, err)
	}
	if stats.IsDir {
		return nil, errors.NewInvalidPath(path, fmt.Sprintf("%s is not a file", path))
	}
	if ins.maxFileSize > 0 && stats.Size > ins.maxFileSize {
		return nil, errors.NewFileTooLarge(path, stats.Size, int(ins.maxFileSize/(1024*1024)))
	}

	release := ins.acquireSharedLock(resolved)
	defer release()

	content, err := ins.fs.ReadFileBytes(resolved)
	if err != nil {
		return nil, errors.FromOSError(path, err)
	}
	if !ins.fs.IsValidUTF8(content) {
		return nil, errors.NewIOError(path, fmt.Errorf("file content is not valid UTF-8"))
	}

	lines := ins.fs.SplitLines(content)
	total := len(lines)

	begin, endExcl, rangeErr := ResolveRange(start, end, total)
	if rangeErr != nil {
		return nil, rangeErr
	}

	selected := lines[begin:endExcl]
	return &models.LineResult{
		Content:       ins.fs.JoinLines(selected),
		TotalLines:    total,
		LinesReturned: len(selected),
	}, nil
}
