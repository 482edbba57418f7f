package inspect

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"fs-inspect-server/internal/config"
	"fs-inspect-server/internal/errors"
	"fs-inspect-server/internal/filesystem"
	"fs-inspect-server/internal/lock"
	"fs-inspect-server/internal/models"
)

// InspectorService defines the interface for file-inspection operations.
type InspectorService interface {
	FsRead(req models.ReadRequest) (models.ReadResult, *errors.Error)
	FsReadBatch(reqs []models.ReadRequest) []BatchItem
}

// BatchItem is one slot of a batch result: exactly one of Result or Err is
// set. Slots line up positionally with the batch's requests.
type BatchItem struct {
	Result models.ReadResult
	Err    *errors.Error
}

// Inspector implements InspectorService. Every call owns its own working
// set; the Inspector itself holds no mutable state and is safe for
// concurrent use.
type Inspector struct {
	fs          filesystem.FileSystemAdapter
	locks       lock.SharedLockManager
	logger      *slog.Logger
	root        string
	maxFileSize int64
	lockTimeout time.Duration
}

// New creates an Inspector. locks may be nil, in which case no advisory
// read locks are taken. When cfg.Root is set, every request path is
// resolved against it and confined to it.
func New(fs filesystem.FileSystemAdapter, locks lock.SharedLockManager, cfg *config.Config) (*Inspector, error) {
	if fs == nil {
		return nil, fmt.Errorf("filesystem adapter is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	root := cfg.Root
	if root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("could not get absolute path for root: %w", err)
		}
		stats, err := fs.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("error accessing root directory %s: %w", abs, err)
		}
		if !stats.IsDir {
			return nil, fmt.Errorf("root path is not a directory: %s", abs)
		}
		root = abs
	}

	return &Inspector{
		fs:          fs,
		locks:       locks,
		logger:      slog.Default(),
		root:        root,
		maxFileSize: int64(cfg.MaxFileSizeMB) * 1024 * 1024,
		lockTimeout: time.Duration(cfg.LockTimeoutSec) * time.Second,
	}, nil
}

// FsRead dispatches a single request to the operation selected by its mode
// tag and normalizes every failure into the error taxonomy.
func (ins *Inspector) FsRead(req models.ReadRequest) (models.ReadResult, *errors.Error) {
	if req.Path == "" {
		return nil, errors.NewInvalidParams("path is required")
	}
	switch req.Mode {
	case models.ModeLine:
		return ins.ReadLines(req.Path, req.StartLine, req.EndLine)
	case models.ModeDirectory:
		return ins.ListDirectory(req.Path, req.Depth)
	case models.ModeSearch:
		if req.Pattern == "" {
			return nil, errors.NewInvalidParams("pattern is required for Search mode")
		}
		return ins.Search(req.Path, req.Pattern, req.EffectiveContextLines())
	default:
		return nil, errors.NewInvalidParams(fmt.Sprintf("invalid mode: %q", req.Mode))
	}
}

// FsReadBatch runs each request sequentially and independently. A failing
// request fills its own slot; later requests still run. There is no shared
// transaction and nothing is rolled back.
func (ins *Inspector) FsReadBatch(reqs []models.ReadRequest) []BatchItem {
	items := make([]BatchItem, len(reqs))
	for i, req := range reqs {
		result, errDetail := ins.FsRead(req)
		items[i] = BatchItem{Result: result, Err: errDetail}
	}
	return items
}

// resolvePath resolves a request path against the configured root and
// rejects paths that escape it. Without a root, paths pass through as
// given.
func (ins *Inspector) resolvePath(path string) (string, *errors.Error) {
	if ins.root == "" {
		return path, nil
	}

	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(ins.root, resolved)
	}
	resolved = filepath.Clean(resolved)

	rel, err := filepath.Rel(ins.root, resolved)
	if err != nil {
		return "", errors.NewInternal(fmt.Sprintf("error relativizing path %q: %v", path, err))
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.NewInvalidPath(path, fmt.Sprintf("%s escapes the configured root", path))
	}
	return resolved, nil
}

// acquireSharedLock takes a best-effort advisory read lock on the target
// file so concurrent editors holding exclusive locks are not raced. Lock
// failure degrades to an unlocked read. The returned func releases the
// lock and is always safe to call.
func (ins *Inspector) acquireSharedLock(path string) func() {
	if ins.locks == nil {
		return func() {}
	}
	rl, err := ins.locks.AcquireShared(path, ins.lockTimeout)
	if err != nil {
		ins.logger.Debug("proceeding without shared lock", "path", path, "error", err)
		return func() {}
	}
	return func() {
		if err := ins.locks.Release(rl); err != nil {
			ins.logger.Warn("failed to release shared lock", "path", path, "error", err)
		}
	}
}

// Ensure Inspector implements InspectorService.
var _ InspectorService = (*Inspector)(nil)
