package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

var (
	// ErrLockTimeout is returned when acquiring a lock times out.
	ErrLockTimeout = fmt.Errorf("timeout acquiring lock")
	// ErrPathRequired is returned when a path is empty.
	ErrPathRequired = fmt.Errorf("path is required")
	// ErrNilLock is returned when a nil lock handle is provided to Release.
	ErrNilLock = fmt.Errorf("nil lock handle")
)

// shortPollInterval is the interval to sleep when polling for a lock.
const shortPollInterval = 10 * time.Millisecond

// ReadLock is a handle to an OS-level shared file lock.
type ReadLock struct {
	Path  string
	flock *flock.Flock
}

// SharedLockManager coordinates advisory shared locks on files being read,
// so editor processes that take exclusive locks on the same files are not
// raced mid-write. The interface exists for mocking.
type SharedLockManager interface {
	AcquireShared(path string, timeout time.Duration) (*ReadLock, error)
	Release(lock *ReadLock) error
}

// FlockManager implements SharedLockManager with gofrs/flock.
type FlockManager struct{}

// NewFlockManager initializes and returns a new FlockManager.
func NewFlockManager() *FlockManager {
	return &FlockManager{}
}

// AcquireShared takes a shared OS-level lock on the given file, polling
// until the timeout elapses. The lock is taken on the target file itself;
// no sidecar files are created for existing targets.
func (m *FlockManager) AcquireShared(path string, timeout time.Duration) (*ReadLock, error) {
	if path == "" {
		return nil, ErrPathRequired
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fileLock := flock.New(path)
	locked, err := fileLock.TryRLockContext(ctx, shortPollInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("error acquiring shared lock for %s: %w", path, err)
	}
	if !locked {
		return nil, ErrLockTimeout
	}

	return &ReadLock{Path: path, flock: fileLock}, nil
}

// Release releases the given shared lock.
func (m *FlockManager) Release(lock *ReadLock) error {
	if lock == nil {
		return ErrNilLock
	}
	if lock.flock != nil {
		_ = lock.flock.Unlock()
	}
	return nil
}

// Ensure FlockManager implements SharedLockManager.
var _ SharedLockManager = (*FlockManager)(nil)
