// Package filelock provides the cross-process refresh lock.
package filelock

import (
	"os"
	"path/filepath"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/gofrs/flock"
	"go.trai.ch/zerr"
)

// Lock implements ports.RefreshLock with an advisory lock on a file.
type Lock struct {
	flock *flock.Flock
}

// New creates a Lock on path. The file is created on first use.
func New(path string) *Lock {
	return &Lock{flock: flock.New(path, flock.SetPermissions(domain.PrivateFilePerm))}
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.flock.Path()
}

// TryLock acquires the lock without blocking.
func (l *Lock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.flock.Path()), domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrLockFailed.Error()), "path", l.flock.Path())
	}
	ok, err := l.flock.TryLock()
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrLockFailed.Error()), "path", l.flock.Path())
	}
	return ok, nil
}

// Unlock releases the lock. Unlocking a lock that is not held is a no-op.
func (l *Lock) Unlock() error {
	if err := l.flock.Unlock(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to release refresh lock"), "path", l.flock.Path())
	}
	return nil
}
