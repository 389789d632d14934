package ports

import "time"

// RefreshLock excludes refresh cycles running in other processes.
//
//go:generate mockgen -source=lock.go -destination=mocks/mock_lock.go -package=mocks
type RefreshLock interface {
	// TryLock acquires the lock without blocking. It reports false if another process holds it.
	TryLock() (bool, error)
	// Unlock releases the lock.
	Unlock() error
}

// CycleStamp shares the start of the last accepted cycle between processes,
// so the minimum refresh interval also holds across one-shot runs.
type CycleStamp interface {
	// LastStart returns the recorded start, or the zero time if none is recorded.
	LastStart() (time.Time, error)
	// MarkStart records t as the start of the last accepted cycle.
	MarkStart(t time.Time) error
}
