package domain

import (
	"fmt"
	"time"

	"go.trai.ch/zerr"
)

var (
	// ErrCooldownActive is returned when a refresh is requested before the minimum refresh interval has elapsed.
	ErrCooldownActive = zerr.New("refresh cooldown active")

	// ErrConcurrentRefreshRejected is returned when a refresh is requested while another one is running.
	ErrConcurrentRefreshRejected = zerr.New("refresh already running")

	// ErrNetworkFailure is returned when a request to an external source fails at the transport level.
	ErrNetworkFailure = zerr.New("network request failed")

	// ErrRateLimited is returned when an external source keeps answering with HTTP 429.
	ErrRateLimited = zerr.New("rate limited by source")

	// ErrUnexpectedStatus is returned when an external source answers with a non-success status.
	ErrUnexpectedStatus = zerr.New("unexpected response status")

	// ErrMalformedPayload is returned when an external source answers with a body that cannot be decoded.
	ErrMalformedPayload = zerr.New("malformed response payload")

	// ErrCoordinatesNotFound is returned when the coordinate source does not know the system.
	ErrCoordinatesNotFound = zerr.New("coordinates not found")

	// ErrCacheCorrupt is returned when a persisted cache document cannot be parsed.
	ErrCacheCorrupt = zerr.New("cache document is corrupt")

	// ErrCacheReadFailed is returned when a persisted cache document cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read cache document")

	// ErrPersistFailure is returned when a cache document cannot be written.
	ErrPersistFailure = zerr.New("failed to persist cache document")

	// ErrRegistryReadFailed is returned when the system registry cannot be read.
	ErrRegistryReadFailed = zerr.New("failed to read system registry")

	// ErrRegistryParseFailed is returned when the system registry is not a list or a mapping.
	ErrRegistryParseFailed = zerr.New("failed to parse system registry")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value is out of range.
	ErrInvalidConfig = zerr.New("invalid config value")

	// ErrLockFailed is returned when the refresh lock file cannot be opened.
	ErrLockFailed = zerr.New("failed to acquire refresh lock")

	// ErrDaemonUnavailable is returned when the daemon cannot be reached.
	ErrDaemonUnavailable = zerr.New("daemon is not running")
)

// CooldownError reports a refresh rejected because of the minimum refresh interval.
// It matches ErrCooldownActive under errors.Is.
type CooldownError struct {
	Remaining time.Duration
}

// NewCooldownError returns a CooldownError for the given remaining wait.
func NewCooldownError(remaining time.Duration) *CooldownError {
	return &CooldownError{Remaining: remaining}
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s: retry in %s", ErrCooldownActive.Error(), e.Remaining.Round(time.Second))
}

// Is reports whether target is ErrCooldownActive.
func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}
