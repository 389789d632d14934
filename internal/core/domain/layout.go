package domain

import (
	"os"
	"path/filepath"
)

const (
	// DataDirName is the name of the default data directory.
	DataDirName = ".edppm"

	// DataDirEnv overrides the data directory when set.
	DataDirEnv = "EDPPM_HOME"

	// ConfigFileName is the name of the configuration file inside the data directory.
	ConfigFileName = "edppm.yaml"

	// RegistryFileName is the name of the system registry document.
	RegistryFileName = "elite_systems.json"

	// CoordinateCacheFileName is the name of the coordinate cache document.
	CoordinateCacheFileName = "system_coords_cache.json"

	// FreshnessCacheFileName is the name of the freshness cache document.
	FreshnessCacheFileName = "last_system_data.json"

	// LockFileName is the name of the cross-process refresh lock.
	LockFileName = "refresh.lock"

	// LastRefreshFileName records when the last accepted cycle started, across processes.
	LastRefreshFileName = "last_refresh"

	// DebugLogFile is the name of the debug log file.
	DebugLogFile = "debug.log"

	// DaemonSocketName is the name of the daemon Unix socket.
	DaemonSocketName = "daemon.sock"

	// DaemonPIDName is the name of the daemon PID file.
	DaemonPIDName = "daemon.pid"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600

	// SocketPerm restricts the daemon socket to the owner.
	SocketPerm = 0o600
)

// DefaultDataPath returns the data directory.
// It honours EDPPM_HOME and falls back to .edppm relative to the working directory.
func DefaultDataPath() string {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return filepath.Clean(dir)
	}
	return DataDirName
}

// Layout resolves every file the tool owns below one data directory.
type Layout struct {
	Root string
}

// NewLayout returns a Layout rooted at dir.
func NewLayout(dir string) Layout {
	return Layout{Root: filepath.Clean(dir)}
}

// DefaultLayout returns the Layout for DefaultDataPath.
func DefaultLayout() Layout {
	return NewLayout(DefaultDataPath())
}

// ConfigPath returns the path of the configuration file.
func (l Layout) ConfigPath() string { return filepath.Join(l.Root, ConfigFileName) }

// RegistryPath returns the path of the system registry.
func (l Layout) RegistryPath() string { return filepath.Join(l.Root, RegistryFileName) }

// CoordinateCachePath returns the path of the coordinate cache.
func (l Layout) CoordinateCachePath() string { return filepath.Join(l.Root, CoordinateCacheFileName) }

// FreshnessCachePath returns the path of the freshness cache.
func (l Layout) FreshnessCachePath() string { return filepath.Join(l.Root, FreshnessCacheFileName) }

// LockPath returns the path of the refresh lock file.
func (l Layout) LockPath() string { return filepath.Join(l.Root, LockFileName) }

// LastRefreshPath returns the path of the last cycle start stamp.
func (l Layout) LastRefreshPath() string { return filepath.Join(l.Root, LastRefreshFileName) }

// DebugLogPath returns the path of the debug log.
func (l Layout) DebugLogPath() string { return filepath.Join(l.Root, DebugLogFile) }

// DaemonSocketPath returns the path of the daemon socket.
func (l Layout) DaemonSocketPath() string { return filepath.Join(l.Root, DaemonSocketName) }

// DaemonPIDPath returns the path of the daemon PID file.
func (l Layout) DaemonPIDPath() string { return filepath.Join(l.Root, DaemonPIDName) }
