package filelock

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"go.trai.ch/zerr"
)

// Stamp implements ports.CycleStamp with a one-line RFC 3339 file kept next to the lock.
type Stamp struct {
	path string
}

// NewStamp creates a Stamp backed by path.
func NewStamp(path string) *Stamp {
	return &Stamp{path: path}
}

// LastStart returns the recorded start. A missing file yields the zero time.
func (s *Stamp) LastStart() (time.Time, error) {
	//nolint:gosec // Path is fixed below the data directory
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, nil
		}
		return time.Time{}, zerr.With(zerr.Wrap(err, "failed to read last refresh"), "path", s.path)
	}

	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(string(data)))
	if err != nil {
		return time.Time{}, zerr.With(zerr.Wrap(err, "failed to parse last refresh"), "path", s.path)
	}
	return t, nil
}

// MarkStart records t.
func (s *Stamp) MarkStart(t time.Time) error {
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPersistFailure.Error()), "path", s.path)
	}
	if err := os.WriteFile(s.path, []byte(t.Format(time.RFC3339Nano)+"\n"), domain.PrivateFilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPersistFailure.Error()), "path", s.path)
	}
	return nil
}
