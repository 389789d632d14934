// Package cache persists the coordinate and freshness documents as JSON files.
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/cespare/xxhash/v2"
	"github.com/tidwall/gjson"
	"go.trai.ch/zerr"
)

const (
	legacyInfoKey    = "Info Updated"
	legacyCheckedKey = "last_checked_inara"
	legacyTimeLayout = "2006-01-02T15:04:05"
)

// Store implements ports.CacheStore on two files below the data directory.
type Store struct {
	coordPath string
	freshPath string
	loc       *time.Location

	mu      sync.Mutex
	digests map[string]uint64

	rename func(oldpath, newpath string) error
}

// New creates a Store for the documents of layout.
func New(layout domain.Layout) *Store {
	return &Store{
		coordPath: layout.CoordinateCachePath(),
		freshPath: layout.FreshnessCachePath(),
		loc:       time.Local,
		digests:   make(map[string]uint64),
		rename:    os.Rename,
	}
}

// WithLocation sets the zone used for legacy timestamps without an offset.
func (s *Store) WithLocation(loc *time.Location) *Store {
	s.loc = loc
	return s
}

type coordinateDTO struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Source    string  `json:"source,omitempty"`
	FetchedAt string  `json:"fetched_at,omitempty"`
}

type freshnessDTO struct {
	InfoUpdated string `json:"info_updated,omitempty"`
	LastChecked string `json:"last_checked,omitempty"`
}

// LoadCoordinates reads the coordinate document.
func (s *Store) LoadCoordinates() (domain.CoordinateCache, error) {
	doc, err := s.read(s.coordPath)
	if err != nil || !doc.Exists() {
		return domain.CoordinateCache{}, err
	}

	out := make(domain.CoordinateCache)
	doc.ForEach(func(key, value gjson.Result) bool {
		if rec, ok := s.parseCoordinate(value); ok {
			out[key.String()] = rec
		}
		return true
	})
	return out, nil
}

// LoadFreshness reads the freshness document.
func (s *Store) LoadFreshness() (domain.FreshnessCache, error) {
	doc, err := s.read(s.freshPath)
	if err != nil || !doc.Exists() {
		return domain.FreshnessCache{}, err
	}

	out := make(domain.FreshnessCache)
	doc.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		var rec domain.FreshnessRecord
		if v := value.Get("info_updated"); v.Exists() {
			rec.InfoUpdated = s.parseTime(v.String())
		} else if v := value.Get(gjson.Escape(legacyInfoKey)); v.Exists() {
			rec.InfoUpdated, _ = domain.ParseInfoTimestamp(v.String(), s.loc)
		}
		if v := value.Get("last_checked"); v.Exists() {
			rec.LastChecked = s.parseTime(v.String())
		} else if v := value.Get(legacyCheckedKey); v.Exists() {
			rec.LastChecked = s.parseTime(v.String())
		}
		out[key.String()] = rec
		return true
	})
	return out, nil
}

// SaveCoordinates replaces the coordinate document.
func (s *Store) SaveCoordinates(cache domain.CoordinateCache) error {
	doc := make(map[string]coordinateDTO, len(cache))
	for name, rec := range cache {
		doc[name] = coordinateDTO{
			X:         rec.X,
			Y:         rec.Y,
			Z:         rec.Z,
			Source:    string(rec.Source),
			FetchedAt: formatTime(rec.FetchedAt),
		}
	}
	return s.write(s.coordPath, doc)
}

// SaveFreshness replaces the freshness document.
func (s *Store) SaveFreshness(cache domain.FreshnessCache) error {
	doc := make(map[string]freshnessDTO, len(cache))
	for name, rec := range cache {
		doc[name] = freshnessDTO{
			InfoUpdated: formatTime(rec.InfoUpdated),
			LastChecked: formatTime(rec.LastChecked),
		}
	}
	return s.write(s.freshPath, doc)
}

// Clear removes the selected documents. Missing documents are not an error.
func (s *Store) Clear(coordinates, freshness bool) error {
	var errs []error
	if coordinates {
		errs = append(errs, s.remove(s.coordPath))
	}
	if freshness {
		errs = append(errs, s.remove(s.freshPath))
	}
	return errors.Join(errs...)
}

func (s *Store) remove(path string) error {
	s.forget(path)

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrPersistFailure.Error()), "path", path)
	}
	return nil
}

// read returns the parsed document. A missing file yields a non-existent result.
// Any read that does not yield a valid document drops the remembered digest,
// so the next write of the same content still replaces what is on disk.
func (s *Store) read(path string) (gjson.Result, error) {
	//nolint:gosec // Path is fixed below the data directory
	data, err := os.ReadFile(path)
	if err != nil {
		s.forget(path)
		if errors.Is(err, fs.ErrNotExist) {
			return gjson.Result{}, nil
		}
		return gjson.Result{}, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", path)
	}

	doc := gjson.ParseBytes(data)
	if !gjson.ValidBytes(data) || !doc.IsObject() {
		s.forget(path)
		return gjson.Result{}, zerr.With(domain.ErrCacheCorrupt, "path", path)
	}

	s.mu.Lock()
	s.digests[path] = xxhash.Sum64(data)
	s.mu.Unlock()
	return doc, nil
}

func (s *Store) forget(path string) {
	s.mu.Lock()
	delete(s.digests, path)
	s.mu.Unlock()
}

func (s *Store) write(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPersistFailure.Error()), "path", path)
	}
	data = append(data, '\n')
	sum := xxhash.Sum64(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.digests[path]; ok && prev == sum {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil
		}
	}

	if err := s.atomicWriteFile(path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPersistFailure.Error()), "path", path)
	}
	s.digests[path] = sum
	return nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func (s *Store) atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return s.rename(tmpName, path)
}

func (s *Store) parseCoordinate(value gjson.Result) (domain.CoordinateRecord, bool) {
	var x, y, z gjson.Result
	switch {
	case value.IsArray():
		arr := value.Array()
		if len(arr) != 3 {
			return domain.CoordinateRecord{}, false
		}
		x, y, z = arr[0], arr[1], arr[2]
	case value.IsObject():
		x, y, z = value.Get("x"), value.Get("y"), value.Get("z")
	default:
		return domain.CoordinateRecord{}, false
	}
	if x.Type != gjson.Number || y.Type != gjson.Number || z.Type != gjson.Number {
		return domain.CoordinateRecord{}, false
	}

	return domain.CoordinateRecord{
		Coordinate: domain.Coordinate{X: x.Num, Y: y.Num, Z: z.Num},
		Source:     originOf(value.Get("source").String()),
		FetchedAt:  s.parseTime(value.Get("fetched_at").String()),
	}, true
}

func originOf(source string) domain.CoordinateOrigin {
	switch source {
	case string(domain.OriginHint), "local":
		return domain.OriginHint
	default:
		return domain.OriginFetched
	}
}

// parseTime accepts RFC3339 and the offset-less ISO form of older documents.
func (s *Store) parseTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t
	}
	if t, err := time.ParseInLocation(legacyTimeLayout, v, s.loc); err == nil {
		return t
	}
	return time.Time{}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
