// Package registry reads the tracked systems document.
//
// The document is either a JSON array of names or a JSON object keyed by name.
// Object values may carry a coordinate hint as {"coords": {"x", "y", "z"}} or {"x", "y", "z"}.
package registry

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/tidwall/gjson"
	"go.trai.ch/zerr"
)

// FileRegistry implements ports.SystemRegistry over a JSON file. It is reloaded on every call.
type FileRegistry struct {
	path string
}

// New creates a FileRegistry reading path.
func New(path string) *FileRegistry {
	return &FileRegistry{path: path}
}

// Path returns the file the registry reads.
func (r *FileRegistry) Path() string {
	return r.path
}

// Load reads and parses the registry file. A missing file is an empty registry.
func (r *FileRegistry) Load(_ context.Context) (*domain.Registry, error) {
	// #nosec G304 -- path comes from the data directory layout
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewRegistry(nil, nil), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRegistryReadFailed.Error()), "path", r.path)
	}

	reg, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", r.path)
	}
	return reg, nil
}

// Parse decodes a registry document.
func Parse(data []byte) (*domain.Registry, error) {
	if !gjson.ValidBytes(data) {
		return nil, zerr.With(domain.ErrRegistryParseFailed, "reason", "invalid json")
	}

	doc := gjson.ParseBytes(data)
	switch {
	case doc.IsArray():
		var names []string
		doc.ForEach(func(_, v gjson.Result) bool {
			if v.Type == gjson.String {
				names = append(names, v.Str)
			}
			return true
		})
		return domain.NewRegistry(names, nil), nil

	case doc.IsObject():
		var names []string
		hints := make(map[string]domain.Coordinate)
		doc.ForEach(func(k, v gjson.Result) bool {
			name := k.String()
			names = append(names, name)
			if c, ok := hint(v); ok {
				if _, seen := hints[name]; !seen {
					hints[name] = c
				}
			}
			return true
		})
		return domain.NewRegistry(names, hints), nil

	default:
		return nil, zerr.With(domain.ErrRegistryParseFailed, "reason", "top level must be an array or an object")
	}
}

// hint extracts a coordinate from a registry entry value.
func hint(v gjson.Result) (domain.Coordinate, bool) {
	if !v.IsObject() {
		return domain.Coordinate{}, false
	}
	if coords := v.Get("coords"); coords.IsObject() {
		return xyz(coords)
	}
	return xyz(v)
}

func xyz(v gjson.Result) (domain.Coordinate, bool) {
	x, y, z := v.Get("x"), v.Get("y"), v.Get("z")
	if x.Type != gjson.Number || y.Type != gjson.Number || z.Type != gjson.Number {
		return domain.Coordinate{}, false
	}
	return domain.Coordinate{X: x.Num, Y: y.Num, Z: z.Num}, true
}
