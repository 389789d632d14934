// Package process reports whether the companion process is running.
package process

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	gopsprocess "github.com/shirou/gopsutil/v4/process"
)

// Info is the identity of one running process.
type Info struct {
	Name    string
	Cmdline []string
}

// Lister enumerates running processes.
type Lister func(ctx context.Context) ([]Info, error)

// Detector implements ports.ProcessDetector by matching process names case insensitively.
type Detector struct {
	name   string
	list   Lister
	logger ports.Logger
}

// New creates a Detector for the process called name.
func New(name string, logger ports.Logger) *Detector {
	return &Detector{name: name, list: ListProcesses, logger: logger}
}

// WithLister replaces the process enumeration.
func (d *Detector) WithLister(l Lister) *Detector {
	d.list = l
	return d
}

// Running reports whether a matching process exists. Enumeration errors count as not running.
func (d *Detector) Running(ctx context.Context) bool {
	if d.name == "" {
		return false
	}
	procs, err := d.list(ctx)
	if err != nil {
		d.logger.Debug(fmt.Sprintf("process scan failed: %v", err))
		return false
	}
	for _, p := range procs {
		if d.matches(p) {
			return true
		}
	}
	return false
}

func (d *Detector) matches(p Info) bool {
	if strings.EqualFold(p.Name, d.name) {
		return true
	}
	if len(p.Cmdline) == 0 {
		return false
	}
	// Windows paths under Wine use backslashes.
	exe := filepath.Base(strings.ReplaceAll(p.Cmdline[0], `\`, "/"))
	return strings.EqualFold(exe, d.name)
}

// ListProcesses enumerates the processes of the host.
// Processes that vanish or deny access while being inspected are skipped.
func ListProcesses(ctx context.Context) ([]Info, error) {
	procs, err := gopsprocess.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Info, 0, len(procs))
	for _, p := range procs {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		cmdline, _ := p.CmdlineSliceWithContext(ctx)
		out = append(out, Info{Name: name, Cmdline: cmdline})
	}
	return out, nil
}
