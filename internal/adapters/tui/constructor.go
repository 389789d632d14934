// Package tui provides the interactive watch view.
package tui

import (
	"io"
	"os"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/ui/output"
	"github.com/charmbracelet/lipgloss"
)

const defaultTickInterval = time.Second

// NewModel creates a watch model drawing to w. trigger is called whenever the user asks for a refresh.
func NewModel(w io.Writer, trigger func()) Model {
	if w == nil {
		w = os.Stderr
	}

	out := output.New(w)
	lipgloss.SetColorProfile(out.Profile)

	return Model{
		Output:       out,
		Trigger:      trigger,
		Now:          time.Now,
		TickInterval: defaultTickInterval,
		spans:        make(map[string]string),
	}
}

// WithDisableTick returns a copy of the model that never schedules clock ticks.
//
//nolint:gocritic // hugeParam ignored
func (m Model) WithDisableTick() Model {
	m.DisableTick = true
	return m
}
