package tui_test

import (
	"strings"
	"testing"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/telemetry"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/zerr"
)

func TestView_Initializing(t *testing.T) {
	m := newModel(t, nil)
	assert.Equal(t, "Initializing...", m.View())
}

func TestView_Empty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	m := newModel(t, nil)
	m, _ = updateModel(m, tea.WindowSizeMsg{Width: 80, Height: 10})

	view := m.View()
	assert.Contains(t, view, "EDPPM")
	assert.Contains(t, view, "Waiting for the first refresh")
	assert.Contains(t, view, "No data yet. Press r to refresh.")
	assert.Contains(t, view, "r refresh")
	assert.Equal(t, 10, lipgloss.Height(view))
}

func TestView_Snapshot(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	m := newModel(t, nil)
	m, _ = updateModel(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = updateModel(m, telemetry.MsgResult{Result: &domain.RefreshResult{
		Coordinates: map[string]domain.Coordinate{
			"Lave": {},
			"Diso": {X: 3, Y: 4},
		},
		Route:            []string{"Lave", "Diso"},
		RouteDistance:    5,
		Current:          []string{"Sol", "Alioth"},
		Outdated:         []string{"Lave", "Zeta"},
		Unknown:          []string{"Diso"},
		Missing:          []string{"Zeta"},
		CompanionRunning: true,
		PersistErr:       "disk full",
		CompletedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}})
	m, _ = updateModel(m, telemetry.MsgNotice{Text: "cooldown 9s"})

	view := m.View()
	assert.Contains(t, view, "2 current")
	assert.Contains(t, view, "2 outdated")
	assert.Contains(t, view, "1 unknown")
	assert.Contains(t, view, "● companion")
	assert.Contains(t, view, "Last refresh")
	assert.Contains(t, view, "! cooldown 9s")
	assert.Contains(t, view, "✗ cache not saved")
	assert.Contains(t, view, "ROUTE  2 stops, 5.00 ly")
	assert.Contains(t, view, "+5.00 ly")
	assert.Contains(t, view, "Zeta (outdated)")

	route := strings.Index(view, "ROUTE")
	missing := strings.Index(view, "MISSING COORDINATES")
	current := strings.Index(view, "CURRENT")
	assert.Less(t, route, missing)
	assert.Less(t, missing, current)
	assert.Less(t, strings.Index(view, "Alioth"), strings.Index(view, "Sol"), "current systems are sorted")
}

func TestView_Refreshing(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	m := newModel(t, nil)
	m, _ = updateModel(m, tea.WindowSizeMsg{Width: 100, Height: 10})
	m, _ = updateModel(m, telemetry.MsgStepStart{
		SpanID:    "c",
		Name:      "refresh",
		StartTime: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
	})
	m, _ = updateModel(m, telemetry.MsgStepStart{SpanID: "s", ParentID: "c", Name: "Achenar"})

	assert.Contains(t, m.View(), "Refreshing, 0 checked → Achenar (10s)")
}

func TestView_RefreshingTalliesAttention(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	m := newModel(t, nil)
	m, _ = updateModel(m, tea.WindowSizeMsg{Width: 100, Height: 10})
	m, _ = updateModel(m, telemetry.MsgStepStart{
		SpanID:    "c",
		Name:      "refresh",
		StartTime: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
	})
	m, _ = updateModel(m, telemetry.MsgStepStart{SpanID: "s1", ParentID: "c", Name: "Lave"})
	m, _ = updateModel(m, telemetry.MsgStepComplete{
		SpanID:  "s1",
		Outcome: ports.StepOutcome{Classified: true, Class: domain.Outdated, Coordinates: "failed"},
		Err:     zerr.New("coordinates not found"),
	})
	m, _ = updateModel(m, telemetry.MsgStepStart{SpanID: "s2", ParentID: "c", Name: "Sol"})

	assert.Contains(t, m.View(), "Refreshing, 1 checked, 1 need attention, 1 failed → Sol (10s)")
}
