package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/ui/style"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
//
//nolint:gocritic // hugeParam ignored
func (m *Model) View() string {
	if m.Height == 0 {
		return "Initializing..."
	}

	rows := m.bodyRows()
	height := m.bodyHeight()
	end := min(m.Offset+height, len(rows))
	visible := make([]string, 0, height)
	if m.Offset < end {
		visible = append(visible, rows[m.Offset:end]...)
	}
	for len(visible) < height {
		visible = append(visible, "")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header(),
		m.statusLine(),
		"",
		strings.Join(visible, "\n"),
		m.footer(),
	)
}

func (m *Model) header() string {
	title := titleStyle.Render("EDPPM")
	if m.Result == nil {
		return title
	}

	r := m.Result
	counts := fmt.Sprintf(" %s current  %s outdated  %s unknown",
		classStyle(domain.Current).Render(fmt.Sprint(len(r.Current))),
		classStyle(domain.Outdated).Render(fmt.Sprint(len(r.Outdated))),
		classStyle(domain.Unknown).Render(fmt.Sprint(len(r.Unknown))),
	)

	companion := faintStyle.Render(style.Circle + " companion")
	if r.CompanionRunning {
		companion = companionOnStyle.Render(style.Dot + " companion")
	}
	return title + counts + "  " + companion
}

func (m *Model) statusLine() string {
	var parts []string
	switch {
	case m.Refreshing:
		s := fmt.Sprintf("Refreshing, %d checked", m.Checked)
		if m.Attention > 0 {
			s += fmt.Sprintf(", %d need attention", m.Attention)
		}
		if m.Failures > 0 {
			s += fmt.Sprintf(", %d failed", m.Failures)
		}
		if m.CurrentSystem != "" {
			s += " " + style.Arrow + " " + m.CurrentSystem
		}
		s += fmt.Sprintf(" (%s)", m.now().Sub(m.CycleStart).Round(time.Second))
		parts = append(parts, runningStyle.Render(s))
	case m.Result != nil:
		s := "Last refresh " + m.Result.CompletedAt.Local().Format(time.TimeOnly)
		if m.Result.Interrupted {
			s += " (interrupted)"
		}
		parts = append(parts, faintStyle.Render(s))
	default:
		parts = append(parts, faintStyle.Render("Waiting for the first refresh"))
	}

	if m.Notice != "" {
		parts = append(parts, noticeStyle.Render(style.Warning+" "+m.Notice))
	}
	if m.Result != nil && m.Result.PersistErr != "" {
		parts = append(parts, errorStyle.Render(style.Cross+" cache not saved"))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) footer() string {
	return faintStyle.Render("r refresh  j/k scroll  q quit")
}

// bodyRows renders the snapshot in visiting order: route, systems without coordinates, current systems.
func (m *Model) bodyRows() []string {
	r := m.Result
	if r == nil {
		return []string{faintStyle.Render("No data yet. Press r to refresh.")}
	}

	var rows []string
	if len(r.Route) == 0 {
		rows = append(rows, sectionStyle.Render("ROUTE")+faintStyle.Render("  nothing to visit"))
	} else {
		rows = append(rows, sectionStyle.Render(fmt.Sprintf("ROUTE  %d stops, %.2f ly", len(r.Route), r.RouteDistance)))
		for i, name := range r.Route {
			class, _ := r.ClassOf(name)
			row := fmt.Sprintf("%3d. %s", i+1, classStyle(class).Render(name))
			if i > 0 {
				hop := r.Coordinates[r.Route[i-1]].Distance(r.Coordinates[name])
				row += faintStyle.Render(fmt.Sprintf("  +%.2f ly", hop))
			}
			rows = append(rows, row)
		}
	}

	if len(r.Missing) > 0 {
		missing := slices.Clone(r.Missing)
		slices.Sort(missing)
		rows = append(rows, "", sectionStyle.Render(fmt.Sprintf("MISSING COORDINATES  %d", len(missing))))
		for _, name := range missing {
			class, _ := r.ClassOf(name)
			rows = append(rows, "   - "+classStyle(class).Render(name+" ("+class.String()+")"))
		}
	}

	current := slices.Clone(r.Current)
	slices.Sort(current)
	rows = append(rows, "", sectionStyle.Render(fmt.Sprintf("CURRENT  %d", len(current))))
	for _, name := range current {
		rows = append(rows, "   - "+name)
	}
	return rows
}
