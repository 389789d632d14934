package tui_test

import (
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/telemetry"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/tui"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func newModel(t *testing.T, trigger func()) *tui.Model {
	t.Helper()
	m := tui.NewModel(io.Discard, trigger).WithDisableTick()
	m.Now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 10, 0, time.UTC) }
	return &m
}

func updateModel(m *tui.Model, msg tea.Msg) (*tui.Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(*tui.Model), cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_CycleProgress(t *testing.T) {
	m := newModel(t, nil)
	start := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)

	m, _ = updateModel(m, telemetry.MsgStepStart{SpanID: "c", Name: "refresh", StartTime: start})
	assert.True(t, m.Refreshing)
	assert.Equal(t, "c", m.CycleSpan)

	m, _ = updateModel(m, telemetry.MsgStepStart{SpanID: "s1", ParentID: "c", Name: "Sol"})
	assert.Equal(t, "Sol", m.CurrentSystem)
	m, _ = updateModel(m, telemetry.MsgStepComplete{
		SpanID:  "s1",
		Outcome: ports.StepOutcome{Classified: true, Class: domain.Current},
	})

	m, _ = updateModel(m, telemetry.MsgStepStart{SpanID: "s2", ParentID: "c", Name: "Lave"})
	m, _ = updateModel(m, telemetry.MsgStepComplete{
		SpanID:  "s2",
		Outcome: ports.StepOutcome{Classified: true, Class: domain.Outdated, Coordinates: "failed"},
		Err:     zerr.New("lookup failed"),
	})

	// Unknown spans are ignored.
	m, _ = updateModel(m, telemetry.MsgStepComplete{SpanID: "stray"})

	assert.Equal(t, 2, m.Checked)
	assert.Equal(t, 1, m.Failures)
	assert.Equal(t, 1, m.Attention)
	assert.Equal(t, "Lave", m.CurrentSystem)

	m, _ = updateModel(m, telemetry.MsgStepComplete{SpanID: "c"})
	assert.False(t, m.Refreshing)
	assert.Empty(t, m.CurrentSystem)

	// A new cycle resets the counters.
	m, _ = updateModel(m, telemetry.MsgStepStart{SpanID: "c2", Name: "refresh", StartTime: start})
	assert.Zero(t, m.Checked)
	assert.Zero(t, m.Failures)
	assert.Zero(t, m.Attention)
}

func TestModel_ResultAndNotice(t *testing.T) {
	m := newModel(t, nil)

	m, _ = updateModel(m, telemetry.MsgResult{Result: nil})
	assert.Nil(t, m.Result)

	result := &domain.RefreshResult{Current: []string{"Sol"}}
	m, _ = updateModel(m, telemetry.MsgResult{Result: result})
	assert.Same(t, result, m.Result)

	m, _ = updateModel(m, telemetry.MsgNotice{Text: "cooldown 9s"})
	assert.Equal(t, "cooldown 9s", m.Notice)
	assert.Equal(t, m.Now(), m.NoticeAt)
}

func TestModel_Keys(t *testing.T) {
	t.Run("q quits", func(t *testing.T) {
		m := newModel(t, nil)
		_, cmd := updateModel(m, key("q"))
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})

	t.Run("r triggers a refresh", func(t *testing.T) {
		var calls atomic.Int32
		m := newModel(t, func() { calls.Add(1) })

		_, cmd := updateModel(m, key("r"))
		require.NotNil(t, cmd)
		assert.Nil(t, cmd())
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("r without trigger", func(t *testing.T) {
		m := newModel(t, nil)
		_, cmd := updateModel(m, key("r"))
		assert.Nil(t, cmd)
	})

	t.Run("scrolling is bounded", func(t *testing.T) {
		m := newModel(t, nil)
		names := make([]string, 20)
		for i := range names {
			names[i] = string(rune('A' + i))
		}
		m, _ = updateModel(m, telemetry.MsgResult{Result: &domain.RefreshResult{Current: names}})
		m, _ = updateModel(m, tea.WindowSizeMsg{Width: 80, Height: 14})

		m, _ = updateModel(m, key("k"))
		assert.Zero(t, m.Offset)

		m, _ = updateModel(m, key("j"))
		assert.Equal(t, 1, m.Offset)

		// 23 rows (route, blank, heading, 20 names) in a 10 line body.
		m, _ = updateModel(m, key("G"))
		assert.Equal(t, 13, m.Offset)
		m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyDown})
		assert.Equal(t, 13, m.Offset)

		m, _ = updateModel(m, key("g"))
		assert.Zero(t, m.Offset)
	})
}

func TestModel_Tick(t *testing.T) {
	m := tui.NewModel(io.Discard, nil)
	m.TickInterval = time.Millisecond
	cmd := m.Init()
	require.NotNil(t, cmd)

	msg := cmd()
	_, next := m.Update(msg)
	assert.NotNil(t, next, "ticks reschedule themselves")
}
