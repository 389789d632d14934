package tui

import (
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/telemetry"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
)

// headerLines and footerLines frame the scrollable body.
const (
	headerLines = 3
	footerLines = 1
)

type tickMsg time.Time

// Model is the watch view state.
type Model struct {
	Output       *termenv.Output
	Trigger      func()
	Now          func() time.Time
	TickInterval time.Duration
	DisableTick  bool

	Result *domain.RefreshResult

	Refreshing    bool
	CycleSpan     string
	CycleStart    time.Time
	Checked       int
	Failures      int
	Attention     int
	CurrentSystem string

	Notice   string
	NoticeAt time.Time

	Width  int
	Height int
	Offset int

	spans map[string]string
}

// Init starts the clock.
//
//nolint:gocritic // hugeParam ignored
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	if m.DisableTick || m.TickInterval <= 0 {
		return nil
	}
	return tea.Tick(m.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop,gocritic // hugeParam ignored, cyclop ignored
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.spans == nil {
		m.spans = make(map[string]string)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.clampOffset()

	case tickMsg:
		return m, m.tick()

	case telemetry.MsgStepStart:
		if msg.ParentID == "" {
			m.Refreshing = true
			m.CycleSpan = msg.SpanID
			m.CycleStart = msg.StartTime
			m.Checked = 0
			m.Failures = 0
			m.Attention = 0
			m.CurrentSystem = ""
			clear(m.spans)
			break
		}
		m.spans[msg.SpanID] = msg.Name
		m.CurrentSystem = msg.Name

	case telemetry.MsgStepComplete:
		if msg.SpanID == m.CycleSpan {
			m.Refreshing = false
			m.CurrentSystem = ""
			break
		}
		if _, ok := m.spans[msg.SpanID]; !ok {
			break
		}
		delete(m.spans, msg.SpanID)
		m.Checked++
		if msg.Err != nil {
			m.Failures++
		}
		if msg.Outcome.Classified && msg.Outcome.Class.NeedsAttention() {
			m.Attention++
		}

	case telemetry.MsgResult:
		if msg.Result != nil {
			m.Result = msg.Result
			m.clampOffset()
		}

	case telemetry.MsgNotice:
		m.Notice = msg.Text
		m.NoticeAt = m.now()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "r":
		if m.Trigger == nil {
			return nil
		}
		trigger := m.Trigger
		return func() tea.Msg {
			trigger()
			return nil
		}
	case "j", "down":
		m.Offset++
	case "k", "up":
		m.Offset--
	case "g", "home":
		m.Offset = 0
	case "G", "end":
		m.Offset = len(m.bodyRows())
	}
	m.clampOffset()
	return nil
}

func (m *Model) bodyHeight() int {
	return max(m.Height-headerLines-footerLines, 0)
}

func (m *Model) clampOffset() {
	maxOffset := max(len(m.bodyRows())-m.bodyHeight(), 0)
	m.Offset = min(max(m.Offset, 0), maxOffset)
}

func (m *Model) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}
