package tui

import (
	"context"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/telemetry"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	tea "github.com/charmbracelet/bubbletea"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer wraps the watch model as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewRenderer creates a new TUI renderer.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	program := tea.NewProgram(model, opts...)
	return &Renderer{
		program: program,
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop signals the TUI to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the TUI has terminated, either through Stop or because the user quit.
func (r *Renderer) Wait() error {
	err := <-r.errCh
	r.errCh <- err
	return err
}

// OnStepStart forwards step start events to the TUI.
func (r *Renderer) OnStepStart(spanID, parentID, name string, startTime time.Time) {
	r.program.Send(telemetry.MsgStepStart{
		SpanID:    spanID,
		ParentID:  parentID,
		Name:      name,
		StartTime: startTime,
	})
}

// OnStepComplete forwards step completion events to the TUI.
func (r *Renderer) OnStepComplete(spanID string, endTime time.Time, outcome ports.StepOutcome, err error) {
	r.program.Send(telemetry.MsgStepComplete{
		SpanID:  spanID,
		EndTime: endTime,
		Outcome: outcome,
		Err:     err,
	})
}

// OnResult forwards a published snapshot to the TUI.
func (r *Renderer) OnResult(result *domain.RefreshResult) {
	r.program.Send(telemetry.MsgResult{Result: result})
}

// OnNotice forwards a status message to the TUI.
func (r *Renderer) OnNotice(msg string) {
	r.program.Send(telemetry.MsgNotice{Text: msg})
}

// Program returns the underlying tea.Program for testing.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
