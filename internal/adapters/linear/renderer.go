// Package linear provides a synchronous, line oriented renderer for pipes, CI and the one-shot refresh.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/ui/output"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/ui/style"
	"github.com/muesli/termenv"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer with chronological lines.
// Progress goes to stderr; reports go to stdout.
type Renderer struct {
	stdout   io.Writer
	stderr   io.Writer
	progress *termenv.Output
	report   *termenv.Output

	mu    sync.Mutex
	steps map[string]stepState
}

type stepState struct {
	name      string
	parentID  string
	startTime time.Time
	// attention counts systems below a cycle that are outdated or unknown.
	attention int
}

// NewRenderer creates a Renderer. Nil writers default to the process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:   stdout,
		stderr:   stderr,
		progress: output.NewWithProfile(stderr, output.ColorProfileANSI),
		report:   output.NewWithProfile(stdout, func() termenv.Profile { return output.ProfileFor(stdout) }),
		steps:    make(map[string]stepState),
	}
}

// Start is a no-op for the linear renderer.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop forgets steps that never completed.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.steps)
	return nil
}

// Wait is a no-op for the linear renderer.
func (r *Renderer) Wait() error {
	return nil
}

// OnStepStart announces a cycle. System steps are only reported when they fail.
func (r *Renderer) OnStepStart(spanID, parentID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.steps[spanID] = stepState{name: name, parentID: parentID, startTime: startTime}
	if parentID != "" {
		return
	}
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", r.prefix(name))
}

// OnStepComplete prints the outcome of a cycle, or the failure of a system step.
// A failed system line names the class the system ended up with.
func (r *Renderer) OnStepComplete(spanID string, endTime time.Time, outcome ports.StepOutcome, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}
	delete(r.steps, spanID)

	if parent, ok := r.steps[step.parentID]; ok && outcome.Classified && outcome.Class.NeedsAttention() {
		parent.attention++
		r.steps[step.parentID] = parent
	}

	duration := endTime.Sub(step.startTime).Round(time.Millisecond)
	switch {
	case err != nil:
		symbol := r.progress.String(style.Cross).Foreground(termenv.ANSIRed).String()
		line := fmt.Sprintf("%s %s Failed after %v: %v", r.prefix(step.name), symbol, duration, err)
		if outcome.Classified {
			line += r.progress.String(fmt.Sprintf(" (%s, coordinates %s)", outcome.Class, outcome.Coordinates)).Faint().String()
		}
		_, _ = fmt.Fprintln(r.stderr, line)
	case step.parentID == "":
		symbol := r.progress.String(style.Check).Foreground(termenv.ANSIGreen).String()
		line := fmt.Sprintf("%s %s Completed in %v", r.prefix(step.name), symbol, duration)
		if step.attention > 0 {
			line += fmt.Sprintf(", %d need attention", step.attention)
		}
		_, _ = fmt.Fprintln(r.stderr, line)
	}
}

// OnResult writes the report for result to stdout.
func (r *Renderer) OnResult(result *domain.RefreshResult) {
	if result == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := WriteReport(r.stdout, r.report, result); err != nil {
		_, _ = fmt.Fprintf(r.stderr, "failed to write report: %v\n", err)
	}
}

// OnNotice prints msg to stderr.
func (r *Renderer) OnNotice(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	symbol := r.progress.String(style.Warning).Foreground(termenv.ANSIYellow).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s\n", symbol, msg)
}

// prefix must be called with r.mu held.
func (r *Renderer) prefix(name string) string {
	return r.progress.String(fmt.Sprintf("[%s]", name)).Faint().String()
}
