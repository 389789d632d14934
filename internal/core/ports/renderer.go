package ports

import (
	"context"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
)

// Renderer is the abstraction for output rendering.
// It decouples refresh progress and results from presentation,
// so the same event stream drives either the interactive view or linear output.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer. Asynchronous renderers may launch goroutines.
	Start(ctx context.Context) error

	// Stop signals the renderer to finish and flush its output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnStepStart is called when a cycle or a per-system step begins.
	// parentID is empty for the cycle itself.
	OnStepStart(spanID, parentID, name string, startTime time.Time)

	// OnStepComplete is called when a step finishes. err is nil on success.
	// outcome is zero for the cycle step.
	OnStepComplete(spanID string, endTime time.Time, outcome StepOutcome, err error)

	// OnResult is called with every published refresh snapshot.
	OnResult(result *domain.RefreshResult)

	// OnNotice reports a one-line status message, such as a rejected refresh.
	OnNotice(msg string)
}

// StepOutcome is what a per-system step found out.
type StepOutcome struct {
	// Classified is false when the step ended before it was classified.
	Classified bool
	Class      domain.Classification
	// Coordinates is how the coordinate lookup went: cached, hint, fetched or failed.
	Coordinates string
	// Decision is the recheck decision: fetch, fresh or skip.
	Decision string
}
