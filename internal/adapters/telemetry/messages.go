package telemetry

import (
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
)

// MsgStepStart indicates a new step (span) has started.
type MsgStepStart struct {
	SpanID    string
	ParentID  string // May be empty if root
	Name      string
	StartTime time.Time
}

// MsgStepComplete indicates a step (span) has finished.
type MsgStepComplete struct {
	SpanID  string
	EndTime time.Time
	Outcome ports.StepOutcome
	Err     error
}

// MsgResult carries a published refresh snapshot.
type MsgResult struct {
	Result *domain.RefreshResult
}

// MsgNotice carries a one-line status message.
type MsgNotice struct {
	Text string
}
