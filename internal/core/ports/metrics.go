package ports

import (
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
)

// Metrics records refresh activity.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveCycle records a completed cycle and its duration.
	ObserveCycle(result *domain.RefreshResult, duration time.Duration)
	// ObserveRejection records a rejected cycle start.
	ObserveRejection(reason string)
}
