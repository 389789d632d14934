package ports

import "context"

// ProcessDetector reports whether the companion process is running.
//
//go:generate mockgen -source=process.go -destination=mocks/mock_process.go -package=mocks
type ProcessDetector interface {
	Running(ctx context.Context) bool
}
