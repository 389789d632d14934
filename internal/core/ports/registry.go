package ports

import (
	"context"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
)

// SystemRegistry supplies the ordered list of tracked systems.
// It is reloaded at the start of every refresh cycle.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type SystemRegistry interface {
	// Load returns the current registry snapshot. A missing registry is empty, not an error.
	Load(ctx context.Context) (*domain.Registry, error)
}
