package ports

import "github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"

// ConfigLoader defines the interface for loading the runtime configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads edppm.yaml from dataDir, applies defaults and validates the result.
	// A missing file yields the defaults.
	Load(dataDir string) (*domain.Config, error)
}
