package app

import (
	"context"
	"fmt"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/cache"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
)

// CleanOptions select the cache documents to remove.
type CleanOptions struct {
	Coordinates bool
	Freshness   bool
}

// Clean removes cache documents. Missing documents are not an error.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	layout := cfg.Layout()
	if options.Coordinates {
		a.logger.Info(fmt.Sprintf("removing %s", domain.CoordinateCacheFileName))
	}
	if options.Freshness {
		a.logger.Info(fmt.Sprintf("removing %s", domain.FreshnessCacheFileName))
	}
	return cache.New(layout).Clear(options.Coordinates, options.Freshness)
}
