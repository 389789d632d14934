// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/config"
	_ "github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/daemon"
	_ "github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/logger"
	_ "github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/metrics"
	_ "github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/watcher"
	// Register app nodes.
	_ "github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/app"
)
