// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "sift/internal/adapters/cache"
	_ "sift/internal/adapters/config"
	_ "sift/internal/adapters/git"
	_ "sift/internal/adapters/logger"
	_ "sift/internal/adapters/shell"
	_ "sift/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "sift/internal/app"
	_ "sift/internal/engine/classify"
	_ "sift/internal/engine/recorder"
	_ "sift/internal/engine/runner"
	_ "sift/internal/engine/selector"
)
