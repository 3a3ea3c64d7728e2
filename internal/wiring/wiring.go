// Package wiring registers all Graft nodes for the forge driver binary.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/forge/internal/adapters/fs"
	_ "go.trai.ch/forge/internal/adapters/logger"
	_ "go.trai.ch/forge/internal/adapters/shell"
	_ "go.trai.ch/forge/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/forge/internal/app"
)
