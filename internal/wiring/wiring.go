// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/vario/internal/adapters/config"
	_ "go.trai.ch/vario/internal/adapters/esbuild"
	_ "go.trai.ch/vario/internal/adapters/fs"
	_ "go.trai.ch/vario/internal/adapters/linear"
	_ "go.trai.ch/vario/internal/adapters/logger"
	_ "go.trai.ch/vario/internal/adapters/metrics"
	_ "go.trai.ch/vario/internal/adapters/size"
	_ "go.trai.ch/vario/internal/adapters/telemetry"
	_ "go.trai.ch/vario/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/vario/internal/app"
	_ "go.trai.ch/vario/internal/engine/pipeline"
)
