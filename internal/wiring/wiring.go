// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/decide/internal/adapters/config"
	_ "go.trai.ch/decide/internal/adapters/fs"
	_ "go.trai.ch/decide/internal/adapters/gradle"
	_ "go.trai.ch/decide/internal/adapters/logger"
	_ "go.trai.ch/decide/internal/adapters/queue"
	// Register app nodes.
	_ "go.trai.ch/decide/internal/app"
)
