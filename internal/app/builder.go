package app

import "go.trai.ch/forge/internal/core/ports"

// Components contains the initialized application components. It provides
// controlled access to what the CLI layer needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NewComponents creates a Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger) *Components {
	return &Components{
		App:    app,
		Logger: logger,
	}
}
