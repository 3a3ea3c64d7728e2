// Package app implements the application layer for the forge driver binary.
package app

import (
	"context"

	"go.trai.ch/forge"
	"go.trai.ch/forge/internal/adapters/config"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// App loads a project file and drives the orchestrator for each CLI verb.
type App struct {
	logger   ports.Logger
	exec     ports.Executor
	tel      ports.Telemetry
	resolver ports.InputResolver
}

// New creates a new App.
func New(logger ports.Logger, exec ports.Executor, tel ports.Telemetry, resolver ports.InputResolver) *App {
	return &App{
		logger:   logger,
		exec:     exec,
		tel:      tel,
		resolver: resolver,
	}
}

func (a *App) load(cfgPath string) (*forge.Project, error) {
	f, err := config.Load(cfgPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load project file")
	}
	p, err := config.Build(f,
		forge.WithLogger(a.logger),
		forge.WithExecutor(a.exec),
		forge.WithTelemetry(a.tel),
		forge.WithResolver(a.resolver),
	)
	if err != nil {
		return nil, zerr.Wrap(err, "invalid project file")
	}
	return p, nil
}

// Build builds the named targets, or everything when targets is empty.
func (a *App) Build(_ context.Context, cfgPath string, targets []string) error {
	p, err := a.load(cfgPath)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return p.Run(nil)
	}
	for _, name := range targets {
		if err := p.Run([]string{name}); err != nil {
			return err
		}
	}
	return nil
}

// Clean removes all build artifacts, cleaning subprojects first.
func (a *App) Clean(_ context.Context, cfgPath string) error {
	p, err := a.load(cfgPath)
	if err != nil {
		return err
	}
	return p.Run([]string{"clean"})
}

// Manifest prints the target manifest to stdout.
func (a *App) Manifest(_ context.Context, cfgPath string) error {
	p, err := a.load(cfgPath)
	if err != nil {
		return err
	}
	return p.Run([]string{"--manifest"})
}
