package forge

import (
	"context"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/engine/subproject"
)

// Subproject is a handle on a sibling directory whose build script speaks
// the manifest protocol.
type Subproject struct {
	s *domain.Subproject
	p *Project
}

// AddSubproject declares a subproject: alias names it, dir is its root and
// driverExe the build-script executable to invoke inside dir.
func (p *Project) AddSubproject(alias, dir, driverExe string) *Subproject {
	sub := &domain.Subproject{
		Alias:     alias,
		Dir:       dir,
		DriverExe: driverExe,
	}
	sub.BuildCmd = p.Command("build subproject "+alias, subproject.BuildCommandLine(dir, driverExe))
	p.registry.AddSubproject(sub)
	return &Subproject{s: sub, p: p}
}

// GetTarget fetches one of the subproject's targets by name, lazily loading
// its manifest. The returned proxy target depends on the subproject build
// and can be linked like any library target. A nil handle is returned when
// the manifest is unavailable or has no such target; mutators on it are
// no-ops.
func (sp *Subproject) GetTarget(name string) (*Target, error) {
	if sp == nil {
		return nil, nil
	}
	proxy, err := sp.p.subs.GetTarget(context.Background(), sp.p.registry, sp.s, name)
	if err != nil {
		sp.p.logger.Warn("subproject " + sp.s.Alias + " has no usable target " + name)
		return nil, err
	}
	return &Target{t: proxy, p: sp.p}, nil
}
