package subproject

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// BuildCommandLine returns the shell line that builds a subproject: change
// into its directory and invoke its driver with no arguments.
func BuildCommandLine(dir, exe string) string {
	return driverLine(dir, exe, "")
}

func manifestCommandLine(dir, exe string) string {
	return driverLine(dir, exe, "--manifest")
}

func cleanCommandLine(dir, exe string) string {
	return driverLine(dir, exe, "clean")
}

func driverLine(dir, exe, verb string) string {
	var line string
	if runtime.GOOS == "windows" {
		line = fmt.Sprintf(`cd /d "%s" && "%s"`, dir, exe)
	} else {
		line = fmt.Sprintf(`cd '%s' && '%s'`, dir, exe)
	}
	if verb != "" {
		line += " " + verb
	}
	return line
}

// joinPath joins a subproject directory with a manifest-relative path using
// forward slashes, matching the manifest wire format.
func joinPath(dir, rel string) string {
	if dir == "" {
		return rel
	}
	if strings.HasSuffix(dir, "/") || strings.HasSuffix(dir, `\`) {
		return dir + rel
	}
	return dir + "/" + rel
}

// Manager drives the subproject protocol: manifest queries, proxy target
// creation and recursive cleans.
type Manager struct {
	exec   ports.Executor
	logger ports.Logger
}

// NewManager creates a Manager.
func NewManager(exec ports.Executor, logger ports.Logger) *Manager {
	return &Manager{exec: exec, logger: logger}
}

// LoadManifest lazily queries the subproject's driver with --manifest and
// fills sub.Targets. A failed query logs a warning and leaves the manifest
// unloaded, so the next lookup queries again; until a query succeeds the
// subproject has no records and lookups return absent.
func (m *Manager) LoadManifest(ctx context.Context, sub *domain.Subproject) error {
	if sub.ManifestLoaded {
		return nil
	}
	out, err := m.exec.Capture(ctx, manifestCommandLine(sub.Dir, sub.DriverExe))
	if err != nil {
		m.logger.Warn("failed to get manifest from subproject " + sub.Alias)
		return zerr.With(zerr.Wrap(err, "manifest query failed"), "subproject", sub.Alias)
	}
	for _, rec := range ParseManifest(bytes.NewReader(out)) {
		sub.Targets = append(sub.Targets, &domain.SubprojectTarget{
			Name:    rec.Name,
			Kind:    rec.Kind,
			RelPath: rec.RelPath,
		})
	}
	sub.ManifestLoaded = true
	return nil
}

// GetTarget returns the cached proxy target for the named subproject
// artifact, creating and registering it on first lookup. The proxy's sole
// pre-command is the subproject build command, so linking against it builds
// the subproject first.
func (m *Manager) GetTarget(ctx context.Context, reg *domain.Registry, sub *domain.Subproject, name string) (*domain.Target, error) {
	if err := m.LoadManifest(ctx, sub); err != nil {
		return nil, zerr.With(domain.ErrManifestUnavailable, "cause", err.Error())
	}
	rec := sub.FindTarget(name)
	if rec == nil {
		return nil, zerr.With(zerr.With(domain.ErrSubprojectTargetNotFound,
			"subproject", sub.Alias), "target", name)
	}
	if rec.Proxy != nil {
		return rec.Proxy, nil
	}
	proxy := &domain.Target{
		Kind:        domain.KindProxy,
		Name:        sub.Alias + "_" + rec.Name,
		ProxyKind:   rec.Kind,
		ProxyOutput: joinPath(sub.Dir, rec.RelPath),
	}
	proxy.AddPreCommand(sub.BuildCmd)
	if err := reg.AddTarget(proxy); err != nil {
		return nil, err
	}
	rec.Proxy = proxy
	return proxy, nil
}

// CleanAll invokes each subproject's driver with clean. Failures are
// warnings, never fatal.
func (m *Manager) CleanAll(ctx context.Context, subs []*domain.Subproject) {
	for _, sub := range subs {
		if err := m.exec.Run(ctx, cleanCommandLine(sub.Dir, sub.DriverExe)); err != nil {
			m.logger.Warn("failed to clean subproject " + sub.Alias)
		}
	}
}
