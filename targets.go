package forge

import (
	"strings"

	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/core/domain"
)

// Target is a handle on one build target. Mutators on a nil handle are
// no-ops, so a failed subproject lookup can be threaded through without
// guarding every call.
type Target struct {
	t *domain.Target
	p *Project
}

// Name returns the target's registered name.
func (t *Target) Name() string {
	if t == nil {
		return ""
	}
	return t.t.Name
}

// OutputPath returns the path of the target's final artifact, derived from
// the current output directory setting.
func (t *Target) OutputPath() string {
	if t == nil {
		return ""
	}
	dir := t.p.settings.OutputDir
	if dir == "" {
		dir = "build"
	}
	return t.t.OutputPath(dir)
}

func (p *Project) newTarget(name string, kind domain.TargetKind) *Target {
	if existing := p.registry.FindTarget(name); existing != nil {
		p.logger.Warn("target already registered: " + name)
		return &Target{t: existing, p: p}
	}
	t := &domain.Target{Kind: kind, Name: name}
	// Names were checked above, so registration cannot fail.
	_ = p.registry.AddTarget(t)
	return &Target{t: t, p: p}
}

// Executable registers a new executable target.
func (p *Project) Executable(name string) *Target {
	return p.newTarget(name, domain.KindExecutable)
}

// StaticLibrary registers a new static library target. On Unix the lib
// prefix and .a extension are added to the artifact name.
func (p *Project) StaticLibrary(name string) *Target {
	return p.newTarget(name, domain.KindStaticLibrary)
}

// SharedLibrary registers a new shared library target with the platform
// extension (.so, .dylib or .dll).
func (p *Project) SharedLibrary(name string) *Target {
	return p.newTarget(name, domain.KindSharedLibrary)
}

// AddSource adds a source file to the target. Glob patterns (including **)
// are expanded at registration time; a pattern or literal path matching no
// existing file logs a warning and the target proceeds with what matched.
func (t *Target) AddSource(pattern string) {
	if t == nil || pattern == "" {
		return
	}
	matches, err := t.p.resolver.Expand(pattern)
	if err != nil {
		t.p.logger.Warn("failed to expand source pattern " + pattern)
		return
	}
	added := 0
	for _, m := range matches {
		if !fs.FileExists(m) {
			t.p.logger.Warn("source file not found: " + m)
			continue
		}
		t.t.Sources = append(t.t.Sources, m)
		added++
	}
	if added == 0 {
		t.p.logger.Warn("no files found matching pattern " + pattern)
	}
}

// AddIncludeDir adds an include directory, passed to the compiler as -I or
// /I. Glob patterns expand to the matching directories.
func (t *Target) AddIncludeDir(pattern string) {
	t.addDirs(pattern, &t.t.IncludeDirs)
}

// AddLibraryDir adds a library search directory for the link phase, passed
// as -L or /LIBPATH.
func (t *Target) AddLibraryDir(pattern string) {
	t.addDirs(pattern, &t.t.LibraryDirs)
}

func (t *Target) addDirs(pattern string, dst *[]string) {
	if t == nil || pattern == "" {
		return
	}
	matches, err := t.p.resolver.Expand(pattern)
	if err != nil {
		t.p.logger.Warn("failed to expand directory pattern " + pattern)
		return
	}
	isGlob := strings.ContainsAny(pattern, "*?[{")
	added := 0
	for _, m := range matches {
		if isGlob && !fs.DirExists(m) {
			continue
		}
		*dst = append(*dst, m)
		added++
	}
	if added == 0 {
		t.p.logger.Warn("no directories found matching pattern " + pattern)
	}
}

// AddLinkLibrary links an external library by name: -l<name> on GCC-like
// toolchains, <name>.lib on MSVC.
func (t *Target) AddLinkLibrary(name string) {
	if t == nil || name == "" {
		return
	}
	t.t.LinkLibs = append(t.t.LinkLibs, name)
}

// LinkTarget declares that dep's artifact is linked into t; dep builds
// first.
func (t *Target) LinkTarget(dep *Target) {
	if t == nil || dep == nil {
		return
	}
	t.t.AddDep(dep.t)
}

// AddPreCommand queues cmd to run before this target's build step.
func (t *Target) AddPreCommand(cmd *Command) {
	if t == nil {
		return
	}
	t.t.AddPreCommand(cmd)
}

// AddPostCommand queues cmd to run after this target's build step.
func (t *Target) AddPostCommand(cmd *Command) {
	if t == nil {
		return
	}
	t.t.AddPostCommand(cmd)
}

// AddCFlags appends flags to this target's cflags override. A target with
// an override ignores the global cflags entirely.
func (t *Target) AddCFlags(flags string) {
	if t == nil {
		return
	}
	t.t.AppendCFlags(flags)
}

// AddLDFlags appends per-target linker flags.
func (t *Target) AddLDFlags(flags string) {
	if t == nil {
		return
	}
	t.t.AppendLDFlags(flags)
}

// AddDefine records a preprocessor macro for this target.
func (t *Target) AddDefine(macro string) {
	if t == nil {
		return
	}
	t.t.AddDefine(macro)
}

// AddDefineVal records a NAME=VALUE macro for this target.
func (t *Target) AddDefineVal(macro, value string) {
	if t == nil {
		return
	}
	t.t.AddDefineValue(macro, value)
}

// SetFlag records a boolean feature macro: NAME=1 or NAME=0.
func (t *Target) SetFlag(flag string, on bool) {
	if t == nil {
		return
	}
	t.t.SetFlag(flag, on)
}
