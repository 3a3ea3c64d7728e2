// Package forge is an in-process build orchestrator for C projects. The
// embedding program is the build script: it declares executables, libraries
// and commands, wires them into a dependency graph, and calls Run to
// compile, archive and link artifacts incrementally.
//
//	p := forge.New()
//	lib := p.StaticLibrary("math")
//	lib.AddSource("math.c")
//	exe := p.Executable("calc")
//	exe.AddSource("calc.c")
//	exe.LinkTarget(lib)
//	if err := p.Run(os.Args[1:]); err != nil {
//		os.Exit(1)
//	}
package forge

import (
	"io"
	"os"

	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/adapters/logger"
	"go.trai.ch/forge/internal/adapters/shell"
	"go.trai.ch/forge/internal/adapters/telemetry"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/compiledb"
	"go.trai.ch/forge/internal/engine/subproject"
)

// Project owns one build graph and its settings. There is one graph per
// Project; create it once at the top of the build script.
type Project struct {
	registry *domain.Registry
	settings *domain.Settings
	index    *compiledb.Index

	exec     ports.Executor
	logger   ports.Logger
	resolver ports.InputResolver
	tel      ports.Telemetry
	subs     *subproject.Manager

	out io.Writer
}

// Option customizes a Project at construction.
type Option func(*Project)

// WithExecutor replaces the shell executor.
func WithExecutor(exec ports.Executor) Option {
	return func(p *Project) { p.exec = exec }
}

// WithLogger replaces the logger.
func WithLogger(log ports.Logger) Option {
	return func(p *Project) { p.logger = log }
}

// WithResolver replaces the input pattern resolver.
func WithResolver(r ports.InputResolver) Option {
	return func(p *Project) { p.resolver = r }
}

// WithTelemetry replaces the telemetry recorder.
func WithTelemetry(tel ports.Telemetry) Option {
	return func(p *Project) { p.tel = tel }
}

// WithOutput redirects the step printer and the manifest stream. Defaults
// to stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Project) { p.out = w }
}

// New creates an empty Project with default adapters: /bin/sh execution,
// slog logging to stderr, doublestar globbing and no telemetry.
func New(opts ...Option) *Project {
	p := &Project{
		registry: domain.NewRegistry(),
		settings: &domain.Settings{},
		index:    compiledb.NewIndex(),
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.New()
	}
	if p.exec == nil {
		p.exec = shell.NewExecutor(p.logger)
	}
	if p.resolver == nil {
		p.resolver = fs.NewResolver()
	}
	if p.tel == nil {
		p.tel = telemetry.NewNoOp()
	}
	p.subs = subproject.NewManager(p.exec, p.logger)
	return p
}

// SetOutputDir sets the base directory for all build artifacts. Default is
// "build".
func (p *Project) SetOutputDir(dir string) {
	if dir == "" {
		return
	}
	p.settings.OutputDir = dir
}

// SetParallelism sets the number of concurrent compile jobs. Defaults to
// the detected CPU count.
func (p *Project) SetParallelism(jobs int) {
	p.settings.Parallelism = jobs
}

// SetCompiler selects the C compiler. Names containing "cl" but not "clang"
// select the MSVC toolchain family and switch the archiver to lib.
func (p *Project) SetCompiler(exe string) {
	if exe == "" {
		return
	}
	p.settings.SetCompiler(exe)
}

// AddGlobalCFlags appends compiler flags applied to every target without a
// cflags override.
func (p *Project) AddGlobalCFlags(flags string) {
	p.settings.AppendGlobalCFlags(flags)
}

// AddGlobalLDFlags appends linker flags applied to every executable and
// shared library.
func (p *Project) AddGlobalLDFlags(flags string) {
	p.settings.AppendGlobalLDFlags(flags)
}

// AddGlobalDefine records a preprocessor macro for all targets.
func (p *Project) AddGlobalDefine(macro string) {
	p.settings.AddGlobalDefine(macro)
}

// AddGlobalDefineVal records a NAME=VALUE macro for all targets.
func (p *Project) AddGlobalDefineVal(macro, value string) {
	p.settings.AddGlobalDefineValue(macro, value)
}

// SetGlobalFlag records a boolean feature macro for all targets.
func (p *Project) SetGlobalFlag(flag string, on bool) {
	p.settings.SetGlobalFlag(flag, on)
}

// EnableCompileCommands toggles generation of compile_commands.json under
// the output directory.
func (p *Project) EnableCompileCommands(enabled bool) {
	p.settings.CompileCommands = enabled
}

// EnableDepTracking toggles the dependency tracking hint. Dependency stubs
// are informational; the freshness oracle consults source mtimes only.
func (p *Project) EnableDepTracking(enabled bool) {
	p.settings.DepTracking = enabled
}
