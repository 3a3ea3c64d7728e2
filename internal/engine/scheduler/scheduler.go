// Package scheduler implements the build driver: a depth-first walk over the
// target graph with cycle detection, incremental freshness decisions and
// bounded-parallel compilation.
package scheduler

import (
	"context"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/toolchain"
	"go.trai.ch/forge/internal/ui/style"
	"go.trai.ch/zerr"
)

// Scheduler walks the target graph and dispatches compilation, archiving,
// linking and command execution.
type Scheduler struct {
	reg      *domain.Registry
	settings *domain.Settings
	tc       *toolchain.Toolchain
	exec     ports.Executor
	logger   ports.Logger
	tel      ports.Telemetry
	out      io.Writer
}

// New creates a Scheduler. The settings must already have defaults applied.
func New(
	reg *domain.Registry,
	settings *domain.Settings,
	tc *toolchain.Toolchain,
	exec ports.Executor,
	logger ports.Logger,
	tel ports.Telemetry,
	out io.Writer,
) *Scheduler {
	if out == nil {
		out = os.Stdout
	}
	return &Scheduler{
		reg:      reg,
		settings: settings,
		tc:       tc,
		exec:     exec,
		logger:   logger,
		tel:      tel,
		out:      out,
	}
}

// walk holds the per-run DFS state. The bit vectors are sized to the
// registry at entry; the registry does not grow during a run.
type walk struct {
	visited []bool
	inStack []bool
	err     error
}

func (w *walk) failed() bool { return w.err != nil }

// BuildAll builds every registered non-proxy target in registration order.
func (s *Scheduler) BuildAll(ctx context.Context) error {
	w := &walk{
		visited: make([]bool, s.reg.Len()),
		inStack: make([]bool, s.reg.Len()),
	}
	for i, t := range s.reg.Targets() {
		if w.visited[i] {
			continue
		}
		s.visitTarget(ctx, w, t)
		if w.failed() {
			break
		}
	}
	return w.err
}

// Build builds the given targets and their dependency closures.
func (s *Scheduler) Build(ctx context.Context, roots ...*domain.Target) error {
	w := &walk{
		visited: make([]bool, s.reg.Len()),
		inStack: make([]bool, s.reg.Len()),
	}
	for _, t := range roots {
		s.visitTarget(ctx, w, t)
		if w.failed() {
			break
		}
	}
	return w.err
}

// RunCommand executes a command node immediately, outside any graph walk,
// honoring its dependency list and memoization.
func (s *Scheduler) RunCommand(ctx context.Context, cmd *domain.Command) error {
	w := &walk{}
	s.visitCommand(ctx, w, cmd)
	return w.err
}

func (s *Scheduler) visitTarget(ctx context.Context, w *walk, t *domain.Target) {
	if w.failed() {
		return
	}
	i := s.reg.IndexOf(t)
	if i < 0 {
		return
	}
	if w.inStack[i] {
		w.err = zerr.With(domain.ErrCycleDetected, "target", t.Name)
		s.logger.Error(w.err)
		return
	}
	if w.visited[i] {
		return
	}
	w.inStack[i] = true
	defer func() { w.inStack[i] = false }()

	for _, cmd := range t.PreCommands {
		s.visitCommand(ctx, w, cmd)
		if w.failed() {
			return
		}
	}
	for _, dep := range t.Deps {
		s.visitTarget(ctx, w, dep)
		if w.failed() {
			return
		}
	}

	vctx, vertex := s.tel.Record(ctx, "build "+t.Name)
	err := s.buildTarget(vctx, t)
	vertex.Complete(err)
	if err != nil {
		w.err = err
		return
	}

	for _, cmd := range t.PostCommands {
		s.visitCommand(ctx, w, cmd)
		if w.failed() {
			return
		}
	}
	w.visited[i] = true
}

// visitCommand runs a command after its transitive dependencies, memoizing
// the result so the command runs at most once per run.
func (s *Scheduler) visitCommand(ctx context.Context, w *walk, cmd *domain.Command) {
	if cmd == nil || w.failed() {
		return
	}
	if cmd.Executed() {
		w.err = cmd.Result()
		return
	}
	for _, dep := range cmd.Dependencies {
		s.visitCommand(ctx, w, dep)
		if w.failed() {
			return
		}
	}
	style.Step(s.out, style.Magenta, "COMMAND", "%s", cmd.Name)
	err := s.exec.Run(ctx, cmd.CommandLine)
	if err != nil {
		err = zerr.With(zerr.With(domain.ErrCommandFailed, "command", cmd.Name),
			"cause", err.Error())
		style.Status(s.out, false, "Command failed: %s", cmd.Name)
	}
	cmd.MarkExecuted(err)
	w.err = err
}

// buildTarget compiles the target's stale sources and relinks when needed.
// Proxy targets are materialized entirely by their pre-commands.
func (s *Scheduler) buildTarget(ctx context.Context, t *domain.Target) error {
	if t.Kind == domain.KindProxy {
		return nil
	}

	objs := make([]string, len(t.Sources))
	var stale []int
	for i, src := range t.Sources {
		objs[i] = t.ObjectPath(s.settings.OutputDir, src)
		if NeedsCompile(src, objs[i]) {
			stale = append(stale, i)
		}
	}

	if len(stale) > 0 {
		if err := fs.EnsureDir(t.ObjDir(s.settings.OutputDir)); err != nil {
			return err
		}
		if err := s.compileAll(ctx, t, objs, stale); err != nil {
			return err
		}
	}

	if !NeedsLink(t, s.settings.OutputDir, objs) {
		return nil
	}
	return s.link(ctx, t, objs)
}

// compileAll compiles the stale sources of one target, at most
// settings.Parallelism at a time. On failure no new jobs start; running
// jobs complete.
func (s *Scheduler) compileAll(ctx context.Context, t *domain.Target, objs []string, stale []int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.settings.Parallelism)
	for _, i := range stale {
		src, obj := t.Sources[i], objs[i]
		g.Go(func() error {
			if gctx.Err() != nil {
				// A sibling already failed; do not start new work.
				return nil
			}
			return s.compile(ctx, t, src, obj)
		})
	}
	return g.Wait()
}

func (s *Scheduler) compile(ctx context.Context, t *domain.Target, src, obj string) error {
	style.Step(s.out, style.Blue, "COMPILE", "%s", src)
	line := s.tc.CompileLine(t, src, obj)
	captured, err := s.exec.Capture(ctx, line)
	if s.tc.Family() == toolchain.FamilyMSVC && len(captured) > 0 {
		stub := toolchain.ScavengeShowIncludes(obj, src, captured)
		if werr := os.WriteFile(obj+".d", stub, 0o644); werr != nil {
			s.logger.Warn("failed to write dependency stub for " + obj)
		}
	}
	if err != nil {
		if len(captured) > 0 {
			_, _ = os.Stderr.Write(captured)
		}
		return zerr.With(zerr.With(domain.ErrCompileFailed, "source", src),
			"cause", err.Error())
	}
	return nil
}

func (s *Scheduler) link(ctx context.Context, t *domain.Target, objs []string) error {
	out := t.OutputPath(s.settings.OutputDir)
	style.Step(s.out, style.Yellow, "LINK", "%s", out)

	var line string
	sentinel := domain.ErrLinkFailed
	if t.Kind == domain.KindStaticLibrary {
		line = s.tc.ArchiveLine(out, objs)
		sentinel = domain.ErrArchiveFailed
	} else {
		line = s.tc.LinkLine(t, out, objs)
	}
	captured, err := s.exec.Capture(ctx, line)
	if err != nil {
		if len(captured) > 0 {
			_, _ = os.Stderr.Write(captured)
		}
		style.Status(s.out, false, "Linking failed for %s", out)
		return zerr.With(zerr.With(sentinel, "output", out), "cause", err.Error())
	}
	return nil
}
