package forge

import (
	"context"
	"path"

	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/engine/scheduler"
	"go.trai.ch/forge/internal/engine/subproject"
	"go.trai.ch/forge/internal/engine/toolchain"
	"go.trai.ch/forge/internal/ui/style"
)

func (p *Project) newScheduler() *scheduler.Scheduler {
	p.settings.ApplyDefaults()
	tc := toolchain.New(p.settings)
	return scheduler.New(p.registry, p.settings, tc, p.exec, p.logger, p.tel, p.out)
}

// Run executes the build process. args are the program arguments after the
// executable name:
//
//   - no argument: build every registered target in registration order
//   - "clean": clean subprojects, then remove all artifacts
//   - "--manifest": print the target manifest to the output stream and stop
//   - a registered subcommand: build its target's closure, then run it
//   - a target name: build only that target's dependency closure
//
// Anything else falls through to a full build. The returned error is nil on
// success; the embedding script maps it to its exit status.
func (p *Project) Run(args []string) error {
	ctx := context.Background()
	p.settings.ApplyDefaults()
	tc := toolchain.New(p.settings)

	p.registry.ResetExecution()
	p.index.Reset()
	if p.settings.CompileCommands {
		// Collected before any build so the index is valid even on failure.
		if cwd, err := fs.Cwd(); err == nil {
			for _, t := range p.registry.Targets() {
				if t.Kind != domain.KindProxy {
					p.index.CollectTarget(tc, p.settings, t, cwd)
				}
			}
		} else {
			p.logger.Warn("skipping compile-commands collection: " + err.Error())
		}
	}

	sched := scheduler.New(p.registry, p.settings, tc, p.exec, p.logger, p.tel, p.out)

	if len(args) > 0 {
		switch verb := args[0]; verb {
		case "--manifest":
			subproject.EmitManifest(p.out, p.registry, p.settings)
			return nil
		case "clean":
			return p.clean(ctx)
		default:
			if sc := p.registry.FindSubcommand(verb); sc != nil {
				return p.runSubcommand(ctx, sched, sc)
			}
			if t := p.registry.FindTarget(verb); t != nil {
				return p.finishBuild(sched.Build(ctx, t))
			}
			// Unknown verbs fall through to a full build.
		}
	}
	return p.finishBuild(sched.BuildAll(ctx))
}

func (p *Project) runSubcommand(ctx context.Context, sched *scheduler.Scheduler, sc *domain.Subcommand) error {
	if sc.Target != nil {
		if err := sched.Build(ctx, sc.Target); err != nil {
			style.Status(p.out, false, "Build failed.")
			return err
		}
	}
	switch {
	case sc.CommandLine != "":
		style.Step(p.out, style.Blue, "SUBCMD", "Running '%s': %s", sc.Name, sc.CommandLine)
		return p.exec.Run(ctx, sc.CommandLine)
	case sc.Callback != nil:
		style.Step(p.out, style.Blue, "SUBCMD", "Running '%s' (callback)...", sc.Name)
		return sc.Callback()
	}
	return nil
}

func (p *Project) finishBuild(err error) error {
	if err != nil {
		style.Status(p.out, false, "Build failed.")
		return err
	}
	if p.settings.CompileCommands {
		idx := path.Join(p.settings.OutputDir, "compile_commands.json")
		if werr := p.index.WriteFile(idx); werr != nil {
			p.logger.Warn("failed to write " + idx)
		}
	}
	style.Status(p.out, true, "Build succeeded.")
	return nil
}

func (p *Project) clean(ctx context.Context) error {
	style.Step(p.out, style.Yellow, "CLEAN", "Cleaning build outputs...")
	for _, sub := range p.registry.Subprojects() {
		style.Step(p.out, style.Yellow, "CLEAN", "Cleaning subproject: %s", sub.Alias)
	}
	p.subs.CleanAll(ctx, p.registry.Subprojects())

	for _, t := range p.registry.Targets() {
		if t.Kind == domain.KindProxy {
			// Proxy artifacts are owned by their subproject.
			continue
		}
		if dir := t.ObjDir(p.settings.OutputDir); dir != "" {
			_ = fs.RemoveDir(dir)
		}
		_ = fs.RemoveFile(t.OutputPath(p.settings.OutputDir))
	}
	_ = fs.RemoveDir(p.settings.OutputDir)
	style.Status(p.out, true, "Clean complete.")
	return nil
}
