package forge

import (
	"context"

	"go.trai.ch/forge/internal/core/domain"
)

// Command is a named shell invocation node with its own dependency list.
// A command runs at most once per Run invocation.
type Command = domain.Command

// Command registers a shell command node. The line is executed by the host
// shell as-is.
func (p *Project) Command(name, commandLine string) *Command {
	cmd := &domain.Command{Name: name, CommandLine: commandLine}
	p.registry.AddCommand(cmd)
	return cmd
}

// RunCommand runs a command immediately, outside the build graph walk. Its
// dependencies run first and results are memoized for the rest of the run.
func (p *Project) RunCommand(cmd *Command) error {
	if cmd == nil {
		return nil
	}
	sched := p.newScheduler()
	return sched.RunCommand(context.Background(), cmd)
}

// RegisterSubcommand registers a CLI verb: when Run receives name as its
// first argument it builds target's dependency closure, then runs
// commandLine (if non-empty) or calls callback. Either may be unset.
func (p *Project) RegisterSubcommand(name string, target *Target, commandLine string, callback func() error) {
	sc := &domain.Subcommand{
		Name:        name,
		CommandLine: commandLine,
		Callback:    callback,
	}
	if target != nil {
		sc.Target = target.t
	}
	p.registry.AddSubcommand(sc)
}
