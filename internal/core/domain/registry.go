package domain

import "go.trai.ch/zerr"

// Subcommand is a user-registered CLI verb: build the associated target's
// closure, then run the shell line or the callback.
type Subcommand struct {
	Name        string
	Target      *Target
	CommandLine string
	Callback    func() error
}

// Registry owns every target, command, subproject and subcommand of one
// orchestrator instance. Iteration order equals registration order.
type Registry struct {
	targets     []*Target
	commands    []*Command
	subprojects []*Subproject
	subcommands []*Subcommand
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// AddTarget appends a target. Target names are unique; a duplicate name is
// rejected with ErrTargetExists.
func (r *Registry) AddTarget(t *Target) error {
	if existing := r.FindTarget(t.Name); existing != nil {
		return zerr.With(ErrTargetExists, "target", t.Name)
	}
	r.targets = append(r.targets, t)
	return nil
}

// Targets returns all targets in registration order.
func (r *Registry) Targets() []*Target {
	return r.targets
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	return len(r.targets)
}

// IndexOf locates a target in the registry, or -1.
func (r *Registry) IndexOf(t *Target) int {
	for i, cand := range r.targets {
		if cand == t {
			return i
		}
	}
	return -1
}

// FindTarget returns the target with the given name, or nil.
func (r *Registry) FindTarget(name string) *Target {
	for _, t := range r.targets {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// AddCommand appends a command node.
func (r *Registry) AddCommand(c *Command) {
	if c == nil {
		return
	}
	r.commands = append(r.commands, c)
}

// Commands returns all commands in registration order.
func (r *Registry) Commands() []*Command {
	return r.commands
}

// AddSubproject appends a subproject.
func (r *Registry) AddSubproject(s *Subproject) {
	if s == nil {
		return
	}
	r.subprojects = append(r.subprojects, s)
}

// Subprojects returns all subprojects in registration order.
func (r *Registry) Subprojects() []*Subproject {
	return r.subprojects
}

// AddSubcommand registers a CLI subcommand.
func (r *Registry) AddSubcommand(sc *Subcommand) {
	if sc == nil || sc.Name == "" {
		return
	}
	r.subcommands = append(r.subcommands, sc)
}

// FindSubcommand returns the subcommand with the given name, or nil.
func (r *Registry) FindSubcommand(name string) *Subcommand {
	for _, sc := range r.subcommands {
		if sc.Name == name {
			return sc
		}
	}
	return nil
}

// ResetExecution clears command memoization at the start of a run.
func (r *Registry) ResetExecution() {
	for _, c := range r.commands {
		c.ResetExecution()
	}
}
