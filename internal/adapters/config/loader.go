// Package config loads forge.yaml project files and builds the
// corresponding Project for the forge driver binary.
package config

import (
	"os"
	"sort"

	"go.trai.ch/forge"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Load reads a forge.yaml file from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read project file")
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, zerr.Wrap(err, "failed to parse project file")
	}
	return &f, nil
}

// Build registers everything the file declares on a fresh Project. YAML
// mappings are unordered, so entries register in sorted name order for
// deterministic manifests and build order.
func Build(f *File, opts ...forge.Option) (*forge.Project, error) {
	p := forge.New(opts...)

	s := f.Settings
	p.SetOutputDir(s.OutputDir)
	p.SetCompiler(s.Compiler)
	p.AddGlobalCFlags(s.CFlags)
	p.AddGlobalLDFlags(s.LDFlags)
	for _, def := range s.Defines {
		p.AddGlobalDefine(def)
	}
	if s.Parallelism > 0 {
		p.SetParallelism(s.Parallelism)
	}
	p.EnableCompileCommands(s.CompileCommands)
	p.EnableDepTracking(s.DepTracking)

	commands := make(map[string]*forge.Command, len(f.Commands))
	for _, name := range sortedKeys(f.Commands) {
		commands[name] = p.Command(name, f.Commands[name].Run)
	}
	for _, name := range sortedKeys(f.Commands) {
		for _, dep := range f.Commands[name].DependsOn {
			depCmd, ok := commands[dep]
			if !ok {
				return nil, zerr.With(zerr.New("unknown command dependency"), "command", name)
			}
			commands[name].AddDependency(depCmd)
		}
	}

	targets := make(map[string]*forge.Target, len(f.Targets))
	for _, name := range sortedKeys(f.Targets) {
		dto := f.Targets[name]
		var t *forge.Target
		switch dto.Kind {
		case "executable", "":
			t = p.Executable(name)
		case "static_library":
			t = p.StaticLibrary(name)
		case "shared_library":
			t = p.SharedLibrary(name)
		default:
			return nil, zerr.With(zerr.New("unknown target kind"), "target", name)
		}
		for _, src := range dto.Sources {
			t.AddSource(src)
		}
		for _, dir := range dto.IncludeDirs {
			t.AddIncludeDir(dir)
		}
		for _, dir := range dto.LibraryDirs {
			t.AddLibraryDir(dir)
		}
		for _, lib := range dto.LinkLibraries {
			t.AddLinkLibrary(lib)
		}
		for _, def := range dto.Defines {
			t.AddDefine(def)
		}
		t.AddCFlags(dto.CFlags)
		t.AddLDFlags(dto.LDFlags)
		for _, cmd := range dto.PreCommands {
			depCmd, ok := commands[cmd]
			if !ok {
				return nil, zerr.With(zerr.New("unknown pre command"), "target", name)
			}
			t.AddPreCommand(depCmd)
		}
		for _, cmd := range dto.PostCommands {
			depCmd, ok := commands[cmd]
			if !ok {
				return nil, zerr.With(zerr.New("unknown post command"), "target", name)
			}
			t.AddPostCommand(depCmd)
		}
		targets[name] = t
	}

	// Link relations resolve after all targets exist.
	for _, name := range sortedKeys(f.Targets) {
		for _, dep := range f.Targets[name].LinkTargets {
			depTarget, ok := targets[dep]
			if !ok {
				return nil, zerr.With(zerr.With(zerr.New("unknown link target"),
					"target", name), "dependency", dep)
			}
			targets[name].LinkTarget(depTarget)
		}
	}

	for _, alias := range sortedKeys(f.Subprojects) {
		dto := f.Subprojects[alias]
		p.AddSubproject(alias, dto.Directory, dto.Driver)
	}

	for _, name := range sortedKeys(f.Subcommands) {
		dto := f.Subcommands[name]
		p.RegisterSubcommand(name, targets[dto.Target], dto.Run, nil)
	}

	return p, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
