package config

// File represents the structure of the forge.yaml project file consumed by
// the forge driver binary.
type File struct {
	Version     string                   `yaml:"version"`
	Settings    SettingsDTO              `yaml:"settings"`
	Targets     map[string]TargetDTO     `yaml:"targets"`
	Commands    map[string]CommandDTO    `yaml:"commands"`
	Subprojects map[string]SubprojectDTO `yaml:"subprojects"`
	Subcommands map[string]SubcommandDTO `yaml:"subcommands"`
}

// SettingsDTO carries the global build settings.
type SettingsDTO struct {
	OutputDir       string   `yaml:"output_dir"`
	Compiler        string   `yaml:"compiler"`
	CFlags          string   `yaml:"cflags"`
	LDFlags         string   `yaml:"ldflags"`
	Defines         []string `yaml:"defines"`
	Parallelism     int      `yaml:"parallelism"`
	CompileCommands bool     `yaml:"compile_commands"`
	DepTracking     bool     `yaml:"dep_tracking"`
}

// TargetDTO represents one target definition.
type TargetDTO struct {
	Kind          string   `yaml:"kind"`
	Sources       []string `yaml:"sources"`
	IncludeDirs   []string `yaml:"include_dirs"`
	LibraryDirs   []string `yaml:"library_dirs"`
	LinkLibraries []string `yaml:"link_libraries"`
	LinkTargets   []string `yaml:"link_targets"`
	Defines       []string `yaml:"defines"`
	CFlags        string   `yaml:"cflags"`
	LDFlags       string   `yaml:"ldflags"`
	PreCommands   []string `yaml:"pre_commands"`
	PostCommands  []string `yaml:"post_commands"`
}

// CommandDTO represents one command node.
type CommandDTO struct {
	Run       string   `yaml:"run"`
	DependsOn []string `yaml:"depends_on"`
}

// SubprojectDTO represents one subproject declaration.
type SubprojectDTO struct {
	Directory string `yaml:"directory"`
	Driver    string `yaml:"driver"`
}

// SubcommandDTO represents one registered CLI subcommand.
type SubcommandDTO struct {
	Target string `yaml:"target"`
	Run    string `yaml:"run"`
}
