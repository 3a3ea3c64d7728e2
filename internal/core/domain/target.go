// Package domain contains the core model of the build graph: targets,
// commands, subprojects and the process-wide registry and settings.
package domain

import (
	"path"
	"runtime"
	"strings"
)

// TargetKind classifies what artifact a target produces.
type TargetKind int

const (
	// KindExecutable produces a runnable binary.
	KindExecutable TargetKind = iota
	// KindStaticLibrary produces an archive (.a / .lib).
	KindStaticLibrary
	// KindSharedLibrary produces a shared object (.so / .dylib / .dll).
	KindSharedLibrary
	// KindProxy stands in for an artifact built by a subproject. A proxy
	// owns no sources; it is materialized by running its pre-commands.
	KindProxy
)

// ManifestToken returns the wire token used for this kind in subproject
// manifests. Proxy targets have no token and return "".
func (k TargetKind) ManifestToken() string {
	switch k {
	case KindExecutable:
		return "executable"
	case KindStaticLibrary:
		return "static_lib"
	case KindSharedLibrary:
		return "shared_lib"
	default:
		return ""
	}
}

// ParseTargetKind maps a manifest token back to a kind. ok is false for
// unknown tokens; callers skip those manifest lines.
func ParseTargetKind(token string) (TargetKind, bool) {
	switch token {
	case "executable":
		return KindExecutable, true
	case "static_lib":
		return KindStaticLibrary, true
	case "shared_lib":
		return KindSharedLibrary, true
	default:
		return 0, false
	}
}

// Target is a named node of the build graph producing one artifact.
//
// All attribute slices preserve insertion order; that order is the order in
// which the values reach the toolchain command line.
type Target struct {
	Kind TargetKind
	Name string

	Sources     []string
	IncludeDirs []string
	LibraryDirs []string
	LinkLibs    []string
	// Defines holds preprocessor macros, each "NAME" or "NAME=VALUE".
	Defines []string

	Deps         []*Target
	PreCommands  []*Command
	PostCommands []*Command

	// CFlags, when non-empty, replaces the global cflags for this target's
	// compilations. LDFlags is appended before the global ldflags.
	CFlags  string
	LDFlags string

	// ProxyOutput is the externally managed artifact path of a proxy target,
	// relative to the orchestrator's working directory. Never written by the
	// orchestrator; only its mtime is consulted.
	ProxyOutput string
	// ProxyKind records the artifact kind the subproject reported for a
	// proxy, so the link step knows whether to pass it as a raw path.
	ProxyKind TargetKind
}

// ArtifactFileName returns the platform file name for an artifact of the
// given kind.
func ArtifactFileName(kind TargetKind, name string) string {
	switch kind {
	case KindExecutable:
		if runtime.GOOS == "windows" {
			return name + ".exe"
		}
		return name
	case KindStaticLibrary:
		if runtime.GOOS == "windows" {
			return name + ".lib"
		}
		return "lib" + name + ".a"
	case KindSharedLibrary:
		switch runtime.GOOS {
		case "windows":
			return name + ".dll"
		case "darwin":
			return "lib" + name + ".dylib"
		default:
			return "lib" + name + ".so"
		}
	}
	return name
}

// OutputPath returns the path of the target's final artifact under outputDir.
// Proxy targets return their externally managed path.
func (t *Target) OutputPath(outputDir string) string {
	if t.Kind == KindProxy {
		return t.ProxyOutput
	}
	return path.Join(outputDir, ArtifactFileName(t.Kind, t.Name))
}

// ObjDir returns the directory holding this target's object files. Proxies
// own no objects and return "".
func (t *Target) ObjDir(outputDir string) string {
	if t.Kind == KindProxy {
		return ""
	}
	return path.Join(outputDir, "obj_"+t.Name)
}

// ObjectPath returns the object file path for one source of this target:
// <obj_dir>/<stem>.o, where stem is the source base name without its final
// extension. Stem collisions within one target are undefined.
func (t *Target) ObjectPath(outputDir, source string) string {
	base := path.Base(strings.ReplaceAll(source, "\\", "/"))
	if dot := strings.LastIndexByte(base, '.'); dot > 0 {
		base = base[:dot]
	}
	return path.Join(t.ObjDir(outputDir), base+".o")
}

// LinkableKind resolves the artifact kind relevant to the link step. For a
// proxy this is the kind its subproject reported.
func (t *Target) LinkableKind() TargetKind {
	if t.Kind == KindProxy {
		return t.ProxyKind
	}
	return t.Kind
}

// AddDep declares that dep's artifact is linked into t. Nil arguments are
// ignored.
func (t *Target) AddDep(dep *Target) {
	if t == nil || dep == nil {
		return
	}
	t.Deps = append(t.Deps, dep)
}

// AddPreCommand queues cmd to run before this target's build step.
func (t *Target) AddPreCommand(cmd *Command) {
	if t == nil || cmd == nil {
		return
	}
	t.PreCommands = append(t.PreCommands, cmd)
}

// AddPostCommand queues cmd to run after this target's build step.
func (t *Target) AddPostCommand(cmd *Command) {
	if t == nil || cmd == nil {
		return
	}
	t.PostCommands = append(t.PostCommands, cmd)
}

// AddDefine records a preprocessor macro for this target.
func (t *Target) AddDefine(macro string) {
	if t == nil || macro == "" {
		return
	}
	t.Defines = append(t.Defines, macro)
}

// AddDefineValue records a NAME=VALUE preprocessor macro for this target.
func (t *Target) AddDefineValue(macro, value string) {
	if t == nil || macro == "" {
		return
	}
	t.Defines = append(t.Defines, macro+"="+value)
}

// SetFlag records a boolean feature macro: NAME=1 or NAME=0.
func (t *Target) SetFlag(flag string, on bool) {
	if on {
		t.AddDefineValue(flag, "1")
	} else {
		t.AddDefineValue(flag, "0")
	}
}

// AppendCFlags appends flags to this target's cflags override. Once set, the
// override replaces the global cflags for this target's compilations.
func (t *Target) AppendCFlags(flags string) {
	if t == nil || flags == "" {
		return
	}
	if t.CFlags == "" {
		t.CFlags = flags
		return
	}
	t.CFlags += " " + flags
}

// AppendLDFlags appends flags to this target's linker flags.
func (t *Target) AppendLDFlags(flags string) {
	if t == nil || flags == "" {
		return
	}
	if t.LDFlags == "" {
		t.LDFlags = flags
		return
	}
	t.LDFlags += " " + flags
}
