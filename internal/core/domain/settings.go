package domain

import (
	"runtime"
	"strings"
)

// Settings holds the process-wide build configuration.
type Settings struct {
	OutputDir   string
	Parallelism int

	Compiler string
	Archiver string
	Linker   string

	GlobalCFlags  string
	GlobalLDFlags string
	GlobalDefines []string

	CompileCommands bool
	// DepTracking is an exposed knob with no enforcement in the build flow;
	// .d stubs are written under MSVC regardless.
	DepTracking bool
}

// MSVCLike reports whether a compiler name selects the MSVC toolchain
// family: it contains "cl" but not "clang".
func MSVCLike(compiler string) bool {
	return strings.Contains(compiler, "cl") && !strings.Contains(compiler, "clang")
}

// SetCompiler records the compiler and switches the archiver to match its
// family. A name containing "clang" leaves the archiver untouched.
func (s *Settings) SetCompiler(exe string) {
	s.Compiler = exe
	if MSVCLike(exe) {
		s.Archiver = "lib"
	} else if !strings.Contains(exe, "cl") {
		s.Archiver = "ar"
	}
}

// AppendGlobalCFlags appends flags to the global compiler flags.
func (s *Settings) AppendGlobalCFlags(flags string) {
	if flags == "" {
		return
	}
	if s.GlobalCFlags == "" {
		s.GlobalCFlags = flags
		return
	}
	s.GlobalCFlags += " " + flags
}

// AppendGlobalLDFlags appends flags to the global linker flags.
func (s *Settings) AppendGlobalLDFlags(flags string) {
	if flags == "" {
		return
	}
	if s.GlobalLDFlags == "" {
		s.GlobalLDFlags = flags
		return
	}
	s.GlobalLDFlags += " " + flags
}

// AddGlobalDefine records a process-wide preprocessor macro.
func (s *Settings) AddGlobalDefine(macro string) {
	if macro == "" {
		return
	}
	s.GlobalDefines = append(s.GlobalDefines, macro)
}

// AddGlobalDefineValue records a process-wide NAME=VALUE macro.
func (s *Settings) AddGlobalDefineValue(macro, value string) {
	if macro == "" {
		return
	}
	s.GlobalDefines = append(s.GlobalDefines, macro+"="+value)
}

// SetGlobalFlag records a process-wide boolean feature macro.
func (s *Settings) SetGlobalFlag(flag string, on bool) {
	if on {
		s.AddGlobalDefineValue(flag, "1")
	} else {
		s.AddGlobalDefineValue(flag, "0")
	}
}

// ApplyDefaults fills unset fields. The CC environment variable is
// deliberately not consulted; SetCompiler wins.
func (s *Settings) ApplyDefaults() {
	if s.OutputDir == "" {
		s.OutputDir = "build"
	}
	if s.Compiler == "" {
		s.Compiler = "cc"
	}
	if s.Archiver == "" {
		s.Archiver = "ar"
	}
	if s.Linker == "" {
		if runtime.GOOS == "windows" {
			s.Linker = "ld"
		} else {
			// The compiler drives the link on macOS and Linux.
			s.Linker = s.Compiler
		}
	}
	if s.Parallelism <= 0 {
		n := runtime.NumCPU()
		if n < 1 {
			n = 1
		}
		s.Parallelism = n
	}
}
