// Package toolchain synthesizes compiler, archiver and linker command lines
// from a target plus the global settings, parametrized by compiler family.
package toolchain

import (
	"strings"

	"go.trai.ch/forge/internal/core/domain"
)

// Family selects the argument dialect of the toolchain.
type Family int

const (
	// FamilyGCC covers gcc, clang, cc and everything else GNU-shaped.
	FamilyGCC Family = iota
	// FamilyMSVC covers cl.exe and friends.
	FamilyMSVC
)

// Detect picks the family from a compiler name: names containing "cl" but
// not "clang" are MSVC-like.
func Detect(compiler string) Family {
	if domain.MSVCLike(compiler) {
		return FamilyMSVC
	}
	return FamilyGCC
}

// Toolchain is a pure command-line synthesizer. The family is chosen once
// from the settings at construction.
type Toolchain struct {
	settings *domain.Settings
	family   Family
}

// New creates a Toolchain for the given settings. ApplyDefaults must have
// run on the settings first.
func New(settings *domain.Settings) *Toolchain {
	return &Toolchain{
		settings: settings,
		family:   Detect(settings.Compiler),
	}
}

// Family returns the detected compiler family.
func (tc *Toolchain) Family() Family {
	return tc.family
}

// CompileLine builds the shell line compiling src into obj for target t.
// The exact same line is recorded in the compile-commands index.
func (tc *Toolchain) CompileLine(t *domain.Target, src, obj string) string {
	var b strings.Builder
	b.WriteString(`"` + tc.settings.Compiler + `" `)
	if tc.family == FamilyMSVC {
		b.WriteString(`/c /nologo /Fo"` + obj + `" `)
		b.WriteString("/showIncludes ")
	} else {
		b.WriteString(`-c -o "` + obj + `" `)
	}
	if t.CFlags != "" {
		b.WriteString(t.CFlags + " ")
	} else if tc.settings.GlobalCFlags != "" {
		b.WriteString(tc.settings.GlobalCFlags + " ")
	}
	for _, inc := range t.IncludeDirs {
		if tc.family == FamilyMSVC {
			b.WriteString(`/I "` + inc + `" `)
		} else {
			b.WriteString(`-I"` + inc + `" `)
		}
	}
	for _, def := range tc.settings.GlobalDefines {
		b.WriteString(tc.defineFlag(def))
	}
	for _, def := range t.Defines {
		b.WriteString(tc.defineFlag(def))
	}
	b.WriteString(`"` + src + `"`)
	return b.String()
}

func (tc *Toolchain) defineFlag(def string) string {
	if tc.family == FamilyMSVC {
		return "/D" + def + " "
	}
	return "-D" + def + " "
}

// ArchiveLine builds the shell line archiving objs into the static library
// at out.
func (tc *Toolchain) ArchiveLine(out string, objs []string) string {
	var b strings.Builder
	if tc.family == FamilyMSVC {
		b.WriteString(tc.settings.Archiver + " /OUT:" + out)
	} else {
		b.WriteString(tc.settings.Archiver + " rcs " + out)
	}
	for _, obj := range objs {
		b.WriteString(" " + obj)
	}
	return b.String()
}

// LinkLine builds the shell line linking objs into the executable or shared
// library at out.
func (tc *Toolchain) LinkLine(t *domain.Target, out string, objs []string) string {
	var b strings.Builder
	b.WriteString(tc.settings.Linker + " -o " + out)
	for _, obj := range objs {
		b.WriteString(" " + obj)
	}
	for _, dir := range t.LibraryDirs {
		if tc.family == FamilyMSVC {
			b.WriteString(` /LIBPATH:"` + dir + `"`)
		} else {
			b.WriteString(` -L"` + dir + `"`)
		}
	}
	for _, lib := range t.LinkLibs {
		if tc.family == FamilyMSVC {
			b.WriteString(" " + lib + ".lib")
		} else {
			b.WriteString(" -l" + lib)
		}
	}
	for _, dep := range t.Deps {
		kind := dep.LinkableKind()
		if kind == domain.KindStaticLibrary || kind == domain.KindSharedLibrary {
			b.WriteString(" " + dep.OutputPath(tc.settings.OutputDir))
		}
	}
	if t.LDFlags != "" {
		b.WriteString(" " + t.LDFlags)
	}
	if tc.settings.GlobalLDFlags != "" {
		b.WriteString(" " + tc.settings.GlobalLDFlags)
	}
	if t.Kind == domain.KindSharedLibrary {
		if tc.family == FamilyMSVC {
			b.WriteString(" /DLL")
		} else {
			b.WriteString(" -shared")
		}
	}
	return b.String()
}
