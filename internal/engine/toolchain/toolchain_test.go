package toolchain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/engine/toolchain"
)

func gccSettings() *domain.Settings {
	s := &domain.Settings{Compiler: "gcc"}
	s.ApplyDefaults()
	return s
}

func msvcSettings() *domain.Settings {
	s := &domain.Settings{}
	s.SetCompiler("cl")
	s.Linker = "link"
	s.ApplyDefaults()
	return s
}

func TestDetect(t *testing.T) {
	tests := []struct {
		compiler string
		want     toolchain.Family
	}{
		{"gcc", toolchain.FamilyGCC},
		{"cc", toolchain.FamilyGCC},
		{"clang", toolchain.FamilyGCC},
		{"clang-cl", toolchain.FamilyGCC},
		{"cl", toolchain.FamilyMSVC},
		{"cl.exe", toolchain.FamilyMSVC},
		{"x86_64-linux-gnu-gcc-12", toolchain.FamilyGCC},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toolchain.Detect(tt.compiler), "compiler %q", tt.compiler)
	}
}

func TestCompileLine_GCC(t *testing.T) {
	s := gccSettings()
	s.AppendGlobalCFlags("-O2 -Wall")
	s.AddGlobalDefine("NDEBUG")
	tc := toolchain.New(s)

	tgt := &domain.Target{
		Kind:        domain.KindStaticLibrary,
		Name:        "math",
		IncludeDirs: []string{"include", "vendor/include"},
		Defines:     []string{"FAST=1"},
	}
	line := tc.CompileLine(tgt, "src/math.c", "build/obj_math/math.o")

	assert.Equal(t,
		`"gcc" -c -o "build/obj_math/math.o" -O2 -Wall -I"include" -I"vendor/include" -DNDEBUG -DFAST=1 "src/math.c"`,
		line)
}

func TestCompileLine_TargetCFlagsReplaceGlobal(t *testing.T) {
	s := gccSettings()
	s.AppendGlobalCFlags("-O2")
	tc := toolchain.New(s)

	tgt := &domain.Target{Name: "dbg", CFlags: "-O0 -g"}
	line := tc.CompileLine(tgt, "dbg.c", "build/obj_dbg/dbg.o")

	assert.Contains(t, line, "-O0 -g")
	assert.NotContains(t, line, "-O2")
}

func TestCompileLine_MSVC(t *testing.T) {
	s := msvcSettings()
	tc := toolchain.New(s)

	tgt := &domain.Target{
		Name:        "math",
		IncludeDirs: []string{"include"},
		Defines:     []string{"WIN32_LEAN_AND_MEAN"},
	}
	line := tc.CompileLine(tgt, "math.c", "build/obj_math/math.o")

	assert.Equal(t,
		`"cl" /c /nologo /Fo"build/obj_math/math.o" /showIncludes /I "include" /DWIN32_LEAN_AND_MEAN "math.c"`,
		line)
}

func TestArchiveLine(t *testing.T) {
	objs := []string{"build/obj_math/add.o", "build/obj_math/mul.o"}

	gcc := toolchain.New(gccSettings())
	assert.Equal(t,
		"ar rcs build/libmath.a build/obj_math/add.o build/obj_math/mul.o",
		gcc.ArchiveLine("build/libmath.a", objs))

	msvc := toolchain.New(msvcSettings())
	assert.Equal(t,
		"lib /OUT:build/math.lib build/obj_math/add.o build/obj_math/mul.o",
		msvc.ArchiveLine("build/math.lib", objs))
}

func TestLinkLine_GCC(t *testing.T) {
	s := gccSettings()
	s.AppendGlobalLDFlags("-pthread")
	tc := toolchain.New(s)

	dep := &domain.Target{Kind: domain.KindStaticLibrary, Name: "math"}
	exeDep := &domain.Target{Kind: domain.KindExecutable, Name: "tool"}
	tgt := &domain.Target{
		Kind:        domain.KindExecutable,
		Name:        "calc",
		LibraryDirs: []string{"/opt/lib"},
		LinkLibs:    []string{"m"},
		LDFlags:     "-rdynamic",
		Deps:        []*domain.Target{dep, exeDep},
	}
	line := tc.LinkLine(tgt, "build/calc", []string{"build/obj_calc/calc.o"})

	// Executable deps are built first but never linked in; external libs are
	// always plain -l<name> on GCC-like toolchains.
	assert.Equal(t,
		`gcc -o build/calc build/obj_calc/calc.o -L"/opt/lib" -lm build/libmath.a -rdynamic -pthread`,
		line)
}

func TestLinkLine_SharedLibrary(t *testing.T) {
	gcc := toolchain.New(gccSettings())
	shared := &domain.Target{Kind: domain.KindSharedLibrary, Name: "plugin"}
	line := gcc.LinkLine(shared, "build/libplugin.so", []string{"build/obj_plugin/plugin.o"})
	assert.Equal(t, "gcc -o build/libplugin.so build/obj_plugin/plugin.o -shared", line)

	msvc := toolchain.New(msvcSettings())
	line = msvc.LinkLine(shared, "build/plugin.dll", []string{"build/obj_plugin/plugin.o"})
	assert.Equal(t, "link -o build/plugin.dll build/obj_plugin/plugin.o /DLL", line)
}

func TestLinkLine_MSVCLibs(t *testing.T) {
	tc := toolchain.New(msvcSettings())
	tgt := &domain.Target{
		Kind:        domain.KindExecutable,
		Name:        "gui",
		LibraryDirs: []string{`C:\sdk\lib`},
		LinkLibs:    []string{"User32"},
	}
	line := tc.LinkLine(tgt, "build/gui.exe", []string{"build/obj_gui/gui.o"})
	assert.Equal(t,
		`link -o build/gui.exe build/obj_gui/gui.o /LIBPATH:"C:\sdk\lib" User32.lib`,
		line)
}

func TestLinkLine_ProxyDep(t *testing.T) {
	tc := toolchain.New(gccSettings())
	proxy := &domain.Target{
		Kind:        domain.KindProxy,
		Name:        "vendor_z",
		ProxyKind:   domain.KindStaticLibrary,
		ProxyOutput: "vendor/zlib/build/libz.a",
	}
	tgt := &domain.Target{Kind: domain.KindExecutable, Name: "calc", Deps: []*domain.Target{proxy}}

	line := tc.LinkLine(tgt, "build/calc", []string{"build/obj_calc/calc.o"})
	assert.Equal(t, "gcc -o build/calc build/obj_calc/calc.o vendor/zlib/build/libz.a", line)
}
