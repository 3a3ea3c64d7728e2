package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge"
	"go.trai.ch/forge/internal/adapters/config"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const projectYAML = `version: "1"
settings:
  output_dir: build
  compiler: gcc
  cflags: "-O2 -Wall"
  defines: [NDEBUG]
  compile_commands: true
commands:
  gen:
    run: ./gen.sh
targets:
  math:
    kind: static_library
    sources: [math.c]
    include_dirs: [include]
  calc:
    kind: executable
    sources: [calc.c]
    link_targets: [math]
    link_libraries: [m]
    pre_commands: [gen]
subcommands:
  test:
    target: calc
    run: ./build/calc --self-test
`

func writeProject(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, src := range []string{"math.c", "calc.c"} {
		require.NoError(t, os.WriteFile(src, []byte("int x;\n"), 0o644))
	}
	path := filepath.Join(dir, "forge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func buildOptions(t *testing.T, out *bytes.Buffer) []forge.Option {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()
	return []forge.Option{forge.WithLogger(mockLogger), forge.WithOutput(out)}
}

func TestLoadAndBuild(t *testing.T) {
	path := writeProject(t, projectYAML)

	f, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "gcc", f.Settings.Compiler)
	assert.Len(t, f.Targets, 2)

	var out bytes.Buffer
	p, err := config.Build(f, buildOptions(t, &out)...)
	require.NoError(t, err)

	// The manifest confirms both targets registered, in sorted name order.
	require.NoError(t, p.Run([]string{"--manifest"}))
	manifest := out.String()
	assert.Contains(t, manifest, "static_lib math ")
	// Sorted name order puts calc first.
	assert.True(t, strings.HasPrefix(manifest, "executable calc "))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "forge.yaml"))
	assert.Error(t, err)
}

func TestBuild_UnknownKind(t *testing.T) {
	writeProject(t, "")
	f := &config.File{Targets: map[string]config.TargetDTO{
		"weird": {Kind: "archive"},
	}}
	var out bytes.Buffer
	_, err := config.Build(f, buildOptions(t, &out)...)
	assert.ErrorContains(t, err, "unknown target kind")
}

func TestBuild_UnknownLinkTarget(t *testing.T) {
	writeProject(t, "")
	f := &config.File{Targets: map[string]config.TargetDTO{
		"calc": {Kind: "executable", LinkTargets: []string{"missing"}},
	}}
	var out bytes.Buffer
	_, err := config.Build(f, buildOptions(t, &out)...)
	assert.ErrorContains(t, err, "unknown link target")
}

func TestBuild_UnknownCommandDependency(t *testing.T) {
	writeProject(t, "")
	f := &config.File{Commands: map[string]config.CommandDTO{
		"gen": {Run: "./gen.sh", DependsOn: []string{"missing"}},
	}}
	var out bytes.Buffer
	_, err := config.Build(f, buildOptions(t, &out)...)
	assert.ErrorContains(t, err, "unknown command dependency")
}
