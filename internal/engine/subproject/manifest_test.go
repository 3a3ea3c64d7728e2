package subproject_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/engine/subproject"
)

func TestParseManifest(t *testing.T) {
	input := strings.Join([]string{
		"# produced by the child driver",
		"",
		"static_lib math build/libmath.a",
		"shared_lib plugin build/libplugin.so",
		"executable calc build/calc",
		"archive weird build/weird", // unknown kind token
		"static_lib incomplete",     // too few fields
		"  static_lib padded build/libpadded.a  ",
	}, "\r\n")

	records := subproject.ParseManifest(strings.NewReader(input))
	require.Len(t, records, 4)

	assert.Equal(t, subproject.Record{Kind: domain.KindStaticLibrary, Name: "math", RelPath: "build/libmath.a"}, records[0])
	assert.Equal(t, subproject.Record{Kind: domain.KindSharedLibrary, Name: "plugin", RelPath: "build/libplugin.so"}, records[1])
	assert.Equal(t, subproject.Record{Kind: domain.KindExecutable, Name: "calc", RelPath: "build/calc"}, records[2])
	assert.Equal(t, "padded", records[3].Name)
}

func TestEmitManifest(t *testing.T) {
	reg := domain.NewRegistry()
	settings := &domain.Settings{}
	settings.ApplyDefaults()

	require.NoError(t, reg.AddTarget(&domain.Target{Kind: domain.KindStaticLibrary, Name: "math"}))
	require.NoError(t, reg.AddTarget(&domain.Target{Kind: domain.KindExecutable, Name: "calc"}))
	require.NoError(t, reg.AddTarget(&domain.Target{
		Kind:        domain.KindProxy,
		Name:        "vendor_z",
		ProxyKind:   domain.KindStaticLibrary,
		ProxyOutput: "vendor/zlib/build/libz.a",
	}))

	var buf bytes.Buffer
	subproject.EmitManifest(&buf, reg, settings)

	want := "static_lib math " + (&domain.Target{Kind: domain.KindStaticLibrary, Name: "math"}).OutputPath("build") + "\n" +
		"executable calc " + (&domain.Target{Kind: domain.KindExecutable, Name: "calc"}).OutputPath("build") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestManifestRoundTrip(t *testing.T) {
	reg := domain.NewRegistry()
	settings := &domain.Settings{}
	settings.ApplyDefaults()

	targets := []*domain.Target{
		{Kind: domain.KindStaticLibrary, Name: "math"},
		{Kind: domain.KindSharedLibrary, Name: "plugin"},
		{Kind: domain.KindExecutable, Name: "calc"},
	}
	for _, tgt := range targets {
		require.NoError(t, reg.AddTarget(tgt))
	}

	var buf bytes.Buffer
	subproject.EmitManifest(&buf, reg, settings)
	records := subproject.ParseManifest(&buf)

	require.Len(t, records, len(targets))
	for i, tgt := range targets {
		assert.Equal(t, tgt.Kind, records[i].Kind)
		assert.Equal(t, tgt.Name, records[i].Name)
		assert.Equal(t, tgt.OutputPath(settings.OutputDir), records[i].RelPath)
	}
}
