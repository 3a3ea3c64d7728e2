package compiledb_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/engine/compiledb"
	"go.trai.ch/forge/internal/engine/toolchain"
)

func TestIndex_CollectTarget_MatchesCompileLine(t *testing.T) {
	settings := &domain.Settings{Compiler: "gcc"}
	settings.ApplyDefaults()
	tc := toolchain.New(settings)

	tgt := &domain.Target{
		Kind:        domain.KindStaticLibrary,
		Name:        "math",
		Sources:     []string{"src/add.c", "src/mul.c"},
		IncludeDirs: []string{"include"},
	}

	idx := compiledb.NewIndex()
	idx.CollectTarget(tc, settings, tgt, "/work/demo")

	entries := idx.Entries()
	require.Len(t, entries, 2)
	for i, src := range tgt.Sources {
		obj := tgt.ObjectPath(settings.OutputDir, src)
		// The recorded command is byte-identical to the line the scheduler
		// would execute.
		assert.Equal(t, tc.CompileLine(tgt, src, obj), entries[i].Command)
		assert.Equal(t, src, entries[i].File)
		assert.Equal(t, "/work/demo", entries[i].Directory)
	}
}

func TestIndex_Reset(t *testing.T) {
	idx := compiledb.NewIndex()
	idx.Add(compiledb.Entry{Directory: "/x", Command: "cc", File: "a.c"})
	idx.Reset()
	assert.Empty(t, idx.Entries())

	data, err := idx.Marshal()
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestIndex_Marshal_Golden(t *testing.T) {
	idx := compiledb.NewIndex()
	idx.Add(compiledb.Entry{
		Directory: "/work/demo",
		Command:   `"cc" -c -o "build/obj_math/math.o" "math.c"`,
		File:      "math.c",
	})
	idx.Add(compiledb.Entry{
		Directory: "/work/demo",
		Command:   `"cc" -c -o "build/obj_calc/calc.o" -I"include" "calc.c"`,
		File:      "calc.c",
	})

	data, err := idx.Marshal()
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "index", data)
}

func TestIndex_Marshal_Escaping(t *testing.T) {
	idx := compiledb.NewIndex()
	idx.Add(compiledb.Entry{
		Directory: `C:\work`,
		Command:   "cc \"a.c\"\twith\ncontrol\x01bytes",
		File:      "a.c",
	})

	data, err := idx.Marshal()
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `C:\\work`)
	assert.Contains(t, out, `\"a.c\"`)
	assert.Contains(t, out, `\t`)
	assert.Contains(t, out, `\n`)
	assert.Contains(t, out, `\u0001`)

	// The index stays machine-readable.
	var decoded []compiledb.Entry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, idx.Entries(), decoded)
}

func TestIndex_WriteFile(t *testing.T) {
	dir := t.TempDir()
	idx := compiledb.NewIndex()
	idx.Add(compiledb.Entry{Directory: "/w", Command: "cc a.c", File: "a.c"})

	path := filepath.Join(dir, "compile_commands.json")
	require.NoError(t, idx.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []compiledb.Entry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 1)
}
