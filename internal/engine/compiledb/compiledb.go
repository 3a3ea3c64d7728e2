// Package compiledb records the exact compile line per translation unit and
// serializes the compile_commands.json index consumed by IDE tooling.
package compiledb

import (
	"bytes"
	"encoding/json"
	"os"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/engine/toolchain"
	"go.trai.ch/zerr"
)

// Entry is one translation unit of the index.
type Entry struct {
	Directory string `json:"directory"`
	Command   string `json:"command"`
	File      string `json:"file"`
}

// Index accumulates entries across one run. It is reset at the start of
// each run to avoid cross-build contamination.
type Index struct {
	entries []Entry
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Reset discards all recorded entries.
func (i *Index) Reset() {
	i.entries = nil
}

// Add appends an entry.
func (i *Index) Add(e Entry) {
	i.entries = append(i.entries, e)
}

// Entries returns the recorded entries in insertion order.
func (i *Index) Entries() []Entry {
	return i.entries
}

// CollectTarget records one entry per source of t, with the exact line the
// scheduler would execute. directory is the orchestrator's CWD at index
// time. Proxy targets own no sources and record nothing.
func (i *Index) CollectTarget(tc *toolchain.Toolchain, settings *domain.Settings, t *domain.Target, directory string) {
	for _, src := range t.Sources {
		obj := t.ObjectPath(settings.OutputDir, src)
		i.Add(Entry{
			Directory: directory,
			Command:   tc.CompileLine(t, src, obj),
			File:      src,
		})
	}
}

// Marshal renders the index as a JSON array. HTML escaping is disabled so
// command lines round-trip byte-for-byte.
func (i *Index) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	entries := i.entries
	if entries == nil {
		entries = []Entry{}
	}
	if err := enc.Encode(entries); err != nil {
		return nil, zerr.Wrap(err, "failed to encode compile commands")
	}
	return buf.Bytes(), nil
}

// WriteFile writes the index to path.
func (i *Index) WriteFile(path string) error {
	data, err := i.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write compile commands"), "path", path)
	}
	return nil
}
