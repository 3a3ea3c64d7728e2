// Package subproject implements the textual manifest protocol by which one
// orchestrator instance discovers and consumes artifacts produced by another
// instance living in a sibling directory.
package subproject

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
)

// Record is one parsed manifest line: KIND NAME PATH.
type Record struct {
	Kind    domain.TargetKind
	Name    string
	RelPath string
}

// ParseManifest reads manifest lines from r. Empty lines and lines starting
// with '#' are ignored; lines with an unknown kind token or fewer than three
// fields are skipped.
func ParseManifest(r io.Reader) []Record {
	var records []Record
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		kind, ok := domain.ParseTargetKind(fields[0])
		if !ok {
			continue
		}
		records = append(records, Record{
			Kind:    kind,
			Name:    fields[1],
			RelPath: fields[2],
		})
	}
	return records
}

// EmitManifest writes one line per non-proxy target of the registry, in
// registration order: KIND NAME PATH.
func EmitManifest(w io.Writer, reg *domain.Registry, settings *domain.Settings) {
	for _, t := range reg.Targets() {
		if t.Kind == domain.KindProxy {
			continue
		}
		token := t.Kind.ManifestToken()
		if token == "" {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s %s %s\n", token, t.Name, t.OutputPath(settings.OutputDir))
	}
}
