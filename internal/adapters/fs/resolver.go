// Package fs provides the filesystem adapters: pattern expansion, mtime
// queries, and the small set of directory and file helpers the build driver
// relies on.
package fs

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver implements ports.InputResolver with doublestar globbing, so
// "src/*.c" and "src/**/*.c" both work.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Expand resolves a pattern to concrete paths. Patterns without wildcard
// characters pass through untouched; glob matches are returned sorted for
// stable registration order.
func (r *Resolver) Expand(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		return []string{pattern}, nil
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to glob pattern"), "pattern", pattern)
	}
	sort.Strings(matches)
	return matches, nil
}
