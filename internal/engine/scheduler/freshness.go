package scheduler

import (
	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/core/domain"
)

// NeedsCompile decides whether src must be recompiled into obj: yes when obj
// is missing or src is strictly newer. Comparisons use seconds-granularity
// mtime; ties are fresh. Generated .d files are never consulted.
func NeedsCompile(src, obj string) bool {
	srcTime, ok := fs.ModTime(src)
	if !ok {
		return true
	}
	objTime, ok := fs.ModTime(obj)
	if !ok {
		return true
	}
	return srcTime.Unix() > objTime.Unix()
}

// NeedsLink decides whether target t must be relinked: yes when its output
// is missing, or any of its objects is newer than the output, or any
// target-dep's own output is newer than the output.
func NeedsLink(t *domain.Target, outputDir string, objs []string) bool {
	out := t.OutputPath(outputDir)
	outTime, ok := fs.ModTime(out)
	if !ok {
		return true
	}
	for _, obj := range objs {
		objTime, ok := fs.ModTime(obj)
		if !ok || objTime.Unix() > outTime.Unix() {
			return true
		}
	}
	for _, dep := range t.Deps {
		depTime, ok := fs.ModTime(dep.OutputPath(outputDir))
		if ok && depTime.Unix() > outTime.Unix() {
			return true
		}
	}
	return false
}
