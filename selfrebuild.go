package forge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// SelfRebuildIfNeeded rebuilds and re-executes the running build script when
// any of the declared source paths is newer than its executable. Call it at
// the top of main with os.Args and the script's own sources.
//
// On a rebuild the current executable is renamed to <exe>.old, the script is
// recompiled to the original path, and the process image is replaced by the
// new executable with argv unchanged, so stdio and the shell-visible exit
// status carry over. A failed recompile terminates the process with a
// non-zero status. When the executable is fresh the call simply returns.
func (p *Project) SelfRebuildIfNeeded(argv []string, sources ...string) {
	exe, err := fs.SelfExecutable()
	if err != nil {
		p.logger.Warn("self-rebuild skipped: " + err.Error())
		return
	}

	// A lingering .old from a previous rebuild is always removed.
	_ = fs.RemoveFile(exe + ".old")

	if !needsSelfRebuild(exe, sources) {
		return
	}

	p.logger.Info("detected changes, rebuilding build script")
	if err := os.Rename(exe, exe+".old"); err != nil {
		p.logger.Error(zerr.Wrap(err, "failed to move running executable aside"))
		os.Exit(1)
	}
	if err := p.exec.Run(context.Background(), selfRebuildLine(exe, sources)); err != nil {
		p.logger.Error(zerr.With(domain.ErrSelfRebuildFailed, "exe", exe))
		os.Exit(1)
	}
	execReplace(exe, argv)
}

// needsSelfRebuild reports whether any source is strictly newer than the
// executable. A missing executable is stale; missing sources are skipped.
func needsSelfRebuild(exe string, sources []string) bool {
	exeTime, ok := fs.ModTime(exe)
	if !ok {
		return true
	}
	for _, src := range sources {
		srcTime, ok := fs.ModTime(src)
		if ok && srcTime.Unix() > exeTime.Unix() {
			return true
		}
	}
	return false
}

// selfRebuildLine builds the shell line recompiling the build script. The
// script is a Go program, so the package directory of the first declared
// source is rebuilt in place.
func selfRebuildLine(exe string, sources []string) string {
	dir := "."
	if len(sources) > 0 {
		if d := filepath.Dir(sources[0]); d != "" {
			dir = d
		}
	}
	if runtime.GOOS == "windows" {
		return fmt.Sprintf(`go build -o "%s" "%s"`, exe, dir)
	}
	return fmt.Sprintf(`go build -o '%s' '%s'`, exe, dir)
}
