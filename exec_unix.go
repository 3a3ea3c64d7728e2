//go:build !windows

package forge

import (
	"os"
	"syscall"
)

// execReplace substitutes the current process image with the executable at
// exe, passing argv unchanged. It never returns: if the substitution fails
// the process exits with status 1.
func execReplace(exe string, argv []string) {
	if err := syscall.Exec(exe, argv, os.Environ()); err != nil {
		os.Exit(1)
	}
}
