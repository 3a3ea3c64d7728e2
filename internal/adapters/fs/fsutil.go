package fs

import (
	"os"
	"time"

	"go.trai.ch/zerr"
)

// ModTime returns the mtime of path. ok is false when the path does not
// exist or cannot be stat'ed. The freshness oracle treats a missing source,
// object or output as stale; a missing dependency artifact is ignored.
func ModTime(path string) (time.Time, bool) {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return st.ModTime(), true
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}

// DirExists reports whether path names an existing directory.
func DirExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

// EnsureDir creates path and any missing parents.
func EnsureDir(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", path)
	}
	return nil
}

// RemoveFile unlinks path. A missing file is not an error.
func RemoveFile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return zerr.With(zerr.Wrap(err, "failed to remove file"), "path", path)
	}
	return nil
}

// RemoveDir removes path and everything under it.
func RemoveDir(path string) error {
	if path == "" {
		return nil
	}
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove directory"), "path", path)
	}
	return nil
}

// Cwd returns the current working directory.
func Cwd() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to get working directory")
	}
	return cwd, nil
}

// SelfExecutable returns the absolute path of the running executable.
func SelfExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve own executable path")
	}
	return exe, nil
}
