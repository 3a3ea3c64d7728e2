//go:build !windows

package shell

const (
	shellName = "/bin/sh"
	shellFlag = "-c"
)
