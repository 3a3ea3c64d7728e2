//go:build windows

package shell

const (
	shellName = "cmd"
	shellFlag = "/C"
)
