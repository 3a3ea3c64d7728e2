package domain

import "go.trai.ch/zerr"

var (
	// ErrTargetExists is returned when registering a target whose name is
	// already taken.
	ErrTargetExists = zerr.New("target already exists")

	// ErrCycleDetected is returned when the dependency walk revisits a
	// target currently on its stack.
	ErrCycleDetected = zerr.New("circular dependency detected")

	// ErrCompileFailed is returned when a compiler invocation exits non-zero.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrArchiveFailed is returned when the archiver exits non-zero.
	ErrArchiveFailed = zerr.New("archiving failed")

	// ErrLinkFailed is returned when the linker exits non-zero.
	ErrLinkFailed = zerr.New("linking failed")

	// ErrCommandFailed is returned when a command node's shell line exits
	// non-zero.
	ErrCommandFailed = zerr.New("command failed")

	// ErrManifestUnavailable is returned when a subproject's manifest query
	// fails; proxy lookups against that subproject return absent.
	ErrManifestUnavailable = zerr.New("subproject manifest unavailable")

	// ErrSubprojectTargetNotFound is returned when a subproject's manifest
	// has no record with the requested name.
	ErrSubprojectTargetNotFound = zerr.New("no such target in subproject")

	// ErrBuildFailed aggregates a failed run.
	ErrBuildFailed = zerr.New("build failed")

	// ErrSelfRebuildFailed is returned when recompiling the build script
	// executable fails.
	ErrSelfRebuildFailed = zerr.New("self-rebuild failed")
)
