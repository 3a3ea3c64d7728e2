//go:build !windows

package shell_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/shell"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newExecutor(t *testing.T) *shell.Executor {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()
	return shell.NewExecutor(mockLogger)
}

func TestExecutor_Capture(t *testing.T) {
	e := newExecutor(t)

	out, err := e.Capture(context.Background(), "echo hello; echo world")
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", string(out))
}

func TestExecutor_Capture_Failure(t *testing.T) {
	e := newExecutor(t)

	out, err := e.Capture(context.Background(), "echo partial; exit 3")
	require.Error(t, err)
	// Output captured before the failure is still returned.
	assert.Equal(t, "partial\n", string(out))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, 3, zErr.Metadata()["exit_code"])
}

func TestExecutor_Run(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "marker")
	e := newExecutor(t)

	require.NoError(t, e.Run(context.Background(), "touch '"+marker+"'"))
	_, err := os.Stat(marker)
	assert.NoError(t, err)

	assert.Error(t, e.Run(context.Background(), "exit 1"))
}

func TestExecutor_ShellLineSemantics(t *testing.T) {
	e := newExecutor(t)

	// The line is evaluated by the shell, so pipes and quoting work.
	out, err := e.Capture(context.Background(), `printf 'a b\nc d\n' | wc -l | tr -d ' '`)
	require.NoError(t, err)
	assert.Equal(t, "2\n", string(out))
}
