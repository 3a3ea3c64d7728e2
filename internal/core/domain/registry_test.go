package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
)

func TestRegistry_AddTarget(t *testing.T) {
	reg := domain.NewRegistry()

	a := &domain.Target{Kind: domain.KindExecutable, Name: "a"}
	require.NoError(t, reg.AddTarget(a))

	err := reg.AddTarget(&domain.Target{Kind: domain.KindStaticLibrary, Name: "a"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTargetExists))

	assert.Equal(t, 1, reg.Len())
	assert.Same(t, a, reg.FindTarget("a"))
	assert.Nil(t, reg.FindTarget("b"))
}

func TestRegistry_Order(t *testing.T) {
	reg := domain.NewRegistry()
	names := []string{"zeta", "alpha", "mid"}
	for _, name := range names {
		require.NoError(t, reg.AddTarget(&domain.Target{Name: name}))
	}

	var got []string
	for _, tgt := range reg.Targets() {
		got = append(got, tgt.Name)
	}
	// Iteration order equals registration order, not lexical order.
	assert.Equal(t, names, got)

	for i, tgt := range reg.Targets() {
		assert.Equal(t, i, reg.IndexOf(tgt))
	}
	assert.Equal(t, -1, reg.IndexOf(&domain.Target{Name: "zeta"}))
}

func TestRegistry_Subcommands(t *testing.T) {
	reg := domain.NewRegistry()
	reg.AddSubcommand(&domain.Subcommand{Name: "test", CommandLine: "./run-tests"})
	reg.AddSubcommand(&domain.Subcommand{Name: ""})

	assert.NotNil(t, reg.FindSubcommand("test"))
	assert.Nil(t, reg.FindSubcommand("bench"))
}

func TestRegistry_ResetExecution(t *testing.T) {
	reg := domain.NewRegistry()
	cmd := &domain.Command{Name: "gen", CommandLine: "true"}
	reg.AddCommand(cmd)

	cmd.MarkExecuted(nil)
	assert.True(t, cmd.Executed())

	reg.ResetExecution()
	assert.False(t, cmd.Executed())
	assert.NoError(t, cmd.Result())
}

func TestCommand_Memoization(t *testing.T) {
	cmd := &domain.Command{Name: "gen", CommandLine: "false"}
	failure := errors.New("exit status 1")

	cmd.MarkExecuted(failure)
	assert.True(t, cmd.Executed())
	assert.Equal(t, failure, cmd.Result())
}
