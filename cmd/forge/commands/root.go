// Package commands implements the CLI commands for the forge driver binary.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/app"
)

// CLI represents the command line interface for forge.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "forge",
		Short:         "An incremental build orchestrator for C projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		// A bare invocation builds everything, so the binary itself speaks
		// the subproject protocol: <exe>, <exe> --manifest, <exe> clean.
		RunE: func(cmd *cobra.Command, _ []string) error {
			if manifest, _ := cmd.Flags().GetBool("manifest"); manifest {
				return a.Manifest(cmd.Context(), configPathOf(cmd))
			}
			return a.Build(cmd.Context(), configPathOf(cmd), nil)
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "forge.yaml", "Path to project file")
	rootCmd.Flags().Bool("manifest", false, "Print the target manifest and exit")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newManifestCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func (c *CLI) configPath(cmd *cobra.Command) string {
	return configPathOf(cmd)
}

func configPathOf(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}
