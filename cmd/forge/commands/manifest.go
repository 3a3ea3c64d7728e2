package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newManifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Print the target manifest for parent orchestrators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Manifest(cmd.Context(), c.configPath(cmd))
		},
	}
}
