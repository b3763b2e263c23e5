package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/octofabric/reactor/pkg/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the reactor version and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stdout, version.Version)
			return nil
		},
	}
}
