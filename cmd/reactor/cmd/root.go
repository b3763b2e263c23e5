package cmd

import (
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel string

	// special handling for Windows, resolved to os.Stdout/os.Stderr via
	// github.com/mattn/go-colorable on every other platform.
	stdout = color.Output
	stderr = color.Error
)

// NewRootCommand returns the reactor CLI's root command with every
// subcommand attached.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "reactor",
		Short: "Reactive forwarding core for an OpenFlow 1.3 fabric",
		Long: `reactor is an OpenFlow 1.3 reactive forwarding controller: it programs
primary paths plus cycle-derived fast-failover backup routes as hosts talk
to each other, and ships the CycleEnumerator offline as a standalone
topology-analysis subcommand.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", log.InfoLevel.String(),
		"log level, must be one of: panic, fatal, error, warn, info, debug")

	root.AddCommand(newServeCommand())
	root.AddCommand(newCyclesCommand())
	root.AddCommand(newVersionCommand())
	return root
}
