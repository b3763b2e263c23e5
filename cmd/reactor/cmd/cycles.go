package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/octofabric/reactor/internal/graph"
	"github.com/octofabric/reactor/internal/ofproto"
)

// topologyFile is the offline JSON shape `cycles` reads: a plain
// switch/link list, independent of any live TopologyView collaborator.
type topologyFile struct {
	Switches []uint64    `json:"switches"`
	Links    [][2]uint64 `json:"links"`
}

func newCyclesCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "Load a topology JSON file and print its cycle catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCycles(path)
		},
	}
	cmd.Flags().StringVar(&path, "topology", "", "path to a topology JSON file (required)")
	cmd.MarkFlagRequired("topology")
	return cmd
}

func runCycles(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cycles: read %s: %w", path, err)
	}
	var tf topologyFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("cycles: parse %s: %w", path, err)
	}

	g := graph.NewAdjacency()
	for _, l := range tf.Links {
		g.AddEdge(ofproto.SwitchID(l[0]), ofproto.SwitchID(l[1]))
	}

	cat := graph.EnumerateCycles(g)

	noColor := color.NoColor || !isatty.IsTerminal(os.Stdout.Fd())
	header := color.New(color.FgCyan, color.Bold)
	ok := color.New(color.FgGreen)
	if noColor {
		header.DisableColor()
		ok.DisableColor()
	}

	header.Fprintf(stdout, "%d switch(es), %d link(s), %d cycle(s)\n", len(tf.Switches), len(tf.Links), len(cat))
	for i, c := range cat {
		ok.Fprintf(stdout, "  [%d] ", i)
		for j, sid := range c {
			if j > 0 {
				fmt.Fprint(stdout, " -> ")
			}
			fmt.Fprint(stdout, sid)
		}
		fmt.Fprintln(stdout)
	}
	return nil
}
