// Command reactor runs the reactive forwarding core: CycleEnumerator,
// TopologyView, PathOracle, FlowProgrammer, ReactiveDispatcher,
// SwitchRegistry and MessageGateway wired together into an OpenFlow 1.3
// controller, plus the `cycles` and `version` offline utility subcommands.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/octofabric/reactor/cmd/reactor/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
