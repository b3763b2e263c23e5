// Package topology holds the read-only projection of the external
// topology/host-discovery collaborators that the engine consumes (spec
// §2.2, TopologyView). Nothing in this package mutates a View in place;
// the topology collaborator publishes a whole new View on every change and
// the engine atomically swaps to it (spec design note: "snapshot-by-
// reference is sufficient because the topology collaborator swaps the
// whole view atomically; the engine never edits in place").
package topology

import (
	"net"

	"github.com/octofabric/reactor/internal/graph"
	"github.com/octofabric/reactor/internal/ofproto"
)

// PortPair is the (src_port, dst_port) pair of an inter-switch link.
type PortPair struct {
	Src ofproto.Port
	Dst ofproto.Port
}

// LinkKey identifies a directed link by its endpoint switches.
type LinkKey struct {
	Src ofproto.SwitchID
	Dst ofproto.SwitchID
}

// AccessKey identifies one (switch, port) pair on the edge of the fabric.
type AccessKey struct {
	Switch ofproto.SwitchID
	Port   ofproto.Port
}

// Host is what is known about a device attached at an access port.
type Host struct {
	IP  net.IP
	MAC net.HardwareAddr
}

// View is one immutable snapshot of the topology (spec §3 entities:
// AdjacencyGraph, Link/port map, access ports, access table, host
// location, CycleCatalogue). Every field is populated once, at
// construction, by the (external) topology/host-discovery collaborator
// and never mutated afterward — the FlowProgrammer and ReactiveDispatcher
// only read it.
type View struct {
	Graph       *graph.Adjacency
	LinkToPort  map[LinkKey]PortPair
	AccessPorts map[ofproto.SwitchID]map[ofproto.Port]struct{}
	AccessTable map[AccessKey]Host
	Cycles      graph.Catalogue
}

// NewView returns an empty, ready-to-populate View.
func NewView() *View {
	return &View{
		Graph:       graph.NewAdjacency(),
		LinkToPort:  make(map[LinkKey]PortPair),
		AccessPorts: make(map[ofproto.SwitchID]map[ofproto.Port]struct{}),
		AccessTable: make(map[AccessKey]Host),
	}
}

// LinkPorts returns the port pair for the directed link src->dst, and
// whether it was found (spec §7: "Graph inconsistency ... log at INFO,
// abort this packet-in handling" is the caller's responsibility when this
// returns false).
func (v *View) LinkPorts(src, dst ofproto.SwitchID) (PortPair, bool) {
	pp, ok := v.LinkToPort[LinkKey{Src: src, Dst: dst}]
	return pp, ok
}

// Locate resolves an IP address to the (switch, port) where its host is
// attached, scanning the access table (spec §6, "locate(ip) -> (dpid,
// port) | none"). O(n) in the access table size, matching the Python
// source's get_port linear scan; the access table is small and this is
// never called on a hot loop shared across packet-ins within one switch.
func (v *View) Locate(ip net.IP) (AccessKey, bool) {
	for key, h := range v.AccessTable {
		if h.IP.Equal(ip) {
			return key, true
		}
	}
	return AccessKey{}, false
}

// PortFacing returns the port on switch a that faces switch b, trying the
// directed entry (a,b) and falling back to the reverse entry's Dst field
// for (b,a) — FlowProgrammer only ever needs "the port this switch uses to
// reach that neighbour", regardless of which direction the topology
// collaborator happened to record the link under.
func (v *View) PortFacing(a, b ofproto.SwitchID) (ofproto.Port, bool) {
	if pp, ok := v.LinkToPort[LinkKey{Src: a, Dst: b}]; ok {
		return pp.Src, true
	}
	if pp, ok := v.LinkToPort[LinkKey{Src: b, Dst: a}]; ok {
		return pp.Dst, true
	}
	return 0, false
}

// UnknownAccessPorts returns every (switch, port) in AccessPorts that has
// no corresponding AccessTable entry yet — the flood set for an ARP miss
// (spec §4.3).
func (v *View) UnknownAccessPorts() []AccessKey {
	var out []AccessKey
	for dpid, ports := range v.AccessPorts {
		for port := range ports {
			if _, known := v.AccessTable[AccessKey{Switch: dpid, Port: port}]; !known {
				out = append(out, AccessKey{Switch: dpid, Port: port})
			}
		}
	}
	return out
}
