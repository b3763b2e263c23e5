// Package flowprogram implements the FlowProgrammer (spec §4.2): the
// stateless function that renders a primary path, a cycle catalogue and a
// flow tuple into the FlowMod/GroupMod messages needed to realise forward,
// reverse and fast-failover coverage. Classification (classify.go) is kept
// pure and separate from message rendering (this file) and orchestration
// (program.go), per spec §9's design note.
package flowprogram

import "github.com/octofabric/reactor/internal/ofproto"

// FlowTuple is flow_info / back_info from spec §4.2.3: (eth_type, src_ip,
// dst_ip). in_port is threaded separately since it varies per message.
type FlowTuple struct {
	EthType uint16
	Src     string
	Dst     string
}

// Reverse returns back_info for the complementary direction.
func (t FlowTuple) Reverse() FlowTuple {
	return FlowTuple{EthType: t.EthType, Src: t.Dst, Dst: t.Src}
}

func (t FlowTuple) match(in ofproto.InPort) ofproto.Match {
	src, dst := t.Src, t.Dst
	return ofproto.Match{EthType: t.EthType, IPv4Src: &src, IPv4Dst: &dst, InPort: in}
}

// Emission accumulates the FlowMod and GroupMod records produced for one
// packet-in's programming pass (spec §4.2.3). It is pure data: nothing in
// this package performs I/O, matching the "I/O is performed by a separate
// emitter" design note.
type Emission struct {
	Flows  []ofproto.FlowMod
	Groups []ofproto.GroupMod
}

// exact installs a priority-1 entry matching t with an explicit in_port
// (spec §4.2.3 forward_exact/backward_exact).
func (e *Emission) exact(sw ofproto.SwitchID, t FlowTuple, in ofproto.Port, action ofproto.Action) {
	e.Flows = append(e.Flows, ofproto.FlowMod{
		Switch:   sw,
		Priority: 1,
		Match:    t.match(ofproto.ExactInPort(in)),
		Actions:  []ofproto.Action{action},
	})
}

// wildcard installs a priority-1 entry matching t with no in_port
// constraint (spec §4.2.3 forward_wildcard/backward_wildcard) — it catches
// packets re-entering the path from a cycle detour regardless of which
// port they arrive on.
func (e *Emission) wildcard(sw ofproto.SwitchID, t FlowTuple, action ofproto.Action) {
	e.Flows = append(e.Flows, ofproto.FlowMod{
		Switch:   sw,
		Priority: 1,
		Match:    t.match(ofproto.AnyInPort),
		Actions:  []ofproto.Action{action},
	})
}

// ffGroup installs a Fast-Failover group with exactly two buckets (spec
// §4.2.3, §6 OFPT_GROUP_MOD, invariant 4 of §8). secondaryWatch defaults
// to secondaryPort when zero, matching the teacher source's
// watch_port_2==0 fallback for actions (like OFPP_IN_PORT) that are not
// themselves valid watch targets.
func (e *Emission) ffGroup(sw ofproto.SwitchID, gid ofproto.GroupID, primaryPort, secondaryPort, secondaryWatch ofproto.Port) {
	if secondaryWatch == 0 {
		secondaryWatch = secondaryPort
	}
	e.Groups = append(e.Groups, ofproto.GroupMod{
		Switch:  sw,
		GroupID: gid,
		Buckets: [2]ofproto.Bucket{
			{WatchPort: primaryPort, Actions: []ofproto.Action{ofproto.OutputAction(primaryPort)}},
			{WatchPort: secondaryWatch, Actions: []ofproto.Action{ofproto.OutputAction(secondaryPort)}},
		},
	})
}
