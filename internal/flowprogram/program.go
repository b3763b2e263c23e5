package flowprogram

import (
	"fmt"

	"github.com/octofabric/reactor/internal/graph"
	"github.com/octofabric/reactor/internal/ofproto"
)

// Request is everything FlowProgrammer needs to program one round trip
// (spec §4.2). GroupFwd/GroupRev must already be a freshly-allocated pair
// from Allocator.Next() — the programmer never allocates ids itself.
type Request struct {
	Path     []ofproto.SwitchID
	Cycles   graph.Catalogue
	LinkPort LinkPort
	Tuple    FlowTuple

	InPort        ofproto.Port // ingress port at s0 (or the single switch, n=0)
	DstAccessPort ofproto.Port // egress port toward the destination host

	GroupFwd, GroupRev ofproto.GroupID

	BufferID uint32
	Data     []byte
}

// Program renders Request into the FlowMod/GroupMod/PacketOut set that
// realises forward, reverse and fast-failover coverage along the path
// (spec §4.2). It is a pure function: callers are responsible for sending
// the returned messages through the MessageGateway.
func Program(req Request) (Emission, *ofproto.PacketOut, error) {
	if len(req.Path) == 0 {
		return Emission{}, nil, fmt.Errorf("flowprogram: Path error!")
	}
	if len(req.Path) == 1 {
		return programSameSwitch(req)
	}

	e := Emission{}
	back := req.Tuple.Reverse()
	used := map[string]usedCycle{}

	s0 := req.Path[0]
	sn := req.Path[len(req.Path)-1]

	out0, ok := req.LinkPort(s0, req.Path[1])
	if !ok {
		return Emission{}, nil, fmt.Errorf("flowprogram: no link port %s->%s", s0, req.Path[1])
	}
	programFirst(&e, req, s0, out0, used)

	srcN, ok := req.LinkPort(sn, req.Path[len(req.Path)-2])
	if !ok {
		return Emission{}, nil, fmt.Errorf("flowprogram: no link port %s->%s", sn, req.Path[len(req.Path)-2])
	}
	programLast(&e, req, sn, srcN, back, used)

	for i := 1; i < len(req.Path)-1; i++ {
		prev, cur, next := req.Path[i-1], req.Path[i], req.Path[i+1]
		srcPort, ok := req.LinkPort(cur, prev)
		if !ok {
			return Emission{}, nil, fmt.Errorf("flowprogram: no link port %s->%s", cur, prev)
		}
		dstPort, ok := req.LinkPort(cur, next)
		if !ok {
			return Emission{}, nil, fmt.Errorf("flowprogram: no link port %s->%s", cur, next)
		}
		programInterior(&e, req, prev, cur, next, srcPort, dstPort, back, used)
	}

	stitchOffPath(&e, used, req.Path, req.Tuple, req.LinkPort)

	po := buildPacketOut(s0, req.InPort, out0, req.BufferID, req.Data)
	return e, po, nil
}

func programSameSwitch(req Request) (Emission, *ofproto.PacketOut, error) {
	e := Emission{}
	back := req.Tuple.Reverse()
	sw := req.Path[0]

	e.exact(sw, req.Tuple, req.InPort, ofproto.OutputAction(req.DstAccessPort))
	e.exact(sw, back, req.DstAccessPort, ofproto.OutputAction(req.InPort))

	po := buildPacketOut(sw, req.InPort, req.DstAccessPort, req.BufferID, req.Data)
	return e, po, nil
}

// programFirst handles s0 (spec §4.2.1: "s0 applies only the 10/no-bp
// case"). The backward_wildcard entry back toward the ingress host is
// unconditional; the forward group only exists when a cycle covers the
// first hop.
func programFirst(e *Emission, req Request, s0 ofproto.SwitchID, out0 ofproto.Port, used map[string]usedCycle) {
	back := req.Tuple.Reverse()
	e.wildcard(s0, back, ofproto.OutputAction(req.InPort))

	fc := classifyFirst(s0, req.Path[1], req.Cycles)
	if fc.Cycle == nil {
		e.exact(s0, req.Tuple, req.InPort, ofproto.OutputAction(out0))
		return
	}
	p := fc.Cycle.IndexOf(s0)
	bp := backupNeighbor(fc.Cycle, p, fc.Dir)
	bpPort, ok := req.LinkPort(s0, bp)
	if !ok {
		e.exact(s0, req.Tuple, req.InPort, ofproto.OutputAction(out0))
		return
	}
	e.ffGroup(s0, req.GroupFwd, out0, bpPort, 0)
	e.exact(s0, req.Tuple, req.InPort, ofproto.GroupAction(req.GroupFwd))
	e.exact(s0, req.Tuple, out0, ofproto.OutputAction(bpPort)) // accepts a detoured packet rejoining here
	// fc.Dir is oriented s0->s1; the forward detour walks the other way.
	used[cycleKey(fc.Cycle)] = usedCycle{cycle: fc.Cycle, dir: -fc.Dir}
}

// programLast handles sn (spec §4.2.1: "sn only the 01/no-bp case"). The
// forward_wildcard entry toward the destination host is unconditional;
// the group protects the last hop for the backward direction.
func programLast(e *Emission, req Request, sn ofproto.SwitchID, srcN ofproto.Port, back FlowTuple, used map[string]usedCycle) {
	e.wildcard(sn, req.Tuple, ofproto.OutputAction(req.DstAccessPort))

	lc := classifyLast(req.Path[len(req.Path)-2], sn, req.Cycles)
	if lc.Cycle == nil {
		e.exact(sn, back, req.DstAccessPort, ofproto.OutputAction(srcN))
		return
	}
	p := lc.Cycle.IndexOf(sn)
	bp := backupNeighbor(lc.Cycle, p, lc.Dir)
	bpPort, ok := req.LinkPort(sn, bp)
	if !ok {
		e.exact(sn, back, req.DstAccessPort, ofproto.OutputAction(srcN))
		return
	}
	e.ffGroup(sn, req.GroupRev, srcN, bpPort, 0)
	e.exact(sn, back, req.DstAccessPort, ofproto.GroupAction(req.GroupRev))
	e.exact(sn, back, srcN, ofproto.OutputAction(bpPort))
	used[cycleKey(lc.Cycle)] = usedCycle{cycle: lc.Cycle, dir: lc.Dir}
}

// programInterior handles one interior switch (spec §4.2.1, cases
// 00/10/01/11). Case 10 covers the edge behind cur, so it protects the
// backward direction; case 01 covers the edge ahead, so it protects
// forward; case 11 protects both, bouncing each secondary bucket straight
// back out OFPP_IN_PORT rather than walking to a cycle neighbour.
func programInterior(e *Emission, req Request, prev, cur, next ofproto.SwitchID, srcPort, dstPort ofproto.Port, back FlowTuple, used map[string]usedCycle) {
	ic := classifyInterior(prev, cur, next, req.Cycles)

	switch ic.Case {
	case Case11:
		e.ffGroup(cur, req.GroupFwd, dstPort, ofproto.PortInPort, srcPort)
		e.exact(cur, req.Tuple, srcPort, ofproto.GroupAction(req.GroupFwd))
		e.exact(cur, req.Tuple, dstPort, ofproto.OutputAction(srcPort))

		e.ffGroup(cur, req.GroupRev, srcPort, ofproto.PortInPort, dstPort)
		e.exact(cur, back, dstPort, ofproto.GroupAction(req.GroupRev))
		e.exact(cur, back, srcPort, ofproto.OutputAction(dstPort))

	case Case10:
		p := ic.Cycle.IndexOf(cur)
		bp := backupNeighbor(ic.Cycle, p, ic.Dir)
		bpPort, ok := req.LinkPort(cur, bp)
		if !ok {
			e.exact(cur, req.Tuple, srcPort, ofproto.OutputAction(dstPort))
			e.exact(cur, back, dstPort, ofproto.OutputAction(srcPort))
			return
		}
		e.exact(cur, req.Tuple, srcPort, ofproto.OutputAction(dstPort))
		e.exact(cur, req.Tuple, bpPort, ofproto.OutputAction(dstPort))
		e.ffGroup(cur, req.GroupRev, srcPort, bpPort, 0)
		e.exact(cur, back, dstPort, ofproto.GroupAction(req.GroupRev))
		e.exact(cur, back, srcPort, ofproto.OutputAction(bpPort))
		used[cycleKey(ic.Cycle)] = usedCycle{cycle: ic.Cycle, dir: ic.Dir}

	case Case01:
		p := ic.Cycle.IndexOf(cur)
		bp := backupNeighbor(ic.Cycle, p, ic.Dir)
		bpPort, ok := req.LinkPort(cur, bp)
		if !ok {
			e.exact(cur, req.Tuple, srcPort, ofproto.OutputAction(dstPort))
			e.exact(cur, back, dstPort, ofproto.OutputAction(srcPort))
			return
		}
		e.ffGroup(cur, req.GroupFwd, dstPort, bpPort, 0)
		e.exact(cur, req.Tuple, srcPort, ofproto.GroupAction(req.GroupFwd))
		e.exact(cur, req.Tuple, bpPort, ofproto.OutputAction(dstPort))
		e.exact(cur, back, dstPort, ofproto.OutputAction(srcPort))
		// ic.Dir is oriented cur->next; the forward detour walks the other way.
		used[cycleKey(ic.Cycle)] = usedCycle{cycle: ic.Cycle, dir: -ic.Dir}

	default: // Case00
		e.exact(cur, req.Tuple, srcPort, ofproto.OutputAction(dstPort))
		e.exact(cur, back, dstPort, ofproto.OutputAction(srcPort))
	}
}

func buildPacketOut(sw ofproto.SwitchID, inPort, outPort ofproto.Port, bufferID uint32, data []byte) *ofproto.PacketOut {
	po := &ofproto.PacketOut{Switch: sw, BufferID: bufferID, InPort: inPort, OutPort: outPort}
	if bufferID == ofproto.NoBuffer {
		po.Data = data
	}
	return po
}
