package flowprogram

import (
	"github.com/octofabric/reactor/internal/graph"
	"github.com/octofabric/reactor/internal/ofproto"
)

// Case is the per-hop classification label of spec §4.2.1.
type Case int

const (
	Case00 Case = iota
	Case10
	Case01
	Case11
)

func (c Case) String() string {
	switch c {
	case Case10:
		return "10"
	case Case01:
		return "01"
	case Case11:
		return "11"
	default:
		return "00"
	}
}

// hopClass is the tagged variant classify() returns (spec §9 design note:
// "extract the per-hop classification into a pure function classify(...)
// returning a tagged variant").
type hopClass struct {
	Case  Case
	Cycle graph.Cycle
	// Dir is the cycle-walk direction recorded for Cycle at this hop (spec
	// §4.2.2), set only for Case10 and Case01; Case11 leaves it zero.
	Dir int
}

// dirOf computes the cycle direction d of spec §4.2.2: d=+1 when q is the
// position right after p (mod k), else -1.
func dirOf(p, q, k int) int {
	if mod(p+1, k) == q {
		return 1
	}
	return -1
}

func mod(i, k int) int {
	return ((i % k) + k) % k
}

// backupNeighbor returns the cycle neighbour of cur (at position p) opposite
// the on-path direction d: C[(p-d) mod k] (spec §4.2.2). Invariant 2 of
// spec §8 requires this neighbour differ from the on-path predecessor,
// which holds whenever prev is itself one of cur's two cycle-neighbours —
// true whenever the classifying cycle was chosen because it actually
// covers the path edge in question.
func backupNeighbor(c graph.Cycle, p, d int) ofproto.SwitchID {
	return c.At(p - d)
}

// classifyFirst classifies s0, the first switch on the path. Only the
// forward edge (s0,s1) is ever considered — there is no predecessor (spec
// §4.2.1: "s0 applies only the 10/no-bp case").
func classifyFirst(s0, s1 ofproto.SwitchID, cat graph.Catalogue) hopClass {
	for _, c := range cat.CoveringBoth(s0, s1) {
		p := c.IndexOf(s0)
		q := c.IndexOf(s1)
		return hopClass{Case: Case10, Cycle: c, Dir: dirOf(p, q, c.Len())}
	}
	return hopClass{Case: Case00}
}

// classifyLast classifies sn, the last switch on the path. Only the
// backward edge (s_{n-1},sn) is ever considered (spec §4.2.1: "sn only the
// 01/no-bp case").
func classifyLast(sPrev, sLast ofproto.SwitchID, cat graph.Catalogue) hopClass {
	for _, c := range cat.CoveringBoth(sPrev, sLast) {
		p := c.IndexOf(sLast)
		q := c.IndexOf(sPrev)
		return hopClass{Case: Case01, Cycle: c, Dir: dirOf(p, q, c.Len())}
	}
	return hopClass{Case: Case00}
}

// classifyInterior classifies an interior hop (s_{i-1}, s_i, s_{i+1}) per
// spec §4.2.1. A single cycle covering both neighbouring edges wins
// outright (case 11); otherwise the left edge and the right edge are
// tested independently.
func classifyInterior(prev, cur, next ofproto.SwitchID, cat graph.Catalogue) hopClass {
	for _, c := range cat {
		if c.Contains(prev) && c.Contains(cur) && c.Contains(next) {
			return hopClass{Case: Case11, Cycle: c}
		}
	}
	for _, c := range cat.CoveringBoth(prev, cur) {
		if !c.Contains(next) {
			p := c.IndexOf(cur)
			q := c.IndexOf(prev)
			return hopClass{Case: Case10, Cycle: c, Dir: dirOf(p, q, c.Len())}
		}
	}
	for _, c := range cat.CoveringBoth(cur, next) {
		if !c.Contains(prev) {
			p := c.IndexOf(cur)
			q := c.IndexOf(next)
			return hopClass{Case: Case01, Cycle: c, Dir: dirOf(p, q, c.Len())}
		}
	}
	return hopClass{Case: Case00}
}
