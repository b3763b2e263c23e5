package graph

import (
	"sort"

	"github.com/octofabric/reactor/internal/ofproto"
)

// Cycle is a simple cycle [v0, v1, ..., v(k-1)] of distinct switches with
// an edge between consecutive entries (and between the last and v0). It is
// stored in canonical form (spec §4.1): v0 is the cycle's smallest switch
// ID, and v1 < v(k-1), so each cycle has exactly one representation.
//
// Cycles are kept as ordered slices, not sets: position within the cycle
// is what lets FlowProgrammer pick a consistent traversal direction (spec
// design note "cycle containers").
type Cycle []ofproto.SwitchID

// Len returns the cycle's length (number of distinct switches).
func (c Cycle) Len() int { return len(c) }

// IndexOf returns the position of v within the cycle, or -1 if absent.
func (c Cycle) IndexOf(v ofproto.SwitchID) int {
	for i, w := range c {
		if w == v {
			return i
		}
	}
	return -1
}

// Contains reports whether v appears in the cycle.
func (c Cycle) Contains(v ofproto.SwitchID) bool { return c.IndexOf(v) >= 0 }

// At returns the switch at modular index i (negative i wraps backwards),
// implementing the "C[(p±1) mod k]" indexing the spec's design notes call
// for in place of try/except IndexError.
func (c Cycle) At(i int) ofproto.SwitchID {
	n := len(c)
	return c[((i%n)+n)%n]
}

// Catalogue is the deduplicated set of cycles found in a topology, in
// canonical form (spec §3, "no duplicates under canonical form").
type Catalogue []Cycle

// CoveringBoth returns every cycle in the catalogue that contains both a
// and b (used by FlowProgrammer's per-hop classification, spec §4.2.1).
func (cat Catalogue) CoveringBoth(a, b ofproto.SwitchID) []Cycle {
	var out []Cycle
	for _, c := range cat {
		if c.Contains(a) && c.Contains(b) {
			out = append(out, c)
		}
	}
	return out
}

// EnumerateCycles produces every simple cycle of length k, for each k in
// [3, |V|], in canonical form, with no duplicates (spec §4.1, invariant 1
// of spec §8).
//
// Canonical form: a cycle is written starting at its smallest switch ID
// v0, oriented so the second element is smaller than the last (the
// lexicographically-minimal rotation fixing v0). The search below enforces
// this directly instead of generating-then-deduplicating: each starting
// vertex v only extends to neighbours greater than v (so v is forced to be
// the minimum), and the cycle only closes through a neighbour greater than
// the path's second vertex (breaking the fwd/reverse reflection tie) —
// the same two pruning rules the spec's algorithm names.
//
// Complexity is exponential in the vertex count in the worst case; callers
// run this only on topology change, never per packet-in (spec §5).
func EnumerateCycles(g *Adjacency) Catalogue {
	verts := g.Vertices()
	n := len(verts)

	var cat Catalogue
	for k := 3; k <= n; k++ {
		for _, v := range verts {
			extend(g, v, k, []ofproto.SwitchID{v}, &cat)
		}
	}
	sort.Slice(cat, func(i, j int) bool { return lessCycle(cat[i], cat[j]) })
	return cat
}

// extend performs the depth-first walk described in spec §4.1: grow path
// (rooted at v = path[0]) until it has length k-1, then look for a closing
// edge back to v.
func extend(g *Adjacency, v ofproto.SwitchID, k int, path []ofproto.SwitchID, cat *Catalogue) {
	last := path[len(path)-1]

	if len(path) == k-1 {
		for _, u := range g.Neighbors(last) {
			if u <= path[1] {
				continue // breaks the reflection tie: second elem must be < closing neighbour
			}
			if contains(path, u) {
				continue
			}
			if !g.HasEdge(u, v) {
				continue
			}
			closed := make(Cycle, len(path)+1)
			copy(closed, path)
			closed[len(path)] = u
			*cat = append(*cat, closed)
		}
		return
	}

	for _, u := range g.Neighbors(last) {
		if u <= v {
			continue // guarantees v stays the minimum label on the cycle
		}
		if contains(path, u) {
			continue
		}
		next := make([]ofproto.SwitchID, len(path)+1)
		copy(next, path)
		next[len(path)] = u
		extend(g, v, k, next, cat)
	}
}

func contains(path []ofproto.SwitchID, u ofproto.SwitchID) bool {
	for _, w := range path {
		if w == u {
			return true
		}
	}
	return false
}

func lessCycle(a, b Cycle) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
