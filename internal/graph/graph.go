// Package graph implements the pure graph algorithms the reactive
// forwarding core depends on: the undirected adjacency representation of
// the topology and the simple-cycle catalogue derived from it (spec §4.1).
//
// Nothing in this package talks to a switch, a socket or a clock; it is
// called only on topology change, never on the packet-in hot path (spec
// §5).
package graph

import (
	"sort"

	"github.com/octofabric/reactor/internal/ofproto"
)

// Adjacency is an undirected graph over switch IDs: symmetric by
// construction (spec §3, "AdjacencyGraph ... symmetric").
type Adjacency struct {
	neighbors map[ofproto.SwitchID]map[ofproto.SwitchID]struct{}
}

// NewAdjacency returns an empty adjacency graph.
func NewAdjacency() *Adjacency {
	return &Adjacency{neighbors: make(map[ofproto.SwitchID]map[ofproto.SwitchID]struct{})}
}

// AddEdge records an undirected edge between a and b. Self-edges are
// rejected silently; the topology never links a switch to itself.
func (g *Adjacency) AddEdge(a, b ofproto.SwitchID) {
	if a == b {
		return
	}
	g.addVertex(a)
	g.addVertex(b)
	g.neighbors[a][b] = struct{}{}
	g.neighbors[b][a] = struct{}{}
}

func (g *Adjacency) addVertex(v ofproto.SwitchID) {
	if _, ok := g.neighbors[v]; !ok {
		g.neighbors[v] = make(map[ofproto.SwitchID]struct{})
	}
}

// Neighbors returns the switches directly linked to v, in ascending order.
func (g *Adjacency) Neighbors(v ofproto.SwitchID) []ofproto.SwitchID {
	set := g.neighbors[v]
	out := make([]ofproto.SwitchID, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasEdge reports whether a and b are directly linked.
func (g *Adjacency) HasEdge(a, b ofproto.SwitchID) bool {
	nbrs, ok := g.neighbors[a]
	if !ok {
		return false
	}
	_, ok = nbrs[b]
	return ok
}

// Vertices returns every switch with at least one recorded edge, ascending.
func (g *Adjacency) Vertices() []ofproto.SwitchID {
	out := make([]ofproto.SwitchID, 0, len(g.neighbors))
	for v := range g.neighbors {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
