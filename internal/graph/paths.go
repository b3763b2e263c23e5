package graph

import "github.com/octofabric/reactor/internal/ofproto"

// ShortestPath returns the minimum hop-count path from src to dst,
// inclusive of both endpoints, via breadth-first search. It is the "hop"
// weighting mode's underlying computation (spec §4.4); delay/bandwidth
// weighting is a pluggable concern layered on top by the pathoracle
// package, since delay and bandwidth measurement are themselves external
// collaborators (spec §1).
func ShortestPath(g *Adjacency, src, dst ofproto.SwitchID) ([]ofproto.SwitchID, bool) {
	if src == dst {
		return []ofproto.SwitchID{src}, true
	}

	prev := map[ofproto.SwitchID]ofproto.SwitchID{src: src}
	queue := []ofproto.SwitchID{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.Neighbors(cur) {
			if _, seen := prev[n]; seen {
				continue
			}
			prev[n] = cur
			if n == dst {
				return reconstruct(prev, src, dst), true
			}
			queue = append(queue, n)
		}
	}
	return nil, false
}

func reconstruct(prev map[ofproto.SwitchID]ofproto.SwitchID, src, dst ofproto.SwitchID) []ofproto.SwitchID {
	var rev []ofproto.SwitchID
	for v := dst; ; v = prev[v] {
		rev = append(rev, v)
		if v == src {
			break
		}
	}
	path := make([]ofproto.SwitchID, len(rev))
	for i, v := range rev {
		path[len(rev)-1-i] = v
	}
	return path
}

// WithoutEdges returns a copy of g with every edge along path removed,
// used to derive an edge-disjoint-ish backup path (spec §2.3: "one
// edge-disjoint-ish backup path").
func WithoutEdges(g *Adjacency, path []ofproto.SwitchID) *Adjacency {
	removed := make(map[[2]ofproto.SwitchID]struct{}, len(path))
	for i := 0; i+1 < len(path); i++ {
		removed[[2]ofproto.SwitchID{path[i], path[i+1]}] = struct{}{}
		removed[[2]ofproto.SwitchID{path[i+1], path[i]}] = struct{}{}
	}

	out := NewAdjacency()
	for _, v := range g.Vertices() {
		for _, n := range g.Neighbors(v) {
			if v >= n {
				continue // visit each undirected edge once
			}
			if _, skip := removed[[2]ofproto.SwitchID{v, n}]; skip {
				continue
			}
			out.AddEdge(v, n)
		}
	}
	return out
}
