// Package pathoracle implements the PathOracle contract (spec §2.3,
// §4.4): "give me the primary and one edge-disjoint-ish backup path
// between switch a and switch b under weighting mode hop, delay or
// bandwidth". The contract itself is specified as an external
// collaborator's — link delay and bandwidth measurement are explicitly
// out of scope (spec §1) — so this package is a thin cache/dispatch
// layer in the style of the teacher's patrickmn/go-cache-backed
// memoization, delegating the actual delay/bandwidth path search to
// pluggable Computer funcs and falling back to an in-process
// breadth-first search for the hop mode so `reactor serve` has a usable
// default without a separate measurement service.
package pathoracle

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/octofabric/reactor/internal/graph"
	"github.com/octofabric/reactor/internal/ofproto"
)

// Weight selects the path-weighting mode (spec §6).
type Weight string

const (
	WeightHop   Weight = "hop"
	WeightDelay Weight = "delay"
	WeightBW    Weight = "bw"
)

// Pair is a primary path plus its edge-disjoint-ish backup. Backup is nil
// when none exists (spec table: Path "n=0: same-switch case"; a
// single-switch or single-path topology has no backup).
type Pair struct {
	Primary []ofproto.SwitchID
	Backup  []ofproto.SwitchID
}

// Computer computes every pair of (primary, backup) paths between src and
// dst under a delay- or bandwidth-aware metric. Real implementations live
// outside this module (spec §1: delay/bandwidth measurement out of
// scope); tests and the CLI default wire in stubs or the hop BFS.
type Computer func(g *graph.Adjacency, src, dst ofproto.SwitchID) (Pair, bool)

// Oracle is the PathOracle contract (spec §4.4).
type Oracle interface {
	Paths(src, dst ofproto.SwitchID) (Pair, bool)
	SetWeight(w Weight)
}

// CachedOracle implements Oracle per the three weight-mode rules of spec
// §4.4, using github.com/patrickmn/go-cache for the delay/bandwidth
// memoization the teacher's destination/endpoint-translator caches
// lookups with the same library.
type CachedOracle struct {
	weight Weight

	graph *graph.Adjacency

	hopCache *gocache.Cache // populated wholesale on every RefreshHopCache; never computed on demand
	delayC   *gocache.Cache
	bwC      *gocache.Cache

	delayCompute Computer
	bwCompute    Computer
}

// NewCachedOracle returns an Oracle seeded with weight w. delayCompute and
// bwCompute may be nil if that mode is never used; calling Paths under a
// nil Computer's mode returns ok=false rather than panicking.
func NewCachedOracle(w Weight, delayCompute, bwCompute Computer) *CachedOracle {
	return &CachedOracle{
		weight:       w,
		graph:        graph.NewAdjacency(),
		hopCache:     gocache.New(gocache.NoExpiration, gocache.NoExpiration),
		delayC:       gocache.New(5*time.Minute, 10*time.Minute),
		bwC:          gocache.New(5*time.Minute, 10*time.Minute),
		delayCompute: delayCompute,
		bwCompute:    bwCompute,
	}
}

// SetWeight changes the active weighting mode. Per spec §6, "changing it
// calls PathOracle to refresh the hop-weight cache" — switching into hop
// mode with a graph already on file recomputes every cached pair
// immediately rather than lazily.
func (o *CachedOracle) SetWeight(w Weight) {
	o.weight = w
	if w == WeightHop && o.graph != nil {
		o.RefreshHopCache(o.graph)
	}
}

// RefreshHopCache recomputes every reachable (src,dst) hop pair from g and
// replaces the hop cache wholesale, matching spec §4.4's "weight = hop:
// return the precomputed pair of paths, no recomputation" — all the work
// happens here, on topology change, not on the packet-in path.
func (o *CachedOracle) RefreshHopCache(g *graph.Adjacency) {
	o.graph = g
	fresh := gocache.New(gocache.NoExpiration, gocache.NoExpiration)
	vertices := g.Vertices()
	for _, src := range vertices {
		for _, dst := range vertices {
			if src == dst {
				continue
			}
			if pair, ok := hopPair(g, src, dst); ok {
				fresh.SetDefault(cacheKey(src, dst), pair)
			}
		}
	}
	o.hopCache = fresh
	o.delayC.Flush()
	o.bwC.Flush()
}

// Paths implements the PathOracle contract (spec §4.4).
func (o *CachedOracle) Paths(src, dst ofproto.SwitchID) (Pair, bool) {
	if src == dst {
		return Pair{Primary: []ofproto.SwitchID{src}}, true
	}

	switch o.weight {
	case WeightDelay:
		if v, found := o.delayC.Get(cacheKey(src, dst)); found {
			return v.(Pair), true
		}
		if o.delayCompute == nil {
			return Pair{}, false
		}
		pair, ok := o.delayCompute(o.graph, src, dst)
		if !ok {
			return Pair{}, false
		}
		o.delayC.SetDefault(cacheKey(src, dst), pair)
		return pair, true

	case WeightBW:
		if v, found := o.bwC.Get(cacheKey(src, dst)); found {
			return v.(Pair), true
		}
		if o.bwCompute == nil {
			return Pair{}, false
		}
		// spec §4.4: "else recompute all best paths and return" — the
		// bandwidth metric is global (every path's bottleneck link can
		// shift when any link's free capacity changes), so a miss
		// invalidates the whole cache rather than filling in one entry.
		o.bwC.Flush()
		pair, ok := o.bwCompute(o.graph, src, dst)
		if !ok {
			return Pair{}, false
		}
		o.bwC.SetDefault(cacheKey(src, dst), pair)
		return pair, true

	default: // WeightHop
		v, found := o.hopCache.Get(cacheKey(src, dst))
		if !found {
			return Pair{}, false
		}
		return v.(Pair), true
	}
}

func cacheKey(src, dst ofproto.SwitchID) string {
	return src.String() + ">" + dst.String()
}

// hopPair computes the primary shortest path plus one edge-disjoint-ish
// backup, the default "hop" weighting-mode computation (spec §4.4).
func hopPair(g *graph.Adjacency, src, dst ofproto.SwitchID) (Pair, bool) {
	primary, ok := graph.ShortestPath(g, src, dst)
	if !ok {
		return Pair{}, false
	}
	pair := Pair{Primary: primary}
	if backup, ok := graph.ShortestPath(graph.WithoutEdges(g, primary), src, dst); ok {
		pair.Backup = backup
	}
	return pair, true
}
