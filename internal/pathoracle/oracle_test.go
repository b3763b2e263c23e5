package pathoracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofabric/reactor/internal/graph"
	"github.com/octofabric/reactor/internal/ofproto"
)

func sw(id uint64) ofproto.SwitchID { return ofproto.SwitchID(id) }

func square() *graph.Adjacency {
	g := graph.NewAdjacency()
	g.AddEdge(sw(1), sw(2))
	g.AddEdge(sw(2), sw(3))
	g.AddEdge(sw(3), sw(4))
	g.AddEdge(sw(4), sw(1))
	return g
}

func TestCachedOracleHopSameSwitch(t *testing.T) {
	o := NewCachedOracle(WeightHop, nil, nil)
	pair, ok := o.Paths(sw(1), sw(1))
	require.True(t, ok)
	assert.Equal(t, []ofproto.SwitchID{sw(1)}, pair.Primary)
	assert.Nil(t, pair.Backup)
}

func TestCachedOracleHopMissWithoutRefresh(t *testing.T) {
	o := NewCachedOracle(WeightHop, nil, nil)
	_, ok := o.Paths(sw(1), sw(3))
	assert.False(t, ok, "hop mode never recomputes on demand, per spec §4.4")
}

func TestCachedOracleHopPrimaryAndBackup(t *testing.T) {
	o := NewCachedOracle(WeightHop, nil, nil)
	o.RefreshHopCache(square())

	pair, ok := o.Paths(sw(1), sw(3))
	require.True(t, ok)
	assert.Equal(t, []ofproto.SwitchID{sw(1), sw(2), sw(3)}, pair.Primary)
	assert.Equal(t, []ofproto.SwitchID{sw(1), sw(4), sw(3)}, pair.Backup, "backup avoids every edge on the primary path")
}

func TestCachedOracleSetWeightHopRefreshesFromRetainedGraph(t *testing.T) {
	o := NewCachedOracle(WeightHop, nil, nil)
	o.RefreshHopCache(square())
	o.SetWeight(WeightDelay)
	o.SetWeight(WeightHop)

	pair, ok := o.Paths(sw(1), sw(3))
	require.True(t, ok)
	assert.Equal(t, []ofproto.SwitchID{sw(1), sw(2), sw(3)}, pair.Primary)
}

func TestCachedOracleDelayComputesOnceThenCaches(t *testing.T) {
	calls := 0
	compute := func(g *graph.Adjacency, src, dst ofproto.SwitchID) (Pair, bool) {
		calls++
		return Pair{Primary: []ofproto.SwitchID{src, dst}}, true
	}
	o := NewCachedOracle(WeightDelay, compute, nil)
	o.RefreshHopCache(square())

	_, ok := o.Paths(sw(1), sw(3))
	require.True(t, ok)
	_, ok = o.Paths(sw(1), sw(3))
	require.True(t, ok)
	assert.Equal(t, 1, calls, "a cache hit must not call the delay computer again")
}

func TestCachedOracleDelayWithoutComputerMisses(t *testing.T) {
	o := NewCachedOracle(WeightDelay, nil, nil)
	_, ok := o.Paths(sw(1), sw(3))
	assert.False(t, ok)
}

func TestCachedOracleBandwidthMissFlushesWholeCache(t *testing.T) {
	calls := 0
	compute := func(g *graph.Adjacency, src, dst ofproto.SwitchID) (Pair, bool) {
		calls++
		return Pair{Primary: []ofproto.SwitchID{src, dst}}, true
	}
	o := NewCachedOracle(WeightBW, nil, compute)
	o.RefreshHopCache(square())

	_, ok := o.Paths(sw(1), sw(2))
	require.True(t, ok)
	_, ok = o.Paths(sw(3), sw(4))
	require.True(t, ok)
	assert.Equal(t, 2, calls)

	// first pair was evicted by the second miss's cache flush
	_, ok = o.Paths(sw(1), sw(2))
	require.True(t, ok)
	assert.Equal(t, 3, calls)
}
