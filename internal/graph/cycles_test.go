package graph

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octofabric/reactor/internal/ofproto"
)

func sw(id uint64) ofproto.SwitchID { return ofproto.SwitchID(id) }

// TestEnumerateCycles_K3 covers spec §8 boundary scenario 1: a triangle
// yields exactly one cycle.
func TestEnumerateCycles_K3(t *testing.T) {
	g := NewAdjacency()
	g.AddEdge(sw(1), sw(2))
	g.AddEdge(sw(2), sw(3))
	g.AddEdge(sw(1), sw(3))

	cat := EnumerateCycles(g)
	require.Len(t, cat, 1)
	want := Cycle{sw(1), sw(2), sw(3)}
	if diff := deep.Equal(Cycle(cat[0]), want); diff != nil {
		t.Errorf("unexpected cycle: %v", diff)
	}
}

// TestEnumerateCycles_Pendant covers spec §8 boundary scenario 2: a
// triangle with a pendant vertex still yields exactly one cycle.
func TestEnumerateCycles_Pendant(t *testing.T) {
	g := NewAdjacency()
	g.AddEdge(sw(1), sw(2))
	g.AddEdge(sw(1), sw(3))
	g.AddEdge(sw(2), sw(3))
	g.AddEdge(sw(3), sw(4))

	cat := EnumerateCycles(g)
	require.Len(t, cat, 1)
	assert.Equal(t, Cycle{sw(1), sw(2), sw(3)}, cat[0])
}

// TestEnumerateCycles_NoDuplicates exercises a 4-cycle and a 5-cycle
// sharing an edge, plus the outer 7-cycle 1-4-3-2-5-6-7-1 they form
// together, verifying each appears exactly once in canonical form (spec §8
// invariant 1) regardless of which vertex the DFS starts at.
func TestEnumerateCycles_NoDuplicates(t *testing.T) {
	g := NewAdjacency()
	// 4-cycle: 1-2-3-4-1
	g.AddEdge(sw(1), sw(2))
	g.AddEdge(sw(2), sw(3))
	g.AddEdge(sw(3), sw(4))
	g.AddEdge(sw(4), sw(1))
	// 5-cycle sharing edge (1,2): 1-2-5-6-7-1
	g.AddEdge(sw(2), sw(5))
	g.AddEdge(sw(5), sw(6))
	g.AddEdge(sw(6), sw(7))
	g.AddEdge(sw(7), sw(1))

	cat := EnumerateCycles(g)
	seen := make(map[string]int)
	for _, c := range cat {
		seen[sigOf(c)]++
	}
	for sig, n := range seen {
		assert.Equalf(t, 1, n, "cycle %s appeared %d times", sig, n)
	}
	assert.Len(t, cat, 3)
}

// TestEnumerateCycles_Empty ensures an acyclic graph yields an empty,
// non-nil-panicking catalogue.
func TestEnumerateCycles_Empty(t *testing.T) {
	g := NewAdjacency()
	g.AddEdge(sw(1), sw(2))
	g.AddEdge(sw(2), sw(3))

	cat := EnumerateCycles(g)
	assert.Empty(t, cat)
}

func sigOf(c Cycle) string {
	s := ""
	for _, v := range c {
		s += v.String() + ","
	}
	return s
}
