package flowprogram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/octofabric/reactor/internal/graph"
	"github.com/octofabric/reactor/internal/ofproto"
)

func sw(id uint64) ofproto.SwitchID { return ofproto.SwitchID(id) }

func TestClassifyFirstNoCycle(t *testing.T) {
	c := classifyFirst(sw(1), sw(2), nil)
	assert.Equal(t, Case00, c.Case)
	assert.Nil(t, c.Cycle)
}

func TestClassifyFirstWithCycle(t *testing.T) {
	cat := graph.Catalogue{graph.Cycle{sw(1), sw(2), sw(3)}}
	c := classifyFirst(sw(1), sw(2), cat)
	assert.Equal(t, Case10, c.Case)
	assert.NotNil(t, c.Cycle)
}

func TestClassifyLastWithCycle(t *testing.T) {
	cat := graph.Catalogue{graph.Cycle{sw(1), sw(2), sw(3)}}
	c := classifyLast(sw(2), sw(3), cat)
	assert.Equal(t, Case01, c.Case)
}

func TestClassifyInteriorAllThreeInSameCycle(t *testing.T) {
	cat := graph.Catalogue{graph.Cycle{sw(1), sw(2), sw(3)}}
	c := classifyInterior(sw(1), sw(2), sw(3), cat)
	assert.Equal(t, Case11, c.Case)
}

func TestClassifyInteriorLeftOnly(t *testing.T) {
	cat := graph.Catalogue{graph.Cycle{sw(1), sw(2), sw(5)}}
	c := classifyInterior(sw(1), sw(2), sw(3), cat)
	assert.Equal(t, Case10, c.Case)
}

func TestClassifyInteriorRightOnly(t *testing.T) {
	cat := graph.Catalogue{graph.Cycle{sw(2), sw(3), sw(5)}}
	c := classifyInterior(sw(1), sw(2), sw(3), cat)
	assert.Equal(t, Case01, c.Case)
}

func TestClassifyInteriorNone(t *testing.T) {
	c := classifyInterior(sw(1), sw(2), sw(3), nil)
	assert.Equal(t, Case00, c.Case)
}

func TestBackupNeighborNeverEqualsOnPathNeighbor(t *testing.T) {
	c := graph.Cycle{sw(1), sw(2), sw(3), sw(4)}
	k := c.Len()
	for p := 0; p < k; p++ {
		for _, q := range []int{mod(p-1, k), mod(p+1, k)} {
			d := dirOf(p, q, k)
			bp := backupNeighbor(c, p, d)
			assert.NotEqual(t, c.At(q), bp, "invariant 2: backup neighbour must differ from the on-path neighbour it substitutes for")
			assert.True(t, c.Contains(bp))
		}
	}
}
