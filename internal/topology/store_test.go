package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreSeededEmpty(t *testing.T) {
	s := NewStore()
	v := s.Load()
	assert.NotNil(t, v)
	assert.Empty(t, v.Graph.Vertices())
}

func TestStoreSwapReplacesWholesale(t *testing.T) {
	s := NewStore()
	first := s.Load()

	next := NewView()
	next.Graph.AddEdge(1, 2)
	s.Swap(next)

	assert.Same(t, next, s.Load())
	assert.NotSame(t, first, s.Load())
	assert.Empty(t, first.Graph.Vertices(), "swapping must not mutate the previously loaded snapshot")
}
