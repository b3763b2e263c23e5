package topology

import "sync/atomic"

// Store is the process-wide, single-writer handle to the current View
// (spec §5: "TopologyView and CycleCatalogue: read-only for the engine;
// replaced wholesale by the topology collaborator under a single-writer
// discipline"). Readers call Load and keep using the returned *View for
// the duration of one packet-in handling, even if Swap races ahead of
// them: that racing read is exactly the "immutable snapshot by reference"
// the design notes call for.
type Store struct {
	v atomic.Pointer[View]
}

// NewStore returns a Store seeded with an empty View so Load never
// returns nil before the first real topology event arrives.
func NewStore() *Store {
	s := &Store{}
	s.v.Store(NewView())
	return s
}

// Load returns the current View snapshot.
func (s *Store) Load() *View {
	return s.v.Load()
}

// Swap atomically replaces the current View. Called only by the topology
// collaborator (LLDP/link discovery, host learning), never by the engine.
func (s *Store) Swap(v *View) {
	s.v.Store(v)
}
