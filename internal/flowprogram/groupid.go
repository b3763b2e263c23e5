package flowprogram

import (
	"sync/atomic"

	"github.com/octofabric/reactor/internal/ofproto"
)

// Allocator is the process-wide GroupId counter (spec §3, §5, §9):
// incremented by 2 per IPv4 packet-in, forward direction uses the
// returned id, reverse uses id+1. Ids are never reused within the
// process lifetime.
type Allocator struct {
	next uint32
}

// NewAllocator returns an Allocator starting at 0; the first Next() call
// returns (2, 3) so that id 0 is never handed out (0 would be
// indistinguishable from "no group" in OFPActionGroup-free paths).
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Next atomically reserves the next (forward, reverse) group-id pair.
func (a *Allocator) Next() (fwd, rev ofproto.GroupID) {
	n := atomic.AddUint32(&a.next, 2)
	return ofproto.GroupID(n), ofproto.GroupID(n + 1)
}
