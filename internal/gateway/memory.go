package gateway

import (
	"context"
	"sync"

	"github.com/octofabric/reactor/internal/ofproto"
)

// FakeGateway is an in-memory Gateway that records every message it was
// asked to send, for dispatcher wiring tests.
type FakeGateway struct {
	mu         sync.Mutex
	Flows      []ofproto.FlowMod
	Groups     []ofproto.GroupMod
	PacketOuts []ofproto.PacketOut
}

// NewFakeGateway returns an empty FakeGateway.
func NewFakeGateway() *FakeGateway { return &FakeGateway{} }

func (f *FakeGateway) SendFlowMod(_ context.Context, fm ofproto.FlowMod) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Flows = append(f.Flows, fm)
	return nil
}

func (f *FakeGateway) SendGroupMod(_ context.Context, gm ofproto.GroupMod) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Groups = append(f.Groups, gm)
	return nil
}

func (f *FakeGateway) SendPacketOut(_ context.Context, po ofproto.PacketOut) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PacketOuts = append(f.PacketOuts, po)
	return nil
}

// Reset clears every recorded message.
func (f *FakeGateway) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Flows, f.Groups, f.PacketOuts = nil, nil, nil
}
