package dispatcher

import (
	"context"
	"io"
	"net"
	"testing"

	logging "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/octofabric/reactor/internal/flowprogram"
	"github.com/octofabric/reactor/internal/gateway"
	"github.com/octofabric/reactor/internal/ofproto"
	"github.com/octofabric/reactor/internal/pathoracle"
	"github.com/octofabric/reactor/internal/registry"
	"github.com/octofabric/reactor/internal/telemetry"
	"github.com/octofabric/reactor/internal/topology"
)

type fakeSession struct{ id ofproto.SwitchID }

func (f fakeSession) SwitchID() ofproto.SwitchID { return f.id }

func sw(id uint64) ofproto.SwitchID { return ofproto.SwitchID(id) }

func discardLog() *logging.Entry {
	l := logging.New()
	l.SetOutput(io.Discard)
	return logging.NewEntry(l)
}

func ethArpFrame(target net.IP) []byte {
	b := make([]byte, 14+28)
	b[12], b[13] = 0x08, 0x06
	copy(b[14+24:14+28], target.To4())
	return b
}

func ethIPv4Frame(src, dst net.IP) []byte {
	b := make([]byte, 14+20)
	b[12], b[13] = 0x08, 0x00
	copy(b[14+12:14+16], src.To4())
	copy(b[14+16:14+20], dst.To4())
	return b
}

func newHarness(t *testing.T) (*Dispatcher, *topology.Store, *gateway.FakeGateway, *registry.Registry) {
	t.Helper()
	store := topology.NewStore()
	view := topology.NewView()
	view.Graph.AddEdge(sw(1), sw(2))
	view.LinkToPort[topology.LinkKey{Src: sw(1), Dst: sw(2)}] = topology.PortPair{Src: 12, Dst: 21}
	view.AccessPorts[sw(1)] = map[ofproto.Port]struct{}{1: {}}
	view.AccessPorts[sw(2)] = map[ofproto.Port]struct{}{9: {}}
	view.AccessTable[topology.AccessKey{Switch: sw(1), Port: 1}] = topology.Host{IP: net.ParseIP("10.0.0.1")}
	view.AccessTable[topology.AccessKey{Switch: sw(2), Port: 9}] = topology.Host{IP: net.ParseIP("10.0.0.2")}
	store.Swap(view)

	oracle := pathoracle.NewCachedOracle(pathoracle.WeightHop, nil, nil)
	oracle.RefreshHopCache(view.Graph)

	gw := gateway.NewFakeGateway()
	reg := registry.New(discardLog())
	alloc := flowprogram.NewAllocator()
	metrics := telemetry.New(prometheus.NewRegistry())

	d := New(store, oracle, reg, gw, alloc, metrics, discardLog())
	return d, store, gw, reg
}

func TestHandleStateChangeRegistersAndUnregisters(t *testing.T) {
	d, _, _, reg := newHarness(t)

	d.HandleStateChange(ofproto.StateChange{Switch: sw(1), State: ofproto.StateMain}, fakeSession{id: sw(1)})
	_, ok := reg.Get(sw(1))
	assert.True(t, ok)

	d.HandleStateChange(ofproto.StateChange{Switch: sw(1), State: ofproto.StateDead}, nil)
	_, ok = reg.Get(sw(1))
	assert.False(t, ok)
}

func TestHandlePacketInARPHitSendsOnlyOnePacketOut(t *testing.T) {
	d, _, gw, _ := newHarness(t)

	d.HandlePacketIn(context.Background(), ofproto.PacketIn{
		Switch: sw(1),
		InPort: 1,
		Data:   ethArpFrame(net.ParseIP("10.0.0.2")),
	})

	require.Len(t, gw.PacketOuts, 1)
	assert.Equal(t, sw(2), gw.PacketOuts[0].Switch)
	assert.Equal(t, ofproto.Port(9), gw.PacketOuts[0].OutPort)
}

func TestHandlePacketInARPMissFloods(t *testing.T) {
	d, store, gw, _ := newHarness(t)
	view := store.Load()
	view.AccessPorts[sw(1)][5] = struct{}{}
	view.AccessPorts[sw(2)][8] = struct{}{}

	d.HandlePacketIn(context.Background(), ofproto.PacketIn{
		Switch: sw(1),
		InPort: 5,
		Data:   ethArpFrame(net.ParseIP("10.0.0.99")),
	})

	// ports with a known host are never flooded; of the two unknown access
	// ports, the arrival port on switch 1 is excluded.
	require.Len(t, gw.PacketOuts, 1)
	assert.Equal(t, sw(2), gw.PacketOuts[0].Switch)
}

func TestHandlePacketInIPv4ProgramsFlows(t *testing.T) {
	d, _, gw, _ := newHarness(t)

	d.HandlePacketIn(context.Background(), ofproto.PacketIn{
		Switch:   sw(1),
		InPort:   1,
		BufferID: ofproto.NoBuffer,
		Data:     ethIPv4Frame(net.ParseIP("10.0.0.1"), net.ParseIP("10.0.0.2")),
	})

	assert.NotEmpty(t, gw.Flows)
	require.Len(t, gw.PacketOuts, 1)
	assert.Equal(t, sw(1), gw.PacketOuts[0].Switch)
}

func TestHandlePacketInIPv4UnknownHostDropsSilently(t *testing.T) {
	d, _, gw, _ := newHarness(t)

	d.HandlePacketIn(context.Background(), ofproto.PacketIn{
		Switch: sw(1),
		InPort: 1,
		Data:   ethIPv4Frame(net.ParseIP("10.0.0.1"), net.ParseIP("10.0.0.250")),
	})

	assert.Empty(t, gw.Flows)
	assert.Empty(t, gw.PacketOuts)
}

func TestHandlePacketInMalformedFrameDropsSilently(t *testing.T) {
	d, _, gw, _ := newHarness(t)

	d.HandlePacketIn(context.Background(), ofproto.PacketIn{Switch: sw(1), Data: []byte{1, 2, 3}})

	assert.Empty(t, gw.Flows)
	assert.Empty(t, gw.PacketOuts)
}

func TestHandleErrorDoesNotPanic(t *testing.T) {
	d, _, _, _ := newHarness(t)
	d.HandleError(ofproto.ErrorMsg{Switch: sw(1), Type: 1, Code: 2})
}
