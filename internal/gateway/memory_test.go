package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/octofabric/reactor/internal/ofproto"
)

func TestFakeGatewayRecordsEachKind(t *testing.T) {
	g := NewFakeGateway()
	ctx := context.Background()

	assert.NoError(t, g.SendFlowMod(ctx, ofproto.FlowMod{Switch: 1}))
	assert.NoError(t, g.SendGroupMod(ctx, ofproto.GroupMod{Switch: 1}))
	assert.NoError(t, g.SendPacketOut(ctx, ofproto.PacketOut{Switch: 1}))

	assert.Len(t, g.Flows, 1)
	assert.Len(t, g.Groups, 1)
	assert.Len(t, g.PacketOuts, 1)

	g.Reset()
	assert.Empty(t, g.Flows)
	assert.Empty(t, g.Groups)
	assert.Empty(t, g.PacketOuts)
}
