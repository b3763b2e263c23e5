// Package gateway implements MessageGateway (spec §2.7, §6): "send this
// control message to that switch." Encoding ofproto values onto an actual
// OpenFlow wire socket is out of scope for this module (spec §1); the
// websocket transport here carries them as JSON frames to a southbound
// shim that owns the real codec, the same split the teacher draws
// between its control plane and the destination/identity data it
// translates over gRPC.
package gateway

import (
	"context"

	"github.com/octofabric/reactor/internal/ofproto"
)

// Gateway is the MessageGateway contract: one method per outbound message
// kind the engine emits (spec §6).
type Gateway interface {
	SendFlowMod(ctx context.Context, fm ofproto.FlowMod) error
	SendGroupMod(ctx context.Context, gm ofproto.GroupMod) error
	SendPacketOut(ctx context.Context, po ofproto.PacketOut) error
}
