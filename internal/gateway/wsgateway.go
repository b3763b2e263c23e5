package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/octofabric/reactor/internal/ofproto"
)

// envelope is the JSON frame a Session carries over the wire. Kind
// disambiguates the payload for the southbound shim on the other end,
// which owns translating it into the real OpenFlow bytes.
type envelope struct {
	Kind    string      `json:"kind"`
	Payload interface{} `json:"payload"`
}

// Session is one switch's websocket connection. It satisfies
// registry.Session so the value WSGateway.Bind returns can be passed
// straight to Registry.Register.
type Session struct {
	dpid ofproto.SwitchID
	conn *websocket.Conn
	mu   sync.Mutex // gorilla's Conn forbids concurrent writers
}

// SwitchID implements registry.Session.
func (s *Session) SwitchID() ofproto.SwitchID { return s.dpid }

func (s *Session) writeJSON(ctx context.Context, v interface{}) error {
	if dl, ok := ctx.Deadline(); ok {
		_ = s.conn.SetWriteDeadline(dl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// WSGateway is a Gateway backed by one websocket connection per switch —
// the demo southbound transport: every FlowMod/GroupMod/PacketOut is
// marshalled to JSON and written to the session named by the message's
// Switch field.
type WSGateway struct {
	mu       sync.RWMutex
	sessions map[ofproto.SwitchID]*Session
}

// NewWSGateway returns an empty WSGateway.
func NewWSGateway() *WSGateway {
	return &WSGateway{sessions: make(map[ofproto.SwitchID]*Session)}
}

// Bind wraps conn as dpid's session, registers it and returns it so the
// caller can also pass it to registry.Registry.Register.
func (g *WSGateway) Bind(dpid ofproto.SwitchID, conn *websocket.Conn) *Session {
	sess := &Session{dpid: dpid, conn: conn}
	g.mu.Lock()
	g.sessions[dpid] = sess
	g.mu.Unlock()
	return sess
}

// Remove drops dpid's session, e.g. on DEAD_DISPATCHER.
func (g *WSGateway) Remove(dpid ofproto.SwitchID) {
	g.mu.Lock()
	delete(g.sessions, dpid)
	g.mu.Unlock()
}

func (g *WSGateway) session(dpid ofproto.SwitchID) (*Session, error) {
	g.mu.RLock()
	sess, ok := g.sessions[dpid]
	g.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("gateway: no session for switch %s", dpid)
	}
	return sess, nil
}

func (g *WSGateway) SendFlowMod(ctx context.Context, fm ofproto.FlowMod) error {
	sess, err := g.session(fm.Switch)
	if err != nil {
		return err
	}
	return sess.writeJSON(ctx, envelope{Kind: "flow_mod", Payload: fm})
}

func (g *WSGateway) SendGroupMod(ctx context.Context, gm ofproto.GroupMod) error {
	sess, err := g.session(gm.Switch)
	if err != nil {
		return err
	}
	return sess.writeJSON(ctx, envelope{Kind: "group_mod", Payload: gm})
}

func (g *WSGateway) SendPacketOut(ctx context.Context, po ofproto.PacketOut) error {
	sess, err := g.session(po.Switch)
	if err != nil {
		return err
	}
	return sess.writeJSON(ctx, envelope{Kind: "packet_out", Payload: po})
}
