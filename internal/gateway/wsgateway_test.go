package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/octofabric/reactor/internal/ofproto"
)

// TestWSGatewaySendFlowModRoundTrips spins up a real websocket server,
// binds it as a session and confirms a FlowMod arrives on the wire.
func TestWSGatewaySendFlowModRoundTrips(t *testing.T) {
	upgrader := websocket.Upgrader{}
	received := make(chan string, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		received <- string(msg)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	clientConn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer clientConn.Close()

	g := NewWSGateway()
	g.Bind(ofproto.SwitchID(7), clientConn)

	err = g.SendFlowMod(context.Background(), ofproto.FlowMod{Switch: 7, Priority: 1})
	require.NoError(t, err)

	msg := <-received
	require.Contains(t, msg, "flow_mod")
}

func TestWSGatewaySendUnknownSwitchErrors(t *testing.T) {
	g := NewWSGateway()
	err := g.SendFlowMod(context.Background(), ofproto.FlowMod{Switch: 99})
	require.Error(t, err)
}
