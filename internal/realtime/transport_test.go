package realtime_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship-go/internal/dependencies/clock"
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/protocol"
	"github.com/mcoot/battleship-go/internal/realtime"
	"github.com/mcoot/battleship-go/internal/services/session"
	"github.com/mcoot/battleship-go/internal/testutil"
)

type transportServer struct {
	hub    *realtime.Hub
	router *session.Router
	server *httptest.Server
}

// newTransportServer serves /sse and /ws, taking the player id from the query string
func newTransportServer(t *testing.T) *transportServer {
	t.Helper()
	logger := testutil.NopLogger()
	hub := realtime.NewHub(logger)
	go hub.Run()
	router := session.NewRouter(hub, nil, clock.New(), random.New(), logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/sse", func(w http.ResponseWriter, r *http.Request) {
		realtime.ServeSSE(w, r, hub, router, model.PlayerID(r.URL.Query().Get("player")), logger)
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		realtime.ServeWS(w, r, hub, router, model.PlayerID(r.URL.Query().Get("player")), logger)
	})

	ts := &transportServer{hub: hub, router: router, server: httptest.NewServer(mux)}
	t.Cleanup(func() {
		ts.server.Close()
		hub.Close()
	})
	return ts
}

func (ts *transportServer) dial(t *testing.T, player string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.server.URL, "http") + "/ws?player=" + player
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

type wireEnvelope struct {
	Type    protocol.NotificationType `json:"type"`
	Payload json.RawMessage           `json:"payload"`
}

func readEnvelope(t *testing.T, conn *websocket.Conn) wireEnvelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env wireEnvelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func TestWebSocketJoinAndMatchStart(t *testing.T) {
	ts := newTransportServer(t)
	alice := ts.dial(t, "alice")
	bob := ts.dial(t, "bob")

	require.NoError(t, alice.WriteJSON(protocol.JoinIntent()))
	status := readEnvelope(t, alice)
	assert.Equal(t, protocol.NotifyStatus, status.Type)
	assert.JSONEq(t, `{"text":"Joined matchmaking queue..."}`, string(status.Payload))

	require.NoError(t, bob.WriteJSON(protocol.JoinIntent()))
	assert.Equal(t, protocol.NotifyStatus, readEnvelope(t, bob).Type)

	started := readEnvelope(t, alice)
	assert.Equal(t, protocol.NotifyMatchStarted, started.Type)
	var payload protocol.MatchStartedPayload
	require.NoError(t, json.Unmarshal(started.Payload, &payload))
	assert.Equal(t, [2]model.PlayerID{"alice", "bob"}, payload.Players)
	assert.Equal(t, model.PlayerID("alice"), payload.You)
	assert.Equal(t, protocol.NotifyMatchStarted, readEnvelope(t, bob).Type)
}

func TestWebSocketInvalidIntentReportsError(t *testing.T) {
	ts := newTransportServer(t)
	alice := ts.dial(t, "alice")

	require.NoError(t, alice.WriteMessage(websocket.TextMessage, []byte(`{"type":"warp"}`)))
	env := readEnvelope(t, alice)
	assert.Equal(t, protocol.NotifyError, env.Type)
	assert.Contains(t, string(env.Payload), protocol.CodeInvalidIntent)

	require.NoError(t, alice.WriteJSON(protocol.FireShotIntent(1, 1)))
	env = readEnvelope(t, alice)
	assert.Equal(t, protocol.NotifyError, env.Type)
	assert.Contains(t, string(env.Payload), protocol.CodeNoSuchMatch)
}

func TestWebSocketCloseNotifiesOpponent(t *testing.T) {
	ts := newTransportServer(t)
	alice := ts.dial(t, "alice")
	bob := ts.dial(t, "bob")

	require.NoError(t, alice.WriteJSON(protocol.JoinIntent()))
	readEnvelope(t, alice)
	require.NoError(t, bob.WriteJSON(protocol.JoinIntent()))
	readEnvelope(t, bob)
	readEnvelope(t, bob) // match_started

	require.NoError(t, alice.Close())

	left := readEnvelope(t, bob)
	assert.Equal(t, protocol.NotifyOpponentLeft, left.Type)
	assert.Eventually(t, func() bool {
		return ts.router.Stats().LiveMatches == 0
	}, time.Second, 10*time.Millisecond)
}

func TestSSEStreamsNotifications(t *testing.T) {
	ts := newTransportServer(t)

	resp, err := http.Get(ts.server.URL + "/sse?player=alice")
	require.NoError(t, err)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 64)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	waitFor := func(want string) {
		t.Helper()
		deadline := time.After(2 * time.Second)
		for {
			select {
			case line, ok := <-lines:
				require.True(t, ok, "stream closed before %q", want)
				if line == want {
					return
				}
			case <-deadline:
				t.Fatalf("timed out waiting for %q", want)
			}
		}
	}

	waitFor("event: connected")
	require.NoError(t, ts.router.Join(context.Background(), "alice"))
	waitFor("event: status")
	waitFor(`data: {"text":"Joined matchmaking queue..."}`)

	// Closing the stream removes the player from the queue
	require.NoError(t, resp.Body.Close())
	assert.Eventually(t, func() bool {
		return ts.router.Stats().Queued == 0
	}, 2*time.Second, 10*time.Millisecond)
}
