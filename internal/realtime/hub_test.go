package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship-go/internal/protocol"
	"github.com/mcoot/battleship-go/internal/testutil"
)

func newRunningHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

func receive(t *testing.T, client *Client) (protocol.Envelope, bool) {
	t.Helper()
	select {
	case env, ok := <-client.Messages():
		return env, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")
		return protocol.Envelope{}, false
	}
}

func TestHubDeliversToPlayer(t *testing.T) {
	hub := newRunningHub(t)
	alice := hub.Connect("alice")
	bob := hub.Connect("bob")

	hub.Send("alice", protocol.Status("hello"))

	env, ok := receive(t, alice)
	require.True(t, ok)
	assert.Equal(t, protocol.Status("hello"), env)
	assert.Empty(t, bob.Messages())
	assert.Equal(t, 2, hub.ClientCount())
}

func TestHubReplacesClientForSamePlayer(t *testing.T) {
	hub := newRunningHub(t)
	first := hub.Connect("alice")
	second := hub.Connect("alice")

	_, ok := receive(t, first)
	assert.False(t, ok, "replaced client channel should be closed")
	assert.True(t, first.Replaced())
	assert.False(t, second.Replaced())

	// Unregistering the stale client leaves the new one in place
	hub.Unregister(first)
	assert.True(t, hub.IsConnected("alice"))

	hub.Send("alice", protocol.PlayerReady())
	env, ok := receive(t, second)
	require.True(t, ok)
	assert.Equal(t, protocol.NotifyPlayerReady, env.Type)
}

func TestHubUnregisterClosesClient(t *testing.T) {
	hub := newRunningHub(t)
	client := hub.Connect("alice")

	hub.Unregister(client)

	_, ok := receive(t, client)
	assert.False(t, ok)
	assert.False(t, client.Replaced())
	assert.False(t, hub.IsConnected("alice"))
}

func TestHubSendToUnknownPlayerIsDropped(t *testing.T) {
	hub := newRunningHub(t)
	client := hub.Connect("alice")

	hub.Send("nobody", protocol.Status("lost"))
	hub.Send("alice", protocol.Status("found"))

	env, ok := receive(t, client)
	require.True(t, ok)
	assert.Equal(t, protocol.Status("found"), env)
}

func TestHubEvictsClientWithFullBuffer(t *testing.T) {
	hub := newRunningHub(t)
	client := hub.Connect("alice")

	for i := 0; i < sendBufferSize+1; i++ {
		hub.Send("alice", protocol.Status("tick"))
	}
	require.Eventually(t, func() bool {
		return !hub.IsConnected("alice")
	}, time.Second, 5*time.Millisecond)

	// The buffered notifications are still readable, then the channel closes
	received := 0
	for {
		_, ok := receive(t, client)
		if !ok {
			break
		}
		received++
	}
	assert.Equal(t, sendBufferSize, received)
	assert.False(t, client.Replaced())

	// A fresh connection for the same player works normally
	again := hub.Connect("alice")
	hub.Send("alice", protocol.PlayerReady())
	env, ok := receive(t, again)
	require.True(t, ok)
	assert.Equal(t, protocol.NotifyPlayerReady, env.Type)
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	client := hub.Connect("alice")

	hub.Close()

	_, ok := receive(t, client)
	assert.False(t, ok)
}

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "status",
			data:      `{"text":"hi"}`,
			expected:  "event: status\ndata: {\"text\":\"hi\"}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "state_update",
			data:      "{\n  \"phase\": \"active\"\n}",
			expected:  "event: state_update\ndata: {\ndata:   \"phase\": \"active\"\ndata: }\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatSSEMessage(tt.eventName, tt.data)))
		})
	}
}
