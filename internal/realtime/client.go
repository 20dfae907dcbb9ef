package realtime

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/protocol"
)

// Buffer size for outgoing notifications per client
const sendBufferSize = 64

// Client is one player's notification stream
type Client struct {
	playerID    model.PlayerID
	send        chan protocol.Envelope
	connectedAt time.Time
	replaced    atomic.Bool
	closeOnce   sync.Once
}

// NewClient creates an unregistered client for a player
func NewClient(playerID model.PlayerID) *Client {
	return &Client{
		playerID:    playerID,
		send:        make(chan protocol.Envelope, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// PlayerID returns the player this client delivers to
func (c *Client) PlayerID() model.PlayerID {
	return c.playerID
}

// Messages returns the channel of notifications. It is closed when the client
// is unregistered, replaced, or the hub stops.
func (c *Client) Messages() <-chan protocol.Envelope {
	return c.send
}

// Replaced returns true if a newer client for the same player took over
func (c *Client) Replaced() bool {
	return c.replaced.Load()
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}
