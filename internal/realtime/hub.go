package realtime

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/protocol"
	"github.com/mcoot/battleship-go/internal/services/session"
)

// Buffer size for notifications waiting to be routed to clients
const deliverBufferSize = 1024

type delivery struct {
	playerID model.PlayerID
	envelope protocol.Envelope
}

// Hub routes notifications to the connected client of each player.
// A player has at most one client; registering a new one replaces the old.
type Hub struct {
	clients map[model.PlayerID]*Client
	mu      sync.RWMutex
	logger  *slog.Logger

	// Channels for managing clients
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
	done       chan struct{}
	closeOnce  sync.Once
}

var _ session.Notifier = (*Hub)(nil)

// NewHub creates a Hub. Call Run in its own goroutine before use.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[model.PlayerID]*Client),
		logger:     logger.With(slog.String("component", "realtime-hub")),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, deliverBufferSize),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop. Only this loop writes to or closes client channels.
func (h *Hub) Run() {
	h.logger.Info("realtime hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if old, ok := h.clients[client.playerID]; ok && old != client {
				old.replaced.Store(true)
				old.close()
				h.logger.Info("realtime client replaced",
					slog.String("player_id", string(client.playerID)))
			}
			h.clients[client.playerID] = client
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("realtime client registered",
				slog.String("player_id", string(client.playerID)),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.playerID]; ok && current == client {
				delete(h.clients, client.playerID)
			}
			clientCount := len(h.clients)
			h.mu.Unlock()
			client.close()
			h.logger.Info("realtime client unregistered",
				slog.String("player_id", string(client.playerID)),
				slog.Duration("connection_duration", time.Since(client.connectedAt)),
				slog.Int("total_clients", clientCount))

		case d := <-h.deliver:
			h.mu.RLock()
			client, ok := h.clients[d.playerID]
			h.mu.RUnlock()
			if !ok {
				h.logger.Debug("notification for disconnected player",
					slog.String("player_id", string(d.playerID)),
					slog.String("type", string(d.envelope.Type)))
				continue
			}
			select {
			case client.send <- d.envelope:
			default:
				// Evict a client that cannot keep up. Its transport sees the
				// closed channel and disconnects the player.
				h.mu.Lock()
				if current, ok := h.clients[d.playerID]; ok && current == client {
					delete(h.clients, d.playerID)
				}
				h.mu.Unlock()
				client.close()
				h.logger.Warn("realtime client evicted - buffer full",
					slog.String("player_id", string(d.playerID)),
					slog.String("type", string(d.envelope.Type)))
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for id, client := range h.clients {
				client.close()
				delete(h.clients, id)
			}
			h.mu.Unlock()
			h.logger.Info("realtime hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// Connect creates and registers a client for the player
func (h *Hub) Connect(playerID model.PlayerID) *Client {
	client := NewClient(playerID)
	h.Register(client)
	return client
}

// Register adds a client to the hub, replacing any existing client for the player
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.close()
	}
}

// Unregister removes a client from the hub and closes its channel
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Send queues a notification for a player without blocking
func (h *Hub) Send(playerID model.PlayerID, env protocol.Envelope) {
	select {
	case h.deliver <- delivery{playerID: playerID, envelope: env}:
	default:
		h.logger.Warn("realtime notification dropped - hub buffer full",
			slog.String("player_id", string(playerID)),
			slog.String("type", string(env.Type)))
	}
}

// Close shuts down the hub and closes every client
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// ClientCount returns the number of connected players
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// IsConnected returns true if the player has a registered client
func (h *Hub) IsConnected(playerID model.PlayerID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[playerID]
	return ok
}
