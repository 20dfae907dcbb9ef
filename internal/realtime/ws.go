package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/protocol"
	"github.com/mcoot/battleship-go/internal/services/session"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Pings are sent with this period; must be less than pongWait
	pingPeriod = 54 * time.Second

	// Largest inbound intent accepted
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS upgrades the request to a WebSocket. Inbound text frames are JSON
// intents dispatched to the router; outbound frames are JSON envelopes.
// When the connection drops the player is disconnected from the router.
func ServeWS(w http.ResponseWriter, r *http.Request, hub *Hub, router session.Interface, playerID model.PlayerID, logger *slog.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response
		logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := hub.Connect(playerID)
	go writePump(conn, client, logger)

	readPump(conn, client, hub, router, logger)

	hub.Unregister(client)
	_ = conn.Close()
	if !client.Replaced() {
		router.Disconnect(context.WithoutCancel(r.Context()), playerID)
	}
}

// readPump decodes intents until the connection fails or closes
func readPump(conn *websocket.Conn, client *Client, hub *Hub, router session.Interface, logger *slog.Logger) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx := context.Background()
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket read error",
					slog.String("player_id", string(client.playerID)),
					slog.String("error", err.Error()))
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		intent, err := protocol.DecodeIntent(message)
		if err != nil {
			hub.Send(client.playerID, protocol.Error(err))
			continue
		}
		// Rejections are reported to the player by the router itself
		_ = router.Dispatch(ctx, client.playerID, intent)
	}
}

// writePump writes envelopes and pings until the client channel closes
func writePump(conn *websocket.Conn, client *Client, logger *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case env, ok := <-client.Messages():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(env); err != nil {
				logger.Warn("websocket write failed",
					slog.String("player_id", string(client.playerID)),
					slog.String("error", err.Error()))
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
