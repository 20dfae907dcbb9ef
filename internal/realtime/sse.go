package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/session"
)

// Time between SSE keepalive comments
const keepalivePeriod = 30 * time.Second

// ServeSSE streams the player's notifications as server-sent events. The
// event name is the notification type and the data is its JSON payload.
// When the client goes away the player is disconnected from the router.
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, router session.Interface, playerID model.PlayerID, logger *slog.Logger) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := hub.Connect(playerID)
	defer func() {
		hub.Unregister(client)
		if !client.Replaced() {
			router.Disconnect(context.WithoutCancel(r.Context()), playerID)
		}
	}()

	_, _ = w.Write([]byte("retry: 3000\n\n"))
	_, _ = w.Write(formatSSEMessage("connected", `{"status":"connected"}`))
	flusher.Flush()

	ticker := time.NewTicker(keepalivePeriod)
	defer ticker.Stop()

	for {
		select {
		case env, ok := <-client.Messages():
			if !ok {
				// Hub closed the channel
				return
			}
			data, err := env.MarshalPayload()
			if err != nil {
				logger.Error("failed to encode notification",
					slog.String("type", string(env.Type)),
					slog.String("error", err.Error()))
				continue
			}
			if _, err := w.Write(formatSSEMessage(string(env.Type), string(data))); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// formatSSEMessage formats an SSE message with event name and data.
// Multi-line data gets a "data: " prefix on each line.
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: " + eventName + "\n")
	for _, line := range splitLines(data) {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// splitLines splits a string into lines, handling various line endings
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	lines := strings.Split(s, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
