package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/battleship-go/internal/api/middleware"
	"github.com/mcoot/battleship-go/internal/realtime"
	"github.com/mcoot/battleship-go/internal/services/session"
)

// EventsHandler serves the realtime notification streams
type EventsHandler struct {
	hub    *realtime.Hub
	router session.Interface
	logger *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *realtime.Hub, router session.Interface, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		hub:    hub,
		router: router,
		logger: logger,
	}
}

// SSE handles GET /api/v1/events
func (h *EventsHandler) SSE(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	realtime.ServeSSE(w, r, h.hub, h.router, player.ID, h.logger)
}

// WebSocket handles GET /api/v1/ws
func (h *EventsHandler) WebSocket(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	realtime.ServeWS(w, r, h.hub, h.router, player.ID, h.logger)
}
