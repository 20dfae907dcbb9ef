package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship-go/internal/api/handler"
	"github.com/mcoot/battleship-go/internal/api/middleware"
	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/realtime"
	"github.com/mcoot/battleship-go/internal/services/auth"
	"github.com/mcoot/battleship-go/internal/services/bot"
	"github.com/mcoot/battleship-go/internal/services/session"
	"github.com/mcoot/battleship-go/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	AuthService   *auth.Service
	SessionRouter session.Interface
	Hub           *realtime.Hub
	StatsService  *stats.Service
	BotService    *bot.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService, cfg.StatsService)
	matchHandler := handler.NewMatchHandler(cfg.SessionRouter)
	eventsHandler := handler.NewEventsHandler(cfg.Hub, cfg.SessionRouter, cfg.Logger)
	botHandler := handler.NewBotHandler(cfg.BotService)
	historyHandler := handler.NewHistoryHandler(cfg.StatsService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Logout succeeds with or without a live session
	logout := api.PathPrefix("/players/logout").Subrouter()
	logout.Use(optionalAuthMiddleware)
	logout.HandleFunc("", playerHandler.Logout).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/{id}/record", playerHandler.GetRecord).Methods(http.MethodGet)

	// Match routes (all require auth)
	match := api.PathPrefix("/match").Subrouter()
	match.Use(authMiddleware)
	match.HandleFunc("", matchHandler.Get).Methods(http.MethodGet)
	match.HandleFunc("/join", matchHandler.Join).Methods(http.MethodPost)
	match.HandleFunc("/ships", matchHandler.PlaceShip).Methods(http.MethodPost)
	match.HandleFunc("/shots", matchHandler.FireShot).Methods(http.MethodPost)
	match.HandleFunc("/leave", matchHandler.Leave).Methods(http.MethodPost)

	// Realtime streams
	api.Handle("/events", authMiddleware(http.HandlerFunc(eventsHandler.SSE))).Methods(http.MethodGet)
	api.Handle("/ws", authMiddleware(http.HandlerFunc(eventsHandler.WebSocket))).Methods(http.MethodGet)

	// Bots
	bots := api.PathPrefix("/bots").Subrouter()
	bots.Use(authMiddleware)
	bots.HandleFunc("", botHandler.Add).Methods(http.MethodPost)

	// Match history is public
	api.HandleFunc("/matches", historyHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/matches/{id}", historyHandler.Get).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler(cfg)).Methods(http.MethodGet)

	return r
}

func healthHandler(cfg RouterConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		occupancy := cfg.SessionRouter.Stats()
		response.JSON(w, http.StatusOK, response.Health{
			Status:           "ok",
			Queued:           occupancy.Queued,
			LiveMatches:      occupancy.LiveMatches,
			Players:          occupancy.Players,
			ConnectedClients: cfg.Hub.ClientCount(),
			ActiveBots:       cfg.BotService.ActiveBots(),
		})
	}
}
