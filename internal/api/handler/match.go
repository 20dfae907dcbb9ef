package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/battleship-go/internal/api/middleware"
	"github.com/mcoot/battleship-go/internal/api/request"
	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/session"
)

// MatchHandler handles matchmaking and in-match endpoints. Every action is
// also reported to both players as realtime notifications.
type MatchHandler struct {
	router session.Interface
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(router session.Interface) *MatchHandler {
	return &MatchHandler{
		router: router,
	}
}

// Join handles POST /api/v1/match/join
func (h *MatchHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.router.Join(r.Context(), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	h.writeView(w, http.StatusAccepted, player.ID)
}

// Get handles GET /api/v1/match
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	h.writeView(w, http.StatusOK, player.ID)
}

// PlaceShip handles POST /api/v1/match/ships
func (h *MatchHandler) PlaceShip(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.PlaceShipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, errInvalidBody)
		return
	}

	// The router rejects unknown kinds and orientations after its match checks
	kind := model.ShipKind(req.ShipKind)
	orientation := model.Orientation(req.Orientation)
	pos := model.Position{X: req.X, Y: req.Y}
	if err := h.router.PlaceShip(r.Context(), player.ID, kind, pos, orientation); err != nil {
		WriteError(w, err)
		return
	}

	h.writeView(w, http.StatusOK, player.ID)
}

// FireShot handles POST /api/v1/match/shots
func (h *MatchHandler) FireShot(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.FireShotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, errInvalidBody)
		return
	}

	pos := model.Position{X: req.X, Y: req.Y}
	report, err := h.router.FireShot(r.Context(), player.ID, pos)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.ShotResponseFromReport(pos, report)
	if !report.MatchOver {
		view, err := h.router.View(player.ID)
		switch {
		case errors.Is(err, model.ErrNoSuchMatch):
			// The opponent left after the shot resolved
		case err != nil:
			WriteError(w, err)
			return
		default:
			mv := response.MatchViewFromSession(view)
			resp.Match = &mv
		}
	}

	response.JSON(w, http.StatusOK, resp)
}

// Leave handles POST /api/v1/match/leave
func (h *MatchHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.router.Leave(r.Context(), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *MatchHandler) writeView(w http.ResponseWriter, status int, playerID model.PlayerID) {
	view, err := h.router.View(playerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, status, response.MatchViewFromSession(view))
}
