package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/stats"
)

const maxHistoryLimit = 100

// HistoryHandler serves ended match records
type HistoryHandler struct {
	statsService *stats.Service
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(statsService *stats.Service) *HistoryHandler {
	return &HistoryHandler{
		statsService: statsService,
	}
}

// List handles GET /api/v1/matches?limit=N
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			WriteError(w, NewInvalidRequestError("limit must be between 1 and 100"))
			return
		}
		limit = n
	}

	records, err := h.statsService.RecentMatches(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchRecordListFromModel(records))
}

// Get handles GET /api/v1/matches/{id}
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])

	record, err := h.statsService.Match(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchRecordFromModel(record))
}
