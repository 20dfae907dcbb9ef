package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mcoot/battleship-go/internal/api/request"
	"github.com/mcoot/battleship-go/internal/api/response"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/bot"
)

// BotHandler handles bot endpoints
type BotHandler struct {
	botService *bot.Service
}

// NewBotHandler creates a new bot handler
func NewBotHandler(botService *bot.Service) *BotHandler {
	return &BotHandler{
		botService: botService,
	}
}

// Add handles POST /api/v1/bots. The bot joins the matchmaking queue, so the
// caller should join too to be paired with it.
func (h *BotHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.AddBotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, errInvalidBody)
		return
	}
	if req.Strategy == "" {
		req.Strategy = model.BotStrategyRandom
	}

	player, err := h.botService.AddBot(r.Context(), req.Strategy)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}
