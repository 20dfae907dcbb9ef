package response

import (
	"time"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/auth"
	"github.com/mcoot/battleship-go/internal/services/session"
	"github.com/mcoot/battleship-go/internal/services/stats"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
	IsBot       bool   `json:"is_bot,omitempty"`
	BotStrategy string `json:"bot_strategy,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
		IsBot:       p.IsBot,
		BotStrategy: p.BotStrategy,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player    `json:"player"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// Cell symbols used when rendering boards
const (
	CellEmpty    = "."
	CellOccupied = "S"
	CellHit      = "X"
	CellMiss     = "o"
)

// Grid renders a board as rows of cell symbols, indexed [y][x]
func Grid(cells [][]model.CellState) []string {
	rows := make([]string, len(cells))
	for y, row := range cells {
		b := make([]byte, 0, len(row))
		for _, c := range row {
			b = append(b, cellSymbol(c)...)
		}
		rows[y] = string(b)
	}
	return rows
}

func cellSymbol(c model.CellState) string {
	switch c {
	case model.CellOccupied:
		return CellOccupied
	case model.CellHit:
		return CellHit
	case model.CellMiss:
		return CellMiss
	default:
		return CellEmpty
	}
}

// MatchView is a player's view of their queue or match state
type MatchView struct {
	PlayerID      string   `json:"player_id"`
	Queued        bool     `json:"queued"`
	MatchID       string   `json:"match_id,omitempty"`
	Phase         string   `json:"phase,omitempty"`
	Players       []string `json:"players,omitempty"`
	CurrentTurn   *string  `json:"current_turn"`
	Ready         bool     `json:"ready"`
	OpponentReady bool     `json:"opponent_ready"`
	PlacedShips   []string `json:"placed_ships,omitempty"`
	OwnBoard      []string `json:"own_board,omitempty"`
	OpponentBoard []string `json:"opponent_board,omitempty"`
}

// MatchViewFromSession converts a session.View
func MatchViewFromSession(v *session.View) MatchView {
	resp := MatchView{
		PlayerID:      string(v.PlayerID),
		Queued:        v.Queued,
		MatchID:       string(v.MatchID),
		Phase:         string(v.Phase),
		Ready:         v.Ready,
		OpponentReady: v.OpponentReady,
	}
	if v.Queued {
		return resp
	}

	resp.Players = []string{string(v.Players[0]), string(v.Players[1])}
	if v.CurrentTurn != "" {
		turn := string(v.CurrentTurn)
		resp.CurrentTurn = &turn
	}
	for _, kind := range v.PlacedShips {
		resp.PlacedShips = append(resp.PlacedShips, string(kind))
	}
	resp.OwnBoard = Grid(v.OwnBoard)
	resp.OpponentBoard = Grid(v.OpponentBoard)
	return resp
}

// ShotResponse is the response after firing a shot
type ShotResponse struct {
	X         int        `json:"x"`
	Y         int        `json:"y"`
	Result    string     `json:"result"` // miss, hit or sunk
	SunkShip  string     `json:"sunk_ship,omitempty"`
	MatchOver bool       `json:"match_over"`
	Match     *MatchView `json:"match,omitempty"`
}

// ShotResponseFromReport converts the router's resolved shot to a response
func ShotResponseFromReport(pos model.Position, report session.ShotReport) ShotResponse {
	return ShotResponse{
		X:         pos.X,
		Y:         pos.Y,
		Result:    string(report.Result.Outcome),
		SunkShip:  string(report.Result.SunkKind),
		MatchOver: report.MatchOver,
	}
}

// MatchRecord represents an ended match
type MatchRecord struct {
	ID              string    `json:"id"`
	Players         []string  `json:"players"`
	Winner          string    `json:"winner"`
	Reason          string    `json:"reason"`
	Shots           []int     `json:"shots"`
	Hits            []int     `json:"hits"`
	CreatedAt       time.Time `json:"created_at"`
	EndedAt         time.Time `json:"ended_at"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// MatchRecordFromModel converts model.MatchRecord
func MatchRecordFromModel(r *model.MatchRecord) MatchRecord {
	return MatchRecord{
		ID:              string(r.ID),
		Players:         []string{string(r.Players[0]), string(r.Players[1])},
		Winner:          string(r.Winner),
		Reason:          string(r.Reason),
		Shots:           []int{r.Shots[0], r.Shots[1]},
		Hits:            []int{r.Hits[0], r.Hits[1]},
		CreatedAt:       r.CreatedAt,
		EndedAt:         r.EndedAt,
		DurationSeconds: r.Duration().Seconds(),
	}
}

// MatchRecordList wraps a list of match records
type MatchRecordList struct {
	Matches []MatchRecord `json:"matches"`
}

// MatchRecordListFromModel converts a slice of model.MatchRecord
func MatchRecordListFromModel(records []*model.MatchRecord) MatchRecordList {
	list := MatchRecordList{Matches: make([]MatchRecord, len(records))}
	for i, r := range records {
		list.Matches[i] = MatchRecordFromModel(r)
	}
	return list
}

// PlayerRecord represents a player's win/loss record
type PlayerRecord struct {
	PlayerID    string  `json:"player_id"`
	Played      int     `json:"played"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	ForfeitWins int     `json:"forfeit_wins"`
	Shots       int     `json:"shots"`
	Hits        int     `json:"hits"`
	Accuracy    float64 `json:"accuracy"`
}

// PlayerRecordFromStats converts stats.PlayerRecord
func PlayerRecordFromStats(r *stats.PlayerRecord) PlayerRecord {
	return PlayerRecord{
		PlayerID:    string(r.PlayerID),
		Played:      r.Played,
		Wins:        r.Wins,
		Losses:      r.Losses,
		ForfeitWins: r.ForfeitWins,
		Shots:       r.Shots,
		Hits:        r.Hits,
		Accuracy:    r.Accuracy,
	}
}

// Health is the response for the health check
type Health struct {
	Status           string `json:"status"`
	Queued           int    `json:"queued"`
	LiveMatches      int    `json:"live_matches"`
	Players          int    `json:"players"`
	ConnectedClients int    `json:"connected_clients"`
	ActiveBots       int    `json:"active_bots"`
}
