package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case MatchView:
		o.printMatchView(v)
	case ShotResult:
		o.printShotResult(v)
	case MatchRecord:
		o.printMatchRecord(v)
	case MatchRecordList:
		o.printMatchRecordList(v)
	case PlayerRecord:
		o.printPlayerRecord(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
	IsBot       bool   `json:"is_bot,omitempty"`
	BotStrategy string `json:"bot_strategy,omitempty"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player    `json:"player"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// MatchView response type. Boards are rows of single-character cells.
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

// ShotResult response type
type ShotResult struct {
	X         int        `json:"x"`
	Y         int        `json:"y"`
	Result    string     `json:"result"`
	SunkShip  string     `json:"sunk_ship,omitempty"`
	MatchOver bool       `json:"match_over"`
	Match     *MatchView `json:"match,omitempty"`
}

// MatchRecord response type
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

// MatchRecordList response type
type MatchRecordList struct {
	Matches []MatchRecord `json:"matches"`
}

// PlayerRecord response type
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

// HealthResult response type
type HealthResult struct {
	Status           string `json:"status"`
	Queued           int    `json:"queued"`
	LiveMatches      int    `json:"live_matches"`
	Players          int    `json:"players"`
	ConnectedClients int    `json:"connected_clients"`
	ActiveBots       int    `json:"active_bots"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
	if p.IsBot {
		fmt.Printf("Bot strategy: %s\n", p.BotStrategy)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printMatchView(m MatchView) {
	if m.Queued {
		fmt.Println("Waiting for an opponent...")
		return
	}

	fmt.Printf("Match: %s\n", m.MatchID)
	fmt.Printf("Phase: %s\n", m.Phase)
	if len(m.Players) == 2 {
		fmt.Printf("Players: %s vs %s\n", m.Players[0], m.Players[1])
	}
	if m.CurrentTurn != nil {
		turn := *m.CurrentTurn
		if turn == m.PlayerID {
			turn += " (you)"
		}
		fmt.Printf("Turn: %s\n", turn)
	}
	if len(m.PlacedShips) > 0 {
		fmt.Printf("Placed: %s\n", strings.Join(m.PlacedShips, ", "))
	}
	fmt.Printf("Ready: you=%s opponent=%s\n", yesNo(m.Ready), yesNo(m.OpponentReady))

	if len(m.OwnBoard) > 0 {
		fmt.Println("\nYour Board:")
		o.printBoard(m.OwnBoard)
	}
	if len(m.OpponentBoard) > 0 {
		fmt.Println("\nOpponent Board:")
		o.printBoard(m.OpponentBoard)
	}
}

func (o *Output) printBoard(rows []string) {
	if len(rows) == 0 {
		return
	}

	size := len(rows)

	// Print column headers
	fmt.Print("    ")
	for col := 0; col < size; col++ {
		fmt.Printf(" %d ", col)
	}
	fmt.Println()

	// Print top border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")

	// Print rows
	for row := 0; row < size; row++ {
		fmt.Printf(" %d |", row)
		for _, cell := range rows[row] {
			fmt.Printf(" %c ", cell)
		}
		fmt.Println("|")
	}

	// Print bottom border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")
}

func (o *Output) printShotResult(s ShotResult) {
	fmt.Printf("Shot at (%d, %d): %s\n", s.X, s.Y, s.Result)
	if s.SunkShip != "" {
		fmt.Printf("You sank their %s\n", s.SunkShip)
	}
	if s.MatchOver {
		fmt.Println("Match over, you win!")
		return
	}
	if s.Match != nil && len(s.Match.OpponentBoard) > 0 {
		fmt.Println()
		o.printBoard(s.Match.OpponentBoard)
	}
}

func (o *Output) printMatchRecord(r MatchRecord) {
	fmt.Printf("Match: %s\n", r.ID)
	if len(r.Players) == 2 {
		fmt.Printf("Players: %s vs %s\n", r.Players[0], r.Players[1])
	}
	fmt.Printf("Winner: %s (%s)\n", r.Winner, r.Reason)
	for i := range r.Players {
		if i < len(r.Shots) && i < len(r.Hits) {
			fmt.Printf("  %s: %d shots, %d hits\n", r.Players[i], r.Shots[i], r.Hits[i])
		}
	}
	fmt.Printf("Ended: %s (%.0fs)\n", r.EndedAt.Format(time.RFC3339), r.DurationSeconds)
}

func (o *Output) printMatchRecordList(l MatchRecordList) {
	if len(l.Matches) == 0 {
		fmt.Println("No matches yet")
		return
	}
	for _, r := range l.Matches {
		loser := ""
		for _, p := range r.Players {
			if p != r.Winner {
				loser = p
			}
		}
		fmt.Printf("%s  %s beat %s (%s)  %s\n",
			r.EndedAt.Format("2006-01-02 15:04"), r.Winner, loser, r.Reason, r.ID)
	}
}

func (o *Output) printPlayerRecord(r PlayerRecord) {
	fmt.Printf("Player: %s\n", r.PlayerID)
	fmt.Printf("Played: %d (won %d, lost %d)\n", r.Played, r.Wins, r.Losses)
	if r.ForfeitWins > 0 {
		fmt.Printf("Wins by forfeit: %d\n", r.ForfeitWins)
	}
	fmt.Printf("Accuracy: %.1f%% (%d/%d)\n", r.Accuracy*100, r.Hits, r.Shots)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Queued: %d\n", h.Queued)
	fmt.Printf("Live matches: %d\n", h.LiveMatches)
	fmt.Printf("Connected clients: %d\n", h.ConnectedClients)
	fmt.Printf("Active bots: %d\n", h.ActiveBots)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
