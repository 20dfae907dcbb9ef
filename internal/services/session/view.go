package session

import (
	"github.com/mcoot/battleship-go/internal/model"
)

// View is a player-scoped snapshot of their current situation. The opponent's
// board only exposes hits and misses.
type View struct {
	PlayerID      model.PlayerID
	Queued        bool
	MatchID       model.MatchID
	Phase         model.MatchPhase
	Players       [2]model.PlayerID
	CurrentTurn   model.PlayerID // Set only while Active
	Ready         bool
	OpponentReady bool
	PlacedShips   []model.ShipKind
	OwnBoard      [][]model.CellState
	OpponentBoard [][]model.CellState
}

// Stats summarises router occupancy
type Stats struct {
	Queued      int
	LiveMatches int
	Players     int
}

// View returns the player's queue or match state
func (r *Router) View(playerID model.PlayerID) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.queue.Contains(playerID) {
		return &View{PlayerID: playerID, Queued: true}, nil
	}

	match, err := r.matchFor(playerID)
	if err != nil {
		return nil, err
	}

	self := match.Participant(playerID)
	opponent := match.OpponentOf(playerID)

	view := &View{
		PlayerID:      playerID,
		MatchID:       match.ID,
		Phase:         match.Phase,
		Players:       match.PlayerIDs(),
		Ready:         self.Ready,
		OpponentReady: opponent.Ready,
		OwnBoard:      self.Board.Snapshot(),
		OpponentBoard: opponent.Board.Masked(),
	}
	for _, placed := range self.Board.Ships {
		view.PlacedShips = append(view.PlacedShips, placed.Ship.Kind)
	}
	if match.Phase == model.PhaseActive {
		view.CurrentTurn = match.CurrentPlayer().ID
	}
	return view, nil
}

// Stats returns the current queue length, live match count and known players
func (r *Router) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Stats{
		Queued:      r.queue.Len(),
		LiveMatches: len(r.matches),
		Players:     len(r.participants),
	}
}
