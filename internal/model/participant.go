package model

// Participant is a player's membership in a single match: their board,
// their fleet and whether they have finished placement
type Participant struct {
	ID    PlayerID
	Board *Board
	Fleet []*Ship
	Ready bool
}

// NewParticipant creates a participant with a fresh board and fleet
func NewParticipant(id PlayerID) *Participant {
	p := &Participant{ID: id}
	p.Reset()
	return p
}

// Reset discards any previous board and fleet. Called whenever the
// participant enters a new match.
func (p *Participant) Reset() {
	p.Board = NewBoard()
	p.Fleet = NewFleet()
	p.Ready = false
}

// FleetShip returns the participant's ship of the given kind, or nil
func (p *Participant) FleetShip(kind ShipKind) *Ship {
	for _, s := range p.Fleet {
		if s.Kind == kind {
			return s
		}
	}
	return nil
}

// PlacedCount returns how many ships are on the board
func (p *Participant) PlacedCount() int {
	return len(p.Board.Ships)
}

// AllPlaced returns true once the whole fleet is on the board
func (p *Participant) AllPlaced() bool {
	return p.PlacedCount() == len(p.Fleet)
}
