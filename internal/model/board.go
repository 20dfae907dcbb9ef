package model

// BoardSize is the fixed grid dimension of every board
const BoardSize = 10

// CellState is the state of a single grid cell
type CellState int

const (
	CellEmpty CellState = iota
	CellOccupied
	CellHit
	CellMiss
)

// Orientation is the direction a ship extends from its origin
type Orientation string

const (
	Horizontal Orientation = "H" // extends along +x
	Vertical   Orientation = "V" // extends along +y
)

// ParseOrientation converts a wire value to an Orientation
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(s) {
	case Horizontal, Vertical:
		return Orientation(s), nil
	default:
		return "", ErrInvalidOrientation
	}
}

// Position identifies a cell on the board, zero-based
type Position struct {
	X int // column, 0-indexed from left
	Y int // row, 0-indexed from top
}

// InBounds returns true if the position lies on a BoardSize grid
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// PlacedShip records where a ship sits on a board
type PlacedShip struct {
	Ship        *Ship
	Origin      Position
	Orientation Orientation
}

// Cells returns every position the placed ship covers
func (p PlacedShip) Cells() []Position {
	return shipCells(p.Origin, p.Orientation, p.Ship.Length)
}

// Covers returns true if the placed ship occupies the given position
func (p PlacedShip) Covers(pos Position) bool {
	for _, c := range p.Cells() {
		if c == pos {
			return true
		}
	}
	return false
}

func shipCells(origin Position, orientation Orientation, length int) []Position {
	cells := make([]Position, length)
	for i := 0; i < length; i++ {
		if orientation == Horizontal {
			cells[i] = Position{X: origin.X + i, Y: origin.Y}
		} else {
			cells[i] = Position{X: origin.X, Y: origin.Y + i}
		}
	}
	return cells
}

// AttackOutcome classifies the result of a single attack
type AttackOutcome string

const (
	OutcomeInvalid         AttackOutcome = "invalid"
	OutcomeAlreadyAttacked AttackOutcome = "already_attacked"
	OutcomeMiss            AttackOutcome = "miss"
	OutcomeHit             AttackOutcome = "hit"
	OutcomeSunk            AttackOutcome = "sunk"
)

// Accepted returns true for outcomes that consume a turn
func (o AttackOutcome) Accepted() bool {
	return o == OutcomeMiss || o == OutcomeHit || o == OutcomeSunk
}

// AttackResult is the outcome of an attack plus the sunk ship kind, if any
type AttackResult struct {
	Outcome  AttackOutcome
	SunkKind ShipKind // Empty unless Outcome is OutcomeSunk
}

// Target is the capability an opponent is granted over a board: it may attack
// and ask whether the fleet is destroyed, nothing else.
type Target interface {
	Attack(pos Position) AttackResult
	AllSunk() bool
}

// Board is one player's private grid
type Board struct {
	Cells [][]CellState // Row-major: Cells[y][x]
	Ships []PlacedShip
}

var _ Target = (*Board)(nil)

// NewBoard creates an empty BoardSize x BoardSize board
func NewBoard() *Board {
	cells := make([][]CellState, BoardSize)
	for i := range cells {
		cells[i] = make([]CellState, BoardSize)
	}
	return &Board{Cells: cells}
}

// Get returns the state of the cell, or CellEmpty if out of bounds
func (b *Board) Get(pos Position) CellState {
	if !pos.InBounds() {
		return CellEmpty
	}
	return b.Cells[pos.Y][pos.X]
}

// IsPlaced returns true if a ship of the given kind is already on the board
func (b *Board) IsPlaced(kind ShipKind) bool {
	for _, p := range b.Ships {
		if p.Ship.Kind == kind {
			return true
		}
	}
	return false
}

// Place puts a ship on the board. Either every covered cell becomes Occupied
// or nothing changes.
func (b *Board) Place(ship *Ship, origin Position, orientation Orientation) error {
	if orientation != Horizontal && orientation != Vertical {
		return ErrInvalidOrientation
	}
	if b.IsPlaced(ship.Kind) {
		return ErrAlreadyPlaced
	}

	cells := shipCells(origin, orientation, ship.Length)
	for _, c := range cells {
		if !c.InBounds() {
			return ErrOutOfBounds
		}
	}
	for _, c := range cells {
		if b.Cells[c.Y][c.X] != CellEmpty {
			return ErrOverlap
		}
	}

	for _, c := range cells {
		b.Cells[c.Y][c.X] = CellOccupied
	}
	b.Ships = append(b.Ships, PlacedShip{Ship: ship, Origin: origin, Orientation: orientation})
	return nil
}

// ShipAt returns the placed ship covering the position, or nil.
// A linear scan is enough for a 10x10 board with five ships.
func (b *Board) ShipAt(pos Position) *PlacedShip {
	for i := range b.Ships {
		if b.Ships[i].Covers(pos) {
			return &b.Ships[i]
		}
	}
	return nil
}

// Attack resolves an incoming shot at the given cell
func (b *Board) Attack(pos Position) AttackResult {
	if !pos.InBounds() {
		return AttackResult{Outcome: OutcomeInvalid}
	}

	switch b.Cells[pos.Y][pos.X] {
	case CellHit, CellMiss:
		return AttackResult{Outcome: OutcomeAlreadyAttacked}
	case CellEmpty:
		b.Cells[pos.Y][pos.X] = CellMiss
		return AttackResult{Outcome: OutcomeMiss}
	}

	b.Cells[pos.Y][pos.X] = CellHit
	placed := b.ShipAt(pos)
	if placed == nil {
		// Occupied cells always belong to a placement record
		return AttackResult{Outcome: OutcomeHit}
	}
	placed.Ship.RecordHit()
	if placed.Ship.IsSunk() {
		return AttackResult{Outcome: OutcomeSunk, SunkKind: placed.Ship.Kind}
	}
	return AttackResult{Outcome: OutcomeHit}
}

// AllSunk returns true if at least one ship is placed and every placed ship is sunk
func (b *Board) AllSunk() bool {
	if len(b.Ships) == 0 {
		return false
	}
	for _, p := range b.Ships {
		if !p.Ship.IsSunk() {
			return false
		}
	}
	return true
}

// CountCells returns the number of cells in the given state
func (b *Board) CountCells(state CellState) int {
	count := 0
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if b.Cells[y][x] == state {
				count++
			}
		}
	}
	return count
}

// Masked returns a copy of the grid as the opponent sees it: ships are hidden,
// only hits and misses are visible
func (b *Board) Masked() [][]CellState {
	out := make([][]CellState, BoardSize)
	for y := range out {
		out[y] = make([]CellState, BoardSize)
		for x := range out[y] {
			if s := b.Cells[y][x]; s == CellHit || s == CellMiss {
				out[y][x] = s
			}
		}
	}
	return out
}

// Snapshot returns a deep copy of the grid
func (b *Board) Snapshot() [][]CellState {
	out := make([][]CellState, BoardSize)
	for y := range out {
		out[y] = make([]CellState, BoardSize)
		copy(out[y], b.Cells[y])
	}
	return out
}
