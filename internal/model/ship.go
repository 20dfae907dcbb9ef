package model

// ShipKind identifies one of the fixed fleet units
type ShipKind string

const (
	ShipCarrier    ShipKind = "Carrier"
	ShipBattleship ShipKind = "Battleship"
	ShipCruiser    ShipKind = "Cruiser"
	ShipSubmarine  ShipKind = "Submarine"
	ShipDestroyer  ShipKind = "Destroyer"
)

// fleetSpec is the fixed, ordered fleet composition shared by all participants
var fleetSpec = []struct {
	Kind   ShipKind
	Length int
}{
	{ShipCarrier, 5},
	{ShipBattleship, 4},
	{ShipCruiser, 3},
	{ShipSubmarine, 3},
	{ShipDestroyer, 2},
}

// FleetSize is the number of ships every player must place
const FleetSize = 5

// ShipKinds returns all ship kinds in fleet order
func ShipKinds() []ShipKind {
	kinds := make([]ShipKind, len(fleetSpec))
	for i, s := range fleetSpec {
		kinds[i] = s.Kind
	}
	return kinds
}

// Length returns the number of cells a ship of this kind covers, or 0 if unknown
func (k ShipKind) Length() int {
	for _, s := range fleetSpec {
		if s.Kind == k {
			return s.Length
		}
	}
	return 0
}

// ParseShipKind converts a wire name to a ShipKind
func ParseShipKind(name string) (ShipKind, error) {
	kind := ShipKind(name)
	if kind.Length() == 0 {
		return "", ErrUnknownShipKind
	}
	return kind, nil
}

// Ship is a single fleet unit with its damage counter
type Ship struct {
	Kind   ShipKind
	Length int
	Hits   int
}

// NewShip creates an undamaged ship of the given kind
func NewShip(kind ShipKind) *Ship {
	return &Ship{Kind: kind, Length: kind.Length()}
}

// RecordHit registers one point of damage.
// The board never calls this twice for the same cell, so Hits stays <= Length.
func (s *Ship) RecordHit() {
	s.Hits++
}

// IsSunk returns true once every cell of the ship has been hit
func (s *Ship) IsSunk() bool {
	return s.Hits == s.Length
}

// NewFleet creates the five ships of a fresh fleet in fixed order
func NewFleet() []*Ship {
	fleet := make([]*Ship, len(fleetSpec))
	for i, s := range fleetSpec {
		fleet[i] = NewShip(s.Kind)
	}
	return fleet
}
