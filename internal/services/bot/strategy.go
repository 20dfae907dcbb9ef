package bot

import (
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
)

// Strategy defines how a bot lays out its fleet and picks targets
type Strategy interface {
	// PlaceFleet returns a valid placement for every ship in the fleet
	PlaceFleet() []Placement
	// ChooseShot selects an untried cell on the opponent's board
	ChooseShot(log *ShotLog) model.Position
}

// Placement is where a strategy wants one ship
type Placement struct {
	Kind        model.ShipKind
	Origin      model.Position
	Orientation model.Orientation
}

// DefaultStrategies returns every built-in strategy keyed by name
func DefaultStrategies(rnd random.Random) map[string]Strategy {
	return map[string]Strategy{
		model.BotStrategyRandom: NewRandomStrategy(rnd),
		model.BotStrategyHunt:   NewHuntStrategy(rnd),
	}
}

const (
	maxLayoutAttempts = 10
	maxShipAttempts   = 100
)

// randomLayout places the fleet at random, falling back to a fixed layout
// if no random layout is found
func randomLayout(rnd random.Random) []Placement {
	orientations := []model.Orientation{model.Horizontal, model.Vertical}

	for i := 0; i < maxLayoutAttempts; i++ {
		board := model.NewBoard()
		placements := make([]Placement, 0, model.FleetSize)

		for _, ship := range model.NewFleet() {
			for j := 0; j < maxShipAttempts; j++ {
				p := Placement{Kind: ship.Kind, Orientation: orientations[rnd.Intn(len(orientations))]}
				span := model.BoardSize - ship.Length + 1
				if p.Orientation == model.Horizontal {
					p.Origin = model.Position{X: rnd.Intn(span), Y: rnd.Intn(model.BoardSize)}
				} else {
					p.Origin = model.Position{X: rnd.Intn(model.BoardSize), Y: rnd.Intn(span)}
				}
				if board.Place(ship, p.Origin, p.Orientation) == nil {
					placements = append(placements, p)
					break
				}
			}
		}

		if len(placements) == model.FleetSize {
			return placements
		}
	}
	return fixedLayout()
}

// fixedLayout puts each ship on its own even row at the left edge
func fixedLayout() []Placement {
	placements := make([]Placement, 0, model.FleetSize)
	for i, kind := range model.ShipKinds() {
		placements = append(placements, Placement{
			Kind:        kind,
			Origin:      model.Position{X: 0, Y: 2 * i},
			Orientation: model.Horizontal,
		})
	}
	return placements
}
