package bot

import (
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
)

// HuntStrategy searches on a checkerboard until it scores a hit, then
// targets the cells next to its unresolved hits
type HuntStrategy struct {
	random random.Random
}

// NewHuntStrategy creates a new HuntStrategy
func NewHuntStrategy(rnd random.Random) *HuntStrategy {
	return &HuntStrategy{random: rnd}
}

// PlaceFleet returns a random valid layout
func (s *HuntStrategy) PlaceFleet() []Placement {
	return randomLayout(s.random)
}

// ChooseShot picks a neighbour of an open hit if there is one, otherwise a
// random untried checkerboard cell
func (s *HuntStrategy) ChooseShot(log *ShotLog) model.Position {
	for _, hit := range log.OpenHits() {
		for _, n := range neighbours(hit) {
			if n.InBounds() && !log.Tried(n) {
				return n
			}
		}
	}

	untried := log.Untried()
	if len(untried) == 0 {
		return model.Position{}
	}

	// Every ship is at least two long, so it covers a cell of each colour
	var parity []model.Position
	for _, p := range untried {
		if (p.X+p.Y)%2 == 0 {
			parity = append(parity, p)
		}
	}
	if len(parity) > 0 {
		return parity[s.random.Intn(len(parity))]
	}
	return untried[s.random.Intn(len(untried))]
}

func neighbours(p model.Position) []model.Position {
	return []model.Position{
		{X: p.X, Y: p.Y - 1},
		{X: p.X + 1, Y: p.Y},
		{X: p.X, Y: p.Y + 1},
		{X: p.X - 1, Y: p.Y},
	}
}
