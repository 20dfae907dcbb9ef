package bot

import (
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
)

// RandomStrategy places ships randomly and fires at random untried cells
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// PlaceFleet returns a random valid layout
func (s *RandomStrategy) PlaceFleet() []Placement {
	return randomLayout(s.random)
}

// ChooseShot picks a random untried cell
func (s *RandomStrategy) ChooseShot(log *ShotLog) model.Position {
	untried := log.Untried()
	if len(untried) == 0 {
		return model.Position{}
	}
	return untried[s.random.Intn(len(untried))]
}
