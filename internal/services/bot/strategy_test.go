package bot_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship-go/internal/dependencies/mocks"
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/services/bot"
)

type StrategySuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
}

// assertValidLayout places every placement on a fresh board
func (s *StrategySuite) assertValidLayout(placements []bot.Placement) {
	s.Require().Len(placements, model.FleetSize)

	board := model.NewBoard()
	fleet := map[model.ShipKind]*model.Ship{}
	for _, ship := range model.NewFleet() {
		fleet[ship.Kind] = ship
	}
	for _, p := range placements {
		ship, ok := fleet[p.Kind]
		s.Require().True(ok, "unexpected ship kind %s", p.Kind)
		s.Require().NoError(board.Place(ship, p.Origin, p.Orientation))
	}
	s.Equal(17, board.CountCells(model.CellOccupied))
}

func (s *StrategySuite) TestRandomStrategy_PlaceFleetIsValid() {
	strategy := bot.NewRandomStrategy(random.New())
	for i := 0; i < 50; i++ {
		s.assertValidLayout(strategy.PlaceFleet())
	}
}

func (s *StrategySuite) TestRandomStrategy_PlaceFleetFallsBackToFixedLayout() {
	// With no queued values every draw is 0, so every ship lands on (0,0)
	strategy := bot.NewRandomStrategy(s.mockRandom)
	placements := strategy.PlaceFleet()

	s.assertValidLayout(placements)
	s.Equal(model.Position{X: 0, Y: 2}, placements[1].Origin)
}

func (s *StrategySuite) TestRandomStrategy_ChooseShotPicksUntriedCell() {
	log := bot.NewShotLog()
	log.Record(model.Position{X: 0, Y: 0}, model.OutcomeMiss)
	log.Record(model.Position{X: 1, Y: 0}, model.OutcomeMiss)

	s.mockRandom.QueueIntn(0)
	pos := bot.NewRandomStrategy(s.mockRandom).ChooseShot(log)
	s.Equal(model.Position{X: 2, Y: 0}, pos)
}

func (s *StrategySuite) TestRandomStrategy_ChooseShotNeverRepeats() {
	strategy := bot.NewRandomStrategy(random.New())
	log := bot.NewShotLog()
	seen := map[model.Position]bool{}

	for i := 0; i < model.BoardSize*model.BoardSize; i++ {
		pos := strategy.ChooseShot(log)
		s.False(seen[pos], "repeated shot at %v", pos)
		seen[pos] = true
		log.Record(pos, model.OutcomeMiss)
	}
	s.Empty(log.Untried())
}

func (s *StrategySuite) TestHuntStrategy_TargetsNeighboursOfOpenHit() {
	log := bot.NewShotLog()
	log.Record(model.Position{X: 5, Y: 5}, model.OutcomeHit)
	log.Record(model.Position{X: 5, Y: 4}, model.OutcomeMiss)

	pos := bot.NewHuntStrategy(s.mockRandom).ChooseShot(log)
	s.Equal(model.Position{X: 6, Y: 5}, pos)
}

func (s *StrategySuite) TestHuntStrategy_SkipsOutOfBoundsNeighbours() {
	log := bot.NewShotLog()
	log.Record(model.Position{X: 0, Y: 0}, model.OutcomeHit)

	pos := bot.NewHuntStrategy(s.mockRandom).ChooseShot(log)
	s.Equal(model.Position{X: 1, Y: 0}, pos)
}

func (s *StrategySuite) TestHuntStrategy_SearchesCheckerboardAfterSink() {
	log := bot.NewShotLog()
	log.Record(model.Position{X: 4, Y: 4}, model.OutcomeHit)
	log.Record(model.Position{X: 5, Y: 4}, model.OutcomeSunk)
	s.Empty(log.OpenHits())

	strategy := bot.NewHuntStrategy(random.New())
	for i := 0; i < 20; i++ {
		pos := strategy.ChooseShot(log)
		s.Equal(0, (pos.X+pos.Y)%2)
		s.False(log.Tried(pos))
	}
}

func (s *StrategySuite) TestShotLog_SinkKeepsHitsOnOtherShips() {
	log := bot.NewShotLog()
	log.Record(model.Position{X: 5, Y: 5}, model.OutcomeHit)
	log.Record(model.Position{X: 4, Y: 4}, model.OutcomeHit)
	log.RecordSunk(model.Position{X: 5, Y: 6}, model.ShipDestroyer)

	s.Equal([]model.Position{{X: 4, Y: 4}}, log.OpenHits())

	// The hunter goes back to the unresolved hit rather than searching
	pos := bot.NewHuntStrategy(s.mockRandom).ChooseShot(log)
	s.Equal(model.Position{X: 4, Y: 3}, pos)
}

func (s *StrategySuite) TestShotLog_SinkInLineTakesOnlyShipLength() {
	log := bot.NewShotLog()
	log.Record(model.Position{X: 2, Y: 0}, model.OutcomeHit)
	log.Record(model.Position{X: 3, Y: 0}, model.OutcomeHit)
	log.Record(model.Position{X: 0, Y: 0}, model.OutcomeHit)
	log.RecordSunk(model.Position{X: 1, Y: 0}, model.ShipDestroyer)

	s.ElementsMatch([]model.Position{{X: 2, Y: 0}, {X: 3, Y: 0}}, log.OpenHits())
	s.True(log.Tried(model.Position{X: 1, Y: 0}))
}

func (s *StrategySuite) TestShotLog_SinkWithoutKindClosesAdjacentRun() {
	log := bot.NewShotLog()
	log.Record(model.Position{X: 5, Y: 5}, model.OutcomeHit)
	log.Record(model.Position{X: 5, Y: 6}, model.OutcomeHit)
	log.Record(model.Position{X: 8, Y: 1}, model.OutcomeHit)
	log.Record(model.Position{X: 5, Y: 7}, model.OutcomeSunk)

	s.Equal([]model.Position{{X: 8, Y: 1}}, log.OpenHits())
}

func (s *StrategySuite) TestShotLog_IgnoresRejectedOutcomes() {
	log := bot.NewShotLog()
	log.Record(model.Position{X: 3, Y: 3}, model.OutcomeAlreadyAttacked)
	log.Record(model.Position{X: 11, Y: 3}, model.OutcomeHit)

	s.False(log.Tried(model.Position{X: 3, Y: 3}))
	s.Len(log.Untried(), model.BoardSize*model.BoardSize)
	s.Empty(log.OpenHits())
}

func (s *StrategySuite) TestDefaultStrategiesCoverValidNames() {
	strategies := bot.DefaultStrategies(s.mockRandom)
	for _, name := range model.ValidBotStrategies() {
		s.Contains(strategies, name)
	}
}
