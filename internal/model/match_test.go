package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type MatchSuite struct {
	suite.Suite
	alice *Participant
	bob   *Participant
	match *Match
	now   time.Time
}

func TestMatchSuite(t *testing.T) {
	suite.Run(t, new(MatchSuite))
}

func (s *MatchSuite) SetupTest() {
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.alice = NewParticipant("alice")
	s.bob = NewParticipant("bob")
	s.match = NewMatch("match-1", s.alice, s.bob, s.now)
}

func (s *MatchSuite) TestNewMatchIsInPlacement() {
	s.Equal(PhasePlacement, s.match.Phase)
	s.Equal([2]PlayerID{"alice", "bob"}, s.match.PlayerIDs())
	s.Equal(s.now, s.match.CreatedAt)
}

func (s *MatchSuite) TestMarkReadyRequiresBothPlayers() {
	active, err := s.match.MarkReady("alice")
	s.Require().NoError(err)
	s.False(active)
	s.Equal(PhasePlacement, s.match.Phase)

	active, err = s.match.MarkReady("bob")
	s.Require().NoError(err)
	s.True(active)
	s.Equal(PhaseActive, s.match.Phase)
}

func (s *MatchSuite) TestFirstSeatMovesFirst() {
	_, _ = s.match.MarkReady("bob")
	_, _ = s.match.MarkReady("alice")

	s.Equal(PlayerID("alice"), s.match.CurrentPlayer().ID)
}

func (s *MatchSuite) TestMarkReadyOutsidePlacement() {
	_, _ = s.match.MarkReady("alice")
	_, _ = s.match.MarkReady("bob")

	_, err := s.match.MarkReady("alice")
	s.ErrorIs(err, ErrWrongPhase)
}

func (s *MatchSuite) TestMarkReadyUnknownPlayer() {
	_, err := s.match.MarkReady("carol")
	s.ErrorIs(err, ErrNotInMatch)
}

func (s *MatchSuite) TestAdvanceTurnAlternates() {
	_, _ = s.match.MarkReady("alice")
	_, _ = s.match.MarkReady("bob")

	s.match.AdvanceTurn()
	s.Equal(PlayerID("bob"), s.match.CurrentPlayer().ID)
	s.match.AdvanceTurn()
	s.Equal(PlayerID("alice"), s.match.CurrentPlayer().ID)
}

func (s *MatchSuite) TestOpponentOf() {
	s.Equal(s.bob, s.match.OpponentOf("alice"))
	s.Equal(s.alice, s.match.OpponentOf("bob"))
	s.Nil(s.match.OpponentOf("carol"))
}

func (s *MatchSuite) TestTargetForIsOpponentBoard() {
	target, err := s.match.TargetFor("alice")
	s.Require().NoError(err)
	s.Same(s.bob.Board, target)

	_, err = s.match.TargetFor("carol")
	s.ErrorIs(err, ErrNotInMatch)
}

func (s *MatchSuite) TestFinishIsTerminal() {
	_, _ = s.match.MarkReady("alice")
	_, _ = s.match.MarkReady("bob")

	s.match.Finish("bob", s.now.Add(time.Minute))
	s.Equal(PhaseFinished, s.match.Phase)
	s.Equal(PlayerID("bob"), s.match.Winner)
	s.False(s.match.IsLive())

	// A second finish does not rewrite the result
	s.match.Finish("alice", s.now.Add(2*time.Minute))
	s.Equal(PlayerID("bob"), s.match.Winner)
	s.Equal(s.now.Add(time.Minute), s.match.EndedAt)
}

func (s *MatchSuite) TestRecordShotCountsOnlyAcceptedOutcomes() {
	s.match.RecordShot("alice", OutcomeMiss)
	s.match.RecordShot("alice", OutcomeHit)
	s.match.RecordShot("alice", OutcomeSunk)
	s.match.RecordShot("alice", OutcomeInvalid)
	s.match.RecordShot("bob", OutcomeAlreadyAttacked)

	s.Equal([2]int{3, 0}, s.match.Shots)
	s.Equal([2]int{2, 0}, s.match.Hits)
}

func (s *MatchSuite) TestParticipantResetDiscardsPlacement() {
	s.Require().NoError(s.alice.Board.Place(s.alice.FleetShip(ShipCarrier), Position{X: 0, Y: 0}, Horizontal))
	s.alice.Ready = true

	s.alice.Reset()
	s.Equal(0, s.alice.PlacedCount())
	s.False(s.alice.Ready)
	s.Len(s.alice.Fleet, FleetSize)
	s.Equal(0, s.alice.Board.CountCells(CellOccupied))
}
