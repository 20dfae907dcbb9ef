package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/protocol"
	"github.com/mcoot/battleship-go/internal/realtime"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	s.Require().NoError(s.app.Close())
}

// guest creates a guest player and connects a notification client for them
func (s *IntegrationSuite) guest(name string) (model.PlayerID, *realtime.Client) {
	session, err := s.app.AuthService.CreateGuestPlayer(s.ctx, name)
	s.Require().NoError(err)
	return session.PlayerID, s.app.Hub.Connect(session.PlayerID)
}

// await reads notifications until one of the given type arrives
func (s *IntegrationSuite) await(client *realtime.Client, typ protocol.NotificationType) protocol.Envelope {
	timeout := time.After(2 * time.Second)
	for {
		select {
		case env, ok := <-client.Messages():
			s.Require().True(ok, "client closed while waiting for %s", typ)
			if env.Type == typ {
				return env
			}
		case <-timeout:
			s.FailNow("timed out waiting for " + string(typ))
		}
	}
}

// collect reads a client's notifications in the background up to and
// including game_over, so a long exchange never backs up its buffer
func collect(client *realtime.Client) <-chan []protocol.Envelope {
	out := make(chan []protocol.Envelope, 1)
	go func() {
		var envs []protocol.Envelope
		for env := range client.Messages() {
			envs = append(envs, env)
			if env.Type == protocol.NotifyGameOver {
				break
			}
		}
		out <- envs
	}()
	return out
}

func (s *IntegrationSuite) collected(out <-chan []protocol.Envelope) []protocol.Envelope {
	select {
	case envs := <-out:
		return envs
	case <-time.After(2 * time.Second):
		s.FailNow("timed out collecting notifications")
		return nil
	}
}

func (s *IntegrationSuite) placeFleet(id model.PlayerID) {
	for kind, origin := range FleetLayout() {
		s.Require().NoError(s.app.SessionRouter.PlaceShip(s.ctx, id, kind, origin, model.Horizontal))
	}
}

// Test: Two guests play a complete match and it lands in their history
func (s *IntegrationSuite) TestCompleteMatchFlow() {
	alice, aliceClient := s.guest("Alice")
	bob, bobClient := s.guest("Bob")

	// Step 1: Both join; the second join pairs them
	s.Require().NoError(s.app.SessionRouter.Join(s.ctx, alice))
	s.Require().NoError(s.app.SessionRouter.Join(s.ctx, bob))

	started := s.await(aliceClient, protocol.NotifyMatchStarted).Payload.(protocol.MatchStartedPayload)
	s.Equal([2]model.PlayerID{alice, bob}, started.Players)
	s.await(bobClient, protocol.NotifyMatchStarted)

	// Step 2: Both place the same layout
	s.placeFleet(alice)
	s.placeFleet(bob)

	update := s.await(bobClient, protocol.NotifyStateUpdate).Payload.(protocol.StateUpdatePayload)
	s.Equal(model.PhaseActive, update.Phase)
	s.Equal(alice, update.CurrentTurn)

	// Step 3: Alice sinks everything while Bob fires into open water. Both
	// clients are read throughout, as a transport would.
	aliceNotes := collect(aliceClient)
	bobNotes := collect(bobClient)

	misses := 0
	cells := FleetCells()
	for i, cell := range cells {
		report, err := s.app.SessionRouter.FireShot(s.ctx, alice, cell)
		s.Require().NoError(err)
		if i == len(cells)-1 {
			s.True(report.MatchOver)
			break
		}
		_, err = s.app.SessionRouter.FireShot(s.ctx, bob, model.Position{X: 9 - misses%5, Y: 9 - misses/5})
		s.Require().NoError(err)
		misses++
	}

	for _, envs := range [][]protocol.Envelope{s.collected(aliceNotes), s.collected(bobNotes)} {
		s.Require().NotEmpty(envs)
		s.Require().Equal(protocol.NotifyGameOver, envs[len(envs)-1].Type)
		over := envs[len(envs)-1].Payload.(protocol.GameOverPayload)
		s.Equal(alice, over.Winner)
		s.Equal(started.MatchID, over.MatchID)

		shots := 0
		for _, env := range envs {
			if env.Type == protocol.NotifyShotResult {
				shots++
			}
		}
		s.Equal(len(cells)+misses, shots)
	}
	s.True(s.app.Hub.IsConnected(alice))
	s.True(s.app.Hub.IsConnected(bob))

	// Step 4: The record is stored and reflected in stats
	record, err := s.app.Storage.GetMatchRecord(s.ctx, started.MatchID)
	s.Require().NoError(err)
	s.Equal(model.EndReasonCompleted, record.Reason)
	s.Equal([2]int{17, 16}, record.Shots)
	s.Equal([2]int{17, 0}, record.Hits)

	aliceStats, err := s.app.StatsService.PlayerRecord(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(1, aliceStats.Wins)
	s.InDelta(1.0, aliceStats.Accuracy, 1e-9)

	bobStats, err := s.app.StatsService.PlayerRecord(s.ctx, bob)
	s.Require().NoError(err)
	s.Equal(1, bobStats.Losses)

	// The match is gone from the router
	_, err = s.app.SessionRouter.View(alice)
	s.ErrorIs(err, model.ErrNoSuchMatch)
}

// Test: A player leaving mid-match forfeits it
func (s *IntegrationSuite) TestPlayerLeavesDuringMatch() {
	alice, _ := s.guest("Alice")
	bob, bobClient := s.guest("Bob")

	s.Require().NoError(s.app.SessionRouter.Join(s.ctx, alice))
	s.Require().NoError(s.app.SessionRouter.Join(s.ctx, bob))
	started := s.await(bobClient, protocol.NotifyMatchStarted).Payload.(protocol.MatchStartedPayload)

	s.Require().NoError(s.app.SessionRouter.Leave(s.ctx, alice))

	left := s.await(bobClient, protocol.NotifyOpponentLeft).Payload.(protocol.OpponentLeftPayload)
	s.Equal(started.MatchID, left.MatchID)

	record, err := s.app.Storage.GetMatchRecord(s.ctx, started.MatchID)
	s.Require().NoError(err)
	s.Equal(bob, record.Winner)
	s.Equal(model.EndReasonForfeit, record.Reason)

	// Bob can queue again straight away
	s.Require().NoError(s.app.SessionRouter.Join(s.ctx, bob))
	view, err := s.app.SessionRouter.View(bob)
	s.Require().NoError(err)
	s.True(view.Queued)
}

// Test: A human plays against a bot until the bot's fleet is sunk
func (s *IntegrationSuite) TestHumanBeatsBot() {
	human, client := s.guest("Human")
	s.Require().NoError(s.app.SessionRouter.Join(s.ctx, human))

	botPlayer, err := s.app.BotService.AddBot(s.ctx, model.BotStrategyRandom)
	s.Require().NoError(err)
	s.True(botPlayer.IsBot)

	s.await(client, protocol.NotifyMatchStarted)
	s.placeFleet(human)
	s.await(client, protocol.NotifyStateUpdate)

	// The bot cannot find a random layout with a mock random source, so it
	// uses the fixed layout: one ship per even row from the left edge
	var targets []model.Position
	for i, kind := range model.ShipKinds() {
		for x := 0; x < kind.Length(); x++ {
			targets = append(targets, model.Position{X: x, Y: 2 * i})
		}
	}

	for _, target := range targets {
		_, err := s.app.SessionRouter.FireShot(s.ctx, human, target)
		s.Require().NoError(err)
		env := s.awaitEither(client, protocol.NotifyGameOver, protocol.NotifyStateUpdate)
		if env.Type == protocol.NotifyGameOver {
			break
		}
		// Wait for the bot's reply before firing again
		for {
			update := s.await(client, protocol.NotifyStateUpdate).Payload.(protocol.StateUpdatePayload)
			if update.CurrentTurn == human {
				break
			}
		}
	}

	records, err := s.app.StatsService.RecentMatches(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(human, records[0].Winner)

	s.Eventually(func() bool {
		return s.app.BotService.ActiveBots() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func (s *IntegrationSuite) awaitEither(client *realtime.Client, a, b protocol.NotificationType) protocol.Envelope {
	timeout := time.After(2 * time.Second)
	for {
		select {
		case env, ok := <-client.Messages():
			s.Require().True(ok)
			if env.Type == a || env.Type == b {
				return env
			}
		case <-timeout:
			s.FailNow("timed out waiting for notification")
		}
	}
}
