package bot_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship-go/internal/dependencies/mocks"
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/protocol"
	"github.com/mcoot/battleship-go/internal/realtime"
	"github.com/mcoot/battleship-go/internal/services/bot"
	"github.com/mcoot/battleship-go/internal/services/session"
	"github.com/mcoot/battleship-go/internal/storage/memory"
	"github.com/mcoot/battleship-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	store      *memory.Storage
	mockClock  *mocks.MockClock
	mockRandom *mocks.MockRandom

	hub        *realtime.Hub
	router     *session.Router
	botService *bot.Service

	ctx context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.New()
	s.mockClock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.mockRandom = mocks.NewMockRandom()
	logger := testutil.NopLogger()
	s.ctx = context.Background()

	s.hub = realtime.NewHub(logger)
	go s.hub.Run()

	rnd := random.New()
	s.router = session.NewRouter(s.hub, s.store, s.mockClock, rnd, logger)
	s.botService = s.newService(bot.Config{MaxActiveBots: 4}, rnd)
}

func (s *ServiceSuite) TearDownTest() {
	s.botService.Shutdown()
	s.hub.Close()
}

func (s *ServiceSuite) newService(cfg bot.Config, rnd *random.CryptoRandom) *bot.Service {
	return bot.NewService(s.store, s.router, s.hub, bot.DefaultStrategies(rnd), cfg, s.mockClock, rnd, testutil.NopLogger())
}

// next waits for the next notification of the given type
func (s *ServiceSuite) next(client *realtime.Client, typ protocol.NotificationType) protocol.Envelope {
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

func (s *ServiceSuite) TestCreateBotPlayer() {
	service := bot.NewService(s.store, s.router, s.hub, nil, bot.DefaultConfig(), s.mockClock, s.mockRandom, testutil.NopLogger())
	s.mockRandom.QueueString("abcdefghijklmnop")

	player, err := service.CreateBotPlayer(s.ctx, "Bot 1", model.BotStrategyHunt)
	s.Require().NoError(err)

	s.Equal("Bot 1", player.DisplayName)
	s.True(player.IsBot)
	s.True(player.IsGuest)
	s.Equal(model.BotStrategyHunt, player.BotStrategy)
	s.Equal(model.PlayerID("bot-abcdefghijklmnop"), player.ID)

	retrieved, err := s.store.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
}

func (s *ServiceSuite) TestAddBotRejectsUnknownStrategy() {
	_, err := s.botService.AddBot(s.ctx, "psychic")
	s.ErrorIs(err, model.ErrUnknownBotStrategy)
	s.Equal(0, s.botService.ActiveBots())
}

func (s *ServiceSuite) TestAddBotQueuesBot() {
	player, err := s.botService.AddBot(s.ctx, model.BotStrategyRandom)
	s.Require().NoError(err)

	s.Equal("Random Bot 1", player.DisplayName)
	s.Equal(1, s.botService.ActiveBots())

	view, err := s.router.View(player.ID)
	s.Require().NoError(err)
	s.True(view.Queued)
}

func (s *ServiceSuite) TestAddBotEnforcesLimit() {
	service := s.newService(bot.Config{MaxActiveBots: 1}, random.New())
	defer service.Shutdown()

	_, err := service.AddBot(s.ctx, model.BotStrategyRandom)
	s.Require().NoError(err)

	_, err = service.AddBot(s.ctx, model.BotStrategyRandom)
	s.ErrorIs(err, model.ErrTooManyBots)
}

// gatedStorage holds every SavePlayer call until release is closed
type gatedStorage struct {
	*memory.Storage
	release chan struct{}
}

func (g *gatedStorage) SavePlayer(ctx context.Context, player *model.Player) error {
	<-g.release
	return g.Storage.SavePlayer(ctx, player)
}

func (s *ServiceSuite) TestAddBotLimitHoldsUnderConcurrency() {
	const callers = 8
	store := &gatedStorage{Storage: s.store, release: make(chan struct{})}
	rnd := random.New()
	service := bot.NewService(store, s.router, s.hub, bot.DefaultStrategies(rnd),
		bot.Config{MaxActiveBots: 2, MoveDelay: time.Hour}, s.mockClock, rnd, testutil.NopLogger())
	defer service.Shutdown()

	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		go func() {
			_, err := service.AddBot(s.ctx, model.BotStrategyRandom)
			errs <- err
		}()
	}

	// Callers beyond the limit are turned away while the first two are
	// still creating their players
	for i := 0; i < callers-2; i++ {
		select {
		case err := <-errs:
			s.ErrorIs(err, model.ErrTooManyBots)
		case <-time.After(2 * time.Second):
			s.FailNow("over-limit AddBot calls were not rejected")
		}
	}

	close(store.release)
	for i := 0; i < 2; i++ {
		select {
		case err := <-errs:
			s.NoError(err)
		case <-time.After(2 * time.Second):
			s.FailNow("AddBot did not finish")
		}
	}
	s.Equal(2, service.ActiveBots())
}

func (s *ServiceSuite) TestTwoBotsPlayToCompletion() {
	_, err := s.botService.AddBot(s.ctx, model.BotStrategyRandom)
	s.Require().NoError(err)
	_, err = s.botService.AddBot(s.ctx, model.BotStrategyHunt)
	s.Require().NoError(err)

	s.Eventually(func() bool {
		records, err := s.store.ListMatchRecords(s.ctx, 0)
		return err == nil && len(records) == 1
	}, 5*time.Second, 10*time.Millisecond)

	records, _ := s.store.ListMatchRecords(s.ctx, 0)
	record := records[0]
	s.Equal(model.EndReasonCompleted, record.Reason)
	winnerSeat := record.Seat(record.Winner)
	s.Require().GreaterOrEqual(winnerSeat, 0)
	s.Equal(17, record.Hits[winnerSeat])

	s.Eventually(func() bool {
		return s.botService.ActiveBots() == 0
	}, 2*time.Second, 10*time.Millisecond)
	s.Equal(session.Stats{}, s.router.Stats())
}

func (s *ServiceSuite) TestBotLeavesWhenOpponentLeaves() {
	human := model.PlayerID("human")
	client := s.hub.Connect(human)
	s.Require().NoError(s.router.Join(s.ctx, human))

	_, err := s.botService.AddBot(s.ctx, model.BotStrategyRandom)
	s.Require().NoError(err)

	s.next(client, protocol.NotifyMatchStarted)
	s.router.Disconnect(s.ctx, human)

	s.Eventually(func() bool {
		return s.botService.ActiveBots() == 0
	}, 2*time.Second, 10*time.Millisecond)
	s.Equal(0, s.router.Stats().Players)
}

func (s *ServiceSuite) TestBotFiresOnItsTurn() {
	human := model.PlayerID("human")
	client := s.hub.Connect(human)
	s.Require().NoError(s.router.Join(s.ctx, human))

	botPlayer, err := s.botService.AddBot(s.ctx, model.BotStrategyHunt)
	s.Require().NoError(err)
	s.next(client, protocol.NotifyMatchStarted)

	for i, kind := range model.ShipKinds() {
		err := s.router.PlaceShip(s.ctx, human, kind, model.Position{X: 0, Y: i}, model.Horizontal)
		s.Require().NoError(err)
	}

	// The human joined first and so moves first
	update := s.next(client, protocol.NotifyStateUpdate).Payload.(protocol.StateUpdatePayload)
	s.Equal(human, update.CurrentTurn)
	_, err = s.router.FireShot(s.ctx, human, model.Position{X: 9, Y: 9})
	s.Require().NoError(err)

	for {
		result := s.next(client, protocol.NotifyShotResult).Payload.(protocol.ShotResultPayload)
		if result.Shooter == botPlayer.ID {
			s.True(result.Outcome.Accepted())
			break
		}
	}
}

func (s *ServiceSuite) TestShutdownStopsQueuedBots() {
	_, err := s.botService.AddBot(s.ctx, model.BotStrategyRandom)
	s.Require().NoError(err)

	s.botService.Shutdown()

	s.Equal(0, s.botService.ActiveBots())
	s.Equal(0, s.router.Stats().Queued)
}

func (s *ServiceSuite) TestErrorsAreWrapped() {
	_, err := s.botService.AddBot(s.ctx, "psychic")
	s.True(errors.Is(err, model.ErrUnknownBotStrategy))
	s.Contains(err.Error(), "psychic")
}
