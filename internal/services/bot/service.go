package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mcoot/battleship-go/internal/dependencies/clock"
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/protocol"
	"github.com/mcoot/battleship-go/internal/realtime"
	"github.com/mcoot/battleship-go/internal/services/session"
	"github.com/mcoot/battleship-go/internal/storage"
)

const (
	// PlayerIDAlphabet is the character set for generating bot player IDs
	PlayerIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// PlayerIDLength is the length of generated bot player IDs
	PlayerIDLength = 16
)

// Config holds bot service settings
type Config struct {
	// MaxActiveBots caps how many bots may be queued or playing at once
	MaxActiveBots int
	// MoveDelay is how long a bot waits before each shot
	MoveDelay time.Duration
}

// DefaultConfig returns default bot configuration
func DefaultConfig() Config {
	return Config{
		MaxActiveBots: 16,
		MoveDelay:     500 * time.Millisecond,
	}
}

// Service runs automated players. Each bot joins the matchmaking queue like
// any other player and reacts to the notifications it receives.
type Service struct {
	storage    storage.Storage
	router     session.Interface
	hub        *realtime.Hub
	strategies map[string]Strategy
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger
	cfg        Config

	mu       sync.Mutex
	active   map[model.PlayerID]context.CancelFunc
	reserved int // Slots claimed by AddBot calls still creating their player
	created  atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService creates a new bot Service
func NewService(
	store storage.Storage,
	router session.Interface,
	hub *realtime.Hub,
	strategies map[string]Strategy,
	cfg Config,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		storage:    store,
		router:     router,
		hub:        hub,
		strategies: strategies,
		clock:      clk,
		random:     rnd,
		logger:     logger.With(slog.String("component", "bot-service")),
		cfg:        cfg,
		active:     make(map[model.PlayerID]context.CancelFunc),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// CreateBotPlayer creates a new bot player and saves it to storage
func (s *Service) CreateBotPlayer(ctx context.Context, displayName string, strategy string) (*model.Player, error) {
	player := &model.Player{
		ID:          model.PlayerID("bot-" + s.random.String(PlayerIDLength, PlayerIDAlphabet)),
		DisplayName: displayName,
		IsGuest:     true,
		IsBot:       true,
		BotStrategy: strategy,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

// AddBot creates a bot using the named strategy and puts it in the matchmaking queue
func (s *Service) AddBot(ctx context.Context, strategyName string) (*model.Player, error) {
	strategy, ok := s.strategies[strategyName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownBotStrategy, strategyName)
	}

	s.mu.Lock()
	if len(s.active)+s.reserved >= s.cfg.MaxActiveBots {
		s.mu.Unlock()
		return nil, model.ErrTooManyBots
	}
	s.reserved++
	s.mu.Unlock()

	n := s.created.Add(1)
	displayName := fmt.Sprintf("%s Bot %d", model.BotStrategyDisplayName(strategyName), n)
	bot, err := s.CreateBotPlayer(ctx, displayName, strategyName)

	s.mu.Lock()
	s.reserved--
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	botCtx, cancel := context.WithCancel(s.ctx)
	s.active[bot.ID] = cancel
	s.mu.Unlock()

	// Connect before joining so no notification is missed
	client := s.hub.Connect(bot.ID)
	s.wg.Add(1)
	go s.run(botCtx, bot, strategy, client)

	if err := s.router.Join(ctx, bot.ID); err != nil {
		cancel()
		return nil, err
	}

	s.logger.Info("bot queued",
		slog.String("bot_id", string(bot.ID)),
		slog.String("bot_name", displayName),
		slog.String("strategy", strategyName),
	)
	return bot, nil
}

// ActiveBots returns the number of bots queued or playing
func (s *Service) ActiveBots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// Shutdown stops every bot and waits for them to leave
func (s *Service) Shutdown() {
	s.cancel()
	s.wg.Wait()
}

// run drives one bot until its match ends or it is stopped
func (s *Service) run(ctx context.Context, bot *model.Player, strategy Strategy, client *realtime.Client) {
	defer s.wg.Done()
	defer s.release(bot.ID)
	defer s.hub.Unregister(client)
	defer s.router.Disconnect(context.WithoutCancel(ctx), bot.ID)

	p := &player{
		id:       bot.ID,
		strategy: strategy,
		router:   s.router,
		delay:    s.cfg.MoveDelay,
		logger:   s.logger.With(slog.String("bot_id", string(bot.ID))),
	}

	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-client.Messages():
			if !ok {
				return
			}
			if done := p.handle(ctx, env); done {
				return
			}
		}
	}
}

func (s *Service) release(id model.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.active[id]; ok {
		cancel()
		delete(s.active, id)
	}
}

// player is the per-bot state machine
type player struct {
	id       model.PlayerID
	strategy Strategy
	router   session.Interface
	delay    time.Duration
	logger   *slog.Logger

	shots *ShotLog // Set once a match has started
}

// handle reacts to one notification and returns true when the bot is finished
func (p *player) handle(ctx context.Context, env protocol.Envelope) bool {
	switch env.Type {
	case protocol.NotifyMatchStarted:
		p.shots = NewShotLog()
		for _, placement := range p.strategy.PlaceFleet() {
			if err := p.router.PlaceShip(ctx, p.id, placement.Kind, placement.Origin, placement.Orientation); err != nil {
				p.logger.Warn("bot placement rejected", slog.String("error", err.Error()))
				return true
			}
		}

	case protocol.NotifyStateUpdate:
		update, ok := env.Payload.(protocol.StateUpdatePayload)
		if !ok || p.shots == nil || update.Phase != model.PhaseActive || update.CurrentTurn != p.id {
			return false
		}
		if !p.wait(ctx) {
			return true
		}
		target := p.strategy.ChooseShot(p.shots)
		if _, err := p.router.FireShot(ctx, p.id, target); err != nil {
			p.logger.Warn("bot shot rejected", slog.String("error", err.Error()))
			return true
		}

	case protocol.NotifyShotResult:
		result, ok := env.Payload.(protocol.ShotResultPayload)
		if ok && p.shots != nil && result.Shooter == p.id {
			pos := model.Position{X: result.X, Y: result.Y}
			if result.Outcome == model.OutcomeSunk && result.SunkShip != nil {
				p.shots.RecordSunk(pos, *result.SunkShip)
			} else {
				p.shots.Record(pos, result.Outcome)
			}
		}

	case protocol.NotifyGameOver, protocol.NotifyOpponentLeft:
		p.logger.Debug("bot match ended", slog.String("type", string(env.Type)))
		return true
	}
	return false
}

// wait pauses before a move; it returns false if ctx ended first
func (p *player) wait(ctx context.Context) bool {
	if p.delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
