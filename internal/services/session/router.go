package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/battleship-go/internal/dependencies/clock"
	"github.com/mcoot/battleship-go/internal/dependencies/random"
	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/protocol"
)

// Interface is the set of operations transports and handlers use to drive matches
type Interface interface {
	Join(ctx context.Context, playerID model.PlayerID) error
	PlaceShip(ctx context.Context, playerID model.PlayerID, kind model.ShipKind, pos model.Position, orientation model.Orientation) error
	FireShot(ctx context.Context, playerID model.PlayerID, pos model.Position) (ShotReport, error)
	Leave(ctx context.Context, playerID model.PlayerID) error
	Disconnect(ctx context.Context, playerID model.PlayerID)
	Dispatch(ctx context.Context, playerID model.PlayerID, intent protocol.Intent) error
	View(playerID model.PlayerID) (*View, error)
	Stats() Stats
}

var _ Interface = (*Router)(nil)

// ShotReport is the resolved outcome of an accepted shot
type ShotReport struct {
	Result    model.AttackResult
	MatchOver bool
}

// Router owns the participant registry, the match registry and the waiting
// queue. Every intent is handled to completion under a single mutex, so match
// and registry state is never mutated concurrently.
type Router struct {
	mu           sync.Mutex
	participants map[model.PlayerID]*model.Participant
	matches      map[model.MatchID]*model.Match
	playerMatch  map[model.PlayerID]model.MatchID
	queue        *Queue

	notifier Notifier
	recorder Recorder // Optional
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
}

// NewRouter creates a Router with empty registries
func NewRouter(
	notifier Notifier,
	recorder Recorder,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Router {
	return &Router{
		participants: make(map[model.PlayerID]*model.Participant),
		matches:      make(map[model.MatchID]*model.Match),
		playerMatch:  make(map[model.PlayerID]model.MatchID),
		queue:        NewQueue(),
		notifier:     notifier,
		recorder:     recorder,
		clock:        clk,
		random:       rnd,
		logger:       logger.With(slog.String("component", "session-router")),
	}
}

// Join puts the player in the matchmaking queue, pairing the two oldest
// waiting players into a match. Joining while queued or in a live match is a no-op.
func (r *Router) Join(ctx context.Context, playerID model.PlayerID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.queue.Contains(playerID) {
		return nil
	}
	if _, ok := r.playerMatch[playerID]; ok {
		return nil
	}

	r.participant(playerID)
	r.queue.Enqueue(playerID)
	r.notifier.Send(playerID, protocol.Status(protocol.QueueJoinedText))

	r.logger.Debug("player queued",
		slog.String("player_id", string(playerID)),
		slog.Int("queue_length", r.queue.Len()),
	)

	if p0, p1, ok := r.queue.PopPair(); ok {
		r.createMatch(p0, p1)
	}
	return nil
}

// participant returns the player's participant, creating it on first contact
func (r *Router) participant(playerID model.PlayerID) *model.Participant {
	p, ok := r.participants[playerID]
	if !ok {
		p = model.NewParticipant(playerID)
		r.participants[playerID] = p
	}
	return p
}

// createMatch binds two queued players into a fresh match and notifies both
func (r *Router) createMatch(id0, id1 model.PlayerID) *model.Match {
	p0 := r.participant(id0)
	p1 := r.participant(id1)
	p0.Reset()
	p1.Reset()

	matchID := model.MatchID(r.random.UUID())
	match := model.NewMatch(matchID, p0, p1, r.clock.Now())
	r.matches[matchID] = match
	r.playerMatch[id0] = matchID
	r.playerMatch[id1] = matchID

	players := match.PlayerIDs()
	for _, id := range players {
		r.notifier.Send(id, protocol.MatchStarted(matchID, players, id))
	}

	r.logger.Info("match created",
		slog.String("match_id", string(matchID)),
		slog.String("player_0", string(id0)),
		slog.String("player_1", string(id1)),
	)
	return match
}

// matchFor resolves the live match the player is bound to
func (r *Router) matchFor(playerID model.PlayerID) (*model.Match, error) {
	matchID, ok := r.playerMatch[playerID]
	if !ok {
		return nil, model.ErrNoSuchMatch
	}
	match, ok := r.matches[matchID]
	if !ok {
		return nil, model.ErrNoSuchMatch
	}
	return match, nil
}

// broadcast sends the envelope to both players of a match
func (r *Router) broadcast(match *model.Match, env protocol.Envelope) {
	for _, id := range match.PlayerIDs() {
		r.notifier.Send(id, env)
	}
}

// reject reports a failed intent to the requester only and returns the error
func (r *Router) reject(playerID model.PlayerID, err error) error {
	r.notifier.Send(playerID, protocol.Error(err))
	return err
}

// deregister removes a match and its player bindings from the registry
func (r *Router) deregister(match *model.Match) {
	delete(r.matches, match.ID)
	for _, id := range match.PlayerIDs() {
		if r.playerMatch[id] == match.ID {
			delete(r.playerMatch, id)
		}
	}
}

// PlaceShip places one of the player's ships on their own board
func (r *Router) PlaceShip(ctx context.Context, playerID model.PlayerID, kind model.ShipKind, pos model.Position, orientation model.Orientation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	match, err := r.matchFor(playerID)
	if err != nil {
		return r.reject(playerID, err)
	}
	if match.Phase != model.PhasePlacement {
		return r.reject(playerID, model.ErrWrongPhase)
	}
	if _, err := model.ParseShipKind(string(kind)); err != nil {
		return r.reject(playerID, err)
	}
	if _, err := model.ParseOrientation(string(orientation)); err != nil {
		return r.reject(playerID, err)
	}

	p := match.Participant(playerID)
	ship := p.FleetShip(kind)
	if ship == nil {
		return r.reject(playerID, model.ErrUnknownShipKind)
	}
	if err := p.Board.Place(ship, pos, orientation); err != nil {
		return r.reject(playerID, err)
	}
	r.notifier.Send(playerID, protocol.ShipPlaced(kind, pos, orientation))

	if !p.AllPlaced() {
		return nil
	}

	active, err := match.MarkReady(playerID)
	if err != nil {
		return r.reject(playerID, err)
	}
	r.notifier.Send(playerID, protocol.PlayerReady())

	if active {
		r.logger.Info("match started",
			slog.String("match_id", string(match.ID)),
			slog.String("first_turn", string(match.CurrentPlayer().ID)),
		)
		r.broadcast(match, protocol.StateUpdate(match))
	}
	return nil
}

// FireShot resolves the player's shot against the opponent's board
func (r *Router) FireShot(ctx context.Context, playerID model.PlayerID, pos model.Position) (ShotReport, error) {
	report, record, err := r.fireShot(playerID, pos)
	r.saveRecord(ctx, record)
	return report, err
}

func (r *Router) fireShot(playerID model.PlayerID, pos model.Position) (ShotReport, *model.MatchRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	match, err := r.matchFor(playerID)
	if err != nil {
		return ShotReport{}, nil, r.reject(playerID, err)
	}
	if match.Phase != model.PhaseActive {
		return ShotReport{}, nil, r.reject(playerID, model.ErrWrongPhase)
	}
	if match.CurrentPlayer().ID != playerID {
		return ShotReport{}, nil, r.reject(playerID, model.ErrNotYourTurn)
	}

	target, err := match.TargetFor(playerID)
	if err != nil {
		return ShotReport{}, nil, r.reject(playerID, err)
	}

	result := target.Attack(pos)
	if !result.Outcome.Accepted() {
		r.notifier.Send(playerID, protocol.ShotResult(playerID, pos, result))
		return ShotReport{Result: result}, nil, r.reject(playerID, model.ErrInvalidTarget)
	}

	match.RecordShot(playerID, result.Outcome)
	r.broadcast(match, protocol.ShotResult(playerID, pos, result))

	if result.Outcome == model.OutcomeSunk && target.AllSunk() {
		now := r.clock.Now()
		match.Finish(playerID, now)
		r.broadcast(match, protocol.GameOver(match.ID, playerID))
		r.deregister(match)

		r.logger.Info("match finished",
			slog.String("match_id", string(match.ID)),
			slog.String("winner", string(playerID)),
		)
		return ShotReport{Result: result, MatchOver: true}, match.Record(playerID, model.EndReasonCompleted, now), nil
	}

	match.AdvanceTurn()
	r.broadcast(match, protocol.StateUpdate(match))
	return ShotReport{Result: result}, nil, nil
}

// Leave withdraws the player from the queue or their live match. The opponent
// of an abandoned match is notified and wins by default.
func (r *Router) Leave(ctx context.Context, playerID model.PlayerID) error {
	r.Disconnect(ctx, playerID)
	return nil
}

// Disconnect removes every trace of the player from the router. A later join
// with the same identifier is treated as a new player. Safe to call repeatedly.
func (r *Router) Disconnect(ctx context.Context, playerID model.PlayerID) {
	record := r.disconnect(playerID)
	r.saveRecord(ctx, record)
}

func (r *Router) disconnect(playerID model.PlayerID) *model.MatchRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queue.Remove(playerID)
	defer delete(r.participants, playerID)

	match, err := r.matchFor(playerID)
	if err != nil {
		return nil
	}

	r.deregister(match)
	opponent := match.OpponentOf(playerID)
	r.notifier.Send(opponent.ID, protocol.OpponentLeft(match.ID))

	r.logger.Info("match abandoned",
		slog.String("match_id", string(match.ID)),
		slog.String("player_id", string(playerID)),
		slog.String("phase", string(match.Phase)),
	)
	return match.Record(opponent.ID, model.EndReasonForfeit, r.clock.Now())
}

// Dispatch routes a decoded intent to the matching operation
func (r *Router) Dispatch(ctx context.Context, playerID model.PlayerID, intent protocol.Intent) error {
	switch intent.Type {
	case protocol.IntentJoin:
		return r.Join(ctx, playerID)
	case protocol.IntentPlaceShip:
		kind := model.ShipKind(intent.ShipKind)
		orientation := model.Orientation(intent.Orientation)
		return r.PlaceShip(ctx, playerID, kind, intent.Position(), orientation)
	case protocol.IntentFireShot:
		_, err := r.FireShot(ctx, playerID, intent.Position())
		return err
	case protocol.IntentLeave:
		return r.Leave(ctx, playerID)
	default:
		err := intent.Validate()
		r.notifier.Send(playerID, protocol.Error(err))
		return err
	}
}

// saveRecord hands an ended match to the recorder. Called without the lock held.
func (r *Router) saveRecord(ctx context.Context, record *model.MatchRecord) {
	if record == nil || r.recorder == nil {
		return
	}
	if err := r.recorder.SaveMatchRecord(ctx, record); err != nil {
		r.logger.Error("failed to save match record",
			slog.String("match_id", string(record.ID)),
			slog.String("error", err.Error()),
		)
	}
}
