package session

import (
	"context"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/protocol"
)

// Notifier delivers notifications to players. Send must not block: delivery
// is fire-and-forget and the router calls it while holding its lock.
type Notifier interface {
	Send(playerID model.PlayerID, env protocol.Envelope)
}

// Recorder persists the summary of matches that have ended
type Recorder interface {
	SaveMatchRecord(ctx context.Context, record *model.MatchRecord) error
}

// NopNotifier discards every notification
type NopNotifier struct{}

// Send does nothing
func (NopNotifier) Send(model.PlayerID, protocol.Envelope) {}
