package storage

import (
	"context"

	"github.com/mcoot/battleship-go/internal/model"
)

// Storage defines the interface for data persistence.
// Live match state is held by the session router and never stored.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Match record operations
	SaveMatchRecord(ctx context.Context, record *model.MatchRecord) error
	GetMatchRecord(ctx context.Context, id model.MatchID) (*model.MatchRecord, error)
	// ListMatchRecords returns the most recently ended matches first
	ListMatchRecords(ctx context.Context, limit int) ([]*model.MatchRecord, error)
	// ListPlayerMatchRecords returns the player's most recently ended matches first
	ListPlayerMatchRecords(ctx context.Context, playerID model.PlayerID, limit int) ([]*model.MatchRecord, error)
}
