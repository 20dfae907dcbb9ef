package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mcoot/battleship-go/internal/model"
)

// ErrInvalidIntent is returned for intents that cannot be decoded or have an unknown type
var ErrInvalidIntent = errors.New("invalid intent")

// IntentType identifies what a player is asking the router to do
type IntentType string

const (
	IntentJoin      IntentType = "join"
	IntentPlaceShip IntentType = "place_ship"
	IntentFireShot  IntentType = "fire_shot"
	IntentLeave     IntentType = "leave"
)

// Intent is a decoded request from a player. The sender is implied by the
// connection it arrived on and is never part of the payload.
type Intent struct {
	Type        IntentType `json:"type"`
	ShipKind    string     `json:"ship_kind,omitempty"`
	X           int        `json:"x"`
	Y           int        `json:"y"`
	Orientation string     `json:"orientation,omitempty"`
}

// JoinIntent builds a join request
func JoinIntent() Intent {
	return Intent{Type: IntentJoin}
}

// PlaceShipIntent builds a ship placement request
func PlaceShipIntent(kind model.ShipKind, x, y int, orientation model.Orientation) Intent {
	return Intent{Type: IntentPlaceShip, ShipKind: string(kind), X: x, Y: y, Orientation: string(orientation)}
}

// FireShotIntent builds a shot request
func FireShotIntent(x, y int) Intent {
	return Intent{Type: IntentFireShot, X: x, Y: y}
}

// LeaveIntent builds a leave request
func LeaveIntent() Intent {
	return Intent{Type: IntentLeave}
}

// DecodeIntent parses a JSON intent and validates it
func DecodeIntent(data []byte) (Intent, error) {
	var intent Intent
	if err := json.Unmarshal(data, &intent); err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrInvalidIntent, err)
	}
	if err := intent.Validate(); err != nil {
		return Intent{}, err
	}
	return intent, nil
}

// Validate checks the intent type. Field values are checked by the router once
// the sender's match and phase are known.
func (i Intent) Validate() error {
	switch i.Type {
	case IntentJoin, IntentPlaceShip, IntentFireShot, IntentLeave:
		return nil
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidIntent, i.Type)
	}
}

// Position returns the intent's target coordinates
func (i Intent) Position() model.Position {
	return model.Position{X: i.X, Y: i.Y}
}
