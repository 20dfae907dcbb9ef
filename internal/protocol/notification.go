package protocol

import (
	"encoding/json"

	"github.com/mcoot/battleship-go/internal/model"
)

// NotificationType identifies an outbound message
type NotificationType string

const (
	NotifyStatus       NotificationType = "status"
	NotifyMatchStarted NotificationType = "match_started"
	NotifyShipPlaced   NotificationType = "ship_placed"
	NotifyPlayerReady  NotificationType = "player_ready"
	NotifyStateUpdate  NotificationType = "state_update"
	NotifyShotResult   NotificationType = "shot_result"
	NotifyGameOver     NotificationType = "game_over"
	NotifyOpponentLeft NotificationType = "opponent_left"
	NotifyError        NotificationType = "error"
)

// QueueJoinedText is the status text sent to a player entering the queue
const QueueJoinedText = "Joined matchmaking queue..."

// Envelope is a notification as delivered to a transport
type Envelope struct {
	Type    NotificationType `json:"type"`
	Payload any              `json:"payload"`
}

// Marshal encodes the whole envelope as JSON
func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// MarshalPayload encodes only the payload as JSON
func (e Envelope) MarshalPayload() ([]byte, error) {
	return json.Marshal(e.Payload)
}

// StatusPayload is informational text for the requester
type StatusPayload struct {
	Text string `json:"text"`
}

// MatchStartedPayload tells each player the match they are in.
// You is the recipient's own identifier.
type MatchStartedPayload struct {
	MatchID model.MatchID     `json:"match_id"`
	Players [2]model.PlayerID `json:"players"`
	You     model.PlayerID    `json:"you"`
}

// ShipPlacedPayload acknowledges a placement to the requester
type ShipPlacedPayload struct {
	ShipKind    model.ShipKind    `json:"ship_kind"`
	X           int               `json:"x"`
	Y           int               `json:"y"`
	Orientation model.Orientation `json:"orientation"`
}

// PlayerReadyPayload acknowledges that the requester's fleet is fully placed
type PlayerReadyPayload struct {
	Ready bool `json:"ready"`
}

// StateUpdatePayload carries the phase and whose turn it is
type StateUpdatePayload struct {
	MatchID     model.MatchID    `json:"match_id"`
	Phase       model.MatchPhase `json:"phase"`
	CurrentTurn model.PlayerID   `json:"current_turn"`
}

// ShotResultPayload describes the outcome of one shot
type ShotResultPayload struct {
	Shooter  model.PlayerID      `json:"shooter"`
	X        int                 `json:"x"`
	Y        int                 `json:"y"`
	Outcome  model.AttackOutcome `json:"outcome"`
	SunkShip *model.ShipKind     `json:"sunk_ship"`
}

// GameOverPayload announces the winner
type GameOverPayload struct {
	MatchID model.MatchID  `json:"match_id"`
	Winner  model.PlayerID `json:"winner"`
}

// OpponentLeftPayload tells the remaining player their opponent is gone
type OpponentLeftPayload struct {
	MatchID model.MatchID `json:"match_id"`
}

// ErrorPayload reports a rejected intent to the requester
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Status builds a status notification
func Status(text string) Envelope {
	return Envelope{Type: NotifyStatus, Payload: StatusPayload{Text: text}}
}

// MatchStarted builds a match start notification addressed to one player
func MatchStarted(id model.MatchID, players [2]model.PlayerID, you model.PlayerID) Envelope {
	return Envelope{Type: NotifyMatchStarted, Payload: MatchStartedPayload{MatchID: id, Players: players, You: you}}
}

// ShipPlaced builds a placement acknowledgement
func ShipPlaced(kind model.ShipKind, pos model.Position, orientation model.Orientation) Envelope {
	return Envelope{Type: NotifyShipPlaced, Payload: ShipPlacedPayload{
		ShipKind:    kind,
		X:           pos.X,
		Y:           pos.Y,
		Orientation: orientation,
	}}
}

// PlayerReady builds a ready acknowledgement
func PlayerReady() Envelope {
	return Envelope{Type: NotifyPlayerReady, Payload: PlayerReadyPayload{Ready: true}}
}

// StateUpdate builds a phase/turn update for a match
func StateUpdate(m *model.Match) Envelope {
	payload := StateUpdatePayload{MatchID: m.ID, Phase: m.Phase}
	if m.Phase == model.PhaseActive {
		payload.CurrentTurn = m.CurrentPlayer().ID
	}
	return Envelope{Type: NotifyStateUpdate, Payload: payload}
}

// ShotResult builds a shot outcome notification
func ShotResult(shooter model.PlayerID, pos model.Position, result model.AttackResult) Envelope {
	payload := ShotResultPayload{
		Shooter: shooter,
		X:       pos.X,
		Y:       pos.Y,
		Outcome: result.Outcome,
	}
	if result.SunkKind != "" {
		kind := result.SunkKind
		payload.SunkShip = &kind
	}
	return Envelope{Type: NotifyShotResult, Payload: payload}
}

// GameOver builds a game over notification
func GameOver(id model.MatchID, winner model.PlayerID) Envelope {
	return Envelope{Type: NotifyGameOver, Payload: GameOverPayload{MatchID: id, Winner: winner}}
}

// OpponentLeft builds the notification for the remaining player
func OpponentLeft(id model.MatchID) Envelope {
	return Envelope{Type: NotifyOpponentLeft, Payload: OpponentLeftPayload{MatchID: id}}
}

// Error builds an error notification for a rejected intent
func Error(err error) Envelope {
	return Envelope{Type: NotifyError, Payload: ErrorPayload{Code: ErrorCode(err), Message: err.Error()}}
}
