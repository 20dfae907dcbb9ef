package protocol

import (
	"errors"

	"github.com/mcoot/battleship-go/internal/model"
)

// Error codes carried in error notifications
const (
	CodeOutOfBounds        = "OUT_OF_BOUNDS"
	CodeOverlap            = "OVERLAP"
	CodeAlreadyPlaced      = "ALREADY_PLACED"
	CodeInvalidOrientation = "INVALID_ORIENTATION"
	CodeNoSuchMatch        = "NO_SUCH_MATCH"
	CodeWrongPhase         = "WRONG_PHASE"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodeUnknownShipKind    = "UNKNOWN_SHIP_KIND"
	CodeInvalidTarget      = "INVALID_TARGET"
	CodeInvalidIntent      = "INVALID_INTENT"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorCode maps a domain error to its wire code
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, model.ErrOutOfBounds):
		return CodeOutOfBounds
	case errors.Is(err, model.ErrOverlap):
		return CodeOverlap
	case errors.Is(err, model.ErrAlreadyPlaced):
		return CodeAlreadyPlaced
	case errors.Is(err, model.ErrInvalidOrientation):
		return CodeInvalidOrientation
	case errors.Is(err, model.ErrNoSuchMatch):
		return CodeNoSuchMatch
	case errors.Is(err, model.ErrWrongPhase):
		return CodeWrongPhase
	case errors.Is(err, model.ErrNotYourTurn):
		return CodeNotYourTurn
	case errors.Is(err, model.ErrUnknownShipKind):
		return CodeUnknownShipKind
	case errors.Is(err, model.ErrInvalidTarget):
		return CodeInvalidTarget
	case errors.Is(err, ErrInvalidIntent):
		return CodeInvalidIntent
	default:
		return CodeInternal
	}
}
