package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Placement errors
	ErrOutOfBounds        = errors.New("ship placement is out of bounds")
	ErrOverlap            = errors.New("ship placement overlaps another ship")
	ErrAlreadyPlaced      = errors.New("ship has already been placed")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrUnknownShipKind    = errors.New("unknown ship kind")

	// Match errors
	ErrNoSuchMatch   = errors.New("player is not in a match")
	ErrWrongPhase    = errors.New("action not allowed in current match phase")
	ErrNotYourTurn   = errors.New("not this player's turn")
	ErrInvalidTarget = errors.New("invalid target cell")
	ErrNotInMatch    = errors.New("player is not part of this match")

	// Record errors
	ErrMatchRecordNotFound = errors.New("match record not found")

	// Bot errors
	ErrUnknownBotStrategy = errors.New("unknown bot strategy")
	ErrTooManyBots        = errors.New("too many active bots")
)
