package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player is an account identity. Match membership lives in Participant.
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool   // true for unregistered players
	IsBot       bool   // true for automated players
	BotStrategy string // strategy name, empty for humans
	CreatedAt   time.Time
}

// RegisteredPlayer extends Player with authentication data
// Stored separately for security (password never in memory with session)
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
