package model

import "time"

// EndReason describes how a match ended
type EndReason string

const (
	EndReasonCompleted EndReason = "completed" // a fleet was destroyed
	EndReasonForfeit   EndReason = "forfeit"   // a player left or disconnected
)

// MatchRecord is the persisted summary of a match that has ended
type MatchRecord struct {
	ID        MatchID
	Players   [2]PlayerID
	Winner    PlayerID
	Reason    EndReason
	Shots     [2]int // accepted shots per seat
	Hits      [2]int // hits (including sinking hits) per seat
	CreatedAt time.Time
	EndedAt   time.Time
}

// Seat returns the index of the player in the record, or -1
func (r *MatchRecord) Seat(id PlayerID) int {
	for i, p := range r.Players {
		if p == id {
			return i
		}
	}
	return -1
}

// Duration returns how long the match lasted
func (r *MatchRecord) Duration() time.Duration {
	return r.EndedAt.Sub(r.CreatedAt)
}
