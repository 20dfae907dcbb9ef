package session

import "github.com/mcoot/battleship-go/internal/model"

// Queue is the FIFO of players waiting for an opponent. It holds no duplicates.
// Not safe for concurrent use; the Router serialises access.
type Queue struct {
	entries []model.PlayerID
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends the player, returning false if already queued
func (q *Queue) Enqueue(id model.PlayerID) bool {
	if q.Contains(id) {
		return false
	}
	q.entries = append(q.entries, id)
	return true
}

// Remove deletes the player from the queue, returning false if absent
func (q *Queue) Remove(id model.PlayerID) bool {
	for i, e := range q.entries {
		if e == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// PopPair removes and returns the two oldest entries
func (q *Queue) PopPair() (model.PlayerID, model.PlayerID, bool) {
	if len(q.entries) < 2 {
		return "", "", false
	}
	first, second := q.entries[0], q.entries[1]
	q.entries = q.entries[2:]
	return first, second, true
}

// Contains returns true if the player is waiting
func (q *Queue) Contains(id model.PlayerID) bool {
	for _, e := range q.entries {
		if e == id {
			return true
		}
	}
	return false
}

// Len returns the number of waiting players
func (q *Queue) Len() int {
	return len(q.entries)
}

// Snapshot returns the waiting players in order
func (q *Queue) Snapshot() []model.PlayerID {
	out := make([]model.PlayerID, len(q.entries))
	copy(out, q.entries)
	return out
}
