package model

import "time"

// MatchID uniquely identifies a match
type MatchID string

// MatchPhase represents the coarse stage of a match
type MatchPhase string

const (
	PhaseSetup     MatchPhase = "setup"     // Created, players not yet bound
	PhasePlacement MatchPhase = "placement" // Players placing their fleets
	PhaseActive    MatchPhase = "active"    // Players alternating shots
	PhaseFinished  MatchPhase = "finished"  // A fleet was destroyed
)

// phaseOrder gives each phase its rank; phases only ever move forward
var phaseOrder = map[MatchPhase]int{
	PhaseSetup:     0,
	PhasePlacement: 1,
	PhaseActive:    2,
	PhaseFinished:  3,
}

// Match is a two-player session
type Match struct {
	ID        MatchID
	Players   [2]*Participant // Seat 0 joined the queue first
	Phase     MatchPhase
	TurnIndex int      // Seat whose turn it is, meaningful only while Active
	Winner    PlayerID // Set only when Finished

	// Per-seat counters of accepted shots
	Shots [2]int
	Hits  [2]int

	CreatedAt time.Time
	EndedAt   time.Time
}

// NewMatch creates a match in Setup and binds both players, which moves it
// to Placement
func NewMatch(id MatchID, p0, p1 *Participant, now time.Time) *Match {
	m := &Match{
		ID:        id,
		Phase:     PhaseSetup,
		CreatedAt: now,
	}
	m.BindPlayers(p0, p1)
	return m
}

// BindPlayers seats both participants. A match with two players is
// immediately in Placement.
func (m *Match) BindPlayers(p0, p1 *Participant) {
	m.Players = [2]*Participant{p0, p1}
	m.advance(PhasePlacement)
}

// advance moves the match to a later phase; earlier or equal phases are ignored
func (m *Match) advance(phase MatchPhase) bool {
	if phaseOrder[phase] <= phaseOrder[m.Phase] {
		return false
	}
	m.Phase = phase
	return true
}

// Seat returns the index of the player in the match, or -1
func (m *Match) Seat(id PlayerID) int {
	for i, p := range m.Players {
		if p != nil && p.ID == id {
			return i
		}
	}
	return -1
}

// Has returns true if the player is bound to this match
func (m *Match) Has(id PlayerID) bool {
	return m.Seat(id) >= 0
}

// Participant returns the player's slot in the match, or nil
func (m *Match) Participant(id PlayerID) *Participant {
	if seat := m.Seat(id); seat >= 0 {
		return m.Players[seat]
	}
	return nil
}

// PlayerIDs returns the identifiers of both seats in order
func (m *Match) PlayerIDs() [2]PlayerID {
	return [2]PlayerID{m.Players[0].ID, m.Players[1].ID}
}

// MarkReady flags the player as ready. It returns true when this call moved
// the match into Active, in which case the first seat moves first.
func (m *Match) MarkReady(id PlayerID) (bool, error) {
	if m.Phase != PhasePlacement {
		return false, ErrWrongPhase
	}
	p := m.Participant(id)
	if p == nil {
		return false, ErrNotInMatch
	}
	p.Ready = true

	if !m.Players[0].Ready || !m.Players[1].Ready {
		return false, nil
	}
	m.TurnIndex = 0
	return m.advance(PhaseActive), nil
}

// CurrentPlayer returns the participant whose turn it is
func (m *Match) CurrentPlayer() *Participant {
	return m.Players[m.TurnIndex]
}

// OpponentOf returns the other participant, or nil if the player is not in the match
func (m *Match) OpponentOf(id PlayerID) *Participant {
	seat := m.Seat(id)
	if seat < 0 {
		return nil
	}
	return m.Players[1-seat]
}

// TargetFor returns the board the attacker is allowed to fire at
func (m *Match) TargetFor(attacker PlayerID) (Target, error) {
	opp := m.OpponentOf(attacker)
	if opp == nil {
		return nil, ErrNotInMatch
	}
	return opp.Board, nil
}

// RecordShot updates the per-seat shot counters for an accepted attack
func (m *Match) RecordShot(shooter PlayerID, outcome AttackOutcome) {
	seat := m.Seat(shooter)
	if seat < 0 || !outcome.Accepted() {
		return
	}
	m.Shots[seat]++
	if outcome == OutcomeHit || outcome == OutcomeSunk {
		m.Hits[seat]++
	}
}

// AdvanceTurn passes the turn to the other seat
func (m *Match) AdvanceTurn() {
	m.TurnIndex = 1 - m.TurnIndex
}

// Finish ends the match with the given winner
func (m *Match) Finish(winner PlayerID, now time.Time) {
	if !m.advance(PhaseFinished) {
		return
	}
	m.Winner = winner
	m.EndedAt = now
}

// IsLive returns true while the match can still be played
func (m *Match) IsLive() bool {
	return m.Phase == PhasePlacement || m.Phase == PhaseActive
}

// Record builds the persisted summary of an ended match
func (m *Match) Record(winner PlayerID, reason EndReason, endedAt time.Time) *MatchRecord {
	return &MatchRecord{
		ID:        m.ID,
		Players:   m.PlayerIDs(),
		Winner:    winner,
		Reason:    reason,
		Shots:     m.Shots,
		Hits:      m.Hits,
		CreatedAt: m.CreatedAt,
		EndedAt:   endedAt,
	}
}
