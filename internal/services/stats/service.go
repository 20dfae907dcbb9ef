package stats

import (
	"context"

	"github.com/mcoot/battleship-go/internal/model"
	"github.com/mcoot/battleship-go/internal/storage"
)

// DefaultRecentLimit is the number of recent matches returned when no limit is given
const DefaultRecentLimit = 20

// PlayerRecord summarises a player's ended matches
type PlayerRecord struct {
	PlayerID    model.PlayerID
	Played      int
	Wins        int
	Losses      int
	ForfeitWins int // Wins where the opponent left
	Shots       int
	Hits        int
	Accuracy    float64 // Hits / Shots, 0 when no shots were fired
}

// Service computes statistics from stored match records
type Service struct {
	storage storage.Storage
}

// New creates a new stats Service
func New(storage storage.Storage) *Service {
	return &Service{
		storage: storage,
	}
}

// PlayerRecord tallies every stored match the player took part in
func (s *Service) PlayerRecord(ctx context.Context, playerID model.PlayerID) (*PlayerRecord, error) {
	records, err := s.storage.ListPlayerMatchRecords(ctx, playerID, 0)
	if err != nil {
		return nil, err
	}
	return Tally(playerID, records), nil
}

// RecentMatches returns the most recently ended matches, newest first
func (s *Service) RecentMatches(ctx context.Context, limit int) ([]*model.MatchRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.storage.ListMatchRecords(ctx, limit)
}

// Match returns one stored match record
func (s *Service) Match(ctx context.Context, id model.MatchID) (*model.MatchRecord, error) {
	return s.storage.GetMatchRecord(ctx, id)
}

// Tally builds a PlayerRecord from match records; records the player is not in are ignored
func Tally(playerID model.PlayerID, records []*model.MatchRecord) *PlayerRecord {
	result := &PlayerRecord{PlayerID: playerID}

	for _, r := range records {
		seat := r.Seat(playerID)
		if seat < 0 {
			continue
		}
		result.Played++
		result.Shots += r.Shots[seat]
		result.Hits += r.Hits[seat]

		if r.Winner == playerID {
			result.Wins++
			if r.Reason == model.EndReasonForfeit {
				result.ForfeitWins++
			}
		} else {
			result.Losses++
		}
	}

	if result.Shots > 0 {
		result.Accuracy = float64(result.Hits) / float64(result.Shots)
	}
	return result
}
