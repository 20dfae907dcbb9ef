package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     true,
		CreatedAt:   s.now,
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player, retrieved)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1"})

	s.Require().NoError(s.storage.DeletePlayer(s.ctx, "player-1"))

	_, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Registered player tests

func (s *StorageSuite) TestGetRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{PlayerID: "player-1", Username: "alice", PasswordHash: "hash"}
	s.Require().NoError(s.storage.SaveRegisteredPlayer(s.ctx, rp))

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), retrieved.PlayerID)

	_, err = s.storage.GetRegisteredPlayerByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Match record tests

func (s *StorageSuite) record(id string, p0, p1 model.PlayerID, endedAfter time.Duration) *model.MatchRecord {
	r := &model.MatchRecord{
		ID:        model.MatchID(id),
		Players:   [2]model.PlayerID{p0, p1},
		Winner:    p0,
		Reason:    model.EndReasonCompleted,
		CreatedAt: s.now,
		EndedAt:   s.now.Add(endedAfter),
	}
	s.Require().NoError(s.storage.SaveMatchRecord(s.ctx, r))
	return r
}

func (s *StorageSuite) TestSaveAndGetMatchRecord() {
	r := s.record("m1", "alice", "bob", time.Minute)

	retrieved, err := s.storage.GetMatchRecord(s.ctx, "m1")
	s.Require().NoError(err)
	s.Equal(r, retrieved)
}

func (s *StorageSuite) TestGetMatchRecordNotFound() {
	_, err := s.storage.GetMatchRecord(s.ctx, "missing")
	s.ErrorIs(err, model.ErrMatchRecordNotFound)
}

func (s *StorageSuite) TestListMatchRecordsNewestFirst() {
	s.record("m1", "alice", "bob", time.Minute)
	s.record("m2", "carol", "dave", 3*time.Minute)
	s.record("m3", "alice", "carol", 2*time.Minute)

	records, err := s.storage.ListMatchRecords(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal(model.MatchID("m2"), records[0].ID)
	s.Equal(model.MatchID("m3"), records[1].ID)
	s.Equal(model.MatchID("m1"), records[2].ID)

	limited, err := s.storage.ListMatchRecords(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(limited, 2)
}

func (s *StorageSuite) TestListPlayerMatchRecords() {
	s.record("m1", "alice", "bob", time.Minute)
	s.record("m2", "carol", "dave", 3*time.Minute)
	s.record("m3", "carol", "alice", 2*time.Minute)

	records, err := s.storage.ListPlayerMatchRecords(s.ctx, "alice", 10)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(model.MatchID("m3"), records[0].ID)
	s.Equal(model.MatchID("m1"), records[1].ID)

	none, err := s.storage.ListPlayerMatchRecords(s.ctx, "erin", 10)
	s.Require().NoError(err)
	s.Empty(none)
}
