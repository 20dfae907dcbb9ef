package redis

import (
	"fmt"

	"github.com/mcoot/battleship-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "bsgame"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// matchRecordKey returns the Redis key for a MatchRecord
func matchRecordKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match_record:%s", keyPrefix, id)
}

// matchRecordsIndexKey returns the Redis key for the ZSET of all records scored by end time
func matchRecordsIndexKey() string {
	return fmt.Sprintf("%s:idx:match_records", keyPrefix)
}

// playerMatchRecordsIndexKey returns the Redis key for the ZSET of a player's records
func playerMatchRecordsIndexKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:player_match_records:%s", keyPrefix, playerID)
}
