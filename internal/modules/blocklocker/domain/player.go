package domain

import "github.com/google/uuid"

// PlayerID is the opaque 128-bit identifier the game server assigns to a player.
type PlayerID = uuid.UUID

// ParsePlayerID parses the canonical string form of a player identifier.
func ParsePlayerID(s string) (PlayerID, error) {
	return uuid.Parse(s)
}
