// internal/models/snapshot.go
package models

import "github.com/google/uuid"

// SnapshotVersion is the schema version stamped on every persisted game
// snapshot. Bump it on any incompatible field change; the store rejects
// versions it does not know.
const SnapshotVersion = 1

// GameSnapshot is the typed, versioned serialization of one table's live
// game. It is the unit the persistence adapter loads and saves; it carries
// everything needed to resume play after a restart.
type GameSnapshot struct {
	Version     int              `json:"version"`
	GameID      uuid.UUID        `json:"game_id"`
	Phase       string           `json:"phase"`
	Deck        []int            `json:"deck"`
	CurrentCard *int             `json:"current_card,omitempty"`
	Pool        int              `json:"pool"`
	Active      int              `json:"active"`
	TokensDealt int              `json:"tokens_dealt"`
	Players     []PlayerSnapshot `json:"players"`
}

// PlayerSnapshot is one seat inside a GameSnapshot.
type PlayerSnapshot struct {
	Seat   int       `json:"seat"`
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Tokens int       `json:"tokens"`
	Hand   []int     `json:"hand"`
}
