// internal/game/player.go
package game

import "github.com/google/uuid"

// Player is one seat at the table. Seat order is fixed for the lifetime of
// a game; seats may be shuffled once when the game is created.
type Player struct {
	Seat   int       `json:"seat"`
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Tokens int       `json:"tokens"`
	Hand   Hand      `json:"hand"`
}
