// internal/game/errors.go
package game

import "errors"

// Sentinel errors for rule preconditions. Handlers match on these with
// errors.Is and surface the wrapped detail (current values) to the client.
var (
	// ErrDeckEmpty is returned by Deck.Draw when no cards remain. In normal
	// play callers check Size first and branch to game over instead.
	ErrDeckEmpty = errors.New("deck is empty")

	// ErrCardStillOut is returned by Reveal while a revealed card is still
	// awaiting a decision.
	ErrCardStillOut = errors.New("a card is still out")

	// ErrNoCardRevealed is returned by Take and Decline when no card is out.
	ErrNoCardRevealed = errors.New("no card revealed")

	// ErrInsufficientTokens is returned by Decline when the active player
	// holds zero tokens. A player who cannot pay must take the card.
	ErrInsufficientTokens = errors.New("insufficient tokens")

	// ErrPlayerCount is returned when a game is created with a player count
	// outside [3, 7].
	ErrPlayerCount = errors.New("unsupported player count")

	// ErrInvalidSeat is returned when an explicit starting seat is out of
	// range for the table.
	ErrInvalidSeat = errors.New("invalid seat")

	// ErrGameNotOver is returned by RevealScores before the deck has run out.
	ErrGameNotOver = errors.New("game is not over")

	// ErrGameOverAlready is returned by play actions after the deck has
	// emptied; the only remaining transitions are score reveal and new game.
	ErrGameOverAlready = errors.New("game is over")

	// ErrBusy is returned when the table gate cannot be acquired before the
	// timeout elapses, i.e. another action is still in progress.
	ErrBusy = errors.New("previous action still in progress")

	// ErrNoGame is returned by actions on a table that has no live game yet.
	ErrNoGame = errors.New("no game at this table")
)
