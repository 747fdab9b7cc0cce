// internal/game/events.go
package game

// EventType enumerates everything the table broadcasts to its watchers.
type EventType string

const (
	EventNewGame        EventType = "game_new"
	EventCardRevealed   EventType = "card_revealed"
	EventCardTaken      EventType = "card_taken"
	EventDeclined       EventType = "card_declined"
	EventGameOver       EventType = "game_over"
	EventScoresRevealed EventType = "scores_revealed"
	EventSyncState      EventType = "sync_state"
)

// Event is one table broadcast. Only the fields relevant to the event type
// are set; State carries the full client-visible projection on sync and
// new-game events.
type Event struct {
	Type          EventType    `json:"type"`
	Seat          *int         `json:"seat,omitempty"`
	Card          *int         `json:"card,omitempty"`
	Pool          *int         `json:"pool,omitempty"`
	PoolCollected *int         `json:"pool_collected,omitempty"`
	NextSeat      *int         `json:"next_seat,omitempty"`
	DeckSize      *int         `json:"deck_size,omitempty"`
	Runs          [][]int      `json:"runs,omitempty"`
	Scores        []ScoreEntry `json:"scores,omitempty"`
	State         *View        `json:"state,omitempty"`
}

func intp(v int) *int { return &v }
