// internal/game/deck.go
package game

import (
	"fmt"
	"math/rand"
)

// Standard No Thanks! deck parameters: cards 3..35, nine of which are
// removed blind during setup and never enter play.
const (
	MinCard      = 3
	MaxCard      = 35
	SetupRemoved = 9
)

// Deck is the bag of face-down, not-yet-revealed card values. Order is
// meaningless; draws pick a uniformly random element, so the deck never
// needs an explicit shuffle.
type Deck []int

// NewDeck builds the full inclusive range [minCard, maxCard] and then
// discards setupRemoved blind draws. The removed cards leave the game
// entirely and are not recorded anywhere.
func NewDeck(minCard, maxCard, setupRemoved int, r *rand.Rand) (Deck, error) {
	if maxCard < minCard {
		return nil, fmt.Errorf("invalid card range [%d, %d]", minCard, maxCard)
	}
	size := maxCard - minCard + 1
	if setupRemoved < 0 || setupRemoved >= size {
		return nil, fmt.Errorf("cannot remove %d cards from a %d-card deck", setupRemoved, size)
	}

	d := make(Deck, 0, size)
	for v := minCard; v <= maxCard; v++ {
		d = append(d, v)
	}
	for i := 0; i < setupRemoved; i++ {
		_, d, _ = d.Draw(r)
	}
	return d, nil
}

// Draw removes and returns a uniformly random card. Callers must check
// Size before drawing; an empty deck is the game-over condition, not a
// normal draw outcome.
func (d Deck) Draw(r *rand.Rand) (int, Deck, error) {
	if len(d) == 0 {
		return 0, d, ErrDeckEmpty
	}
	i := r.Intn(len(d))
	card := d[i]
	remaining := make(Deck, 0, len(d)-1)
	remaining = append(remaining, d[:i]...)
	remaining = append(remaining, d[i+1:]...)
	return card, remaining, nil
}

// Size reports how many cards remain face down.
func (d Deck) Size() int {
	return len(d)
}
