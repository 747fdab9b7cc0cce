// internal/game/game.go
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Phase tracks where a game is in its lifecycle. The playing loop
// alternates AwaitingReveal and CardRevealed until the deck runs out.
type Phase string

const (
	PhaseAwaitingReveal Phase = "awaiting_reveal"
	PhaseCardRevealed   Phase = "card_revealed"
	PhaseGameOver       Phase = "game_over"
	PhaseScoresRevealed Phase = "scores_revealed"
)

// Options tunes game creation. The zero value gives a standard game with a
// random starting seat and seats in the order the names were supplied.
type Options struct {
	// ShuffleSeats randomizes seat order once, at creation. Turn order is
	// fixed thereafter.
	ShuffleSeats bool

	// StartingSeat picks the first active player explicitly. Nil means a
	// uniformly random seat.
	StartingSeat *int

	// Rand supplies the randomness source. Nil means a time-seeded source.
	// Tests pass a fixed seed here.
	Rand *rand.Rand
}

// Game is the whole aggregate for one table: deck, revealed card, token
// pool, seats and the active-player pointer. It is not safe for concurrent
// use; the owning Table serializes all access through its gate.
type Game struct {
	ID          uuid.UUID
	Phase       Phase
	Deck        Deck
	CurrentCard *int
	Pool        int
	Active      int
	Players     []*Player
	TokensDealt int // per-player deal at game start, kept for conservation checks

	rng *rand.Rand
}

// NewGame builds a fresh game: full deck minus the blind setup removal,
// every hand empty, tokens dealt per the table size, pool empty, no card
// out. Exactly one game is live per table at a time; creating a new one
// replaces the old wholesale.
func NewGame(names []string, opts Options) (*Game, error) {
	tokens, err := DealTokens(len(names))
	if err != nil {
		return nil, err
	}

	r := opts.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	deck, err := NewDeck(MinCard, MaxCard, SetupRemoved, r)
	if err != nil {
		return nil, err
	}

	seats := make([]string, len(names))
	copy(seats, names)
	if opts.ShuffleSeats {
		r.Shuffle(len(seats), func(i, j int) {
			seats[i], seats[j] = seats[j], seats[i]
		})
	}

	players := make([]*Player, len(seats))
	for i, name := range seats {
		players[i] = &Player{
			Seat:   i,
			Name:   name,
			Tokens: tokens,
			Hand:   Hand{},
		}
	}

	start := r.Intn(len(players))
	if opts.StartingSeat != nil {
		start = *opts.StartingSeat
		if start < 0 || start >= len(players) {
			return nil, fmt.Errorf("%w: starting seat %d of %d players", ErrInvalidSeat, start, len(players))
		}
	}

	id, _ := uuid.NewRandom()
	return &Game{
		ID:          id,
		Phase:       PhaseAwaitingReveal,
		Deck:        deck,
		Active:      start,
		Players:     players,
		TokensDealt: tokens,
		rng:         r,
	}, nil
}

// ActivePlayer returns the seat whose turn it is to decide.
func (g *Game) ActivePlayer() *Player {
	return g.Players[g.Active]
}

// Reveal draws the next card from the deck and puts it up for decision.
// Fails while a card is still out. An empty deck is the path to game over,
// not an error in well-formed play; callers should check Deck.Size and
// branch to scoring, but Reveal guards the transition itself so a racing
// caller still ends the game cleanly.
func (g *Game) Reveal() (int, error) {
	if g.Phase == PhaseGameOver || g.Phase == PhaseScoresRevealed {
		return 0, ErrGameOverAlready
	}
	if g.CurrentCard != nil {
		return 0, fmt.Errorf("%w: %d awaits a decision", ErrCardStillOut, *g.CurrentCard)
	}
	if g.Deck.Size() == 0 {
		return 0, ErrDeckEmpty
	}

	card, remaining, err := g.Deck.Draw(g.rng)
	if err != nil {
		return 0, err
	}
	g.Deck = remaining
	g.CurrentCard = &card
	g.Pool = 0
	g.Phase = PhaseCardRevealed
	return card, nil
}

// TakeResult describes a completed take for event broadcasting.
type TakeResult struct {
	Seat          int
	Card          int
	PoolCollected int
	GameOver      bool
}

// Take gives the revealed card and the whole pool to the active player.
// The active pointer does not advance on a take: the same player decides
// again on the next reveal. Only Decline moves the turn along. When the
// deck is empty afterwards the game ends.
func (g *Game) Take() (TakeResult, error) {
	if g.CurrentCard == nil {
		return TakeResult{}, fmt.Errorf("%w: nothing to take", ErrNoCardRevealed)
	}

	seat := g.Active
	card := *g.CurrentCard
	collected := g.Pool

	p := g.Players[seat]
	p.Hand = p.Hand.Add(card)
	g.collectPool(seat)
	g.CurrentCard = nil

	if g.Deck.Size() == 0 {
		g.Phase = PhaseGameOver
	} else {
		g.Phase = PhaseAwaitingReveal
	}

	return TakeResult{
		Seat:          seat,
		Card:          card,
		PoolCollected: collected,
		GameOver:      g.Phase == PhaseGameOver,
	}, nil
}

// Decline pays one token onto the revealed card and passes the turn to the
// next seat, wrapping round-robin. Fails when no card is out or the active
// player has no token left to pay with.
func (g *Game) Decline() error {
	if g.CurrentCard == nil {
		return fmt.Errorf("%w: nothing to decline", ErrNoCardRevealed)
	}
	if err := g.transferToPool(g.Active, 1); err != nil {
		return err
	}
	g.Active = (g.Active + 1) % len(g.Players)
	return nil
}

// RevealScores computes the final scorecard once the deck has emptied.
// Idempotent: calling it again after the scores are out returns the same
// card.
func (g *Game) RevealScores() ([]ScoreEntry, error) {
	if g.Phase != PhaseGameOver && g.Phase != PhaseScoresRevealed {
		return nil, fmt.Errorf("%w: %d card(s) left", ErrGameNotOver, g.Deck.Size())
	}
	g.Phase = PhaseScoresRevealed
	return Scorecard(g.Players), nil
}
