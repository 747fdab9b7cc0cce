// internal/game/tokens.go
package game

import "fmt"

// tokensByPlayerCount is the official deal table: fewer tokens per player
// at larger tables keeps the decline economy tight.
var tokensByPlayerCount = map[int]int{
	3: 11,
	4: 11,
	5: 11,
	6: 9,
	7: 7,
}

// DealTokens returns the per-player token count for a table of the given
// size, or ErrPlayerCount outside [3, 7].
func DealTokens(playerCount int) (int, error) {
	n, ok := tokensByPlayerCount[playerCount]
	if !ok {
		return 0, fmt.Errorf("%w: %d players (want 3-7)", ErrPlayerCount, playerCount)
	}
	return n, nil
}

// transferToPool moves amount tokens from the seat's private stash onto the
// revealed card. Declining with too few tokens is a hard rule violation and
// leaves all state untouched.
func (g *Game) transferToPool(seat, amount int) error {
	p := g.Players[seat]
	if p.Tokens < amount {
		return fmt.Errorf("%w: %s has %d token(s)", ErrInsufficientTokens, p.Name, p.Tokens)
	}
	p.Tokens -= amount
	g.Pool += amount
	return nil
}

// collectPool hands the whole table pool to the seat that took the card.
// The pool is reset to zero even when it was already empty, so a stale
// value can never leak into the next reveal.
func (g *Game) collectPool(seat int) {
	if g.Pool > 0 {
		g.Players[seat].Tokens += g.Pool
	}
	g.Pool = 0
}
