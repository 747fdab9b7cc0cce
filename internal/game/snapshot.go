// internal/game/snapshot.go
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/eranhirsch/nothanks/internal/models"
)

// Snapshot serializes the game into the versioned form the persistence
// adapter stores. Slices are copied so the snapshot stays stable while the
// live game mutates.
func (g *Game) Snapshot() *models.GameSnapshot {
	snap := &models.GameSnapshot{
		Version:     models.SnapshotVersion,
		GameID:      g.ID,
		Phase:       string(g.Phase),
		Deck:        append([]int(nil), g.Deck...),
		Pool:        g.Pool,
		Active:      g.Active,
		TokensDealt: g.TokensDealt,
		Players:     make([]models.PlayerSnapshot, len(g.Players)),
	}
	if g.CurrentCard != nil {
		card := *g.CurrentCard
		snap.CurrentCard = &card
	}
	for i, p := range g.Players {
		snap.Players[i] = models.PlayerSnapshot{
			Seat:   p.Seat,
			UserID: p.UserID,
			Name:   p.Name,
			Tokens: p.Tokens,
			Hand:   append([]int(nil), p.Hand...),
		}
	}
	return snap
}

// FromSnapshot rebuilds a live game from a persisted snapshot. The
// randomness source is reseeded; only the observable state round-trips.
func FromSnapshot(snap *models.GameSnapshot) (*Game, error) {
	if snap.Version != models.SnapshotVersion {
		return nil, fmt.Errorf("unknown snapshot version %d (want %d)", snap.Version, models.SnapshotVersion)
	}
	if len(snap.Players) == 0 {
		return nil, fmt.Errorf("snapshot for game %s has no players", snap.GameID)
	}
	if snap.Active < 0 || snap.Active >= len(snap.Players) {
		return nil, fmt.Errorf("%w: active seat %d of %d players", ErrInvalidSeat, snap.Active, len(snap.Players))
	}

	g := &Game{
		ID:          snap.GameID,
		Phase:       Phase(snap.Phase),
		Deck:        append(Deck(nil), snap.Deck...),
		Pool:        snap.Pool,
		Active:      snap.Active,
		TokensDealt: snap.TokensDealt,
		Players:     make([]*Player, len(snap.Players)),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if snap.CurrentCard != nil {
		card := *snap.CurrentCard
		g.CurrentCard = &card
	}
	for i, ps := range snap.Players {
		g.Players[i] = &Player{
			Seat:   ps.Seat,
			UserID: ps.UserID,
			Name:   ps.Name,
			Tokens: ps.Tokens,
			Hand:   append(Hand(nil), ps.Hand...),
		}
	}
	return g, nil
}

// restore overwrites the live state from a snapshot taken earlier in the
// same action. Used by the table to roll back when persistence fails.
func (g *Game) restore(snap *models.GameSnapshot) {
	prev, err := FromSnapshot(snap)
	if err != nil {
		// The snapshot came from Snapshot() moments ago; failure here would
		// be a programming error.
		panic(fmt.Sprintf("restore from own snapshot failed: %v", err))
	}
	prev.rng = g.rng
	*g = *prev
}
