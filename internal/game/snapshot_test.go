// internal/game/snapshot_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eranhirsch/nothanks/internal/models"
)

func TestSnapshotRoundTrip(t *testing.T) {
	g := newTestGame(t, 4)
	_, err := g.Reveal()
	require.NoError(t, err)
	require.NoError(t, g.Decline())
	_, err = g.Take()
	require.NoError(t, err)

	snap := g.Snapshot()
	assert.Equal(t, models.SnapshotVersion, snap.Version)

	restored, err := FromSnapshot(snap)
	require.NoError(t, err)

	assert.Equal(t, g.ID, restored.ID)
	assert.Equal(t, g.Phase, restored.Phase)
	assert.Equal(t, g.Deck, restored.Deck)
	assert.Equal(t, g.Pool, restored.Pool)
	assert.Equal(t, g.Active, restored.Active)
	assert.Equal(t, g.TokensDealt, restored.TokensDealt)
	require.Len(t, restored.Players, len(g.Players))
	for i, p := range g.Players {
		assert.Equal(t, *p, *restored.Players[i])
	}
	assertConservation(t, restored)
}

func TestSnapshotIsStable(t *testing.T) {
	g := newTestGame(t, 3)
	_, err := g.Reveal()
	require.NoError(t, err)

	snap := g.Snapshot()
	deckBefore := append([]int(nil), snap.Deck...)

	// Mutating the live game must not reach into the snapshot.
	_, err = g.Take()
	require.NoError(t, err)
	_, err = g.Reveal()
	require.NoError(t, err)

	assert.Equal(t, deckBefore, snap.Deck)
}

func TestFromSnapshotRejectsBadData(t *testing.T) {
	g := newTestGame(t, 4)

	snap := g.Snapshot()
	snap.Version = 99
	_, err := FromSnapshot(snap)
	assert.Error(t, err)

	snap = g.Snapshot()
	snap.Players = nil
	_, err = FromSnapshot(snap)
	assert.Error(t, err)

	snap = g.Snapshot()
	snap.Active = 7
	_, err = FromSnapshot(snap)
	assert.ErrorIs(t, err, ErrInvalidSeat)
}
