// internal/game/tokens_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealTokens(t *testing.T) {
	cases := []struct {
		players int
		tokens  int
		ok      bool
	}{
		{2, 0, false},
		{3, 11, true},
		{4, 11, true},
		{5, 11, true},
		{6, 9, true},
		{7, 7, true},
		{8, 0, false},
	}
	for _, tc := range cases {
		got, err := DealTokens(tc.players)
		if !tc.ok {
			assert.ErrorIs(t, err, ErrPlayerCount, "%d players", tc.players)
			continue
		}
		require.NoError(t, err, "%d players", tc.players)
		assert.Equal(t, tc.tokens, got, "%d players", tc.players)
	}
}

func TestCollectPoolAlwaysResets(t *testing.T) {
	g := newTestGame(t, 4)
	g.Pool = 0
	g.Players[1].Tokens = 5

	// Empty pool: no tokens move, but the pool is still (re)set to zero.
	g.collectPool(1)
	assert.Equal(t, 5, g.Players[1].Tokens)
	assert.Equal(t, 0, g.Pool)

	g.Pool = 3
	g.collectPool(1)
	assert.Equal(t, 8, g.Players[1].Tokens)
	assert.Equal(t, 0, g.Pool)
}

func TestTransferToPoolGuardsBalance(t *testing.T) {
	g := newTestGame(t, 4)
	g.Players[g.Active].Tokens = 1

	require.NoError(t, g.transferToPool(g.Active, 1))
	assert.Equal(t, 0, g.Players[g.Active].Tokens)
	assert.Equal(t, 1, g.Pool)

	err := g.transferToPool(g.Active, 1)
	assert.ErrorIs(t, err, ErrInsufficientTokens)
	assert.Equal(t, 0, g.Players[g.Active].Tokens, "failed transfer must not mutate")
	assert.Equal(t, 1, g.Pool)
}
