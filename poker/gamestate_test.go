package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHand(t *testing.T, s string) Hand {
	t.Helper()
	h, err := ParseHand(s)
	require.NoError(t, err)
	return h
}

func mustRange(t *testing.T, s string) Range {
	t.Helper()
	r, err := ParseRange(s)
	require.NoError(t, err)
	return r
}

func TestStreetFromBoardSize(t *testing.T) {
	cases := []struct {
		n    int
		want Street
	}{{0, Preflop}, {3, Flop}, {4, Turn}, {5, River}}

	for _, c := range cases {
		got, err := StreetFromBoardSize(c.n)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}

	_, err := StreetFromBoardSize(2)
	assert.Error(t, err)
}

func TestNewGameStateValid(t *testing.T) {
	hero := mustHand(t, "AsKs")
	board, err := ParseCards("2c5d9h")
	require.NoError(t, err)

	gs, err := NewGameState(hero, board, 10, 100, 0, IP, mustRange(t, "AA,KK,QQ"))
	require.NoError(t, err)
	assert.Equal(t, Flop, gs.Street)
	// As blocks 3 of the 6 AA combos and Ks blocks 3 of the 6 KK combos.
	assert.Len(t, gs.VillainRange, 3+3+6)
}

func TestNewGameStateRejectsNonPositivePot(t *testing.T) {
	hero := mustHand(t, "AsKs")
	_, err := NewGameState(hero, nil, 0, 100, 0, IP, mustRange(t, "AA"))
	assert.Error(t, err)
}

func TestNewGameStateRejectsToCallOutOfRange(t *testing.T) {
	hero := mustHand(t, "AsKs")
	_, err := NewGameState(hero, nil, 10, 100, 101, IP, mustRange(t, "AA"))
	assert.Error(t, err)
}

func TestNewGameStateRejectsDuplicateCard(t *testing.T) {
	hero := mustHand(t, "AsKs")
	board, err := ParseCards("AsKd2h")
	require.NoError(t, err)
	_, err = NewGameState(hero, board, 10, 100, 0, IP, mustRange(t, "AA"))
	assert.Error(t, err)
}

func TestNewGameStateRejectsFullyBlockedRange(t *testing.T) {
	hero := mustHand(t, "AsAh")
	board, err := ParseCards("Ad2c3h")
	require.NoError(t, err)
	_, err = NewGameState(hero, board, 10, 100, 0, IP, mustRange(t, "AA"))
	assert.Error(t, err)
}
