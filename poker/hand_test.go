package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHand(t *testing.T) {
	h, err := ParseHand("AsKh")
	require.NoError(t, err)
	assert.Equal(t, "AsKh", h.String())
}

func TestParseHandDuplicateCard(t *testing.T) {
	_, err := ParseHand("AsAs")
	assert.Error(t, err)
}

func TestNewHandOrdersByRank(t *testing.T) {
	h1 := NewHand(NewCard(King, Spades), NewCard(Ace, Hearts))
	h2 := NewHand(NewCard(Ace, Hearts), NewCard(King, Spades))
	assert.Equal(t, h1, h2)
}

func TestCanonicalPair(t *testing.T) {
	h := NewHand(NewCard(Ace, Spades), NewCard(Ace, Hearts))
	assert.Equal(t, "AA", h.Canonical())
}

func TestCanonicalSuited(t *testing.T) {
	h := NewHand(NewCard(Ace, Spades), NewCard(King, Spades))
	assert.Equal(t, "AKs", h.Canonical())
}

func TestCanonicalOffsuit(t *testing.T) {
	h := NewHand(NewCard(Ace, Spades), NewCard(King, Hearts))
	assert.Equal(t, "AKo", h.Canonical())
}

func TestSharesCard(t *testing.T) {
	h := NewHand(NewCard(Ace, Spades), NewCard(King, Hearts))
	assert.True(t, h.SharesCard(NewCard(Ace, Spades)))
	assert.False(t, h.SharesCard(NewCard(Queen, Diamonds)))
}
