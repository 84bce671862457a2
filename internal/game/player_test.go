package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayer(t *testing.T) {
	t.Parallel()

	p := NewPlayer("Alice", 100)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Alice", p.String())
	assert.Equal(t, 100, p.Bankroll())
	assert.Equal(t, 100, p.InitialBankroll())
	assert.Zero(t, p.Net())
	assert.Zero(t, p.HandCount())

	other := NewPlayer("Alice", 100)
	assert.NotEqual(t, p.ID, other.ID, "names are not identities")

	assert.Panics(t, func() { NewPlayer("Broke", -1) })
}

func TestPlaceWager(t *testing.T) {
	t.Parallel()

	p := NewPlayer("Alice", 50)

	for _, amount := range []int{0, -5, 51} {
		err := p.PlaceWager(amount)
		assert.ErrorIs(t, err, ErrInvalidWager, "amount %d", amount)
	}
	assert.Zero(t, p.Wager())

	require.NoError(t, p.PlaceWager(50))
	assert.Equal(t, 50, p.Wager())
	assert.Equal(t, 50, p.Bankroll(), "wagers are reserved, not deducted")
}

func TestPlayerHandIndex(t *testing.T) {
	t.Parallel()

	p := seat(t, "Alice", 100, 10)
	p.resetHands()

	_, err := p.Hand(0)
	assert.NoError(t, err)
	_, err = p.Hand(1)
	assert.ErrorIs(t, err, ErrInvalidHandIndex)
	_, err = p.Hand(-1)
	assert.ErrorIs(t, err, ErrInvalidHandIndex)
}

func TestPlayerExposure(t *testing.T) {
	t.Parallel()

	p := seat(t, "Alice", 30, 10)
	p.resetHands()
	assert.Equal(t, 10, p.Exposure())
	assert.True(t, p.canCover(20))
	assert.False(t, p.canCover(21))

	p.openSplitHand(10)
	assert.True(t, p.HasSplit())
	assert.Equal(t, 20, p.Exposure())
	assert.True(t, p.canCover(10))
	assert.False(t, p.canCover(11))
}

func TestPlayerNetAfterRound(t *testing.T) {
	t.Parallel()

	alice := seat(t, "Alice", 100, 10)
	r := startStacked(t, "Ts 9h 9c 7d Kd", strictRules(), alice)

	_, err := r.ApplyAction(alice.ID, 0, Stand)
	require.NoError(t, err)
	require.NoError(t, r.PlayDealer())
	_, err = r.Settle()
	require.NoError(t, err)

	assert.Equal(t, 110, alice.Bankroll())
	assert.Equal(t, 10, alice.Net())
	assert.Equal(t, 100, alice.InitialBankroll())
}
