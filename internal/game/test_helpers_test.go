package game

import (
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

// strictRules are the default rules with a shoe that never reshuffles, so a
// stacked shoe fails loudly instead of dealing random cards.
func strictRules() Rules {
	rules := DefaultRules()
	rules.Reshuffle = deck.ReshuffleNever
	return rules
}

func seat(t *testing.T, name string, bankroll, wager int) *Player {
	t.Helper()
	p := NewPlayer(name, bankroll)
	require.NoError(t, p.PlaceWager(wager))
	return p
}

// startStacked starts a round on a shoe that deals cards in the given order.
// Initial deal order is one card to each player then the dealer, twice.
func startStacked(t *testing.T, cards string, rules Rules, players ...*Player) *Round {
	t.Helper()
	shoe := deck.NewStackedShoe(deck.MustParseCards(cards), randutil.New(1), deck.WithReshuffle(rules.Reshuffle))
	r, err := StartRound(players, shoe, WithRules(rules), WithClock(quartz.NewMock(t)))
	require.NoError(t, err)
	return r
}

func cards(s string) []deck.Card {
	return deck.MustParseCards(s)
}
