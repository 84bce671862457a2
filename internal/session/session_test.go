package session

import (
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
)

func texts(out Output) []string {
	lines := make([]string, len(out.Lines))
	for i, l := range out.Lines {
		lines[i] = l.Text
	}
	return lines
}

func hasKind(out Output, kind Kind) bool {
	for _, l := range out.Lines {
		if l.Kind == kind {
			return true
		}
	}
	return false
}

// stacked returns a session dealing from a fixed card order with the given
// players already seated.
func stacked(t *testing.T, cards string, seats ...Seat) *Session {
	t.Helper()
	settings := DefaultSettings()
	settings.Rules.Reshuffle = deck.ReshuffleNever
	settings.Seats = seats
	shoe := deck.NewStackedShoe(deck.MustParseCards(cards), randutil.New(1), deck.WithReshuffle(deck.ReshuffleNever))
	return New(settings, WithShoe(shoe), WithClock(quartz.NewMock(t)))
}

func TestSetupPrompts(t *testing.T) {
	t.Parallel()

	s := New(DefaultSettings(), WithRNG(randutil.New(1)), WithClock(quartz.NewMock(t)))

	out := s.Start()
	assert.Equal(t, "How many decks? (4-8) [6]", out.Prompt)

	out = s.Input("3")
	assert.True(t, hasKind(out, KindError))
	assert.Equal(t, "How many decks? (4-8) [6]", out.Prompt)

	out = s.Input("many")
	assert.Contains(t, texts(out)[0], "not a number")

	out = s.Input("")
	assert.Equal(t, []string{"Shuffled 6 decks (312 cards)"}, texts(out))
	assert.Equal(t, "How many players? (1-7)", out.Prompt)
	assert.Equal(t, 6, s.Shoe().Decks())

	out = s.Input("8")
	assert.True(t, hasKind(out, KindError))
	out = s.Input("2")
	assert.Equal(t, "Name of player 1", out.Prompt)

	out = s.Input("   ")
	assert.Equal(t, []string{"Name cannot be empty"}, texts(out))

	out = s.Input("Alice")
	assert.Equal(t, "Alice's bankroll (at least 50)", out.Prompt)
	out = s.Input("49")
	assert.True(t, hasKind(out, KindError))
	out = s.Input("200")
	assert.Equal(t, "Name of player 2", out.Prompt)

	out = s.Input("alice")
	assert.Equal(t, []string{"Alice is already seated"}, texts(out))
	out = s.Input("Bob")
	require.Equal(t, "Bob's bankroll (at least 50)", out.Prompt)
	out = s.Input("50")
	assert.Equal(t, "Alice, your wager (1-200)", out.Prompt)

	out = s.Input("0")
	assert.True(t, hasKind(out, KindError))
	out = s.Input("201")
	assert.True(t, hasKind(out, KindError))
	out = s.Input("20")
	assert.Equal(t, "Bob, your wager (1-50)", out.Prompt)

	out = s.Quit()
	assert.True(t, out.Done)
	assert.Empty(t, out.Prompt)
	assert.Equal(t, []string{"Final balances", "Alice: +0", "Bob: +0"}, texts(out))
	assert.True(t, s.Done())
}

func TestFixedDecksSkipsPrompt(t *testing.T) {
	t.Parallel()

	settings := DefaultSettings()
	settings.Rules.Decks = 4
	settings.FixedDecks = true
	settings.Seats = []Seat{{Name: "Alice", Bankroll: 100}}
	s := New(settings, WithRNG(randutil.New(2)))

	out := s.Start()
	assert.Equal(t, "Alice, your wager (1-100)", out.Prompt)
	assert.Equal(t, 4, s.Shoe().Decks())
	require.Len(t, s.Roster(), 1)
}

func TestPlayRoundToBust(t *testing.T) {
	t.Parallel()

	s := stacked(t, "Ts 9h 6c 7d Kd 2c", Seat{Name: "Alice", Bankroll: 100})
	out := s.Start()
	require.Equal(t, "Alice, your wager (1-100)", out.Prompt)

	out = s.Input("10")
	assert.Equal(t, []string{"Round 1", "Dealer shows 9♥", "Alice: T♠ 6♣ (16)"}, texts(out))
	assert.Equal(t, "Alice: T♠ 6♣ (16) vs 9♥. [h]it, [s]tand, [d]ouble, [surr]ender", out.Prompt)

	out = s.Input("fold")
	assert.Equal(t, []string{`unknown action "fold"`}, texts(out))

	out = s.Input("sp")
	assert.Equal(t, []string{"Cannot split: cards do not form a pair"}, texts(out))

	out = s.Input("h")
	assert.Equal(t, []string{
		"Alice hits: T♠ 6♣ K♦ (26, bust)",
		"Alice busts",
		"Dealer: 9♥ 7♦ 2♣ (18)",
		"Alice hand 1: bust (-10)",
		"Alice has 90",
	}, texts(out))
	assert.Equal(t, "Alice, play again? (y/n)", out.Prompt)
	assert.Nil(t, s.Round())
	for _, line := range out.Lines {
		if line.Text == "Alice hand 1: bust (-10)" {
			assert.Equal(t, -10, line.Delta)
		} else {
			assert.Zero(t, line.Delta, line.Text)
		}
	}

	out = s.Input("n")
	assert.True(t, out.Done)
	assert.Equal(t, []string{"Alice leaves the table", "Final balances", "Alice: -10"}, texts(out))
}

func TestSplitAndPlayAgain(t *testing.T) {
	t.Parallel()

	// Round 1: Alice splits eights and wins both against a dealer bust.
	// Round 2: Alice stands on 20 against 18.
	cards := "8s 6h 8d Th Ts 9c Kd" + " Ts 8h Qd Kh"
	s := stacked(t, cards, Seat{Name: "Alice", Bankroll: 100})
	s.Start()

	out := s.Input("10")
	assert.Contains(t, out.Prompt, "[sp]lit")

	out = s.Input("split")
	assert.Equal(t, []string{"Alice hand 1: 8♠ T♠ (18)", "Alice hand 2: 8♦ 9♣ (17)"}, texts(out))
	assert.Equal(t, "Alice hand 1: 8♠ T♠ (18) vs 6♥. [h]it, [s]tand, [d]ouble", out.Prompt)

	out = s.Input("s")
	assert.Equal(t, []string{"Alice hand 1 stands"}, texts(out))
	assert.Equal(t, "Alice hand 2: 8♦ 9♣ (17) vs 6♥. [h]it, [s]tand, [d]ouble", out.Prompt)

	out = s.Input("stand")
	assert.Contains(t, texts(out), "Dealer: 6♥ T♥ K♦ (26, bust)")
	assert.Contains(t, texts(out), "Alice has 120")

	out = s.Input("yes")
	assert.Equal(t, "Alice, your wager (1-120)", out.Prompt)

	out = s.Input("20")
	assert.Equal(t, "Round 2", texts(out)[0])
	out = s.Input("s")
	assert.Contains(t, texts(out), "Alice hand 1: win (+20)")

	out = s.Input("no")
	assert.True(t, out.Done)
	assert.Contains(t, texts(out), "Alice: +40")
	assert.Equal(t, 2, s.Rounds())
}

func TestInsufficientFundsMessage(t *testing.T) {
	t.Parallel()

	s := stacked(t, "5s Th 6d 7c 2h", Seat{Name: "Alice", Bankroll: 60})
	s.Start()
	out := s.Input("40")
	assert.NotContains(t, out.Prompt, "[d]ouble")

	out = s.Input("d")
	assert.Equal(t, []string{"Not enough money to double"}, texts(out))
	assert.False(t, out.Done)
}

func TestBrokePlayerIsRemoved(t *testing.T) {
	t.Parallel()

	s := stacked(t, "Ts 9c 9h 6d 8s Th",
		Seat{Name: "Alice", Bankroll: 50},
		Seat{Name: "Bob", Bankroll: 80},
	)
	s.Start()
	s.Input("50")
	out := s.Input("10")
	require.Equal(t, "Alice: T♠ 6♦ (16) vs 9♥. [h]it, [s]tand, [surr]ender", out.Prompt)

	s.Input("s")
	out = s.Input("s")
	assert.Contains(t, texts(out), "Alice is out of money")
	assert.Equal(t, "Bob, play again? (y/n)", out.Prompt)

	out = s.Input("y")
	assert.Equal(t, "Bob, your wager (1-70)", out.Prompt)
	require.Len(t, s.Playing(), 1)
	assert.Equal(t, "Bob", s.Playing()[0].Name)
	assert.Len(t, s.Roster(), 2)
}

func TestExhaustedShoeEndsSession(t *testing.T) {
	t.Parallel()

	s := stacked(t, "Ts 9h 2c 7d", Seat{Name: "Alice", Bankroll: 100})
	s.Start()
	s.Input("10")

	out := s.Input("hit")
	assert.True(t, out.Done)
	assert.Equal(t, []string{"The shoe is exhausted", "Final balances", "Alice: +0"}, texts(out))
}

func TestStartRoundFailureEndsSession(t *testing.T) {
	t.Parallel()

	s := stacked(t, "Ts 9h", Seat{Name: "Alice", Bankroll: 100})
	s.Start()
	out := s.Input("10")
	assert.True(t, out.Done)
	assert.Equal(t, "The shoe is exhausted", texts(out)[0])
}

func TestNaturalAnnounced(t *testing.T) {
	t.Parallel()

	s := stacked(t, "As 9h Kd 7c 2c", Seat{Name: "Alice", Bankroll: 100})
	s.Start()

	out := s.Input("10")
	assert.Contains(t, texts(out), "Alice: A♠ K♦ (soft 21), blackjack!")
	assert.Contains(t, texts(out), "Alice hand 1: blackjack (+15)")
	assert.Equal(t, "Alice, play again? (y/n)", out.Prompt)
}

func TestDealerPeekAnnounced(t *testing.T) {
	t.Parallel()

	settings := DefaultSettings()
	settings.Rules.DealerPeek = true
	settings.Seats = []Seat{{Name: "Alice", Bankroll: 100}}
	shoe := deck.NewStackedShoe(deck.MustParseCards("9s Ah 8d Kc"), randutil.New(1), deck.WithReshuffle(deck.ReshuffleNever))
	s := New(settings, WithShoe(shoe))
	s.Start()

	out := s.Input("10")
	assert.Contains(t, texts(out), "Dealer has blackjack")
	assert.Contains(t, texts(out), "Alice hand 1: lose (-10)")
}

func TestParseAction(t *testing.T) {
	t.Parallel()

	tests := map[string]game.Action{
		"h": game.Hit, "HIT": game.Hit, " s ": game.Stand, "stand": game.Stand,
		"d": game.Double, "double": game.Double, "sp": game.Split, "split": game.Split,
		"surr": game.Surrender, "Surrender": game.Surrender,
	}
	for input, want := range tests {
		got, err := ParseAction(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, bad := range []string{"", "x", "fold", "su"} {
		_, err := ParseAction(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseYes(t *testing.T) {
	t.Parallel()

	for _, yes := range []string{"y", "Y", "yes", "1", "true", " TRUE "} {
		assert.True(t, ParseYes(yes), yes)
	}
	for _, no := range []string{"", "n", "no", "0", "false", "maybe"} {
		assert.False(t, ParseYes(no), no)
	}
}
