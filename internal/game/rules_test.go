package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

func TestDefaultRules(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	require.NoError(t, rules.Validate())
	assert.Equal(t, 6, rules.Decks)
	assert.Equal(t, deck.ReshuffleAuto, rules.Reshuffle)
	assert.Equal(t, SplitByValue, rules.SplitRule)
	assert.Equal(t, DoubleFull, rules.DoubleAfterSplit)
	assert.False(t, rules.DealerHitsSoft17)
	assert.False(t, rules.DealerPeek)
	assert.Equal(t, "3:2", rules.BlackjackPayout.String())
}

func TestRulesValidate(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	rules.Decks = 0
	assert.Error(t, rules.Validate())

	rules = DefaultRules()
	rules.BlackjackPayout = Payout{Num: 3, Den: 0}
	assert.Error(t, rules.Validate())
}

func TestRulesNewShoe(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	rules.Decks = 2
	rules.Reshuffle = deck.ReshuffleNever
	shoe := rules.NewShoe(randutil.New(3))
	assert.Equal(t, 2*deck.CardsPerDeck, shoe.Remaining())
	assert.Equal(t, deck.ReshuffleNever, shoe.Policy())
}

func TestSplitRulePair(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b  string
		rule  SplitRule
		split bool
	}{
		{"Ts", "Kd", SplitByValue, true},
		{"Ts", "Kd", SplitByRank, false},
		{"Ts", "Td", SplitByRank, true},
		{"8s", "8d", SplitByValue, true},
		{"As", "Ad", SplitByRank, true},
		{"9s", "Td", SplitByValue, false},
	}

	for _, tt := range tests {
		a, b := cards(tt.a)[0], cards(tt.b)[0]
		assert.Equal(t, tt.split, tt.rule.Pair(a, b), "%s %s under %s", tt.a, tt.b, tt.rule)
	}
}

func TestParseRuleNames(t *testing.T) {
	t.Parallel()

	sr, err := ParseSplitRule("rank")
	require.NoError(t, err)
	assert.Equal(t, SplitByRank, sr)
	_, err = ParseSplitRule("suit")
	assert.Error(t, err)

	das, err := ParseDoubleAfterSplit("half")
	require.NoError(t, err)
	assert.Equal(t, DoubleHalf, das)
	assert.Equal(t, "none", DoubleNone.String())
	_, err = ParseDoubleAfterSplit("twice")
	assert.Error(t, err)
}

func TestParsePayout(t *testing.T) {
	t.Parallel()

	p, err := ParsePayout("6:5")
	require.NoError(t, err)
	assert.Equal(t, Payout{Num: 6, Den: 5}, p)
	assert.Equal(t, 12, p.Apply(10))

	for _, bad := range []string{"3", "3:0", "a:2", "-3:2", ""} {
		_, err := ParsePayout(bad)
		assert.Error(t, err, bad)
	}
}
