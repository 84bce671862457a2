package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	c, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, 6, c.Table.Decks)
	assert.Equal(t, 4, c.Table.MinDecks)
	assert.Equal(t, 8, c.Table.MaxDecks)
	assert.Equal(t, 7, c.Table.MaxPlayers)
	assert.Equal(t, 50, c.Table.MinBankroll)
	assert.Equal(t, "blackjack.log", c.Log.File)
	assert.Equal(t, log.InfoLevel, c.LogLevel())
	assert.Empty(t, c.Players)

	rules, err := c.Rules()
	require.NoError(t, err)
	assert.Equal(t, game.DefaultRules(), rules)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	src := `
table {
  decks               = 4
  reshuffle           = "never"
  split_rule          = "rank"
  double_after_split  = "half"
  dealer_hits_soft_17 = true
  blackjack_payout    = "6:5"
  dealer_peek         = true
}

log {
  level = "debug"
  file  = "table.log"
}

player "Alice" {
  bankroll = 500
}

player "Bob" {
  bankroll = 75
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	rules, err := c.Rules()
	require.NoError(t, err)
	assert.Equal(t, 4, rules.Decks)
	assert.Equal(t, deck.ReshuffleNever, rules.Reshuffle)
	assert.Equal(t, game.SplitByRank, rules.SplitRule)
	assert.Equal(t, game.DoubleHalf, rules.DoubleAfterSplit)
	assert.True(t, rules.DealerHitsSoft17)
	assert.True(t, rules.DealerPeek)
	assert.Equal(t, game.Payout{Num: 6, Den: 5}, rules.BlackjackPayout)

	assert.Equal(t, log.DebugLevel, c.LogLevel())
	assert.Equal(t, "table.log", c.Log.File)

	require.Len(t, c.Players, 2)
	assert.Equal(t, PlayerConfig{Name: "Alice", Bankroll: 500}, c.Players[0])
	assert.Equal(t, "Bob", c.Players[1].Name)
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"syntax error", `table {`},
		{"unknown attribute", `table { jokers = true }`},
		{"decks out of range", `table { decks = 9 }`},
		{"bad reshuffle", `table { reshuffle = "sometimes" }`},
		{"bad split rule", `table { split_rule = "suit" }`},
		{"bad payout", `table { blackjack_payout = "3" }`},
		{"bad log level", `log { level = "loud" }`},
		{"bankroll below minimum", `player "Alice" { bankroll = 10 }`},
		{"player missing bankroll", `player "Alice" {}`},
		{"duplicate player", "player \"Alice\" { bankroll = 100 }\nplayer \"Alice\" { bankroll = 100 }"},
		{"duplicate player differing in case", "player \"alice\" { bankroll = 100 }\nplayer \"Alice\" { bankroll = 100 }"},
		{"too many players", `
table { max_players = 1 }
player "Alice" { bankroll = 100 }
player "Bob" { bankroll = 100 }
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "test.hcl")
			assert.Error(t, err)
		})
	}
}

func TestDefaultValidates(t *testing.T) {
	t.Parallel()

	require.NoError(t, Default().Validate())
}
