package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/session"
)

func TestSettingsFromConfig(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(`
table {
  decks        = 5
  max_players  = 3
  min_bankroll = 20
  split_rule   = "rank"
}

player "Alice" {
  bankroll = 100
}
`), "test.hcl")
	require.NoError(t, err)

	settings, err := settingsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 5, settings.Rules.Decks)
	assert.Equal(t, game.SplitByRank, settings.Rules.SplitRule)
	assert.Equal(t, 4, settings.MinDecks)
	assert.Equal(t, 8, settings.MaxDecks)
	assert.Equal(t, 3, settings.MaxPlayers)
	assert.Equal(t, 20, settings.MinBankroll)
	assert.False(t, settings.FixedDecks)
	assert.Equal(t, []session.Seat{{Name: "Alice", Bankroll: 100}}, settings.Seats)
}

func TestSettingsFromDefaultConfig(t *testing.T) {
	t.Parallel()

	settings, err := settingsFromConfig(config.Default())
	require.NoError(t, err)

	want := session.DefaultSettings()
	assert.Equal(t, want.Rules, settings.Rules)
	assert.Equal(t, want.MinDecks, settings.MinDecks)
	assert.Equal(t, want.MaxDecks, settings.MaxDecks)
	assert.Equal(t, want.MaxPlayers, settings.MaxPlayers)
	assert.Equal(t, want.MinBankroll, settings.MinBankroll)
	assert.Empty(t, settings.Seats)
}
