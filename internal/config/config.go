package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// Config represents the complete blackjack configuration
type Config struct {
	Table   *TableConfig   `hcl:"table,block"`
	Log     *LogConfig     `hcl:"log,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// TableConfig contains the table rules and the limits enforced by the prompts
type TableConfig struct {
	Decks            int    `hcl:"decks,optional"`
	MinDecks         int    `hcl:"min_decks,optional"`
	MaxDecks         int    `hcl:"max_decks,optional"`
	MaxPlayers       int    `hcl:"max_players,optional"`
	MinBankroll      int    `hcl:"min_bankroll,optional"`
	Reshuffle        string `hcl:"reshuffle,optional"`
	SplitRule        string `hcl:"split_rule,optional"`
	DoubleAfterSplit string `hcl:"double_after_split,optional"`
	DealerHitsSoft17 bool   `hcl:"dealer_hits_soft_17,optional"`
	BlackjackPayout  string `hcl:"blackjack_payout,optional"`
	DealerPeek       bool   `hcl:"dealer_peek,optional"`
}

// LogConfig controls where and how much is logged
type LogConfig struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// PlayerConfig pre-seats a player so the name and bankroll prompts are skipped
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Bankroll int    `hcl:"bankroll"`
}

// Default returns the default configuration: a six deck table with no
// pre-seated players.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse parses configuration from HCL source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var config Config
	diags := gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyDefaults fills in anything the file left out
func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = &TableConfig{}
	}
	if c.Log == nil {
		c.Log = &LogConfig{}
	}

	t := c.Table
	if t.MinDecks == 0 {
		t.MinDecks = 4
	}
	if t.MaxDecks == 0 {
		t.MaxDecks = 8
	}
	if t.Decks == 0 {
		t.Decks = 6
	}
	if t.MaxPlayers == 0 {
		t.MaxPlayers = 7
	}
	if t.MinBankroll == 0 {
		t.MinBankroll = 50
	}
	if t.Reshuffle == "" {
		t.Reshuffle = deck.ReshuffleAuto.String()
	}
	if t.SplitRule == "" {
		t.SplitRule = game.SplitByValue.String()
	}
	if t.DoubleAfterSplit == "" {
		t.DoubleAfterSplit = game.DoubleFull.String()
	}
	if t.BlackjackPayout == "" {
		t.BlackjackPayout = "3:2"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "blackjack.log"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	t := c.Table
	if t.MinDecks < 1 {
		return fmt.Errorf("table: min_decks must be at least 1, got %d", t.MinDecks)
	}
	if t.MinDecks > t.MaxDecks {
		return fmt.Errorf("table: min_decks %d exceeds max_decks %d", t.MinDecks, t.MaxDecks)
	}
	if t.Decks < t.MinDecks || t.Decks > t.MaxDecks {
		return fmt.Errorf("table: decks must be between %d and %d, got %d", t.MinDecks, t.MaxDecks, t.Decks)
	}
	if t.MaxPlayers < 1 {
		return fmt.Errorf("table: max_players must be positive, got %d", t.MaxPlayers)
	}
	if t.MinBankroll < 1 {
		return fmt.Errorf("table: min_bankroll must be positive, got %d", t.MinBankroll)
	}
	if _, err := c.Rules(); err != nil {
		return fmt.Errorf("table: %w", err)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if len(c.Players) > t.MaxPlayers {
		return fmt.Errorf("%d players configured but the table seats %d", len(c.Players), t.MaxPlayers)
	}
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player name cannot be empty")
		}
		key := strings.ToLower(p.Name)
		if seen[key] {
			return fmt.Errorf("player %s: configured twice", p.Name)
		}
		seen[key] = true
		if p.Bankroll < t.MinBankroll {
			return fmt.Errorf("player %s: bankroll must be at least %d", p.Name, t.MinBankroll)
		}
	}

	return nil
}

// Rules converts the table block into engine rules
func (c *Config) Rules() (game.Rules, error) {
	t := c.Table
	rules := game.DefaultRules()
	rules.Decks = t.Decks
	rules.DealerHitsSoft17 = t.DealerHitsSoft17
	rules.DealerPeek = t.DealerPeek

	var err error
	if rules.Reshuffle, err = deck.ParseReshufflePolicy(t.Reshuffle); err != nil {
		return game.Rules{}, err
	}
	if rules.SplitRule, err = game.ParseSplitRule(t.SplitRule); err != nil {
		return game.Rules{}, err
	}
	if rules.DoubleAfterSplit, err = game.ParseDoubleAfterSplit(t.DoubleAfterSplit); err != nil {
		return game.Rules{}, err
	}
	if rules.BlackjackPayout, err = game.ParsePayout(t.BlackjackPayout); err != nil {
		return game.Rules{}, err
	}
	return rules, rules.Validate()
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
