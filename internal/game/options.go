package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/roundid"
)

// RoundOption configures a Round during creation.
type RoundOption func(*roundConfig)

// roundConfig holds all configuration for starting a round.
type roundConfig struct {
	rules  Rules
	logger *log.Logger
	clock  quartz.Clock
	id     string
}

func defaultRoundConfig() *roundConfig {
	return &roundConfig{
		rules:  DefaultRules(),
		logger: log.New(io.Discard),
		clock:  quartz.NewReal(),
	}
}

// WithRules sets the table rules. Default is DefaultRules().
func WithRules(rules Rules) RoundOption {
	return func(c *roundConfig) {
		c.rules = rules
	}
}

// WithLogger sets the logger used for round events.
// Default discards all output.
func WithLogger(logger *log.Logger) RoundOption {
	return func(c *roundConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the clock used to timestamp history events.
// Tests pass a quartz mock.
func WithClock(clock quartz.Clock) RoundOption {
	return func(c *roundConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithRoundID overrides the generated round ID
func WithRoundID(id string) RoundOption {
	return func(c *roundConfig) {
		c.id = id
	}
}

func newRoundID() string {
	return roundid.New()
}
