package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// actionAliases maps everything a player may type to an action
var actionAliases = map[string]game.Action{
	"h":         game.Hit,
	"hit":       game.Hit,
	"s":         game.Stand,
	"stand":     game.Stand,
	"d":         game.Double,
	"double":    game.Double,
	"sp":        game.Split,
	"split":     game.Split,
	"surr":      game.Surrender,
	"surrender": game.Surrender,
}

// actionHints are the prompt labels, with the short alias in brackets
var actionHints = map[game.Action]string{
	game.Hit:       "[h]it",
	game.Stand:     "[s]tand",
	game.Double:    "[d]ouble",
	game.Split:     "[sp]lit",
	game.Surrender: "[surr]ender",
}

// ParseAction parses a typed action such as "h", "stand" or "SP"
func ParseAction(input string) (game.Action, error) {
	a, ok := actionAliases[strings.ToLower(strings.TrimSpace(input))]
	if !ok {
		return 0, fmt.Errorf("unknown action %q", strings.TrimSpace(input))
	}
	return a, nil
}

// ParseYes reports whether the answer is affirmative: y, yes, 1 or true
func ParseYes(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes", "1", "true":
		return true
	default:
		return false
	}
}

// parseBounded parses an integer in [lo, hi]
func parseBounded(input string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", strings.TrimSpace(input))
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%d is out of range, enter %d to %d", n, lo, hi)
	}
	return n, nil
}

// parseAtLeast parses an integer no smaller than lo
func parseAtLeast(input string, lo int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", strings.TrimSpace(input))
	}
	if n < lo {
		return 0, fmt.Errorf("%d is too small, enter at least %d", n, lo)
	}
	return n, nil
}
