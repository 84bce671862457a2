package game

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// SplitRule decides which pairs may be split.
type SplitRule int

const (
	// SplitByValue allows any two cards of equal blackjack value (T+K).
	SplitByValue SplitRule = iota
	// SplitByRank only allows identical ranks (T+T).
	SplitByRank
)

func (r SplitRule) String() string {
	switch r {
	case SplitByValue:
		return "value"
	case SplitByRank:
		return "rank"
	default:
		return "unknown"
	}
}

// ParseSplitRule parses "value" or "rank".
func ParseSplitRule(s string) (SplitRule, error) {
	switch s {
	case "value":
		return SplitByValue, nil
	case "rank":
		return SplitByRank, nil
	default:
		return 0, fmt.Errorf("invalid split rule %q", s)
	}
}

// Pair reports whether two cards can be split under the rule.
func (r SplitRule) Pair(a, b deck.Card) bool {
	if r == SplitByRank {
		return a.Rank == b.Rank
	}
	return a.Points() == b.Points()
}

// DoubleAfterSplit decides whether and how a split hand may double.
type DoubleAfterSplit int

const (
	// DoubleFull doubles the split hand's own wager.
	DoubleFull DoubleAfterSplit = iota
	// DoubleHalf adds half of the split hand's wager.
	DoubleHalf
	// DoubleNone forbids doubling once a player has split.
	DoubleNone
)

func (d DoubleAfterSplit) String() string {
	switch d {
	case DoubleFull:
		return "full"
	case DoubleHalf:
		return "half"
	case DoubleNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseDoubleAfterSplit parses "full", "half" or "none".
func ParseDoubleAfterSplit(s string) (DoubleAfterSplit, error) {
	switch s {
	case "full":
		return DoubleFull, nil
	case "half":
		return DoubleHalf, nil
	case "none":
		return DoubleNone, nil
	default:
		return 0, fmt.Errorf("invalid double after split rule %q", s)
	}
}

// Payout is the ratio paid on a natural, e.g. 3:2.
type Payout struct {
	Num int
	Den int
}

// Apply returns the winnings for a natural on the given wager, rounded down.
func (p Payout) Apply(wager int) int {
	return wager * p.Num / p.Den
}

func (p Payout) String() string {
	return fmt.Sprintf("%d:%d", p.Num, p.Den)
}

// ParsePayout parses a ratio such as "3:2" or "6:5".
func ParsePayout(s string) (Payout, error) {
	num, den, ok := strings.Cut(s, ":")
	if !ok {
		return Payout{}, fmt.Errorf("invalid payout %q: expected N:D", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return Payout{}, fmt.Errorf("invalid payout %q: %w", s, err)
	}
	d, err := strconv.Atoi(strings.TrimSpace(den))
	if err != nil {
		return Payout{}, fmt.Errorf("invalid payout %q: %w", s, err)
	}
	if n <= 0 || d <= 0 {
		return Payout{}, fmt.Errorf("invalid payout %q: terms must be positive", s)
	}
	return Payout{Num: n, Den: d}, nil
}

// Rules is the table configuration a round is played under.
type Rules struct {
	Decks            int
	Reshuffle        deck.ReshufflePolicy
	SplitRule        SplitRule
	DoubleAfterSplit DoubleAfterSplit
	DealerHitsSoft17 bool
	BlackjackPayout  Payout
	DealerPeek       bool
}

// DefaultRules returns the default table rules: six decks, automatic
// reshuffle, split by value, full double after split, dealer stands on all
// 17s, naturals pay 3:2 and no dealer peek.
func DefaultRules() Rules {
	return Rules{
		Decks:            6,
		Reshuffle:        deck.ReshuffleAuto,
		SplitRule:        SplitByValue,
		DoubleAfterSplit: DoubleFull,
		DealerHitsSoft17: false,
		BlackjackPayout:  Payout{Num: 3, Den: 2},
		DealerPeek:       false,
	}
}

// Validate checks the rules for internal consistency
func (r Rules) Validate() error {
	if r.Decks < 1 {
		return fmt.Errorf("decks must be at least 1, got %d", r.Decks)
	}
	if r.BlackjackPayout.Num <= 0 || r.BlackjackPayout.Den <= 0 {
		return fmt.Errorf("invalid blackjack payout %s", r.BlackjackPayout)
	}
	return nil
}

// NewShoe builds a shoe with the configured deck count and reshuffle policy
func (r Rules) NewShoe(rng *rand.Rand) *deck.Shoe {
	return deck.NewShoe(r.Decks, rng, deck.WithReshuffle(r.Reshuffle))
}
