package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// CardsPerDeck is the size of a standard deck.
const CardsPerDeck = 52

// ErrShoeExhausted is returned when a card is requested from an empty shoe
// that is not allowed to reshuffle.
var ErrShoeExhausted = errors.New("deck: shoe exhausted")

// ReshufflePolicy decides what happens when the shoe runs out of cards.
type ReshufflePolicy int

const (
	// ReshuffleAuto rebuilds and reshuffles a full set of decks on demand.
	ReshuffleAuto ReshufflePolicy = iota
	// ReshuffleNever reports ErrShoeExhausted once the shoe is empty.
	ReshuffleNever
)

func (p ReshufflePolicy) String() string {
	switch p {
	case ReshuffleAuto:
		return "auto"
	case ReshuffleNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseReshufflePolicy parses "auto" or "never".
func ParseReshufflePolicy(s string) (ReshufflePolicy, error) {
	switch s {
	case "auto":
		return ReshuffleAuto, nil
	case "never":
		return ReshuffleNever, nil
	default:
		return 0, fmt.Errorf("invalid reshuffle policy %q", s)
	}
}

// Shoe holds one or more standard decks and deals them without replacement.
// A Shoe is not safe for concurrent use; a round owns it exclusively.
type Shoe struct {
	decks    int
	cards    []Card
	next     int
	policy   ReshufflePolicy
	rng      *rand.Rand
	shuffles int
}

// ShoeOption configures a Shoe during creation.
type ShoeOption func(*Shoe)

// WithReshuffle sets the policy applied when the shoe runs dry.
// Default is ReshuffleAuto.
func WithReshuffle(policy ReshufflePolicy) ShoeOption {
	return func(s *Shoe) {
		s.policy = policy
	}
}

// NewShoe creates a shoe of n standard decks shuffled with rng.
// The RNG is required so that callers choose between a deterministic source
// (tests, simulations) and an unpredictable one (live play).
func NewShoe(decks int, rng *rand.Rand, opts ...ShoeOption) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	if decks < 1 {
		panic("a shoe needs at least one deck")
	}

	s := &Shoe{
		decks: decks,
		rng:   rng,
		cards: make([]Card, 0, decks*CardsPerDeck),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.refill()
	return s
}

// NewStackedShoe creates a shoe that deals cards in exactly the given order.
// When it runs dry under ReshuffleAuto it is replaced by a single shuffled
// deck drawn from rng.
func NewStackedShoe(cards []Card, rng *rand.Rand, opts ...ShoeOption) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}

	s := &Shoe{
		decks: 1,
		rng:   rng,
		cards: append([]Card(nil), cards...),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// refill rebuilds all decks and shuffles them.
func (s *Shoe) refill() {
	s.cards = s.cards[:0]
	for range s.decks {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.Shuffle()
}

// Shuffle shuffles the remaining cards using Fisher-Yates and resets the deal
// position.
func (s *Shoe) Shuffle() {
	s.cards = s.cards[s.next:]
	s.next = 0
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
	s.shuffles++
}

// Deal removes and returns the top card.
func (s *Shoe) Deal() (Card, error) {
	if s.next >= len(s.cards) {
		if s.policy == ReshuffleNever {
			return Card{}, ErrShoeExhausted
		}
		s.next = 0
		s.refill()
	}

	card := s.cards[s.next]
	s.next++
	return card, nil
}

// CanDeal reports whether n cards can be dealt without failing.
func (s *Shoe) CanDeal(n int) bool {
	return s.policy == ReshuffleAuto || s.Remaining() >= n
}

// Remaining returns the number of cards left before the shoe runs dry
func (s *Shoe) Remaining() int {
	return len(s.cards) - s.next
}

// Decks returns the number of decks the shoe is built from
func (s *Shoe) Decks() int {
	return s.decks
}

// Policy returns the reshuffle policy
func (s *Shoe) Policy() ReshufflePolicy {
	return s.policy
}

// Shuffles returns how many times the shoe has been shuffled, including the
// initial shuffle.
func (s *Shoe) Shuffles() int {
	return s.shuffles
}
