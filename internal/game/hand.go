package game

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Bust is the value reported for a hand with no total of 21 or less.
const Bust = -1

// Hand is an ordered set of cards with a derived blackjack value.
// The zero value is an empty hand.
type Hand struct {
	cards []deck.Card
	total int // best total, may exceed 21 when bust
	soft  bool
}

// NewHand creates a hand holding the given cards
func NewHand(cards ...deck.Card) Hand {
	var h Hand
	for _, c := range cards {
		h.Add(c)
	}
	return h
}

// Add appends a card and recomputes the value
func (h *Hand) Add(c deck.Card) {
	h.cards = append(h.cards, c)
	h.evaluate()
}

// removeLast takes the last card out of the hand. Only splitting removes cards.
func (h *Hand) removeLast() deck.Card {
	c := h.cards[len(h.cards)-1]
	h.cards = h.cards[:len(h.cards)-1]
	h.evaluate()
	return c
}

// evaluate counts every Ace as 11 then downgrades Aces to 1, one at a time,
// while the total exceeds 21.
func (h *Hand) evaluate() {
	total, aces := 0, 0
	for _, c := range h.cards {
		total += c.Points()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	h.total = total
	h.soft = aces > 0
}

// Value returns the best total of 21 or less, or Bust.
func (h Hand) Value() int {
	if h.total > 21 {
		return Bust
	}
	return h.total
}

// Total returns the hard total even when bust, for display.
func (h Hand) Total() int {
	return h.total
}

// IsBust reports whether every way of counting the Aces exceeds 21
func (h Hand) IsBust() bool {
	return h.total > 21
}

// IsSoft reports whether an Ace is currently counted as 11
func (h Hand) IsSoft() bool {
	return h.soft && !h.IsBust()
}

// IsNatural reports whether the hand is exactly two cards totalling 21
func (h Hand) IsNatural() bool {
	return len(h.cards) == 2 && h.total == 21
}

// Len returns the number of cards in the hand
func (h Hand) Len() int {
	return len(h.cards)
}

// Cards returns a copy of the cards in deal order
func (h Hand) Cards() []deck.Card {
	return append([]deck.Card(nil), h.cards...)
}

// Card returns the card at position i
func (h Hand) Card(i int) deck.Card {
	return h.cards[i]
}

// String formats the hand as "A♠ K♦ (21)"
func (h Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	if h.IsBust() {
		return fmt.Sprintf("%s (%d, bust)", strings.Join(parts, " "), h.total)
	}
	if h.IsSoft() {
		return fmt.Sprintf("%s (soft %d)", strings.Join(parts, " "), h.total)
	}
	return fmt.Sprintf("%s (%d)", strings.Join(parts, " "), h.total)
}

// clone returns an independent copy of the hand
func (h Hand) clone() Hand {
	h.cards = append([]deck.Card(nil), h.cards...)
	return h
}
