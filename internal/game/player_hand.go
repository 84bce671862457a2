package game

import "github.com/lox/blackjack/internal/deck"

// PlayerHand is a hand with a wager attached; it is the unit of settlement.
type PlayerHand struct {
	hand        Hand
	wager       int
	state       HandState
	doubled     bool
	surrendered bool
	split       bool // one of a split pair
	settled     bool
}

func newPlayerHand(wager int, cards ...deck.Card) PlayerHand {
	return PlayerHand{hand: NewHand(cards...), wager: wager}
}

// Hand returns a copy of the underlying hand
func (ph *PlayerHand) Hand() Hand {
	return ph.hand.clone()
}

// Cards returns the cards in the hand
func (ph *PlayerHand) Cards() []deck.Card {
	return ph.hand.Cards()
}

// Value returns the hand value or Bust
func (ph *PlayerHand) Value() int {
	return ph.hand.Value()
}

// Wager returns the amount riding on the hand, including any double
func (ph *PlayerHand) Wager() int {
	return ph.wager
}

// State returns the lifecycle state
func (ph *PlayerHand) State() HandState {
	return ph.state
}

// Doubled reports whether the hand was doubled
func (ph *PlayerHand) Doubled() bool {
	return ph.doubled
}

// Surrendered reports whether the hand was surrendered
func (ph *PlayerHand) Surrendered() bool {
	return ph.surrendered
}

// IsSplit reports whether the hand is one half of a split pair
func (ph *PlayerHand) IsSplit() bool {
	return ph.split
}

// Settled reports whether the hand has been paid out
func (ph *PlayerHand) Settled() bool {
	return ph.settled
}

// IsNatural reports whether the hand qualifies for the blackjack premium.
// A two card 21 made after a split is not a natural.
func (ph *PlayerHand) IsNatural() bool {
	return !ph.split && ph.hand.IsNatural()
}

// add deals a card into the hand and resolves bust or 21
func (ph *PlayerHand) add(c deck.Card) {
	ph.hand.Add(c)
	switch {
	case ph.hand.IsBust():
		ph.state = Busted
	case ph.hand.Value() == 21 && ph.state == Active:
		ph.state = Stood
	}
}
