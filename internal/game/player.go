package game

import (
	"fmt"

	"github.com/google/uuid"
)

// MaxHands is the most hands a player can hold in one round (one split).
const MaxHands = 2

// Player is a seat at the table with a bankroll and up to two hands.
type Player struct {
	ID   string
	Name string

	bankroll int
	initial  int
	wager    int // placed for the next round, reserved but not deducted

	hands [MaxHands]PlayerHand
	count int
}

// NewPlayer creates a player with a fresh ID
func NewPlayer(name string, bankroll int) *Player {
	if bankroll < 0 {
		panic("bankroll cannot be negative")
	}
	return &Player{
		ID:       uuid.NewString(),
		Name:     name,
		bankroll: bankroll,
		initial:  bankroll,
	}
}

func (p *Player) String() string {
	return p.Name
}

// Bankroll returns the current bankroll. Wagers in play are not deducted
// until settlement.
func (p *Player) Bankroll() int {
	return p.bankroll
}

// InitialBankroll returns the bankroll the player sat down with
func (p *Player) InitialBankroll() int {
	return p.initial
}

// Net returns the running result since the player sat down
func (p *Player) Net() int {
	return p.bankroll - p.initial
}

// PlaceWager reserves amount for the next round
func (p *Player) PlaceWager(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: wager must be positive, got %d", ErrInvalidWager, amount)
	}
	if amount > p.bankroll {
		return fmt.Errorf("%w: wager %d exceeds bankroll %d", ErrInvalidWager, amount, p.bankroll)
	}
	p.wager = amount
	return nil
}

// Wager returns the wager placed for the next round
func (p *Player) Wager() int {
	return p.wager
}

// Hands returns the player's hands for the current round
func (p *Player) Hands() []*PlayerHand {
	hands := make([]*PlayerHand, p.count)
	for i := range p.count {
		hands[i] = &p.hands[i]
	}
	return hands
}

// Hand returns the hand at index i
func (p *Player) Hand(i int) (*PlayerHand, error) {
	if i < 0 || i >= p.count {
		return nil, ErrInvalidHandIndex
	}
	return &p.hands[i], nil
}

// HandCount returns the number of hands in play
func (p *Player) HandCount() int {
	return p.count
}

// HasSplit reports whether the player split this round
func (p *Player) HasSplit() bool {
	return p.count == MaxHands
}

// Exposure returns the sum of all wagers currently in play
func (p *Player) Exposure() int {
	total := 0
	for i := range p.count {
		total += p.hands[i].wager
	}
	return total
}

// canCover reports whether the bankroll can back extra more in wagers
func (p *Player) canCover(extra int) bool {
	return p.Exposure()+extra <= p.bankroll
}

// resetHands clears last round's hands and opens a single hand on the placed wager
func (p *Player) resetHands() {
	p.hands = [MaxHands]PlayerHand{}
	p.hands[0] = newPlayerHand(p.wager)
	p.count = 1
}

// openSplitHand seeds the second hand; the caller checks eligibility
func (p *Player) openSplitHand(wager int) *PlayerHand {
	p.hands[1] = newPlayerHand(wager)
	p.count = MaxHands
	return &p.hands[1]
}
