package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
)

// Phase is the stage a round is in
type Phase int

const (
	PlayerTurns Phase = iota
	DealerTurn
	Settling
	Complete
)

func (p Phase) String() string {
	return [...]string{"player_turns", "dealer_turn", "settling", "complete"}[p]
}

// Round runs one hand of blackjack for every seated player against the
// dealer: the initial deal, player turns in seat order, dealer play and
// settlement. A Round is driven synchronously by a single caller.
type Round struct {
	ID string

	rules   Rules
	shoe    *deck.Shoe
	players []*Player
	dealer  Hand
	phase   Phase

	seat    int // index of the acting player
	handIdx int // index of the acting hand

	logger  *log.Logger
	clock   quartz.Clock
	history []Event
}

// StartRound deals a new round. Every player must have placed a wager.
// The shoe is borrowed for the life of the round and carries over to the
// next one.
func StartRound(players []*Player, shoe *deck.Shoe, opts ...RoundOption) (*Round, error) {
	cfg := defaultRoundConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if shoe == nil {
		return nil, errors.New("game: shoe is required")
	}
	if len(players) == 0 {
		return nil, errors.New("game: at least one player is required")
	}
	for _, p := range players {
		if p.wager <= 0 || p.wager > p.bankroll {
			return nil, fmt.Errorf("%w: %s has wager %d with bankroll %d", ErrInvalidWager, p.Name, p.wager, p.bankroll)
		}
	}

	need := 2 * (len(players) + 1)
	if !shoe.CanDeal(need) {
		return nil, fmt.Errorf("start round: need %d cards, have %d: %w", need, shoe.Remaining(), deck.ErrShoeExhausted)
	}

	id := cfg.id
	if id == "" {
		id = newRoundID()
	}

	r := &Round{
		ID:      id,
		rules:   cfg.rules,
		shoe:    shoe,
		players: players,
		logger:  cfg.logger.WithPrefix("round").With("round", id),
		clock:   cfg.clock,
	}

	for _, p := range players {
		p.resetHands()
	}
	if err := r.dealInitial(); err != nil {
		return nil, err
	}

	r.logger.Debug("Dealt initial cards", "players", len(players), "remaining", shoe.Remaining())

	if r.rules.DealerPeek && r.dealer.IsNatural() {
		r.record(Event{Type: EventPeek, Cards: r.dealer.Cards(), Value: 21})
		r.logger.Info("Dealer has blackjack, closing all hands")
		for _, p := range players {
			if p.hands[0].state == Active {
				p.hands[0].state = Stood
			}
		}
	}

	r.advance()
	return r, nil
}

// dealInitial deals two passes: one card to each player then the dealer,
// twice.
func (r *Round) dealInitial() error {
	for range 2 {
		for _, p := range r.players {
			c, err := r.shoe.Deal()
			if err != nil {
				return fmt.Errorf("deal to %s: %w", p.Name, err)
			}
			p.hands[0].add(c)
		}
		c, err := r.shoe.Deal()
		if err != nil {
			return fmt.Errorf("deal to dealer: %w", err)
		}
		r.dealer.Add(c)
	}

	for _, p := range r.players {
		r.record(Event{Type: EventDeal, PlayerID: p.ID, Player: p.Name, Cards: p.hands[0].hand.Cards(), Value: p.hands[0].Value()})
	}
	r.record(Event{Type: EventDeal, Cards: r.dealer.Cards()[:1]})
	return nil
}

// Phase returns the current phase
func (r *Round) Phase() Phase {
	return r.phase
}

// Rules returns the rules the round is played under
func (r *Round) Rules() Rules {
	return r.rules
}

// Players returns the seated players in turn order
func (r *Round) Players() []*Player {
	return r.players
}

// Player looks up a seated player by ID
func (r *Round) Player(id string) (*Player, error) {
	for _, p := range r.players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrUnknownPlayer
}

// Dealer returns a copy of the dealer's hand. Before the dealer turn the
// hole card is included, so shells should show only DealerUpcard.
func (r *Round) Dealer() Hand {
	return r.dealer.clone()
}

// DealerUpcard returns the dealer's face up card
func (r *Round) DealerUpcard() deck.Card {
	return r.dealer.Card(0)
}

// Turn reports which player and hand must act next
func (r *Round) Turn() (playerID string, handIndex int, ok bool) {
	if r.phase != PlayerTurns {
		return "", 0, false
	}
	return r.players[r.seat].ID, r.handIdx, true
}

// advance moves the turn to the next active hand, or to the dealer when
// every hand is resolved.
func (r *Round) advance() {
	for r.seat < len(r.players) {
		p := r.players[r.seat]
		for r.handIdx < p.count {
			if p.hands[r.handIdx].state == Active {
				return
			}
			r.handIdx++
		}
		r.seat++
		r.handIdx = 0
	}
	r.phase = DealerTurn
}

// locate resolves a player and hand for an action, enforcing turn order
func (r *Round) locate(playerID string, handIndex int, a Action) (*Player, *PlayerHand, error) {
	p, err := r.Player(playerID)
	if err != nil {
		return nil, nil, &ActionError{Action: a, Reason: ErrUnknownPlayer, Detail: playerID}
	}
	ph, err := p.Hand(handIndex)
	if err != nil {
		return p, nil, &ActionError{Action: a, Reason: ErrInvalidHandIndex, Detail: fmt.Sprintf("%s has %d hand(s)", p.Name, p.count)}
	}
	if r.phase != PlayerTurns {
		return p, ph, notEligible(a, "round is not accepting player actions")
	}
	if r.players[r.seat] != p || r.handIdx != handIndex {
		return p, ph, notEligible(a, "out of turn")
	}
	return p, ph, nil
}

// check validates an action against the hand without changing anything
func (r *Round) check(p *Player, ph *PlayerHand, a Action) error {
	if ph.state != Active {
		return notEligible(a, "hand is "+ph.state.String())
	}

	switch a {
	case Hit, Stand:
		return nil

	case Double:
		if ph.hand.Len() != 2 {
			return notEligible(a, "double requires exactly two cards")
		}
		if ph.split && r.rules.DoubleAfterSplit == DoubleNone {
			return notEligible(a, "cannot double after split")
		}
		if !p.canCover(r.doubleCost(ph)) {
			return &ActionError{Action: a, Reason: ErrInsufficientFunds}
		}
		return nil

	case Split:
		if ph.hand.Len() != 2 {
			return notEligible(a, "split requires exactly two cards")
		}
		if p.HasSplit() {
			return notEligible(a, "hand already split")
		}
		if !r.rules.SplitRule.Pair(ph.hand.Card(0), ph.hand.Card(1)) {
			return notEligible(a, "cards do not form a pair")
		}
		if !p.canCover(ph.wager) {
			return &ActionError{Action: a, Reason: ErrInsufficientFunds}
		}
		return nil

	case Surrender:
		if ph.hand.Len() != 2 {
			return notEligible(a, "surrender requires exactly two cards")
		}
		if p.HasSplit() {
			return notEligible(a, "cannot surrender after split")
		}
		return nil

	default:
		return notEligible(a, "unknown action")
	}
}

// doubleCost is the extra wager a double puts at risk
func (r *Round) doubleCost(ph *PlayerHand) int {
	if ph.split && r.rules.DoubleAfterSplit == DoubleHalf {
		return ph.wager / 2
	}
	return ph.wager
}

// Legal returns the actions currently allowed on the hand. It is empty when
// it is not that hand's turn.
func (r *Round) Legal(playerID string, handIndex int) []Action {
	p, ph, err := r.locate(playerID, handIndex, Stand)
	if err != nil {
		return nil
	}
	var legal []Action
	for _, a := range Actions {
		if r.check(p, ph, a) == nil {
			legal = append(legal, a)
		}
	}
	return legal
}

// ApplyAction performs a player action on one of their hands and returns
// the resulting state of that hand. Rejected actions return an
// *ActionError and leave the round untouched. A shoe that cannot supply
// the needed cards yields an error wrapping deck.ErrShoeExhausted.
func (r *Round) ApplyAction(playerID string, handIndex int, a Action) (HandState, error) {
	p, ph, err := r.locate(playerID, handIndex, a)
	if err != nil {
		if ph != nil {
			return ph.state, err
		}
		return Active, err
	}
	if err := r.check(p, ph, a); err != nil {
		return ph.state, err
	}

	var need int
	switch a {
	case Hit, Double:
		need = 1
	case Split:
		need = 2
	}
	if need > 0 && !r.shoe.CanDeal(need) {
		return ph.state, fmt.Errorf("%s: %w", a, deck.ErrShoeExhausted)
	}

	logger := r.logger.With("player", p.Name, "hand", handIndex, "action", a)

	switch a {
	case Hit:
		c, err := r.shoe.Deal()
		if err != nil {
			return ph.state, fmt.Errorf("hit: %w", err)
		}
		ph.add(c)
		r.record(Event{Type: EventAction, PlayerID: p.ID, Player: p.Name, HandIndex: handIndex, Action: a, Cards: []deck.Card{c}, Value: ph.Value()})

	case Stand:
		ph.state = Stood
		r.record(Event{Type: EventAction, PlayerID: p.ID, Player: p.Name, HandIndex: handIndex, Action: a, Value: ph.Value()})

	case Double:
		c, err := r.shoe.Deal()
		if err != nil {
			return ph.state, fmt.Errorf("double: %w", err)
		}
		ph.wager += r.doubleCost(ph)
		ph.doubled = true
		ph.add(c)
		if !ph.hand.IsBust() {
			ph.state = Doubled
		}
		r.record(Event{Type: EventAction, PlayerID: p.ID, Player: p.Name, HandIndex: handIndex, Action: a, Cards: []deck.Card{c}, Value: ph.Value()})

	case Split:
		first, err := r.shoe.Deal()
		if err != nil {
			return ph.state, fmt.Errorf("split: %w", err)
		}
		second, err := r.shoe.Deal()
		if err != nil {
			return ph.state, fmt.Errorf("split: %w", err)
		}
		moved := ph.hand.removeLast()
		other := p.openSplitHand(ph.wager)
		ph.split = true
		other.split = true
		other.hand.Add(moved)
		ph.add(first)
		other.add(second)
		r.record(Event{Type: EventAction, PlayerID: p.ID, Player: p.Name, HandIndex: handIndex, Action: a, Cards: []deck.Card{first, second}, Value: ph.Value()})

	case Surrender:
		ph.surrendered = true
		ph.state = Surrendered
		r.record(Event{Type: EventAction, PlayerID: p.ID, Player: p.Name, HandIndex: handIndex, Action: a, Value: ph.Value()})
	}

	logger.Debug("Applied action", "state", ph.state, "value", ph.Value(), "wager", ph.wager)

	if ph.state.IsTerminal() {
		r.advance()
	}
	return ph.state, nil
}

// PlayDealer plays out the dealer's hand under the fixed dealer policy.
// It may only be called once every player hand is resolved.
func (r *Round) PlayDealer() error {
	if r.phase != DealerTurn {
		return fmt.Errorf("play dealer during %s: %w", r.phase, ErrWrongPhase)
	}

	for DealerShouldHit(r.dealer, r.rules.DealerHitsSoft17) {
		c, err := r.shoe.Deal()
		if err != nil {
			return fmt.Errorf("dealer draw: %w", err)
		}
		r.dealer.Add(c)
		r.record(Event{Type: EventDealerDraw, Cards: []deck.Card{c}, Value: r.dealer.Value()})
	}

	r.record(Event{Type: EventDealerStand, Cards: r.dealer.Cards(), Value: r.dealer.Value()})
	r.logger.Debug("Dealer finished", "hand", r.dealer.String())
	r.phase = Settling
	return nil
}

// DealerShouldHit is the fixed dealer policy: draw below 17, and on a soft
// 17 when hitSoft17 is set.
func DealerShouldHit(h Hand, hitSoft17 bool) bool {
	v := h.Value()
	switch {
	case v == Bust:
		return false
	case v < 17:
		return true
	case v == 17:
		return hitSoft17 && h.IsSoft()
	default:
		return false
	}
}

// Settle pays out every hand against the dealer's final hand and updates
// bankrolls. It may be called exactly once, after PlayDealer.
func (r *Round) Settle() (Settlement, error) {
	if r.phase != Settling {
		return Settlement{}, fmt.Errorf("settle during %s: %w", r.phase, ErrWrongPhase)
	}

	s := Settle(r.players, r.dealer, r.rules)
	for _, res := range s.Results {
		r.record(Event{Type: EventSettle, PlayerID: res.PlayerID, Player: res.Player, HandIndex: res.HandIndex, Value: res.Value, Outcome: res.Outcome, Delta: res.Delta})
		r.logger.Info("Settled hand", "player", res.Player, "hand", res.HandIndex, "outcome", res.Outcome, "delta", res.Delta)
	}
	r.phase = Complete
	return s, nil
}
