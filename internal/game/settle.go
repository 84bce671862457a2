package game

// Outcome classifies a settled hand. It is derived from the hand and the
// dealer's final hand, never stored on the hand itself.
type Outcome int

const (
	OutcomeLose Outcome = iota
	OutcomeBust
	OutcomePush
	OutcomeWin
	OutcomeBlackjack
	OutcomeSurrender

	// OutcomeCount is the number of outcomes, for tables indexed by Outcome
	OutcomeCount = iota
)

func (o Outcome) String() string {
	return [...]string{"lose", "bust", "push", "win", "blackjack", "surrender"}[o]
}

// HandResult is the settlement of one PlayerHand
type HandResult struct {
	PlayerID  string
	Player    string
	HandIndex int
	Outcome   Outcome
	Wager     int
	Value     int
	Delta     int // net change to the bankroll
}

// Settlement is the result of settling every hand in a round
type Settlement struct {
	Deltas  map[string]int // player ID -> net bankroll change
	Results []HandResult
}

// SettleHand computes the outcome and net bankroll change for one hand
// against the dealer's final hand. It does not modify anything.
func SettleHand(ph *PlayerHand, dealer Hand, rules Rules) (Outcome, int) {
	w := ph.wager
	switch {
	case ph.surrendered:
		return OutcomeSurrender, -(w / 2)
	case ph.hand.IsBust():
		return OutcomeBust, -w
	case dealer.IsNatural() && !ph.IsNatural():
		return OutcomeLose, -w
	case ph.IsNatural() && !dealer.IsNatural():
		return OutcomeBlackjack, rules.BlackjackPayout.Apply(w)
	case dealer.IsBust():
		return OutcomeWin, w
	}

	pv, dv := ph.hand.Value(), dealer.Value()
	switch {
	case pv > dv:
		return OutcomeWin, w
	case pv == dv:
		return OutcomePush, 0
	default:
		return OutcomeLose, -w
	}
}

// Settle pays out every unsettled hand of every player against the dealer
// hand and applies the result to bankrolls. Hands already settled are
// skipped so no hand is ever paid twice.
func Settle(players []*Player, dealer Hand, rules Rules) Settlement {
	s := Settlement{Deltas: make(map[string]int, len(players))}
	for _, p := range players {
		s.Deltas[p.ID] = 0
		for i := range p.count {
			ph := &p.hands[i]
			if ph.settled {
				continue
			}
			outcome, delta := SettleHand(ph, dealer, rules)
			ph.settled = true
			p.bankroll += delta
			s.Deltas[p.ID] += delta
			s.Results = append(s.Results, HandResult{
				PlayerID:  p.ID,
				Player:    p.Name,
				HandIndex: i,
				Outcome:   outcome,
				Wager:     ph.wager,
				Value:     ph.hand.Value(),
				Delta:     delta,
			})
		}
		p.wager = 0
	}
	return s
}
