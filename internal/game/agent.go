package game

import (
	"fmt"
	"slices"

	"github.com/lox/blackjack/internal/deck"
)

// HandView is the read-only state an Agent sees when deciding
type HandView struct {
	PlayerID     string
	Player       string
	HandIndex    int
	Cards        []deck.Card
	Value        int
	Soft         bool
	Wager        int
	Bankroll     int
	DealerUpcard deck.Card
}

// Agent represents anything that chooses actions for a player's hand.
// Agents receive immutable state and return a decision; the round applies it.
type Agent interface {
	Decide(view HandView, legal []Action) Action
}

// AgentFunc adapts a function to the Agent interface
type AgentFunc func(view HandView, legal []Action) Action

// Decide calls f
func (f AgentFunc) Decide(view HandView, legal []Action) Action {
	return f(view, legal)
}

// DealerMimicAgent plays a hand with the dealer's own policy: hit below 17,
// otherwise stand. It never doubles, splits or surrenders.
type DealerMimicAgent struct {
	HitSoft17 bool
}

// Decide implements Agent
func (a DealerMimicAgent) Decide(view HandView, legal []Action) Action {
	h := NewHand(view.Cards...)
	if DealerShouldHit(h, a.HitSoft17) && slices.Contains(legal, Hit) {
		return Hit
	}
	return Stand
}

// View returns the decision state for a hand
func (r *Round) View(playerID string, handIndex int) (HandView, error) {
	p, err := r.Player(playerID)
	if err != nil {
		return HandView{}, err
	}
	ph, err := p.Hand(handIndex)
	if err != nil {
		return HandView{}, err
	}
	return HandView{
		PlayerID:     p.ID,
		Player:       p.Name,
		HandIndex:    handIndex,
		Cards:        ph.hand.Cards(),
		Value:        ph.Value(),
		Soft:         ph.hand.IsSoft(),
		Wager:        ph.wager,
		Bankroll:     p.bankroll,
		DealerUpcard: r.DealerUpcard(),
	}, nil
}

// PlayAgents drives every remaining player turn through agents keyed by
// player ID, using fallback for players without one.
func (r *Round) PlayAgents(agents map[string]Agent, fallback Agent) error {
	for {
		playerID, idx, ok := r.Turn()
		if !ok {
			return nil
		}

		agent := agents[playerID]
		if agent == nil {
			agent = fallback
		}
		if agent == nil {
			return fmt.Errorf("no agent for player %s", playerID)
		}

		view, err := r.View(playerID, idx)
		if err != nil {
			return err
		}
		legal := r.Legal(playerID, idx)
		action := agent.Decide(view, legal)
		if !slices.Contains(legal, action) {
			return fmt.Errorf("agent for %s chose illegal action %s", view.Player, action)
		}
		if _, err := r.ApplyAction(playerID, idx, action); err != nil {
			return err
		}
	}
}
