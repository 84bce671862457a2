package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// EventType identifies what happened in a round
type EventType int

const (
	EventDeal EventType = iota
	EventPeek
	EventAction
	EventDealerDraw
	EventDealerStand
	EventSettle
)

func (t EventType) String() string {
	return [...]string{"deal", "peek", "action", "dealer_draw", "dealer_stand", "settle"}[t]
}

// Event is one entry in a round's history
type Event struct {
	At        time.Time
	Type      EventType
	PlayerID  string
	Player    string
	HandIndex int
	Action    Action
	Cards     []deck.Card
	Value     int
	Outcome   Outcome
	Delta     int
}

// String renders the event as a single log line
func (e Event) String() string {
	cards := make([]string, len(e.Cards))
	for i, c := range e.Cards {
		cards[i] = c.String()
	}

	switch e.Type {
	case EventDeal:
		if e.Player == "" {
			return fmt.Sprintf("dealer dealt %s", strings.Join(cards, " "))
		}
		return fmt.Sprintf("%s dealt %s", e.Player, strings.Join(cards, " "))
	case EventPeek:
		return "dealer has blackjack"
	case EventAction:
		if len(cards) > 0 {
			return fmt.Sprintf("%s hand %d: %s, draws %s", e.Player, e.HandIndex+1, e.Action, strings.Join(cards, " "))
		}
		return fmt.Sprintf("%s hand %d: %s", e.Player, e.HandIndex+1, e.Action)
	case EventDealerDraw:
		return fmt.Sprintf("dealer draws %s", strings.Join(cards, " "))
	case EventDealerStand:
		if e.Value == Bust {
			return "dealer busts"
		}
		return fmt.Sprintf("dealer stands on %d", e.Value)
	case EventSettle:
		return fmt.Sprintf("%s hand %d: %s (%+d)", e.Player, e.HandIndex+1, e.Outcome, e.Delta)
	default:
		return e.Type.String()
	}
}

func (r *Round) record(e Event) {
	e.At = r.clock.Now("round", "history")
	r.history = append(r.history, e)
}

// History returns the events recorded so far
func (r *Round) History() []Event {
	return append([]Event(nil), r.history...)
}
