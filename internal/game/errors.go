package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientFunds means the bankroll cannot cover the extra wager.
	ErrInsufficientFunds = errors.New("game: insufficient funds")

	// ErrNotEligible means the action is not legal for the hand right now.
	ErrNotEligible = errors.New("game: action not eligible")

	// ErrInvalidHandIndex means the player has no hand at that index.
	ErrInvalidHandIndex = errors.New("game: invalid hand index")

	// ErrUnknownPlayer means the player is not seated in the round.
	ErrUnknownPlayer = errors.New("game: unknown player")

	// ErrInvalidWager is returned for wagers that are not positive or exceed the bankroll.
	ErrInvalidWager = errors.New("game: invalid wager")

	// ErrWrongPhase is returned when a round operation is called out of order.
	ErrWrongPhase = errors.New("game: wrong round phase")
)

// ActionError describes why an action was rejected. A rejected action never
// changes engine state, so callers can simply ask again.
type ActionError struct {
	Action Action
	Reason error
	Detail string
}

func (e *ActionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("cannot %s: %v", e.Action, e.Reason)
	}
	return fmt.Sprintf("cannot %s: %v: %s", e.Action, e.Reason, e.Detail)
}

func (e *ActionError) Unwrap() error {
	return e.Reason
}

func notEligible(a Action, detail string) *ActionError {
	return &ActionError{Action: a, Reason: ErrNotEligible, Detail: detail}
}
