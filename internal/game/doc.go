// Package game implements the blackjack rules engine.
//
// A Round deals from a borrowed deck.Shoe, drives each Player's hands through
// their actions in seat order, plays the dealer under a fixed policy and then
// settles every hand against the dealer's final hand.
//
// # Basic Usage
//
//	shoe := game.DefaultRules().NewShoe(randutil.NewSecure())
//	alice := game.NewPlayer("Alice", 500)
//	_ = alice.PlaceWager(20)
//
//	r, err := game.StartRound([]*game.Player{alice}, shoe)
//	for {
//	    id, idx, ok := r.Turn()
//	    if !ok {
//	        break
//	    }
//	    r.ApplyAction(id, idx, game.Stand)
//	}
//	r.PlayDealer()
//	settlement, err := r.Settle()
//
// # Deterministic Testing
//
// Tests build shoes from an explicit card order with deck.NewStackedShoe, or
// from a seeded RNG with randutil.New. History timestamps come from a
// quartz.Clock set with WithClock.
//
// # Rule Variants
//
// Rules carries every table variant: split by value or by rank, how a split
// hand may double, whether the dealer hits soft 17, the natural payout and
// whether the dealer peeks for blackjack.
package game
