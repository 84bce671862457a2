package simulator

import (
	"fmt"
	"io"

	"github.com/lox/blackjack/internal/game"
)

// Summary is the serialisable form of a Report
type Summary struct {
	Rounds     int            `json:"rounds"`
	Hands      int            `json:"hands"`
	Workers    int            `json:"workers"`
	Players    int            `json:"players"`
	Seed       int64          `json:"seed"`
	Rules      RulesSummary   `json:"rules"`
	MeanUnits  float64        `json:"mean_units"`
	StdDev     float64        `json:"std_dev"`
	CI95       [2]float64     `json:"ci95"`
	HouseEdge  float64        `json:"house_edge"`
	Wagered    int            `json:"wagered"`
	Net        int            `json:"net"`
	Doubles    int            `json:"doubles"`
	Splits     int            `json:"splits"`
	Outcomes   map[string]int `json:"outcomes"`
	DurationMS int64          `json:"duration_ms"`
}

// RulesSummary names the rules a simulation was played under
type RulesSummary struct {
	Decks            int    `json:"decks"`
	SplitRule        string `json:"split_rule"`
	DoubleAfterSplit string `json:"double_after_split"`
	DealerHitsSoft17 bool   `json:"dealer_hits_soft_17"`
	BlackjackPayout  string `json:"blackjack_payout"`
	DealerPeek       bool   `json:"dealer_peek"`
}

// Summary flattens the report for JSON output
func (r *Report) Summary() Summary {
	low, high := r.Stats.ConfidenceInterval95()
	outcomes := make(map[string]int, game.OutcomeCount)
	for o := range game.OutcomeCount {
		outcomes[game.Outcome(o).String()] = r.Stats.Outcomes[o]
	}
	return Summary{
		Rounds:  r.Rounds,
		Hands:   r.Stats.Hands,
		Workers: r.Workers,
		Players: r.Players,
		Seed:    r.Seed,
		Rules: RulesSummary{
			Decks:            r.Rules.Decks,
			SplitRule:        r.Rules.SplitRule.String(),
			DoubleAfterSplit: r.Rules.DoubleAfterSplit.String(),
			DealerHitsSoft17: r.Rules.DealerHitsSoft17,
			BlackjackPayout:  r.Rules.BlackjackPayout.String(),
			DealerPeek:       r.Rules.DealerPeek,
		},
		MeanUnits:  r.Stats.Mean(),
		StdDev:     r.Stats.StdDev(),
		CI95:       [2]float64{low, high},
		HouseEdge:  r.Stats.HouseEdge(),
		Wagered:    r.Stats.Wagered,
		Net:        r.Stats.Net,
		Doubles:    r.Stats.Doubles,
		Splits:     r.Stats.Splits,
		Outcomes:   outcomes,
		DurationMS: r.Duration.Milliseconds(),
	}
}

// PrintSummary writes a human readable summary of the report
func PrintSummary(w io.Writer, r *Report) {
	s := r.Stats
	low, high := s.ConfidenceInterval95()

	fmt.Fprintf(w, "Rounds:      %d (%d player rounds, %d hands)\n", r.Rounds, s.Rounds, s.Hands)
	fmt.Fprintf(w, "Rules:       %d decks, split by %s, double after split %s, blackjack pays %s\n",
		r.Rules.Decks, r.Rules.SplitRule, r.Rules.DoubleAfterSplit, r.Rules.BlackjackPayout)
	fmt.Fprintf(w, "Mean:        %+.4f units per round\n", s.Mean())
	fmt.Fprintf(w, "95%% CI:      [%+.4f, %+.4f]\n", low, high)
	fmt.Fprintf(w, "House edge:  %.2f%%\n", s.HouseEdge()*100)
	fmt.Fprintf(w, "Doubles:     %d\n", s.Doubles)
	fmt.Fprintf(w, "Splits:      %d\n", s.Splits)
	for o := range game.OutcomeCount {
		fmt.Fprintf(w, "%-12s %d (%.1f%%)\n", game.Outcome(o).String()+":", s.Outcomes[o], s.OutcomeRate(game.Outcome(o))*100)
	}
	fmt.Fprintf(w, "Duration:    %s\n", r.Duration)
}
