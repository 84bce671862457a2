package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/game"
)

// RoundResult is one player's result for a single round
type RoundResult struct {
	Wager    int            // initial wager
	Net      int            // net bankroll change across every hand
	Outcomes []game.Outcome // one per hand played
	Doubled  bool
	Split    bool
}

// Units returns the net result in initial wagers
func (r RoundResult) Units() float64 {
	if r.Wager == 0 {
		return 0
	}
	return float64(r.Net) / float64(r.Wager)
}

// Statistics tracks simulation results in units of the initial wager
type Statistics struct {
	Rounds    int
	SumUnits  float64
	SumUnits2 float64   // sum of squares for variance
	Values    []float64 // every result, for median and percentiles

	// Hands counts settled hands, split hands separately
	Hands    int
	Outcomes [game.OutcomeCount]int
	Doubles  int
	Splits   int
	Wagered  int // total initial wagers
	Net      int // total net bankroll change
}

// Mean returns the arithmetic mean result in units per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumUnits / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumUnits2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	units := result.Units()
	s.Rounds++
	s.SumUnits += units
	s.SumUnits2 += units * units
	s.Values = append(s.Values, units)

	for _, o := range result.Outcomes {
		s.Hands++
		s.Outcomes[o]++
	}
	if result.Doubled {
		s.Doubles++
	}
	if result.Split {
		s.Splits++
	}
	s.Wagered += result.Wager
	s.Net += result.Net
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumUnits += other.SumUnits
	s.SumUnits2 += other.SumUnits2
	s.Values = append(s.Values, other.Values...)
	s.Hands += other.Hands
	for i, n := range other.Outcomes {
		s.Outcomes[i] += n
	}
	s.Doubles += other.Doubles
	s.Splits += other.Splits
	s.Wagered += other.Wagered
	s.Net += other.Net
}

// OutcomeRate returns the share of hands that ended with the outcome
func (s *Statistics) OutcomeRate(o game.Outcome) float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Outcomes[o]) / float64(s.Hands)
}

// HouseEdge returns the house's share of initial wagers
func (s *Statistics) HouseEdge() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return -float64(s.Net) / float64(s.Wagered)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// Validate checks the statistics for internal consistency
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)", len(s.Values), s.Rounds)
	}

	total := 0
	for _, n := range s.Outcomes {
		total += n
	}
	if total != s.Hands {
		return fmt.Errorf("outcome total (%d) does not match hands count (%d)", total, s.Hands)
	}
	if s.Hands < s.Rounds {
		return fmt.Errorf("hands (%d) fewer than rounds (%d)", s.Hands, s.Rounds)
	}
	if s.Splits > s.Rounds || s.Doubles > s.Hands {
		return fmt.Errorf("splits (%d) or doubles (%d) exceed what was played", s.Splits, s.Doubles)
	}
	return nil
}
