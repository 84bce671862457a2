package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// Config holds configuration for running simulations. Rounds is the total
// across all workers, each of which seats Players at its own table and
// places a flat Wager every round. Agent defaults to mirroring the dealer.
type Config struct {
	Rounds  int
	Workers int
	Players int
	Wager   int
	Seed    int64
	Rules   game.Rules
	Agent   game.Agent
	Logger  *log.Logger
	Clock   quartz.Clock
}

// Report is the outcome of a simulation run
type Report struct {
	Stats    *statistics.Statistics
	Rounds   int
	Workers  int
	Players  int
	Seed     int64
	Rules    game.Rules
	Duration time.Duration
}

// Simulator runs automated blackjack rounds
type Simulator struct {
	config Config
	logger *log.Logger
	clock  quartz.Clock
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Players < 1 {
		config.Players = 1
	}
	if config.Wager < 1 {
		config.Wager = 10
	}
	if config.Rules.Decks == 0 {
		config.Rules = game.DefaultRules()
	}
	// Simulated shoes are endless
	config.Rules.Reshuffle = deck.ReshuffleAuto
	if config.Agent == nil {
		config.Agent = game.DealerMimicAgent{HitSoft17: config.Rules.DealerHitsSoft17}
	}

	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := config.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	return &Simulator{
		config: config,
		logger: logger.WithPrefix("simulator"),
		clock:  clock,
	}
}

// Run plays every round across the workers and merges their statistics.
// Results are deterministic for a given seed and worker count.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if s.config.Rounds < 1 {
		return nil, errors.New("simulator: rounds must be positive")
	}
	if err := s.config.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("simulator: %w", err)
	}

	start := s.clock.Now("simulator", "start")
	s.logger.Info("Starting simulation", "rounds", s.config.Rounds, "workers", s.config.Workers, "players", s.config.Players, "seed", s.config.Seed)

	results := make([]*statistics.Statistics, s.config.Workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range s.config.Workers {
		rounds := s.config.Rounds / s.config.Workers
		if w < s.config.Rounds%s.config.Workers {
			rounds++
		}
		g.Go(func() error {
			stats, err := s.runWorker(ctx, w, rounds)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &statistics.Statistics{}
	for _, stats := range results {
		merged.Merge(stats)
	}
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	report := &Report{
		Stats:    merged,
		Rounds:   s.config.Rounds,
		Workers:  s.config.Workers,
		Players:  s.config.Players,
		Seed:     s.config.Seed,
		Rules:    s.config.Rules,
		Duration: s.clock.Since(start, "simulator", "finish"),
	}
	s.logger.Info("Simulation finished", "mean", merged.Mean(), "house_edge", merged.HouseEdge(), "duration", report.Duration)
	return report, nil
}

// runWorker plays rounds on a table of its own with an independently
// seeded shoe.
func (s *Simulator) runWorker(ctx context.Context, worker, rounds int) (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}
	rng := randutil.New(s.config.Seed + int64(worker))
	shoe := s.config.Rules.NewShoe(rng)
	logger := s.logger.With("worker", worker)

	// A split with both hands doubled risks four wagers
	bankroll := s.config.Wager * 4 * (rounds + 1)
	players := make([]*game.Player, s.config.Players)
	for i := range players {
		players[i] = game.NewPlayer(fmt.Sprintf("Seat%d", i+1), bankroll)
	}

	for round := range rounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		results, err := s.playRound(shoe, players)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round+1, err)
		}
		for _, r := range results {
			stats.Add(r)
		}
	}

	logger.Debug("Worker finished", "rounds", rounds, "shuffles", shoe.Shuffles())
	return stats, nil
}

func (s *Simulator) playRound(shoe *deck.Shoe, players []*game.Player) ([]statistics.RoundResult, error) {
	for _, p := range players {
		if err := p.PlaceWager(s.config.Wager); err != nil {
			return nil, err
		}
	}

	r, err := game.StartRound(players, shoe,
		game.WithRules(s.config.Rules),
		game.WithClock(s.clock),
		game.WithRoundID("sim"),
	)
	if err != nil {
		return nil, err
	}
	if err := r.PlayAgents(nil, s.config.Agent); err != nil {
		return nil, err
	}
	if err := r.PlayDealer(); err != nil {
		return nil, err
	}
	settlement, err := r.Settle()
	if err != nil {
		return nil, err
	}

	results := make(map[string]*statistics.RoundResult, len(players))
	for _, p := range players {
		results[p.ID] = &statistics.RoundResult{
			Wager: s.config.Wager,
			Net:   settlement.Deltas[p.ID],
			Split: p.HasSplit(),
		}
	}
	for _, hr := range settlement.Results {
		res := results[hr.PlayerID]
		res.Outcomes = append(res.Outcomes, hr.Outcome)
	}
	for _, p := range players {
		for _, ph := range p.Hands() {
			if ph.Doubled() {
				results[p.ID].Doubled = true
			}
		}
	}

	out := make([]statistics.RoundResult, 0, len(players))
	for _, p := range players {
		out = append(out, *results[p.ID])
	}
	return out, nil
}
