package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/session"
	"github.com/lox/blackjack/internal/tui"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type PlayCmd struct {
	Config    string `short:"c" default:"blackjack.hcl" help:"Table configuration file (defaults apply when missing)"`
	TUI       bool   `help:"Use the full screen interface"`
	NoColor   bool   `help:"Disable colored output"`
	Decks     int    `short:"d" help:"Number of decks, skipping the deck prompt"`
	Reshuffle string `help:"Override the reshuffle policy (auto, never)"`
	Seed      int64  `default:"0" help:"RNG seed (0 for a secure shuffle)"`
	LogLevel  string `help:"Override the log level (debug, info, warn, error)"`
	LogFile   string `help:"Override the log file"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	if c.Reshuffle != "" {
		cfg.Table.Reshuffle = c.Reshuffle
	}
	if c.Decks != 0 {
		cfg.Table.Decks = c.Decks
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	settings, err := settingsFromConfig(cfg)
	if err != nil {
		return err
	}
	settings.FixedDecks = c.Decks != 0

	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "MAIN",
		Level:           cfg.LogLevel(),
	})

	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	rng := randutil.NewSecure()
	if c.Seed != 0 {
		rng = randutil.New(c.Seed)
	}
	logger.Info("Starting session", "decks", settings.Rules.Decks, "fixed_decks", settings.FixedDecks,
		"seats", len(settings.Seats), "seeded", c.Seed != 0)

	s := session.New(settings, session.WithLogger(logger), session.WithRNG(rng))
	renderer := display.NewRenderer(display.DefaultStyles())

	if c.TUI {
		if err := tui.Run(s, renderer, logger); err != nil {
			return err
		}
		printBalances(s, renderer)
		return nil
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := display.NewConsole(os.Stdin, os.Stdout, renderer, logger)
	return console.Run(ctx, s)
}

// settingsFromConfig maps the table block and pre-seated players onto
// session settings
func settingsFromConfig(cfg *config.Config) (session.Settings, error) {
	rules, err := cfg.Rules()
	if err != nil {
		return session.Settings{}, fmt.Errorf("invalid rules: %w", err)
	}

	settings := session.Settings{
		Rules:       rules,
		MinDecks:    cfg.Table.MinDecks,
		MaxDecks:    cfg.Table.MaxDecks,
		MaxPlayers:  cfg.Table.MaxPlayers,
		MinBankroll: cfg.Table.MinBankroll,
	}
	for _, p := range cfg.Players {
		settings.Seats = append(settings.Seats, session.Seat{Name: p.Name, Bankroll: p.Bankroll})
	}
	return settings, nil
}

// printBalances repeats the final balances after the full screen interface
// has cleared
func printBalances(s *session.Session, renderer *display.Renderer) {
	roster := s.Roster()
	if len(roster) == 0 {
		return
	}
	fmt.Println(renderer.Line(session.Line{Kind: session.KindSummary, Text: "Final balances"}))
	for _, p := range roster {
		text := fmt.Sprintf("%s: %+d", p.Name, p.Net())
		fmt.Println(renderer.Line(session.Line{Kind: session.KindSummary, Text: text}))
	}
	if shoe := s.Shoe(); shoe != nil && shoe.Policy() == deck.ReshuffleAuto {
		fmt.Printf("Shoe reshuffled %d times\n", shoe.Shuffles())
	}
}
