package session

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
)

// Seat is a player seated before the session starts
type Seat struct {
	Name     string
	Bankroll int
}

// Settings are the table limits the prompts enforce
type Settings struct {
	Rules       game.Rules // Rules.Decks is the deck prompt default
	MinDecks    int
	MaxDecks    int
	FixedDecks  bool // skip the deck prompt and use Rules.Decks
	MaxPlayers  int
	MinBankroll int
	Seats       []Seat // skip the player prompts when set
}

// DefaultSettings returns the default table limits
func DefaultSettings() Settings {
	return Settings{
		Rules:       game.DefaultRules(),
		MinDecks:    4,
		MaxDecks:    8,
		MaxPlayers:  7,
		MinBankroll: 50,
	}
}

type stage int

const (
	stageDecks stage = iota
	stagePlayerCount
	stageName
	stageBankroll
	stageWager
	stageAction
	stageAgain
	stageDone
)

func (st stage) String() string {
	return [...]string{"decks", "player_count", "name", "bankroll", "wager", "action", "again", "done"}[st]
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the session logger. Default discards all output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRNG sets the shuffle source. Default is randutil.NewSecure().
func WithRNG(rng *rand.Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithClock sets the clock passed to every round
func WithClock(clock quartz.Clock) Option {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithShoe supplies the shoe instead of building one after the deck prompt.
// The deck prompt is skipped.
func WithShoe(shoe *deck.Shoe) Option {
	return func(s *Session) {
		s.shoe = shoe
	}
}

// Session is the prompt-driven table. It consumes one line of input at a
// time and never blocks, so the line console and the TUI drive it the same
// way. A Session is not safe for concurrent use.
type Session struct {
	settings Settings
	rules    game.Rules
	logger   *log.Logger
	rng      *rand.Rand
	clock    quartz.Clock

	stage stage
	shoe  *deck.Shoe

	// setup
	seatCount int
	pendName  string

	roster  []*game.Player // everyone who sat down, for the final summary
	players []*game.Player // still playing
	cursor  int            // player index for wager and play again prompts
	staying []*game.Player

	round  *game.Round
	rounds int

	out []Line
}

// New creates a session. Call Start for the first prompt.
func New(settings Settings, opts ...Option) *Session {
	s := &Session{
		settings: settings,
		rules:    settings.Rules,
		logger:   log.New(io.Discard),
		clock:    quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = randutil.NewSecure()
	}
	s.logger = s.logger.WithPrefix("session")
	return s
}

// Start returns the opening output and first prompt
func (s *Session) Start() Output {
	s.say(KindHeader, "Welcome to blackjack")
	switch {
	case s.shoe != nil:
		s.rules.Decks = s.shoe.Decks()
		s.afterDecks()
	case s.settings.FixedDecks:
		s.openShoe(s.rules.Decks)
	default:
		s.stage = stageDecks
	}
	return s.flush()
}

// Input feeds one line of user input and returns the response
func (s *Session) Input(line string) Output {
	switch s.stage {
	case stageDecks:
		s.inputDecks(line)
	case stagePlayerCount:
		s.inputPlayerCount(line)
	case stageName:
		s.inputName(line)
	case stageBankroll:
		s.inputBankroll(line)
	case stageWager:
		s.inputWager(line)
	case stageAction:
		s.inputAction(line)
	case stageAgain:
		s.inputAgain(line)
	}
	return s.flush()
}

// Quit ends the session early and reports final balances. A round in
// progress is abandoned unsettled.
func (s *Session) Quit() Output {
	if s.stage != stageDone {
		s.logger.Info("Session quit", "stage", s.stage)
		s.finish()
	}
	return s.flush()
}

// Done reports whether the session has ended
func (s *Session) Done() bool {
	return s.stage == stageDone
}

// Roster returns every player who sat down, in seat order
func (s *Session) Roster() []*game.Player {
	return s.roster
}

// Playing returns the players still at the table
func (s *Session) Playing() []*game.Player {
	return s.players
}

// Round returns the round in progress, or nil between rounds
func (s *Session) Round() *game.Round {
	return s.round
}

// Rounds returns how many rounds have been dealt
func (s *Session) Rounds() int {
	return s.rounds
}

// Shoe returns the session shoe once it exists
func (s *Session) Shoe() *deck.Shoe {
	return s.shoe
}

func (s *Session) say(kind Kind, format string, args ...any) {
	s.out = append(s.out, Line{Kind: kind, Text: fmt.Sprintf(format, args...)})
}

func (s *Session) flush() Output {
	out := Output{Lines: s.out, Prompt: s.prompt(), Done: s.stage == stageDone}
	s.out = nil
	return out
}

// prompt renders the question for the current stage
func (s *Session) prompt() string {
	switch s.stage {
	case stageDecks:
		return fmt.Sprintf("How many decks? (%d-%d) [%d]", s.settings.MinDecks, s.settings.MaxDecks, s.rules.Decks)
	case stagePlayerCount:
		return fmt.Sprintf("How many players? (1-%d)", s.settings.MaxPlayers)
	case stageName:
		return fmt.Sprintf("Name of player %d", len(s.players)+1)
	case stageBankroll:
		return fmt.Sprintf("%s's bankroll (at least %d)", s.pendName, s.settings.MinBankroll)
	case stageWager:
		p := s.players[s.cursor]
		return fmt.Sprintf("%s, your wager (1-%d)", p.Name, p.Bankroll())
	case stageAction:
		return s.actionPrompt()
	case stageAgain:
		return fmt.Sprintf("%s, play again? (y/n)", s.players[s.cursor].Name)
	default:
		return ""
	}
}

func (s *Session) actionPrompt() string {
	id, idx, ok := s.round.Turn()
	if !ok {
		return ""
	}
	p, err := s.round.Player(id)
	if err != nil {
		return ""
	}
	ph, _ := p.Hand(idx)

	var hints []string
	for _, a := range s.round.Legal(id, idx) {
		hints = append(hints, actionHints[a])
	}

	label := p.Name
	if p.HandCount() > 1 {
		label = fmt.Sprintf("%s hand %d", p.Name, idx+1)
	}
	return fmt.Sprintf("%s: %s vs %s. %s", label, ph.Hand(), s.round.DealerUpcard(), strings.Join(hints, ", "))
}

func (s *Session) inputDecks(line string) {
	n := s.rules.Decks
	if strings.TrimSpace(line) != "" {
		var err error
		n, err = parseBounded(line, s.settings.MinDecks, s.settings.MaxDecks)
		if err != nil {
			s.say(KindError, "%v", err)
			return
		}
	}
	s.openShoe(n)
}

func (s *Session) openShoe(decks int) {
	s.rules.Decks = decks
	s.shoe = s.rules.NewShoe(s.rng)
	s.logger.Info("Opened shoe", "decks", decks, "reshuffle", s.rules.Reshuffle)
	s.say(KindInfo, "Shuffled %d decks (%d cards)", decks, s.shoe.Remaining())
	s.afterDecks()
}

func (s *Session) afterDecks() {
	if len(s.settings.Seats) == 0 {
		s.stage = stagePlayerCount
		return
	}
	for _, seat := range s.settings.Seats {
		s.seat(seat.Name, seat.Bankroll)
	}
	s.beginBetting()
}

func (s *Session) seat(name string, bankroll int) {
	p := game.NewPlayer(name, bankroll)
	s.roster = append(s.roster, p)
	s.players = append(s.players, p)
	s.logger.Info("Player seated", "player", name, "bankroll", bankroll)
}

func (s *Session) inputPlayerCount(line string) {
	n, err := parseBounded(line, 1, s.settings.MaxPlayers)
	if err != nil {
		s.say(KindError, "%v", err)
		return
	}
	s.seatCount = n
	s.stage = stageName
}

func (s *Session) inputName(line string) {
	name := strings.TrimSpace(line)
	if name == "" {
		s.say(KindError, "Name cannot be empty")
		return
	}
	for _, p := range s.players {
		if strings.EqualFold(p.Name, name) {
			s.say(KindError, "%s is already seated", p.Name)
			return
		}
	}
	s.pendName = name
	s.stage = stageBankroll
}

func (s *Session) inputBankroll(line string) {
	n, err := parseAtLeast(line, s.settings.MinBankroll)
	if err != nil {
		s.say(KindError, "%v", err)
		return
	}
	s.seat(s.pendName, n)
	s.pendName = ""

	if len(s.players) < s.seatCount {
		s.stage = stageName
		return
	}
	s.beginBetting()
}

func (s *Session) beginBetting() {
	s.cursor = 0
	s.stage = stageWager
}

func (s *Session) inputWager(line string) {
	p := s.players[s.cursor]
	n, err := parseBounded(line, 1, p.Bankroll())
	if err != nil {
		s.say(KindError, "%v", err)
		return
	}
	if err := p.PlaceWager(n); err != nil {
		s.say(KindError, "%v", err)
		return
	}

	s.cursor++
	if s.cursor < len(s.players) {
		return
	}
	s.deal()
}

func (s *Session) deal() {
	r, err := game.StartRound(s.players, s.shoe,
		game.WithRules(s.rules),
		game.WithLogger(s.logger),
		game.WithClock(s.clock),
	)
	if err != nil {
		s.fail(err)
		return
	}
	s.round = r
	s.rounds++

	s.say(KindHeader, "Round %d", s.rounds)
	s.say(KindDeal, "Dealer shows %s", r.DealerUpcard())
	for _, p := range s.players {
		ph, _ := p.Hand(0)
		if ph.IsNatural() {
			s.say(KindDeal, "%s: %s, blackjack!", p.Name, ph.Hand())
			continue
		}
		s.say(KindDeal, "%s: %s", p.Name, ph.Hand())
	}
	if r.Phase() == game.DealerTurn && r.Rules().DealerPeek && r.Dealer().IsNatural() {
		s.say(KindDealer, "Dealer has blackjack")
	}

	s.continueRound()
}

func (s *Session) inputAction(line string) {
	a, err := ParseAction(line)
	if err != nil {
		s.say(KindError, "%v", err)
		return
	}

	id, idx, _ := s.round.Turn()
	p, _ := s.round.Player(id)

	state, err := s.round.ApplyAction(id, idx, a)
	var actionErr *game.ActionError
	switch {
	case errors.As(err, &actionErr):
		s.say(KindError, "%s", describeRejection(actionErr))
		return
	case err != nil:
		s.fail(err)
		return
	}

	s.reportAction(p, idx, a, state)
	s.continueRound()
}

func describeRejection(err *game.ActionError) string {
	switch {
	case errors.Is(err, game.ErrInsufficientFunds):
		return fmt.Sprintf("Not enough money to %s", err.Action)
	case err.Detail != "":
		return fmt.Sprintf("Cannot %s: %s", err.Action, err.Detail)
	default:
		return fmt.Sprintf("Cannot %s", err.Action)
	}
}

func (s *Session) reportAction(p *game.Player, idx int, a game.Action, state game.HandState) {
	label := p.Name
	if p.HandCount() > 1 {
		label = fmt.Sprintf("%s hand %d", p.Name, idx+1)
	}

	switch a {
	case game.Split:
		for i, ph := range p.Hands() {
			s.say(KindAction, "%s hand %d: %s", p.Name, i+1, ph.Hand())
		}
		return
	case game.Surrender:
		s.say(KindAction, "%s surrenders", label)
		return
	case game.Stand:
		s.say(KindAction, "%s stands", label)
		return
	}

	ph, _ := p.Hand(idx)
	verb := "hits"
	if a == game.Double {
		verb = "doubles"
	}
	s.say(KindAction, "%s %s: %s", label, verb, ph.Hand())
	if state == game.Busted {
		s.say(KindAction, "%s busts", label)
	}
}

// continueRound plays the dealer and settles once no player hand needs input
func (s *Session) continueRound() {
	if _, _, ok := s.round.Turn(); ok {
		s.stage = stageAction
		return
	}

	if err := s.round.PlayDealer(); err != nil {
		s.fail(err)
		return
	}
	s.say(KindDealer, "Dealer: %s", s.round.Dealer())

	settlement, err := s.round.Settle()
	if err != nil {
		s.fail(err)
		return
	}
	for _, res := range settlement.Results {
		s.out = append(s.out, Line{
			Kind:  KindResult,
			Text:  fmt.Sprintf("%s hand %d: %s (%+d)", res.Player, res.HandIndex+1, res.Outcome, res.Delta),
			Delta: res.Delta,
		})
	}
	for _, p := range s.players {
		s.say(KindResult, "%s has %d", p.Name, p.Bankroll())
	}

	s.round = nil
	s.staying = nil
	s.cursor = 0
	s.stage = stageAgain
	s.nextAgain()
}

// nextAgain moves the play again prompt to the next player with money,
// retiring broke players on the way.
func (s *Session) nextAgain() {
	for s.cursor < len(s.players) {
		p := s.players[s.cursor]
		if p.Bankroll() > 0 {
			return
		}
		s.say(KindInfo, "%s is out of money", p.Name)
		s.logger.Info("Player removed", "player", p.Name, "reason", "broke")
		s.cursor++
	}

	s.players = s.staying
	if len(s.players) == 0 {
		s.finish()
		return
	}
	s.beginBetting()
}

func (s *Session) inputAgain(line string) {
	p := s.players[s.cursor]
	if ParseYes(line) {
		s.staying = append(s.staying, p)
	} else {
		s.say(KindInfo, "%s leaves the table", p.Name)
		s.logger.Info("Player removed", "player", p.Name, "reason", "declined")
	}
	s.cursor++
	s.nextAgain()
}

// fail ends the session on an error the table cannot recover from, such as
// an exhausted shoe under the never reshuffle policy.
func (s *Session) fail(err error) {
	s.logger.Error("Session ended", "error", err)
	if errors.Is(err, deck.ErrShoeExhausted) {
		s.say(KindError, "The shoe is exhausted")
	} else {
		s.say(KindError, "Error: %v", err)
	}
	s.round = nil
	s.finish()
}

func (s *Session) finish() {
	s.stage = stageDone
	if len(s.roster) == 0 {
		return
	}
	s.say(KindSummary, "Final balances")
	for _, p := range s.roster {
		s.say(KindSummary, "%s: %+d", p.Name, p.Net())
	}
}
