package session

// Kind tags an output line so front-ends can style it
type Kind int

const (
	KindInfo Kind = iota
	KindHeader
	KindDeal
	KindAction
	KindDealer
	KindResult
	KindError
	KindSummary
)

// Line is one line of session output
type Line struct {
	Kind Kind
	Text string
	// Delta is the bankroll change a KindResult hand line reports
	Delta int
}

// Output is what a session produces in response to one input line
type Output struct {
	Lines  []Line
	Prompt string // empty once Done
	Done   bool
}
