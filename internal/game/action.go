package game

// Action represents a player decision on one hand
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
	Surrender
)

func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	case Surrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// Actions lists every action in prompt order
var Actions = []Action{Hit, Stand, Double, Split, Surrender}

// HandState is the lifecycle state of a PlayerHand. Every state other than
// Active is terminal.
type HandState int

const (
	Active HandState = iota
	Stood
	Busted
	Doubled
	Surrendered
)

func (s HandState) String() string {
	return [...]string{"active", "stood", "busted", "doubled", "surrendered"}[s]
}

// IsTerminal reports whether no further action is permitted on the hand
func (s HandState) IsTerminal() bool {
	return s != Active
}
