package display

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack/internal/session"
)

// Styles holds the lipgloss styles used to render session output
type Styles struct {
	Header    lipgloss.Style
	Info      lipgloss.Style
	Deal      lipgloss.Style
	Action    lipgloss.Style
	Dealer    lipgloss.Style
	Win       lipgloss.Style
	Loss      lipgloss.Style
	Push      lipgloss.Style
	Error     lipgloss.Style
	Summary   lipgloss.Style
	Prompt    lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
}

// DefaultStyles returns the default color scheme
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Deal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Action: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")),
		Dealer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Win: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Loss: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Push: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Summary: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		RedCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: lipgloss.NewStyle().
			Bold(true),
	}
}

// For returns the style for a line kind
func (s Styles) For(kind session.Kind) lipgloss.Style {
	switch kind {
	case session.KindHeader:
		return s.Header
	case session.KindDeal:
		return s.Deal
	case session.KindAction:
		return s.Action
	case session.KindDealer:
		return s.Dealer
	case session.KindResult:
		return s.Push
	case session.KindError:
		return s.Error
	case session.KindSummary:
		return s.Summary
	default:
		return s.Info
	}
}
