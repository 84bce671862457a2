package display

import (
	"regexp"
	"strings"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/session"
)

var cardPattern = regexp.MustCompile(`[2-9TJQKA][♠♥♦♣]`)

// Renderer styles session output for a terminal
type Renderer struct {
	styles Styles
}

// NewRenderer creates a renderer with the given styles
func NewRenderer(styles Styles) *Renderer {
	return &Renderer{styles: styles}
}

// Line renders one session line, coloring any cards it mentions
func (r *Renderer) Line(line session.Line) string {
	style := r.styles.For(line.Kind)
	if line.Kind == session.KindResult {
		switch {
		case line.Delta > 0:
			style = r.styles.Win
		case line.Delta < 0:
			style = r.styles.Loss
		}
	}

	text := line.Text
	matches := cardPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return style.Render(text)
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if m[0] > last {
			b.WriteString(style.Render(text[last:m[0]]))
		}
		b.WriteString(r.card(text[m[0]:m[1]]))
		last = m[1]
	}
	if last < len(text) {
		b.WriteString(style.Render(text[last:]))
	}
	return b.String()
}

// Prompt renders a prompt
func (r *Renderer) Prompt(prompt string) string {
	return r.styles.Prompt.Render(prompt + ":")
}

func (r *Renderer) card(token string) string {
	c, err := deck.ParseCard(token[:1] + suitLetter(token[1:]))
	if err != nil {
		return token
	}
	return r.Card(c)
}

// Card renders a single card, red suits in red
func (r *Renderer) Card(c deck.Card) string {
	if c.IsRed() {
		return r.styles.RedCard.Render(c.String())
	}
	return r.styles.BlackCard.Render(c.String())
}

// Cards renders cards separated by spaces
func (r *Renderer) Cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.Card(c)
	}
	return strings.Join(parts, " ")
}

func suitLetter(symbol string) string {
	switch symbol {
	case "♠":
		return "s"
	case "♥":
		return "h"
	case "♦":
		return "d"
	case "♣":
		return "c"
	default:
		return "?"
	}
}
