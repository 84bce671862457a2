package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/session"
)

func newTestModel(t *testing.T, cards string, testMode bool) *TUIModel {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})

	settings := session.DefaultSettings()
	settings.Seats = []session.Seat{{Name: "Alice", Bankroll: 100}}
	shoe := deck.NewStackedShoe(deck.MustParseCards(cards), randutil.New(1), deck.WithReshuffle(deck.ReshuffleNever))
	s := session.New(settings, session.WithShoe(shoe))

	return NewTUIModelWithOptions(s, nil, logger, testMode)
}

func TestTUITestMode(t *testing.T) {
	t.Run("captures session output", func(t *testing.T) {
		m := newTestModel(t, "Ts 9h 6c 7d Kd 2c", true)
		assert.True(t, m.IsTestMode())

		m.Init()
		assert.Equal(t, "Alice, your wager (1-100)", m.Prompt())

		m.Submit("10")
		m.Submit("h")
		assert.Equal(t, "Alice, play again? (y/n)", m.Prompt())

		captured := m.GetCapturedLog()
		assert.Equal(t, "Welcome to blackjack", captured[0])
		assert.Contains(t, captured, "Alice, your wager (1-100): 10")
		assert.Contains(t, captured, "Alice hits: T♠ 6♣ K♦ (26, bust)")
		assert.Contains(t, captured, "Alice has 90")

		m.Submit("n")
		assert.True(t, m.Finished())
		assert.Contains(t, m.GetCapturedLog(), "Alice: -10")
	})

	t.Run("production mode does not capture logs", func(t *testing.T) {
		m := newTestModel(t, "Ts 9h 6c 7d Kd 2c", false)
		m.Start()
		assert.False(t, m.IsTestMode())
		assert.Nil(t, m.GetCapturedLog())
	})

	t.Run("start is idempotent", func(t *testing.T) {
		m := newTestModel(t, "Ts 9h 6c 7d Kd 2c", true)
		m.Start()
		m.Start()
		assert.Len(t, m.GetCapturedLog(), 1)
	})
}

func TestTUIKeyHandling(t *testing.T) {
	m := newTestModel(t, "Ts 9h 6c 7d Kd 2c", true)
	m.Init()

	assert.Equal(t, "Loading...", m.View())

	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Contains(t, m.View(), "Alice, your wager (1-100)")
	assert.Contains(t, m.View(), "Alice")

	m.actionInput.SetValue("10")
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.actionInput.Value())
	assert.Contains(t, m.Prompt(), "[h]it")

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.focusedPane)
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focusedPane)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, m.Finished())
	assert.Empty(t, m.View())
	assert.Contains(t, m.GetCapturedLog(), "Alice: +0")
}
