package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/session"
)

// TUIModel represents the Bubble Tea model for a blackjack session
type TUIModel struct {
	session  *session.Session
	renderer *display.Renderer
	logger   *log.Logger

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog     []string
	prompt      string
	started     bool
	finished    bool
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// NewTUIModel creates a TUI model for the session
func NewTUIModel(s *session.Session, renderer *display.Renderer, logger *log.Logger) *TUIModel {
	return NewTUIModelWithOptions(s, renderer, logger, false)
}

// NewTUIModelWithOptions creates a TUI model with test mode option. In test
// mode log entries are captured unstyled and the viewport is not updated.
func NewTUIModelWithOptions(s *session.Session, renderer *display.Renderer, logger *log.Logger, testMode bool) *TUIModel {
	if renderer == nil {
		renderer = display.NewRenderer(display.DefaultStyles())
	}

	// Sized properly when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &TUIModel{
		session:     s,
		renderer:    renderer,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		focusedPane: 1,
		testMode:    testMode,
	}
}

// Init starts the session and the cursor blink
func (m *TUIModel) Init() tea.Cmd {
	m.Start()
	return textinput.Blink
}

// Start shows the opening output of the session. It is safe to call more
// than once.
func (m *TUIModel) Start() {
	if m.started {
		return
	}
	m.started = true
	m.apply(m.session.Start())
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updated dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.apply(m.session.Quit())
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				if m.finished {
					m.quitting = true
					return m, tea.Sequence(tea.ClearScreen, tea.Quit)
				}
				m.Submit(m.actionInput.Value())
				m.actionInput.SetValue("")
				return m, nil
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// Submit feeds one answer to the session, echoing it into the log
func (m *TUIModel) Submit(input string) {
	if m.finished {
		return
	}
	if m.prompt != "" {
		m.addEntry(m.prompt+": "+input, InfoStyle.Render(m.prompt+": "+input))
	}
	m.logger.Debug("Submitted input", "input", input)
	m.apply(m.session.Input(input))
}

// apply appends session output to the log and updates the prompt
func (m *TUIModel) apply(out session.Output) {
	for _, line := range out.Lines {
		m.addEntry(line.Text, m.renderer.Line(line))
	}
	m.prompt = out.Prompt
	if out.Done {
		m.finished = true
		m.logger.Info("Session finished")
	}
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderFor(1)).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1)).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 24)
	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(unfocusedBorder).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderFor(0)).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *TUIModel) borderFor(pane int) lipgloss.Color {
	if m.focusedPane == pane {
		return focusedBorder
	}
	return unfocusedBorder
}

// renderSidebarPane lists every seated player with their running result
func (m *TUIModel) renderSidebarPane() string {
	var content strings.Builder
	content.WriteString(SidebarTitleStyle.Render("Table"))
	content.WriteString("\n\n")

	if shoe := m.session.Shoe(); shoe != nil {
		content.WriteString(InfoStyle.Render(fmt.Sprintf("Shoe: %d decks, %d left", shoe.Decks(), shoe.Remaining())))
		content.WriteString("\n")
	}
	if rounds := m.session.Rounds(); rounds > 0 {
		content.WriteString(InfoStyle.Render(fmt.Sprintf("Round: %d", rounds)))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	for _, p := range m.session.Roster() {
		net := p.Net()
		style := UpStyle
		if net < 0 {
			style = DownStyle
		}
		content.WriteString(PlayerInfoStyle.Render(fmt.Sprintf("%-10s $%d ", p.Name, p.Bankroll())))
		content.WriteString(style.Render(fmt.Sprintf("(%+d)", net)))
		content.WriteString("\n")
	}

	return content.String()
}

// renderActionPane renders the prompt, the input field and help text
func (m *TUIModel) renderActionPane() string {
	var content strings.Builder

	switch {
	case m.finished:
		content.WriteString(PromptStyle.Render("Thanks for playing"))
		m.actionInput.Placeholder = "Enter to exit"
	default:
		content.WriteString(PromptStyle.Render(m.prompt))
		m.actionInput.Placeholder = ""
	}
	content.WriteString("\n")
	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return content.String()
}

// addEntry appends a rendered entry to the log, keeping the plain text in
// test mode
func (m *TUIModel) addEntry(plain, rendered string) {
	m.gameLog = append(m.gameLog, rendered)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, plain)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Prompt returns the question currently being asked
func (m *TUIModel) Prompt() string {
	return m.prompt
}

// Finished reports whether the session has ended
func (m *TUIModel) Finished() bool {
	return m.finished
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}

// Run starts a full screen program for the session and blocks until it exits
func Run(s *session.Session, renderer *display.Renderer, logger *log.Logger) error {
	model := NewTUIModel(s, renderer, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
