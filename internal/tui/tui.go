package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/unoforbots/internal/deck"
	"github.com/lox/unoforbots/internal/display"
)

// TUIModel represents the Bubble Tea model for an UNO game
type TUIModel struct {
	logger   *log.Logger
	renderer *display.Renderer

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State shared with the session goroutine
	mu           sync.Mutex
	gameLog      []string
	status       display.Status
	hasStatus    bool
	hand         []deck.Card
	legal        []deck.Card
	isHumansTurn bool
	prompt       string

	actionResult chan ActionResult
	quitSignal   chan bool
	quitting     bool
	focusedPane  int // 0 = log, 1 = input
	refresh      func()

	// Dimensions
	width       int
	height      int
	initialized bool // Track if viewport has been properly sized

	// Test mode
	testMode    bool
	capturedLog []string
}

// ActionResult represents the result of a user action
type ActionResult struct {
	Action   string
	Args     []string
	Continue bool
	Error    error
}

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

// refreshMsg redraws after state changed outside Update
type refreshMsg struct{}

// NewTUIModel creates a new TUI model
func NewTUIModel(logger *log.Logger, renderer *display.Renderer) *TUIModel {
	return newModel(logger, renderer, false)
}

// NewTestModel creates a model that captures its log instead of drawing it
func NewTestModel(logger *log.Logger) *TUIModel {
	return newModel(logger, display.NewRenderer(io.Discard, true), true)
}

func newModel(logger *log.Logger, renderer *display.Renderer, testMode bool) *TUIModel {
	// Properly sized when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "play <id> [colour], draw, uno, hand, help"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = PromptStyle
	ti.TextStyle = InputTextStyle
	ti.Prompt = "> "

	return &TUIModel{
		logger:       logger.WithPrefix("tui"),
		renderer:     renderer,
		logViewport:  vp,
		actionInput:  ti,
		actionResult: make(chan ActionResult, 1),
		quitSignal:   make(chan bool, 1),
		focusedPane:  1,
		testMode:     testMode,
	}
}

// Attach lets the model ask a running program to redraw when the game
// changes outside of Update
func (m *TUIModel) Attach(program *tea.Program) {
	m.refresh = func() {
		go program.Send(refreshMsg{})
	}
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listenForQuit())
}

// listenForQuit returns a command that listens for quit signals
func (m *TUIModel) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case refreshMsg:
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updated dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.send(ActionResult{Action: "quit", Continue: false})
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
				m.processAction(strings.TrimSpace(m.actionInput.Value()))
				m.actionInput.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
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

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	m.mu.Lock()
	logContent := strings.Join(m.gameLog, "\n")
	actionContent := m.renderActionPane()
	sidebarContent := m.renderSidebarPane()
	m.mu.Unlock()

	// Action pane (bottom, full width)
	actionHeight := lipgloss.Height(actionContent)
	actionPane := ActionPaneStyle.
		Width(max(m.width-2, 1)).
		Height(max(actionHeight-2, 1)).
		Render(actionContent)

	// Sidebar (right of the log, same height)
	sidebarWidth := max(lipgloss.Width(sidebarContent), 30)
	paneHeight := max(m.height-actionHeight-4, 1)
	sidebarPane := PaneStyle.Width(sidebarWidth).Height(paneHeight).Render(sidebarContent)

	// Log pane (top left), following new entries unless scrolled up
	follow := !m.initialized || m.logViewport.AtBottom()
	m.logViewport.Width = max(m.width-sidebarWidth-4, 1)
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(logContent)
	if follow && m.logViewport.Width > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := PaneStyle.Width(m.logViewport.Width).Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(focusColor)
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderSidebarPane shows the table status. Called with mu held.
func (m *TUIModel) renderSidebarPane() string {
	if !m.hasStatus {
		return InfoStyle.Render("Waiting for the game to start")
	}
	return m.renderer.Status(m.status)
}

// renderActionPane renders the hand and the input. Called with mu held.
func (m *TUIModel) renderActionPane() string {
	var content strings.Builder

	if m.isHumansTurn {
		content.WriteString(HandInfoStyle.Render("Hand: "))
		content.WriteString(m.renderer.Hand(m.hand, m.legal))
		content.WriteString("\n")
		if m.prompt != "" {
			content.WriteString(WarningStyle.Render(m.prompt))
		} else {
			content.WriteString(ActionsStyle.Render("Actions: [play <id> [colour]] [draw] [uno] [hand] [code <cheat>] [quit]"))
		}
		content.WriteString("\n")
	} else {
		content.WriteString(HandInfoStyle.Render("Waiting..."))
		content.WriteString("\n")
	}

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(HelpStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else if m.isHumansTurn {
		content.WriteString(HelpStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	} else {
		content.WriteString(HelpStyle.Render("Tab to scroll log • Ctrl+C to quit"))
	}
	return content.String()
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.mu.Lock()
	m.gameLog = append(m.gameLog, entry)
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
	}
	m.mu.Unlock()
	m.redraw()
}

// AddLogEntries adds several entries at once
func (m *TUIModel) AddLogEntries(entries ...string) {
	for _, e := range entries {
		m.AddLogEntry(e)
	}
}

// SetStatus replaces the sidebar status
func (m *TUIModel) SetStatus(status display.Status) {
	m.mu.Lock()
	m.status = status
	m.hasStatus = true
	m.mu.Unlock()
	m.redraw()
}

// SetHumanTurn sets whether it's currently the human's turn and what they hold
func (m *TUIModel) SetHumanTurn(isHumansTurn bool, hand, legal []deck.Card) {
	m.mu.Lock()
	m.isHumansTurn = isHumansTurn
	m.hand = hand
	m.legal = legal
	m.prompt = ""
	m.mu.Unlock()
	m.redraw()
}

// SetPrompt replaces the action hint, e.g. to ask for a colour
func (m *TUIModel) SetPrompt(prompt string) {
	m.mu.Lock()
	m.prompt = prompt
	m.mu.Unlock()
	m.redraw()
}

func (m *TUIModel) redraw() {
	if m.refresh != nil && !m.testMode {
		m.refresh()
	}
}

// processAction turns an input line into an action for WaitForAction
func (m *TUIModel) processAction(input string) {
	parts := strings.Fields(input)

	var action string
	var args []string
	if len(parts) > 0 {
		action = strings.ToLower(parts[0])
		args = parts[1:]
	}

	m.send(ActionResult{Action: action, Args: args, Continue: true})
}

// send never blocks the UI: input typed while a previous action is still
// pending is dropped
func (m *TUIModel) send(result ActionResult) {
	select {
	case m.actionResult <- result:
	default:
		m.logger.Debug("Dropped action, previous one still pending", "action", result.Action)
	}
}

// WaitForAction waits for user input
func (m *TUIModel) WaitForAction() (string, []string, bool, error) {
	result := <-m.actionResult
	return result.Action, result.Args, result.Continue, result.Error
}

// WaitForActionContext waits for user input or ctx
func (m *TUIModel) WaitForActionContext(ctx context.Context) (ActionResult, error) {
	select {
	case result := <-m.actionResult:
		return result, nil
	case <-ctx.Done():
		return ActionResult{}, ctx.Err()
	}
}

// SendQuitSignal signals the TUI to quit gracefully
func (m *TUIModel) SendQuitSignal() {
	select {
	case m.quitSignal <- true:
	default:
		// already signalled
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// InjectAction programmatically injects an action (test mode only)
func (m *TUIModel) InjectAction(action string, args ...string) error {
	if !m.testMode {
		return fmt.Errorf("action injection only available in test mode")
	}

	select {
	case m.actionResult <- ActionResult{Action: action, Args: args, Continue: true}:
		return nil
	default:
		return fmt.Errorf("action channel full")
	}
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}

// HumansTurn reports whether the model is waiting for the human
func (m *TUIModel) HumansTurn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isHumansTurn
}

// Prompt returns the current action hint
func (m *TUIModel) Prompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prompt
}
