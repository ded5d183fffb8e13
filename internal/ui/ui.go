package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"spotisync/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MenuView ViewState = iota
	URLInputView
	ConfirmResetView
	RunningView
	ResultView
)

// Actions defines the pipeline operations the menu dispatches. Implemented by
// the CLI runner so the TUI stays free of wiring concerns.
type Actions interface {
	// Scrape extracts songs from the given playlist or album URL.
	Scrape(ctx context.Context, url string) (summary string, err error)

	// Match searches the platform for every pending song.
	Match(ctx context.Context, progress chan<- tasks.ProgressUpdate) (summary string, err error)

	// Build creates a playlist from all matched songs.
	Build(ctx context.Context, progress chan<- tasks.ProgressUpdate) (summary string, err error)

	// Reset wipes all stored pipeline state.
	Reset(ctx context.Context) error
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	actions Actions
	width   int
	height  int

	menu     list.Model
	urlInput textinput.Model

	running      string
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	summary      string
	err          error

	help help.Model
	keys keyMap
}

type progressUpdateMsg tasks.ProgressUpdate

type actionCompleteMsg struct {
	summary string
	err     error
}

// NewModel creates a new TUI model dispatching into actions.
func NewModel(ctx context.Context, actions Actions) *Model {
	menu := list.New(menuItems(), list.NewDefaultDelegate(), 0, 0)
	menu.Title = "Spotify → YouTube Sync"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)

	input := textinput.New()
	input.Placeholder = "https://open.spotify.com/playlist/..."
	input.CharLimit = 200
	input.Width = 60

	return &Model{
		ctx:      ctx,
		view:     MenuView,
		actions:  actions,
		menu:     menu,
		urlInput: input,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menu.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MenuView:
			return m.handleMenuKeys(msg)
		case URLInputView:
			return m.handleURLInputKeys(msg)
		case ConfirmResetView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case actionCompleteMsg:
		m.summary = msg.summary
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case MenuView:
		return m.renderMenu()
	case URLInputView:
		return m.renderURLInput()
	case ConfirmResetView:
		return m.renderConfirmReset()
	case RunningView:
		return m.renderRunning()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}

		switch selected.action {
		case ActionScrape:
			m.view = URLInputView
			m.urlInput.SetValue("")
			m.urlInput.Focus()
			return m, textinput.Blink
		case ActionMatch:
			return m.startAction("Matching songs", func(progress chan<- tasks.ProgressUpdate) (string, error) {
				return m.actions.Match(m.ctx, progress)
			})
		case ActionBuild:
			return m.startAction("Creating playlist", func(progress chan<- tasks.ProgressUpdate) (string, error) {
				return m.actions.Build(m.ctx, progress)
			})
		case ActionReset:
			m.view = ConfirmResetView
			return m, nil
		case ActionExit:
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *Model) handleURLInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = MenuView
		return m, nil
	case "enter":
		url := strings.TrimSpace(m.urlInput.Value())
		if url == "" {
			return m, nil
		}
		return m.startAction("Scraping", func(chan<- tasks.ProgressUpdate) (string, error) {
			return m.actions.Scrape(m.ctx, url)
		})
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = MenuView
		return m, nil
	case "y":
		return m.startAction("Resetting", func(chan<- tasks.ProgressUpdate) (string, error) {
			if err := m.actions.Reset(m.ctx); err != nil {
				return "", err
			}
			return "All stored data deleted.", nil
		})
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.view = MenuView
		m.summary = ""
		m.err = nil
		m.progress = tasks.ProgressUpdate{}
		return m, nil
	}
	return m, nil
}

// startAction launches an operation on a goroutine and begins draining its
// progress channel into the update loop.
func (m *Model) startAction(label string, run func(chan<- tasks.ProgressUpdate) (string, error)) (tea.Model, tea.Cmd) {
	m.view = RunningView
	m.running = label
	m.progress = tasks.ProgressUpdate{}
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	progress := m.progressChan
	go func() {
		summary, err := run(progress)
		m.summary = summary
		m.err = err
		close(progress)
	}()

	return m, m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress := m.progressChan
	return func() tea.Msg {
		if progress == nil {
			return actionCompleteMsg{summary: m.summary, err: m.err}
		}

		update, ok := <-progress
		if !ok {
			return actionCompleteMsg{summary: m.summary, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderMenu() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.menu.View(), helpView)
}

func (m *Model) renderURLInput() string {
	title := styles.title.Render("Scrape a Spotify playlist or album")
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.urlInput.View(), helpView)
}

func (m *Model) renderConfirmReset() string {
	title := styles.warn.Render("Delete all stored songs and matches?")
	info := "\nThis cannot be undone.\n"
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no, m.keys.quit})
	return fmt.Sprintf("%s%s\n%s", title, info, helpView)
}

func (m *Model) renderRunning() string {
	title := styles.title.Render(m.running + "...")

	message := m.progress.Message
	if message == "" {
		message = "Working..."
	}

	return fmt.Sprintf("%s\n%s\n", title, message)
}

func (m *Model) renderResult() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})

	if m.err != nil {
		body := styles.err.Render(fmt.Sprintf("Failed: %v", m.err))
		return fmt.Sprintf("%s\n\n%s", body, helpView)
	}

	title := styles.ok.Render("✓ Done")
	return fmt.Sprintf("%s\n\n%s\n%s", title, m.summary, helpView)
}
