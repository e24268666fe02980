package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/showtunes/internal/models"
	"github.com/desertthunder/showtunes/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	InputView ViewState = iota
	GenerateView
	ReviewView
	ConfirmView
	FulfillView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.CuratorEngine
	width        int
	height       int
	showInput    textinput.Model
	spin         spinner.Model
	result       *models.PlaylistResult
	songList     list.Model
	progressChan chan tasks.ProgressUpdate
	fulfillDone  chan fulfillmentDoneMsg
	progress     tasks.ProgressUpdate
	summary      *models.FulfillmentSummary
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *tasks.CuratorEngine) *Model {
	input := textinput.New()
	input.Placeholder = "Breaking Bad"
	input.Focus()
	input.CharLimit = 120
	input.Width = 40

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &Model{
		ctx:       ctx,
		view:      InputView,
		engine:    engine,
		showInput: input,
		spin:      spin,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init focuses the show title input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.songList.Width() == 0 {
			m.songList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case InputView:
			return m.handleInputKeys(msg)
		case ReviewView:
			return m.handleReviewKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		default:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case generationDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ResultView
			return m, nil
		}
		m.result = msg.result
		items := make([]list.Item, len(msg.result.Songs))
		for i, song := range msg.result.Songs {
			items[i] = newSongItem(song)
		}
		m.songList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.songList.Title = fmt.Sprintf("Songs for '%s' (%s)", msg.result.Show, msg.result.Genre)
		m.songList.SetSize(m.width-4, m.height-8)
		m.view = ReviewView
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case fulfillmentDoneMsg:
		m.summary = msg.summary
		m.err = msg.err
		m.view = ResultView
		return m, nil
	}

	if m.view == ReviewView {
		var cmd tea.Cmd
		m.songList, cmd = m.songList.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case InputView:
		return m.renderInput()
	case GenerateView:
		return m.renderGenerate()
	case ReviewView:
		return m.renderReview()
	case ConfirmView:
		return m.renderConfirm()
	case FulfillView:
		return m.renderFulfill()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		show := strings.TrimSpace(m.showInput.Value())
		if show == "" {
			return m, nil
		}
		m.view = GenerateView
		return m, tea.Batch(m.spin.Tick, m.startGeneration(show))
	}

	var cmd tea.Cmd
	m.showInput, cmd = m.showInput.Update(msg)
	return m, cmd
}

func (m *Model) handleReviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = InputView
		m.result = nil
		return m, nil
	case "enter":
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n":
		m.view = ReviewView
		return m, nil
	case "y":
		m.view = FulfillView
		return m, tea.Batch(m.spin.Tick, m.startFulfillment())
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = InputView
		m.showInput.SetValue("")
		m.result = nil
		m.summary = nil
		m.err = nil
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) startGeneration(show string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.engine.Generate(m.ctx, show, "", nil)
		return generationDoneMsg{result: result, err: err}
	}
}

func (m *Model) startFulfillment() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	done := make(chan fulfillmentDoneMsg, 1)

	go func() {
		summary, err := m.engine.Fulfill(m.ctx, m.result, "", "", m.progressChan)
		done <- fulfillmentDoneMsg{summary: summary, err: err}
		close(m.progressChan)
	}()

	m.fulfillDone = done
	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.progressChan
		if !ok {
			return <-m.fulfillDone
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderInput() string {
	title := styles.title.Render("What show should the playlist be inspired by?")
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.showInput.View(), helpView)
}

func (m *Model) renderGenerate() string {
	title := styles.title.Render("Generating Song List")
	return fmt.Sprintf("%s\n\n%s Asking the curator for suggestions...", title, m.spin.View())
}

func (m *Model) renderReview() string {
	fulfillKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create playlist"))
	helpView := m.help.ShortHelpView([]key.Binding{fulfillKey, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.songList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Create Spotify playlist for '%s'?", m.result.Show))
	info := fmt.Sprintf("\nGenre: %s\nSongs: %d\n", m.result.Genre, len(m.result.Songs))

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no, m.keys.quit})

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderFulfill() string {
	title := styles.title.Render("Creating Playlist")

	var phase string
	switch m.progress.Phase {
	case tasks.CreatePlaylist:
		phase = "Creating playlist on Spotify..."
	case tasks.SearchTracks:
		phase = fmt.Sprintf("Searching tracks (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.AddTracks:
		phase = "Adding tracks..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s %s\n%s", title, m.spin.View(), phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Failed: %v\n\nPress r to start over, q to quit", m.err))
	}

	if m.summary == nil {
		return styles.err.Render("No result available\n\nPress r to start over, q to quit")
	}

	title := styles.ok.Render("✓ Playlist Created!")
	info := fmt.Sprintf(
		"\nTracks found: %d/%d\nURL: %s",
		m.summary.TracksFound,
		m.summary.TotalTracks,
		m.summary.PlaylistURL,
	)

	var missed string
	if m.summary.TracksFound < m.summary.TotalTracks {
		missed = fmt.Sprintf("\n\n%s", styles.warn.Render(
			fmt.Sprintf("%d songs had no match and were skipped", m.summary.TotalTracks-m.summary.TracksFound)))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, missed, helpView)
}
