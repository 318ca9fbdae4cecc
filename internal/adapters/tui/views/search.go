package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"microscope/internal/adapters/tui/styles"
	"microscope/internal/application/commands"
	"microscope/internal/domain"
	"microscope/internal/ports"
)

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "go to card"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

const maxShownResults = 10

// SearchModel searches card text through the timeline index
type SearchModel struct {
	ViewState
	index   ports.TimelineIndex
	input   textinput.Model
	results []commands.SearchResult
	cursor  int
	query   string

	copy func(string) error
}

// NewSearchModel creates a new search view model
func NewSearchModel(index ports.TimelineIndex) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search cards..."
	input.Focus()

	return &SearchModel{
		index: index,
		input: input,
		copy:  clipboard.WriteAll,
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset resets the search view
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.results = nil
	m.cursor = 0
	m.query = ""
	m.input.Focus()
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case searchResultsMsg:
		// drop answers to queries the user has already typed past
		if msg.query != m.query {
			return m, nil
		}
		m.results = msg.results
		m.cursor = 0
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
		} else {
			m.ClearMessage()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToTimelineMsg{}
			}

		case key.Matches(msg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			if m.cursor < min(len(m.results), maxShownResults)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if m.cursor >= 0 && m.cursor < len(m.results) {
				hit := m.results[m.cursor].SearchHit
				copied := m.copy(hit.Title) == nil
				return m, func() tea.Msg {
					return SearchSelectMsg{Hit: hit, Copied: copied}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	query := strings.TrimSpace(m.input.Value())
	if query == m.query {
		return m, cmd
	}
	m.query = query
	if len(query) >= 2 {
		return m, tea.Batch(cmd, m.search(query))
	}
	m.results = nil
	return m, cmd
}

func (m *SearchModel) search(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := commands.NewSearchCommand(m.index, query).Execute(context.Background())
		return searchResultsMsg{query: query, results: results, err: err}
	}
}

type searchResultsMsg struct {
	query   string
	results []commands.SearchResult
	err     error
}

// SearchSelectMsg is sent when a search result is chosen
type SearchSelectMsg struct {
	Hit    ports.SearchHit
	Copied bool
}

// View renders the search view
func (m *SearchModel) View() string {
	v := NewViewBuilder().Title("Search")
	v.Line(styles.InputFocused.Render(m.input.View()))
	v.BlankLine()
	v.Message(m.Message, m.MessageErr)

	switch {
	case len(m.results) > 0:
		v.Muted(fmt.Sprintf("%d results", len(m.results)))
		v.BlankLine()
		for i, r := range m.results[:min(len(m.results), maxShownResults)] {
			v.Line(m.renderResult(r.SearchHit, i == m.cursor))
		}
		if len(m.results) > maxShownResults {
			v.Muted(fmt.Sprintf("... and %d more", len(m.results)-maxShownResults))
		}
	case len(m.query) >= 2:
		v.Muted("No results found")
	default:
		v.Muted("Type at least 2 characters to search")
	}

	v.BlankLine()
	v.Help(SearchKeys.Up, SearchKeys.Down, SearchKeys.Select, SearchKeys.Cancel)
	return v.String()
}

func (m *SearchModel) renderResult(hit ports.SearchHit, selected bool) string {
	var tag string
	switch hit.Kind {
	case domain.KindPeriod:
		tag = "[PERIOD]"
	case domain.KindEvent:
		tag = "[EVENT] "
	case domain.KindScene:
		tag = "[SCENE] "
	}

	text := fmt.Sprintf("%s %-7s %s", tag, hit.Path, hit.Title)
	if m.Width > 8 {
		text = runewidth.Truncate(text, m.Width-8, "…")
	}

	if selected {
		return styles.Selected.Render(text)
	}
	return text
}
