package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"microscope/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToTimelineMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Microscope Help"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Periods run left to right, their Events below, the open Event's Scenes at the bottom."))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Timeline"))
	b.WriteString("\n")
	b.WriteString(helpLine("click / enter", "Select a card, or insert at a +"))
	b.WriteString(helpLine("← → ↑ ↓", "Move between cards"))
	b.WriteString(helpLine("wheel / pgup / pgdn", "Scroll the canvas"))
	b.WriteString(helpLine("tab / shift+tab", "Cycle Periods, Events, Scenes, panel"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Edit panel"))
	b.WriteString("\n")
	b.WriteString(helpLine("enter", "Save the card"))
	b.WriteString(helpLine("↑ / ↓", "Previous / next field"))
	b.WriteString(helpLine("ctrl+t", "Switch light and dark"))
	b.WriteString(helpLine("ctrl+d", "Delete the card and everything in it"))
	b.WriteString(helpLine("ctrl+e", "Edit the field in $EDITOR"))
	b.WriteString(helpLine("ctrl+y", "Copy the field"))
	b.WriteString(helpLine("esc", "Back to the canvas"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("/", "Search card text"))
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / ctrl+c", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 22)) + styles.HelpDesc.Render(desc) + "\n"
}

// padRight pads s with spaces to length terminal cells
func padRight(s string, length int) string {
	return runewidth.FillRight(s, length)
}
