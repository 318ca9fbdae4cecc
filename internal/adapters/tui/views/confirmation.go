package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"microscope/internal/adapters/tui/styles"
	"microscope/internal/domain"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel asks before an action on one timeline card
type ConfirmationModel struct {
	ViewState
	Target *domain.Card
	Path   domain.Path
	Keys   ConfirmKeyMap
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() ConfirmationModel {
	return ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// SetTarget sets the card the confirmation is about
func (m *ConfirmationModel) SetTarget(card *domain.Card, path domain.Path) {
	m.Target = card
	m.Path = path
}

// Question names the action and its target, e.g. "Delete Period 2?"
func (m *ConfirmationModel) Question(verb string) string {
	if m.Target == nil {
		return verb + "?"
	}
	return fmt.Sprintf("%s %s %s?", verb, m.Target.Kind, m.Path)
}

// HandleKeyMsg processes key messages for confirmation views.
// Returns (handled, cmd) where handled is true if the key was processed.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg, onConfirm, onCancel func() tea.Msg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		return true, func() tea.Msg { return onCancel() }
	case key.Matches(msg, m.Keys.Confirm):
		return true, func() tea.Msg { return onConfirm() }
	}
	return false, nil
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}

// RenderTargetInfo describes a content card by kind, path and title, and
// what else goes with it
func RenderTargetInfo(card *domain.Card, path domain.Path) string {
	if card == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(card.Kind.String() + " " + path.String()))
	b.WriteString("\n  ")
	b.WriteString(swatch(card.Tone))
	b.WriteString(" ")
	b.WriteString(card.Title())
	if label := card.SceneCountLabel(); label != "" {
		b.WriteString(styles.Count.Render(" (" + label + ")"))
	}
	if nested := nestedSummary(card); nested != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("  Also removes " + nested + "."))
	}
	return b.String()
}

// nestedSummary counts the content cards below card by kind, e.g.
// "2 Events and 5 Scenes"
func nestedSummary(card *domain.Card) string {
	counts := map[domain.Kind]int{}
	for _, sub := range card.Subtree()[1:] {
		if sub.IsContent() {
			counts[sub.Kind]++
		}
	}

	var parts []string
	for _, kind := range []domain.Kind{domain.KindEvent, domain.KindScene} {
		switch n := counts[kind]; n {
		case 0:
		case 1:
			parts = append(parts, "1 "+kind.String())
		default:
			parts = append(parts, fmt.Sprintf("%d %ss", n, kind))
		}
	}
	return strings.Join(parts, " and ")
}
