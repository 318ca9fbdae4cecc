package views

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"microscope/internal/domain"
	"microscope/internal/ports"
)

// PanelKeyMap defines key bindings for the edit panel
type PanelKeyMap struct {
	Submit key.Binding
	Tone   key.Binding
	Delete key.Binding
	Editor key.Binding
	Copy   key.Binding
	Leave  key.Binding
}

var PanelKeys = PanelKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Tone: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "light/dark"),
	),
	Delete: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "delete"),
	),
	Editor: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "$EDITOR"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy"),
	),
	Leave: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

// PanelSubmitMsg asks for the panel contents to replace the selected card
type PanelSubmitMsg struct{}

// OpenEditorMsg asks for a panel field to be edited in $EDITOR
type OpenEditorMsg struct {
	Field ports.FieldID
	Text  string
}

// PanelModel is the edit panel. It implements ports.EditPanel so the
// controller fills and reads it directly.
type PanelModel struct {
	ViewState
	form    *InputForm
	tone    domain.Tone
	kind    ports.PanelKind
	focused bool

	// copy writes text to the system clipboard
	copy func(string) error
}

var _ ports.EditPanel = (*PanelModel)(nil)

// NewPanelModel creates a hidden panel
func NewPanelModel() *PanelModel {
	return &PanelModel{
		form: NewInputForm(
			NewInputField(ports.FieldLabel, "Label", "What happens here?", 120),
			NewInputField(ports.FieldQuestion, "Question", "The question this Scene answers", 200),
			NewInputField(ports.FieldSetting, "Setting", "Where and when", 200),
			NewInputField(ports.FieldAnswer, "Answer", "Left blank until played", 200),
		),
		copy: clipboard.WriteAll,
	}
}

// Init initializes the panel
func (m *PanelModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *PanelModel) FieldText(id ports.FieldID) string {
	return m.form.Value(id)
}

func (m *PanelModel) Tone() domain.Tone {
	return m.tone
}

func (m *PanelModel) SetFieldText(id ports.FieldID, text string) {
	m.form.SetValue(id, text)
}

func (m *PanelModel) SetTone(tone domain.Tone) {
	m.tone = tone
}

// Show displays the form of a card kind
func (m *PanelModel) Show(kind ports.PanelKind) {
	m.kind = kind
	switch kind {
	case ports.PanelScene:
		m.form.Activate(ports.FieldQuestion, ports.FieldSetting, ports.FieldAnswer)
	case ports.PanelPeriod, ports.PanelEvent:
		m.form.Activate(ports.FieldLabel)
	default:
		m.form.Activate()
	}
	if !m.focused {
		m.form.Blur()
	}
}

// Clear empties every field and hides the form
func (m *PanelModel) Clear() {
	m.form.Reset()
	m.tone = domain.ToneLight
	m.kind = ports.PanelNone
}

// Kind returns the form being shown
func (m *PanelModel) Kind() ports.PanelKind {
	return m.kind
}

// SetFocused gives or takes keyboard focus
func (m *PanelModel) SetFocused(focused bool) {
	m.focused = focused
	if focused {
		m.form.Focus()
	} else {
		m.form.Blur()
	}
}

// SetSize updates the view dimensions
func (m *PanelModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.form.SetWidth(width - 6)
}

// Update handles keys while the panel is focused
func (m *PanelModel) Update(msg tea.Msg) (bool, tea.Cmd) {
	if m.kind == ports.PanelNone {
		return false, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, PanelKeys.Submit):
			return true, func() tea.Msg { return PanelSubmitMsg{} }
		case key.Matches(msg, PanelKeys.Tone):
			m.tone = 1 - m.tone
			return true, nil
		case key.Matches(msg, PanelKeys.Delete):
			return true, func() tea.Msg { return SwitchToDeleteMsg{} }
		case key.Matches(msg, PanelKeys.Editor):
			if id, ok := m.form.Focused(); ok {
				text := m.form.Value(id)
				return true, func() tea.Msg { return OpenEditorMsg{Field: id, Text: text} }
			}
			return true, nil
		case key.Matches(msg, PanelKeys.Copy):
			return true, m.copyFocused()
		}
	}

	handled, cmd := m.form.Update(msg)
	if _, isKey := msg.(tea.KeyMsg); isKey {
		handled = true
	}
	return handled, cmd
}

func (m *PanelModel) copyFocused() tea.Cmd {
	id, ok := m.form.Focused()
	if !ok {
		return nil
	}
	text := m.form.Value(id)
	return func() tea.Msg {
		if err := m.copy(text); err != nil {
			return StatusMsg{Text: "Clipboard unavailable: " + err.Error(), Err: true}
		}
		return StatusMsg{Text: fmt.Sprintf("Copied %s", id)}
	}
}

func (m *PanelModel) title() string {
	switch m.kind {
	case ports.PanelPeriod:
		return "Edit Period"
	case ports.PanelEvent:
		return "Edit Event"
	case ports.PanelScene:
		return "Edit Scene"
	default:
		return "Timeline"
	}
}

// View renders the panel inside its frame
func (m *PanelModel) View() string {
	v := NewViewBuilder().Title(m.title())

	if m.kind == ports.PanelNone {
		v.Muted("Click a card to edit it.")
		v.Muted("Click + to insert a new one.")
		return v.Boxed(m.Width, m.focused)
	}

	v.Line(RenderLabelValue("Tone", swatch(m.tone)+" "+m.tone.String()))
	v.BlankLine()
	v.Raw(m.form.View(m.focused))
	v.BlankLine()
	if m.focused {
		v.Help(PanelKeys.Submit, PanelKeys.Tone, PanelKeys.Delete)
		v.BlankLine()
		v.Help(PanelKeys.Editor, PanelKeys.Copy, PanelKeys.Leave)
	} else {
		v.Muted("tab to edit")
	}
	return v.Boxed(m.Width, m.focused)
}
