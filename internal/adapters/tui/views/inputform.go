package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"microscope/internal/adapters/tui/styles"
	"microscope/internal/ports"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Next key.Binding
	Prev key.Binding
}

// DefaultInputFormKeys returns the default input form key bindings
var DefaultInputFormKeys = InputFormKeyMap{
	Next: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous field"),
	),
}

// InputField is a labelled text input bound to a panel field
type InputField struct {
	ID    ports.FieldID
	Label string
	Input textinput.Model
}

// InputForm manages the text inputs of the edit panel. Only the fields of
// the current form are active; the rest keep their values hidden.
type InputForm struct {
	Fields       []InputField
	FocusedField int
	Keys         InputFormKeyMap
	active       []int
}

// NewInputForm creates a form over the given fields, all inactive
func NewInputForm(fields ...InputField) *InputForm {
	return &InputForm{
		Fields: fields,
		Keys:   DefaultInputFormKeys,
	}
}

// NewInputField creates a new input field with the given label and placeholder
func NewInputField(id ports.FieldID, label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = ""
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{
		ID:    id,
		Label: label,
		Input: input,
	}
}

// Init returns the blink command for the focused input
func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

// Activate shows exactly the fields named by ids, in that order, and focuses
// the first one
func (f *InputForm) Activate(ids ...ports.FieldID) {
	f.Blur()
	f.active = f.active[:0]
	for _, id := range ids {
		if i := f.index(id); i >= 0 {
			f.active = append(f.active, i)
		}
	}
	f.FocusedField = 0
	f.Focus()
}

// Active returns the ids of the visible fields
func (f *InputForm) Active() []ports.FieldID {
	ids := make([]ports.FieldID, 0, len(f.active))
	for _, i := range f.active {
		ids = append(ids, f.Fields[i].ID)
	}
	return ids
}

// Focused returns the id of the focused field
func (f *InputForm) Focused() (ports.FieldID, bool) {
	if len(f.active) == 0 {
		return 0, false
	}
	return f.Fields[f.active[f.FocusedField]].ID, true
}

// Update handles messages for the input form.
// Returns (handled, cmd) where handled is true if the key was processed.
func (f *InputForm) Update(msg tea.Msg) (bool, tea.Cmd) {
	if len(f.active) == 0 {
		return false, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.Keys.Next):
			f.move(1)
			return true, nil
		case key.Matches(msg, f.Keys.Prev):
			f.move(-1)
			return true, nil
		}
	}

	var cmd tea.Cmd
	i := f.active[f.FocusedField]
	f.Fields[i].Input, cmd = f.Fields[i].Input.Update(msg)
	return false, cmd
}

func (f *InputForm) move(step int) {
	if len(f.active) <= 1 {
		return
	}
	f.Blur()
	f.FocusedField = (f.FocusedField + step + len(f.active)) % len(f.active)
	f.Focus()
}

// Focus gives keyboard focus to the focused field
func (f *InputForm) Focus() {
	if len(f.active) > 0 {
		f.Fields[f.active[f.FocusedField]].Input.Focus()
	}
}

// Blur removes keyboard focus from every field
func (f *InputForm) Blur() {
	for i := range f.Fields {
		f.Fields[i].Input.Blur()
	}
}

// Value returns the text of a field, untrimmed
func (f *InputForm) Value(id ports.FieldID) string {
	if i := f.index(id); i >= 0 {
		return f.Fields[i].Input.Value()
	}
	return ""
}

// SetValue sets the text of a field
func (f *InputForm) SetValue(id ports.FieldID, value string) {
	if i := f.index(id); i >= 0 {
		f.Fields[i].Input.SetValue(value)
	}
}

// Reset clears every field and hides the form
func (f *InputForm) Reset() {
	for i := range f.Fields {
		f.Fields[i].Input.SetValue("")
		f.Fields[i].Input.Blur()
	}
	f.active = f.active[:0]
	f.FocusedField = 0
}

// SetWidth sizes every input
func (f *InputForm) SetWidth(width int) {
	for i := range f.Fields {
		f.Fields[i].Input.Width = max(width, 1)
	}
}

func (f *InputForm) index(id ports.FieldID) int {
	for i := range f.Fields {
		if f.Fields[i].ID == id {
			return i
		}
	}
	return -1
}

// View renders the active fields with their labels
func (f *InputForm) View(focused bool) string {
	var b strings.Builder
	for n, i := range f.active {
		field := f.Fields[i]
		b.WriteString(styles.InputLabel.Render(field.Label))
		b.WriteString("\n")
		if focused && n == f.FocusedField {
			b.WriteString(styles.InputFocused.Render(field.Input.View()))
		} else {
			b.WriteString(styles.InputField.Render(field.Input.View()))
		}
		b.WriteString("\n")
	}
	return b.String()
}
