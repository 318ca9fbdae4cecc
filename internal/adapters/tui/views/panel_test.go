package views

import (
	"errors"
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"microscope/internal/domain"
	"microscope/internal/ports"
)

func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestPanelModel_ShowActivatesFields(t *testing.T) {
	tests := []struct {
		kind ports.PanelKind
		want []ports.FieldID
	}{
		{ports.PanelPeriod, []ports.FieldID{ports.FieldLabel}},
		{ports.PanelEvent, []ports.FieldID{ports.FieldLabel}},
		{ports.PanelScene, []ports.FieldID{ports.FieldQuestion, ports.FieldSetting, ports.FieldAnswer}},
		{ports.PanelNone, []ports.FieldID{}},
	}

	for _, tt := range tests {
		p := NewPanelModel()
		p.Show(tt.kind)
		if got := p.form.Active(); !slices.Equal(got, tt.want) {
			t.Errorf("Show(%v) active = %v, want %v", tt.kind, got, tt.want)
		}
		if p.Kind() != tt.kind {
			t.Errorf("Kind() = %v, want %v", p.Kind(), tt.kind)
		}
	}
}

func TestPanelModel_FieldsAndClear(t *testing.T) {
	p := NewPanelModel()
	p.SetFieldText(ports.FieldQuestion, "Who lit the beacon?")
	p.SetFieldText(ports.FieldAnswer, "  the keeper ")
	p.SetTone(domain.ToneDark)
	p.Show(ports.PanelScene)

	if got := p.FieldText(ports.FieldQuestion); got != "Who lit the beacon?" {
		t.Errorf("question = %q", got)
	}
	if got := p.FieldText(ports.FieldAnswer); got != "  the keeper " {
		t.Errorf("answer = %q, want the text untrimmed", got)
	}
	if p.Tone() != domain.ToneDark {
		t.Error("tone should be dark")
	}

	p.Clear()
	if p.FieldText(ports.FieldQuestion) != "" || p.Tone() != domain.ToneLight || p.Kind() != ports.PanelNone {
		t.Error("Clear() should empty the fields, reset the tone and hide the form")
	}
}

func TestPanelModel_Keys(t *testing.T) {
	var copied string
	p := NewPanelModel()
	p.copy = func(s string) error {
		copied = s
		return nil
	}
	p.SetFieldText(ports.FieldLabel, "Exodus")
	p.Show(ports.PanelEvent)
	p.SetFocused(true)

	if _, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter}); runCmd(cmd) != (PanelSubmitMsg{}) {
		t.Error("enter should submit")
	}
	if _, cmd := p.Update(tea.KeyMsg{Type: tea.KeyCtrlD}); runCmd(cmd) != (SwitchToDeleteMsg{}) {
		t.Error("ctrl+d should ask for delete confirmation")
	}

	p.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if p.Tone() != domain.ToneDark {
		t.Error("ctrl+t should switch to dark")
	}
	p.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if p.Tone() != domain.ToneLight {
		t.Error("ctrl+t should switch back to light")
	}

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	if msg, ok := runCmd(cmd).(OpenEditorMsg); !ok || msg.Field != ports.FieldLabel || msg.Text != "Exodus" {
		t.Errorf("ctrl+e = %#v, want the label sent to the editor", runCmd(cmd))
	}

	_, cmd = p.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if msg, ok := runCmd(cmd).(StatusMsg); !ok || msg.Err {
		t.Errorf("ctrl+y = %#v, want a success status", msg)
	}
	if copied != "Exodus" {
		t.Errorf("copied %q, want the focused field", copied)
	}

	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	if got := p.FieldText(ports.FieldLabel); got != "Exodus!" {
		t.Errorf("label = %q, want typed text appended", got)
	}
}

func TestPanelModel_CopyFailure(t *testing.T) {
	p := NewPanelModel()
	p.copy = func(string) error { return errors.New("no display") }
	p.Show(ports.PanelPeriod)
	p.SetFocused(true)

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	msg, ok := runCmd(cmd).(StatusMsg)
	if !ok || !msg.Err {
		t.Errorf("got %#v, want an error status", msg)
	}
}

func TestPanelModel_HiddenIgnoresKeys(t *testing.T) {
	p := NewPanelModel()
	p.SetFocused(true)

	handled, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if handled || cmd != nil {
		t.Error("a hidden panel should not handle keys")
	}
}

func TestInputForm_Navigation(t *testing.T) {
	f := NewInputForm(
		NewInputField(ports.FieldQuestion, "Question", "", 0),
		NewInputField(ports.FieldSetting, "Setting", "", 0),
		NewInputField(ports.FieldAnswer, "Answer", "", 0),
	)
	f.Activate(ports.FieldQuestion, ports.FieldAnswer)

	if id, _ := f.Focused(); id != ports.FieldQuestion {
		t.Fatalf("focused = %v, want question", id)
	}
	f.Update(tea.KeyMsg{Type: tea.KeyDown})
	if id, _ := f.Focused(); id != ports.FieldAnswer {
		t.Errorf("focused = %v, want answer (setting is inactive)", id)
	}
	f.Update(tea.KeyMsg{Type: tea.KeyDown})
	if id, _ := f.Focused(); id != ports.FieldQuestion {
		t.Errorf("focused = %v, want wrap to question", id)
	}
	f.Update(tea.KeyMsg{Type: tea.KeyUp})
	if id, _ := f.Focused(); id != ports.FieldAnswer {
		t.Errorf("focused = %v, want answer", id)
	}

	f.SetValue(ports.FieldSetting, "kept")
	f.Reset()
	if _, ok := f.Focused(); ok {
		t.Error("Reset() should hide every field")
	}
	if f.Value(ports.FieldSetting) != "" {
		t.Error("Reset() should clear values")
	}
}
