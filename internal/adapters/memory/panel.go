// Package memory provides a headless editing panel for callers without a
// terminal, such as the MCP server and the CLI.
package memory

import (
	"microscope/internal/domain"
	"microscope/internal/ports"
)

// Panel keeps form state in memory
type Panel struct {
	fields map[ports.FieldID]string
	tone   domain.Tone
	kind   ports.PanelKind
}

var _ ports.EditPanel = (*Panel)(nil)

// NewPanel returns an empty, hidden panel
func NewPanel() *Panel {
	return &Panel{fields: make(map[ports.FieldID]string)}
}

func (p *Panel) FieldText(id ports.FieldID) string {
	return p.fields[id]
}

func (p *Panel) Tone() domain.Tone {
	return p.tone
}

func (p *Panel) SetFieldText(id ports.FieldID, text string) {
	p.fields[id] = text
}

func (p *Panel) SetTone(tone domain.Tone) {
	p.tone = tone
}

func (p *Panel) Show(kind ports.PanelKind) {
	p.kind = kind
}

// Clear empties every field and hides the form
func (p *Panel) Clear() {
	clear(p.fields)
	p.tone = domain.ToneLight
	p.kind = ports.PanelNone
}

// Kind returns the form being shown
func (p *Panel) Kind() ports.PanelKind {
	return p.kind
}
