package ports

import "microscope/internal/domain"

// FieldID names a text field of the editing panel
type FieldID int

const (
	FieldLabel FieldID = iota
	FieldQuestion
	FieldSetting
	FieldAnswer
)

func (f FieldID) String() string {
	switch f {
	case FieldLabel:
		return "label"
	case FieldQuestion:
		return "question"
	case FieldSetting:
		return "setting"
	case FieldAnswer:
		return "answer"
	default:
		return "unknown"
	}
}

// PanelKind is the form currently shown by the editing panel
type PanelKind int

const (
	PanelNone PanelKind = iota
	PanelPeriod
	PanelEvent
	PanelScene
)

// PanelFor returns the panel kind used to edit a content card
func PanelFor(kind domain.Kind) PanelKind {
	switch kind {
	case domain.KindPeriod:
		return PanelPeriod
	case domain.KindEvent:
		return PanelEvent
	case domain.KindScene:
		return PanelScene
	default:
		return PanelNone
	}
}

// EditPanel is the form used to edit the selected card
type EditPanel interface {
	FieldText(id FieldID) string
	Tone() domain.Tone
	SetFieldText(id FieldID, text string)
	SetTone(tone domain.Tone)
	Show(kind PanelKind)
	Clear()
}
