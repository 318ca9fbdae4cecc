package commands

import (
	"fmt"
	"strings"

	"microscope/internal/application"
	"microscope/internal/domain"
	"microscope/internal/ports"
)

// CardFields are the optional text fields of a card. Empty fields keep the
// card's current value.
type CardFields struct {
	Label    string
	Question string
	Setting  string
	Answer   string
	Tone     string
}

// IsEmpty reports whether no field is set
func (f CardFields) IsEmpty() bool {
	return f == CardFields{}
}

// validate checks the fields against the kind of card they will be applied to
func (f CardFields) validate(kind domain.Kind) error {
	if _, err := application.ParseTone(f.Tone); err != nil {
		return &application.ValidationError{Field: "tone", Message: err.Error()}
	}
	switch kind {
	case domain.KindScene:
		if f.Label != "" {
			return &application.ValidationError{
				Field:   "label",
				Message: "scenes have a question, setting and answer instead of a label",
			}
		}
	case domain.KindPeriod, domain.KindEvent:
		if f.Question != "" || f.Setting != "" || f.Answer != "" {
			return &application.ValidationError{
				Field:   "question",
				Message: fmt.Sprintf("%s cards only have a label", strings.ToLower(kind.String())),
			}
		}
	}
	return nil
}

// apply writes the set fields into a panel already filled with the card
func (f CardFields) apply(panel ports.EditPanel) {
	set := func(id ports.FieldID, value string) {
		if value != "" {
			panel.SetFieldText(id, value)
		}
	}
	set(ports.FieldLabel, f.Label)
	set(ports.FieldQuestion, f.Question)
	set(ports.FieldSetting, f.Setting)
	set(ports.FieldAnswer, f.Answer)
	if f.Tone != "" {
		tone, _ := application.ParseTone(f.Tone)
		panel.SetTone(tone)
	}
}

// parsePath parses a required card path
func parsePath(field, s string) (domain.Path, error) {
	if strings.TrimSpace(s) == "" {
		return domain.Path{}, &application.ValidationError{Field: field, Message: "card path is required"}
	}
	p, err := application.ParsePath(s)
	if err != nil {
		return domain.Path{}, &application.ValidationError{Field: field, Message: err.Error()}
	}
	return p, nil
}

// find resolves a path to a card of the timeline
func find(tl *domain.Timeline, p domain.Path) (*domain.Card, error) {
	card, err := tl.Find(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, application.ErrNotFound)
	}
	return card, nil
}
