package application

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"microscope/internal/domain"
)

// MaxTextLength bounds every text field of a card
const MaxTextLength = 500

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// ValidateLength checks that a field fits MaxTextLength
func ValidateLength(fieldName, value string) error {
	if n := utf8.RuneCountInString(value); n > MaxTextLength {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is too long (%d > %d characters)", formatFieldName(fieldName), n, MaxTextLength),
		}
	}
	return nil
}

// formatFieldName converts field names to display words for error messages
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"label":    "label",
		"question": "scene question",
		"setting":  "scene setting",
		"answer":   "scene answer",
		"path":     "card path",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateCard checks the text fields of a content card before it enters
// the timeline
func ValidateCard(c *domain.Card) error {
	switch c.Kind {
	case domain.KindPeriod, domain.KindEvent:
		if err := ValidateRequired("label", c.Label); err != nil {
			return err
		}
		return ValidateLength("label", c.Label)
	case domain.KindScene:
		if err := ValidateRequired("question", c.Question); err != nil {
			return err
		}
		for field, value := range map[string]string{
			"question": c.Question,
			"setting":  c.Setting,
			"answer":   c.Answer,
		} {
			if err := ValidateLength(field, value); err != nil {
				return err
			}
		}
		return nil
	default:
		return &ValidationError{Field: "kind", Message: fmt.Sprintf("cannot edit a %s", c.Kind)}
	}
}
