package application

import "microscope/internal/domain"

// Re-export domain types for use by adapters
type (
	Card     = domain.Card
	Kind     = domain.Kind
	Tone     = domain.Tone
	Path     = domain.Path
	Level    = domain.Level
	Timeline = domain.Timeline
)

const (
	KindDivider = domain.KindDivider
	KindPeriod  = domain.KindPeriod
	KindEvent   = domain.KindEvent
	KindScene   = domain.KindScene

	ToneLight = domain.ToneLight
	ToneDark  = domain.ToneDark
)

// ParsePath parses a dotted card path such as "2.1.3"
func ParsePath(s string) (Path, error) {
	return domain.ParsePath(s)
}

// ParseTone parses "light" or "dark"
func ParseTone(s string) (Tone, error) {
	return domain.ParseTone(s)
}
