package ports

import "microscope/internal/domain"

// CanvasID names one of the scrollable canvases cards are placed on
type CanvasID int

const (
	CanvasPeriods CanvasID = iota
	CanvasEvents
	CanvasScenes
)

func (c CanvasID) String() string {
	switch c {
	case CanvasPeriods:
		return "periods"
	case CanvasEvents:
		return "events"
	case CanvasScenes:
		return "scenes"
	default:
		return "unknown"
	}
}

// CanvasFor returns the canvas cards of a level are placed on
func CanvasFor(level domain.Level) CanvasID {
	switch level {
	case domain.LevelEvents:
		return CanvasEvents
	case domain.LevelScenes:
		return CanvasScenes
	default:
		return CanvasPeriods
	}
}

// Axis is a scroll direction
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// Surface is the rendering surface cards are drawn on. Every handle returned
// by CreateElement must be released with DeleteElement exactly once.
type Surface interface {
	// Element lifecycle
	CreateElement(canvas CanvasID) (domain.Handle, error)
	DeleteElement(h domain.Handle) error

	// Placement and drawing
	MoveElement(h domain.Handle, x, y int) error
	ResizeElement(h domain.Handle, width, height int) error
	RenderElement(h domain.Handle, card *domain.Card) error

	// Input. A card's sub-regions all route to the same callbacks.
	OnPress(h domain.Handle, fn func()) error
	OnRelease(h domain.Handle, fn func()) error
	OnWheel(canvas CanvasID, fn func(delta int)) error

	// Scrolling
	SetScrollRegion(canvas CanvasID, width, height int) error
	ScrollTo(axis Axis, canvas CanvasID, fraction float64) error
}
