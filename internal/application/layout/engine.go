// Package layout assigns every card of a sibling list its band on a canvas.
//
// Along the primary axis the two boundary Dividers take half the spacing,
// interior Dividers the full spacing and content cards one unit. The cross
// extent is the same for every card of a level. Layout is always recomputed
// in full for a level; there is no incremental update.
package layout

import (
	"fmt"

	"microscope/internal/domain"
	"microscope/internal/ports"
)

// Metrics are the sizing rules of one level
type Metrics struct {
	Unit    int // content extent along the primary axis
	Cross   int // extent along the cross axis
	Spacing int // interior divider extent along the primary axis
}

// Origin is where the first card of a list is placed
type Origin struct {
	X, Y int
}

// Config holds the metrics of the three levels
type Config struct {
	Periods Metrics
	Events  Metrics
	Scenes  Metrics
}

// DefaultConfig returns metrics sized for terminal cells
func DefaultConfig() Config {
	return Config{
		Periods: Metrics{Unit: 24, Cross: 8, Spacing: 6},
		Events:  Metrics{Unit: 5, Cross: 24, Spacing: 2},
		Scenes:  Metrics{Unit: 26, Cross: 8, Spacing: 6},
	}
}

// Extent returns the primary-axis extent of position i in a list of n cards
func Extent(i, n int, m Metrics) int {
	switch {
	case i == 0 || i == n-1:
		return m.Spacing / 2
	case i%2 == 0:
		return m.Spacing
	default:
		return m.Unit
	}
}

// Place computes the band of every card in list. It reads nothing but its
// arguments, so equal inputs always give equal bands.
func Place(list *domain.SiblingList, m Metrics, axis ports.Axis, origin Origin) []domain.Band {
	n := list.Len()
	bands := make([]domain.Band, n)
	offset := 0
	for i := 0; i < n; i++ {
		size := Extent(i, n, m)
		if axis == ports.AxisHorizontal {
			bands[i] = domain.Band{X: origin.X + offset, Y: origin.Y, Width: size, Height: m.Cross}
		} else {
			bands[i] = domain.Band{X: origin.X, Y: origin.Y + offset, Width: m.Cross, Height: size}
		}
		offset += size
	}
	return bands
}

// Bounds returns the bounding box of bands measured from the canvas origin
func Bounds(bands ...[]domain.Band) (width, height int) {
	for _, set := range bands {
		for _, b := range set {
			width = max(width, b.Right())
			height = max(height, b.Bottom())
		}
	}
	return width, height
}

// Engine applies placements to cards and their on-screen elements
type Engine struct {
	cfg     Config
	surface ports.Surface
}

// NewEngine creates a layout engine drawing on surface
func NewEngine(surface ports.Surface, cfg Config) *Engine {
	return &Engine{cfg: cfg, surface: surface}
}

// Config returns the metrics in use
func (e *Engine) Config() Config {
	return e.cfg
}

// LayoutPeriods places the Period list along the horizontal axis
func (e *Engine) LayoutPeriods(tl *domain.Timeline) error {
	bands := Place(tl.Periods(), e.cfg.Periods, ports.AxisHorizontal, Origin{})
	if err := e.apply(tl.Periods(), bands); err != nil {
		return err
	}
	w, h := Bounds(bands)
	return e.surface.SetScrollRegion(ports.CanvasPeriods, w, h)
}

// LayoutEvents places each Period's Event list vertically, in a column
// starting at that Period's x position. Periods must be laid out first.
func (e *Engine) LayoutEvents(tl *domain.Timeline) error {
	var all [][]domain.Band
	for _, period := range tl.Periods().Contents() {
		bands := Place(period.Children, e.cfg.Events, ports.AxisVertical, Origin{X: period.Band.X})
		if err := e.apply(period.Children, bands); err != nil {
			return err
		}
		all = append(all, bands)
	}
	w, h := Bounds(all...)
	return e.surface.SetScrollRegion(ports.CanvasEvents, w, h)
}

// LayoutScenes places the Scenes of the open Event horizontally, anchored at
// the Event's x position. A nil event empties the Scene canvas extent.
func (e *Engine) LayoutScenes(open *domain.Card) error {
	if open == nil {
		return e.surface.SetScrollRegion(ports.CanvasScenes, 0, 0)
	}
	bands := Place(open.Children, e.cfg.Scenes, ports.AxisHorizontal, Origin{X: open.Band.X})
	if err := e.apply(open.Children, bands); err != nil {
		return err
	}
	w, h := Bounds(bands)
	return e.surface.SetScrollRegion(ports.CanvasScenes, w, h)
}

// LayoutAll runs every level top-down
func (e *Engine) LayoutAll(tl *domain.Timeline, open *domain.Card) error {
	if err := e.LayoutPeriods(tl); err != nil {
		return err
	}
	if err := e.LayoutEvents(tl); err != nil {
		return err
	}
	return e.LayoutScenes(open)
}

func (e *Engine) apply(list *domain.SiblingList, bands []domain.Band) error {
	for i, card := range list.Items() {
		b := bands[i]
		card.SetBand(b)
		if card.Handle == domain.NoHandle {
			continue
		}
		if err := e.surface.MoveElement(card.Handle, b.X, b.Y); err != nil {
			return fmt.Errorf("failed to move %s %d: %w", card.Kind, card.Index, err)
		}
		if err := e.surface.ResizeElement(card.Handle, b.Width, b.Height); err != nil {
			return fmt.Errorf("failed to resize %s %d: %w", card.Kind, card.Index, err)
		}
	}
	return nil
}
