// Package canvas is an in-memory implementation of ports.Surface. It keeps
// the element registry, input callbacks and scroll state for each canvas; the
// terminal views draw from it and headless callers use it as is.
package canvas

import (
	"errors"
	"fmt"
	"slices"

	"microscope/internal/domain"
	"microscope/internal/ports"
)

// ErrUnknownHandle is returned for handles that were never created or were
// already deleted
var ErrUnknownHandle = errors.New("unknown element handle")

// Element is one placed card
type Element struct {
	Handle domain.Handle
	Canvas ports.CanvasID
	Band   domain.Band
	Card   *domain.Card // last rendered card, nil until RenderElement

	onPress   func()
	onRelease func()
}

// Region is the scrollable extent of a canvas and its viewport position
type Region struct {
	Width, Height int
	ScrollX       float64 // fraction in [0, 1]
	ScrollY       float64
}

// Canvas holds every element of the three canvases
type Canvas struct {
	next     domain.Handle
	elements map[domain.Handle]*Element
	wheel    map[ports.CanvasID]func(int)
	regions  map[ports.CanvasID]*Region
}

// Ensure Canvas implements Surface
var _ ports.Surface = (*Canvas)(nil)

// New creates an empty canvas set
func New() *Canvas {
	return &Canvas{
		elements: make(map[domain.Handle]*Element),
		wheel:    make(map[ports.CanvasID]func(int)),
		regions: map[ports.CanvasID]*Region{
			ports.CanvasPeriods: {},
			ports.CanvasEvents:  {},
			ports.CanvasScenes:  {},
		},
	}
}

// CreateElement allocates a new element on the given canvas
func (c *Canvas) CreateElement(canvas ports.CanvasID) (domain.Handle, error) {
	if _, ok := c.regions[canvas]; !ok {
		return domain.NoHandle, fmt.Errorf("unknown canvas %d", canvas)
	}
	c.next++
	c.elements[c.next] = &Element{Handle: c.next, Canvas: canvas}
	return c.next, nil
}

// DeleteElement releases an element and its callbacks
func (c *Canvas) DeleteElement(h domain.Handle) error {
	if _, ok := c.elements[h]; !ok {
		return fmt.Errorf("delete %d: %w", h, ErrUnknownHandle)
	}
	delete(c.elements, h)
	return nil
}

// MoveElement positions an element
func (c *Canvas) MoveElement(h domain.Handle, x, y int) error {
	el, err := c.lookup("move", h)
	if err != nil {
		return err
	}
	el.Band.X, el.Band.Y = x, y
	return nil
}

// ResizeElement sizes an element
func (c *Canvas) ResizeElement(h domain.Handle, width, height int) error {
	el, err := c.lookup("resize", h)
	if err != nil {
		return err
	}
	el.Band.Width, el.Band.Height = width, height
	return nil
}

// RenderElement binds the card the element draws
func (c *Canvas) RenderElement(h domain.Handle, card *domain.Card) error {
	el, err := c.lookup("render", h)
	if err != nil {
		return err
	}
	el.Card = card
	return nil
}

// OnPress registers the press callback of an element
func (c *Canvas) OnPress(h domain.Handle, fn func()) error {
	el, err := c.lookup("bind press", h)
	if err != nil {
		return err
	}
	el.onPress = fn
	return nil
}

// OnRelease registers the release callback of an element
func (c *Canvas) OnRelease(h domain.Handle, fn func()) error {
	el, err := c.lookup("bind release", h)
	if err != nil {
		return err
	}
	el.onRelease = fn
	return nil
}

// OnWheel registers the scroll-wheel callback of a canvas
func (c *Canvas) OnWheel(canvas ports.CanvasID, fn func(delta int)) error {
	if _, ok := c.regions[canvas]; !ok {
		return fmt.Errorf("unknown canvas %d", canvas)
	}
	c.wheel[canvas] = fn
	return nil
}

// SetScrollRegion records the scrollable extent of a canvas
func (c *Canvas) SetScrollRegion(canvas ports.CanvasID, width, height int) error {
	r, ok := c.regions[canvas]
	if !ok {
		return fmt.Errorf("unknown canvas %d", canvas)
	}
	r.Width, r.Height = width, height
	return nil
}

// ScrollTo moves the viewport of a canvas along one axis
func (c *Canvas) ScrollTo(axis ports.Axis, canvas ports.CanvasID, fraction float64) error {
	r, ok := c.regions[canvas]
	if !ok {
		return fmt.Errorf("unknown canvas %d", canvas)
	}
	fraction = min(max(fraction, 0), 1)
	if axis == ports.AxisHorizontal {
		r.ScrollX = fraction
	} else {
		r.ScrollY = fraction
	}
	return nil
}

// Region returns the extent and scroll position of a canvas
func (c *Canvas) Region(canvas ports.CanvasID) Region {
	if r, ok := c.regions[canvas]; ok {
		return *r
	}
	return Region{}
}

// Len returns the number of live elements
func (c *Canvas) Len() int {
	return len(c.elements)
}

// Element returns a copy of the element behind a handle
func (c *Canvas) Element(h domain.Handle) (Element, bool) {
	el, ok := c.elements[h]
	if !ok {
		return Element{}, false
	}
	return *el, true
}

// Elements returns the elements of a canvas ordered top to bottom, then
// left to right
func (c *Canvas) Elements(canvas ports.CanvasID) []Element {
	var out []Element
	for _, el := range c.elements {
		if el.Canvas == canvas {
			out = append(out, *el)
		}
	}
	slices.SortFunc(out, func(a, b Element) int {
		if a.Band.Y != b.Band.Y {
			return a.Band.Y - b.Band.Y
		}
		if a.Band.X != b.Band.X {
			return a.Band.X - b.Band.X
		}
		return int(a.Handle - b.Handle)
	})
	return out
}

// ElementAt hit-tests a canvas coordinate
func (c *Canvas) ElementAt(canvas ports.CanvasID, x, y int) (domain.Handle, bool) {
	for _, el := range c.elements {
		if el.Canvas == canvas && el.Band.Contains(x, y) {
			return el.Handle, true
		}
	}
	return domain.NoHandle, false
}

// Press dispatches a press to an element
func (c *Canvas) Press(h domain.Handle) error {
	el, err := c.lookup("press", h)
	if err != nil {
		return err
	}
	if el.onPress != nil {
		el.onPress()
	}
	return nil
}

// Release dispatches a release to an element
func (c *Canvas) Release(h domain.Handle) error {
	el, err := c.lookup("release", h)
	if err != nil {
		return err
	}
	if el.onRelease != nil {
		el.onRelease()
	}
	return nil
}

// Click presses and releases an element
func (c *Canvas) Click(h domain.Handle) error {
	if err := c.Press(h); err != nil {
		return err
	}
	return c.Release(h)
}

// Wheel dispatches a scroll-wheel gesture to a canvas
func (c *Canvas) Wheel(canvas ports.CanvasID, delta int) {
	if fn := c.wheel[canvas]; fn != nil {
		fn(delta)
	}
}

func (c *Canvas) lookup(op string, h domain.Handle) (*Element, error) {
	el, ok := c.elements[h]
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", op, h, ErrUnknownHandle)
	}
	return el, nil
}
