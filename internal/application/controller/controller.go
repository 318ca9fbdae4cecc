// Package controller drives the timeline from user input.
//
// The Controller owns the timeline, the rendering surface and the editing
// panel. It is the only code that changes the tree: divider clicks insert,
// content clicks select and fill the panel, and panel submissions replace or
// delete the selected card. Every structural change is followed by a full
// relayout of the affected levels. All methods run synchronously on the
// caller's goroutine and must not be called concurrently.
package controller

import (
	"fmt"
	"io"
	"log/slog"

	"microscope/internal/application"
	"microscope/internal/application/layout"
	"microscope/internal/domain"
	"microscope/internal/ports"
)

// Slot is one of the two independent selections
type Slot int

const (
	// SlotPrimary holds the selected Period or Event; they share the panel.
	SlotPrimary Slot = iota
	// SlotScene holds the selected Scene of the open Event.
	SlotScene
)

func (s Slot) String() string {
	if s == SlotScene {
		return "scene"
	}
	return "primary"
}

// SlotFor returns the selection slot a content kind belongs to
func SlotFor(kind domain.Kind) Slot {
	if kind == domain.KindScene {
		return SlotScene
	}
	return SlotPrimary
}

// Controller is the selection and edit state machine
type Controller struct {
	tl      *domain.Timeline
	surface ports.Surface
	panel   ports.EditPanel
	engine  *layout.Engine
	log     *slog.Logger

	// cards maps live handles to the card currently bound to them. Replace
	// moves a handle to a new card, so callbacks resolve through here.
	cards map[domain.Handle]*domain.Card

	selected  [2]*domain.Card
	editing   Slot
	panelOpen bool
	openEvent *domain.Card

	scroll    map[ports.CanvasID]int
	viewports map[ports.CanvasID][2]int
	wheelStep int

	listeners []func()
	lastErr   error
}

// Option configures the Controller
type Option func(*Controller)

// WithLogger sets the logger
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithWheelStep sets how many cells one wheel notch scrolls
func WithWheelStep(step int) Option {
	return func(c *Controller) {
		if step > 0 {
			c.wheelStep = step
		}
	}
}

// New binds every visible card of tl to the surface, lays the timeline out
// and returns the controller
func New(tl *domain.Timeline, surface ports.Surface, panel ports.EditPanel, engine *layout.Engine, opts ...Option) (*Controller, error) {
	c := &Controller{
		tl:        tl,
		surface:   surface,
		panel:     panel,
		engine:    engine,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		cards:     make(map[domain.Handle]*domain.Card),
		scroll:    make(map[ports.CanvasID]int),
		viewports: make(map[ports.CanvasID][2]int),
		wheelStep: 3,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.bindWheel(); err != nil {
		return nil, err
	}
	for _, card := range tl.Periods().Items() {
		if err := c.bindCard(card); err != nil {
			return nil, err
		}
		if card.IsContent() {
			if err := c.bindList(card.Children); err != nil {
				return nil, err
			}
		}
	}
	if err := c.engine.LayoutAll(tl, nil); err != nil {
		return nil, fmt.Errorf("initial layout: %w", err)
	}

	panel.Clear()
	c.log.Debug("controller ready", "periods", tl.Periods().ContentCount(), "elements", len(c.cards))
	return c, nil
}

// Timeline returns the tree being edited
func (c *Controller) Timeline() *domain.Timeline {
	return c.tl
}

// Panel returns the editing panel the controller fills
func (c *Controller) Panel() ports.EditPanel {
	return c.panel
}

// Selection returns the selected card of a slot, or nil
func (c *Controller) Selection(slot Slot) *domain.Card {
	return c.selected[slot]
}

// Editing returns the slot whose card fills the panel
func (c *Controller) Editing() (Slot, bool) {
	return c.editing, c.panelOpen
}

// OpenEvent returns the Event whose Scenes are shown, or nil
func (c *Controller) OpenEvent() *domain.Card {
	return c.openEvent
}

// CardFor returns the card bound to a handle
func (c *Controller) CardFor(h domain.Handle) (*domain.Card, bool) {
	card, ok := c.cards[h]
	return card, ok
}

// Elements returns the number of live handles owned by the controller
func (c *Controller) Elements() int {
	return len(c.cards)
}

// OnChange registers fn to run after every successful structural change
func (c *Controller) OnChange(fn func()) {
	c.listeners = append(c.listeners, fn)
}

// LastError returns and clears the error raised inside a surface callback
func (c *Controller) LastError() error {
	err := c.lastErr
	c.lastErr = nil
	return err
}

func (c *Controller) changed() {
	for _, fn := range c.listeners {
		fn()
	}
}

// contains reports whether card and all of its owners are still at their
// recorded positions in the tree
func (c *Controller) contains(card *domain.Card) bool {
	for card != nil {
		list := c.tl.ListFor(card.Scope)
		if list == nil || list.At(card.Index) != card {
			return false
		}
		if card.Scope.Owner == nil {
			return true
		}
		card = card.Scope.Owner
	}
	return false
}

func surfaceErr(op string, err error) error {
	return &application.SurfaceError{Op: op, Err: err}
}
