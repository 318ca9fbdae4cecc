package controller

import (
	"microscope/internal/domain"
	"microscope/internal/ports"
)

// bindWheel routes wheel input on every canvas to the scroll handlers
func (c *Controller) bindWheel() error {
	handlers := map[ports.CanvasID]func(int) error{
		ports.CanvasPeriods: c.ScrollPeriods,
		ports.CanvasEvents:  c.ScrollEvents,
		ports.CanvasScenes:  c.ScrollScenes,
	}
	for canvas, fn := range handlers {
		if err := c.surface.OnWheel(canvas, func(delta int) { c.fail(fn(delta)) }); err != nil {
			return surfaceErr("bind wheel", err)
		}
	}
	return nil
}

// SetViewport records the visible size of a canvas so scroll fractions stop
// at the far edge of the content
func (c *Controller) SetViewport(canvas ports.CanvasID, width, height int) error {
	c.viewports[canvas] = [2]int{width, height}
	return c.scrollBy(canvas, 0)
}

// ScrollEvents scrolls the Event canvas vertically by delta wheel notches
func (c *Controller) ScrollEvents(delta int) error {
	return c.scrollBy(ports.CanvasEvents, delta)
}

// ScrollPeriods scrolls the Period canvas horizontally
func (c *Controller) ScrollPeriods(delta int) error {
	return c.scrollBy(ports.CanvasPeriods, delta)
}

// ScrollScenes scrolls the Scene canvas horizontally
func (c *Controller) ScrollScenes(delta int) error {
	return c.scrollBy(ports.CanvasScenes, delta)
}

// ScrollOffset returns the scroll position of a canvas in cells
func (c *Controller) ScrollOffset(canvas ports.CanvasID) int {
	return c.scroll[canvas]
}

func (c *Controller) scrollBy(canvas ports.CanvasID, delta int) error {
	return c.scrollTo(canvas, c.scroll[canvas]+delta*c.wheelStep)
}

// scrollTo moves a canvas to offset cells, clamped to its content, and
// reports the fraction to the surface
func (c *Controller) scrollTo(canvas ports.CanvasID, offset int) error {
	axis := ports.AxisHorizontal
	if canvas == ports.CanvasEvents {
		axis = ports.AxisVertical
	}

	extent := c.extent(canvas, axis)
	view := c.viewports[canvas][0]
	if axis == ports.AxisVertical {
		view = c.viewports[canvas][1]
	}
	limit := max(extent-view, 0)

	offset = min(max(offset, 0), limit)
	c.scroll[canvas] = offset

	fraction := 0.0
	if limit > 0 {
		fraction = float64(offset) / float64(limit)
	}
	if err := c.surface.ScrollTo(axis, canvas, fraction); err != nil {
		return surfaceErr("scroll", err)
	}
	return nil
}

// anchorScenes scrolls the Scene canvas to the first divider of the open
// Event, which sits at that Event's column
func (c *Controller) anchorScenes() error {
	if c.openEvent == nil {
		return c.scrollTo(ports.CanvasScenes, 0)
	}
	return c.scrollTo(ports.CanvasScenes, c.openEvent.Children.At(0).Band.X)
}

// reclamp pulls every stored offset back inside its canvas after the
// content shrank
func (c *Controller) reclamp() error {
	for _, canvas := range []ports.CanvasID{ports.CanvasPeriods, ports.CanvasEvents, ports.CanvasScenes} {
		if err := c.scrollBy(canvas, 0); err != nil {
			return err
		}
	}
	return nil
}

// extent measures the laid-out content of a canvas along axis
func (c *Controller) extent(canvas ports.CanvasID, axis ports.Axis) int {
	var lists []*domain.SiblingList
	switch canvas {
	case ports.CanvasPeriods:
		lists = append(lists, c.tl.Periods())
	case ports.CanvasEvents:
		for _, p := range c.tl.Periods().Contents() {
			lists = append(lists, p.Children)
		}
	case ports.CanvasScenes:
		if c.openEvent != nil {
			lists = append(lists, c.openEvent.Children)
		}
	}

	size := 0
	for _, list := range lists {
		for _, card := range list.Items() {
			if axis == ports.AxisVertical {
				size = max(size, card.Band.Bottom())
			} else {
				size = max(size, card.Band.Right())
			}
		}
	}
	return size
}
