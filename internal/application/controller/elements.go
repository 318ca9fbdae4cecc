package controller

import (
	"microscope/internal/domain"
	"microscope/internal/ports"
)

// bindCard creates the on-screen element of a card and routes its input back
// to the controller
func (c *Controller) bindCard(card *domain.Card) error {
	if card.Handle != domain.NoHandle {
		return nil
	}
	h, err := c.surface.CreateElement(ports.CanvasFor(card.Scope.Level))
	if err != nil {
		return surfaceErr("create element", err)
	}
	card.Handle = h
	c.cards[h] = card

	if err := c.surface.OnPress(h, func() { c.handlePress(h) }); err != nil {
		return surfaceErr("bind press", err)
	}
	if err := c.surface.OnRelease(h, func() { c.handleRelease(h) }); err != nil {
		return surfaceErr("bind release", err)
	}
	return c.render(card)
}

// bindList binds every card of a list, without descending
func (c *Controller) bindList(list *domain.SiblingList) error {
	for _, card := range list.Items() {
		if err := c.bindCard(card); err != nil {
			return err
		}
	}
	return nil
}

// unbindCard releases the element of a single card
func (c *Controller) unbindCard(card *domain.Card) error {
	if card.Handle == domain.NoHandle {
		return nil
	}
	h := card.Handle
	card.Handle = domain.NoHandle
	delete(c.cards, h)
	if err := c.surface.DeleteElement(h); err != nil {
		return surfaceErr("delete element", err)
	}
	return nil
}

// unbindSubtree releases the element of a card and of every descendant that
// has one. Each handle is released exactly once.
func (c *Controller) unbindSubtree(card *domain.Card) error {
	var firstErr error
	for _, sub := range card.Subtree() {
		if err := c.unbindCard(sub); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// unbindList releases the elements of the cards of a list, without descending
func (c *Controller) unbindList(list *domain.SiblingList) error {
	var firstErr error
	for _, card := range list.Items() {
		if err := c.unbindCard(card); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *Controller) render(card *domain.Card) error {
	if card == nil || card.Handle == domain.NoHandle {
		return nil
	}
	if err := c.surface.RenderElement(card.Handle, card); err != nil {
		return surfaceErr("render element", err)
	}
	return nil
}

func (c *Controller) handlePress(h domain.Handle) {
	card, ok := c.cards[h]
	if !ok {
		return
	}
	card.Press()
	c.fail(c.render(card))
}

func (c *Controller) handleRelease(h domain.Handle) {
	card, ok := c.cards[h]
	if !ok {
		return
	}
	if card.IsDivider() {
		_, err := c.DividerClick(card)
		c.fail(err)
		return
	}
	c.fail(c.ContentClick(card))
}

// fail records an error raised inside a surface callback
func (c *Controller) fail(err error) {
	if err == nil {
		return
	}
	c.log.Error("input handler failed", "error", err)
	c.lastErr = err
}
