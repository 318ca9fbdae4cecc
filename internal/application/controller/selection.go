package controller

import (
	"fmt"

	"microscope/internal/application"
	"microscope/internal/domain"
	"microscope/internal/ports"
)

// ContentClick selects a content card, sinks it and fills the panel with its
// fields. Selecting a Period closes the Scene view; selecting an Event opens
// its Scenes.
func (c *Controller) ContentClick(card *domain.Card) error {
	if card == nil || !card.IsContent() {
		return fmt.Errorf("%w: content click on a divider", application.ErrInvalidOperation)
	}
	if !c.contains(card) {
		return fmt.Errorf("%s: %w", card.Kind, application.ErrNotFound)
	}
	if card.Kind == domain.KindScene && card.Parent != c.openEvent {
		return fmt.Errorf("%w: scene of an event that is not open", application.ErrInvalidOperation)
	}

	slot := SlotFor(card.Kind)
	if err := c.releaseSlot(slot); err != nil {
		return err
	}

	switch card.Kind {
	case domain.KindPeriod:
		if err := c.closeSceneView(); err != nil {
			return err
		}
	case domain.KindEvent:
		if err := c.openSceneView(card); err != nil {
			return err
		}
	}

	c.selected[slot] = card
	card.Press()
	if err := c.render(card); err != nil {
		return err
	}
	c.fillPanel(slot, card)

	c.log.Debug("selected", "kind", card.Kind, "path", c.tl.PathOf(card).String())
	return nil
}

// Focus selects any content card, opening its Event first when it is a Scene
func (c *Controller) Focus(card *domain.Card) error {
	if card != nil && card.Kind == domain.KindScene && card.Parent != c.openEvent {
		if err := c.ContentClick(card.Parent); err != nil {
			return err
		}
	}
	return c.ContentClick(card)
}

// releaseSlot raises the selected card of a slot and empties the slot
func (c *Controller) releaseSlot(slot Slot) error {
	prev := c.selected[slot]
	c.selected[slot] = nil
	if c.panelOpen && c.editing == slot {
		c.panel.Clear()
		c.panelOpen = false
	}
	if prev == nil {
		return nil
	}
	prev.Release()
	return c.render(prev)
}

// fillPanel shows the card's form pre-filled with its current values
func (c *Controller) fillPanel(slot Slot, card *domain.Card) {
	c.panel.Clear()
	switch card.Kind {
	case domain.KindScene:
		c.panel.SetFieldText(ports.FieldQuestion, card.Question)
		c.panel.SetFieldText(ports.FieldSetting, card.Setting)
		c.panel.SetFieldText(ports.FieldAnswer, card.Answer)
	default:
		c.panel.SetFieldText(ports.FieldLabel, card.Label)
	}
	c.panel.SetTone(card.Tone)
	c.panel.Show(ports.PanelFor(card.Kind))
	c.editing = slot
	c.panelOpen = true
}

// openSceneView shows the Scenes of ev, replacing any other open Event
func (c *Controller) openSceneView(ev *domain.Card) error {
	if c.openEvent == ev {
		return nil
	}
	if err := c.closeSceneView(); err != nil {
		return err
	}
	c.openEvent = ev
	if err := c.bindList(ev.Children); err != nil {
		return err
	}
	if err := c.engine.LayoutScenes(ev); err != nil {
		return err
	}
	return c.anchorScenes()
}

// closeSceneView releases the Scene selection and every Scene element
func (c *Controller) closeSceneView() error {
	if err := c.releaseSlot(SlotScene); err != nil {
		return err
	}
	if c.openEvent == nil {
		return nil
	}
	ev := c.openEvent
	c.openEvent = nil
	if ev.Children != nil {
		if err := c.unbindList(ev.Children); err != nil {
			return err
		}
	}
	return c.engine.LayoutScenes(nil)
}
