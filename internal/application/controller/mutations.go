package controller

import (
	"fmt"
	"strings"

	"microscope/internal/application"
	"microscope/internal/domain"
	"microscope/internal/ports"
)

// DividerClick inserts a placeholder card at the divider's position. The
// selection of the divider's level is released and the panel cleared; the
// new card is not selected.
func (c *Controller) DividerClick(div *domain.Card) (*domain.Card, error) {
	if div == nil || !div.IsDivider() {
		return nil, fmt.Errorf("%w: divider click on content", application.ErrInvalidOperation)
	}
	if !c.contains(div) {
		return nil, fmt.Errorf("divider: %w", application.ErrNotFound)
	}

	level := div.Scope.Level
	if err := c.releaseSlot(SlotFor(level.ContentKind())); err != nil {
		return nil, err
	}
	c.panel.Clear()
	c.panelOpen = false

	div.Release()
	if err := c.render(div); err != nil {
		return nil, err
	}

	list := c.tl.ListFor(div.Scope)
	content := domain.NewPlaceholder(level)
	newDiv, err := list.InsertAt(div.Index, content)
	if err != nil {
		return nil, err
	}

	if c.visible(list) {
		for _, card := range []*domain.Card{newDiv, content} {
			if err := c.bindCard(card); err != nil {
				return nil, err
			}
		}
		if level == domain.LevelPeriods {
			if err := c.bindList(content.Children); err != nil {
				return nil, err
			}
		}
	}

	if err := c.relayout(level, list.Scope().Owner); err != nil {
		return nil, err
	}

	c.log.Debug("inserted", "kind", content.Kind, "index", content.Index)
	c.changed()
	return content, nil
}

// EditSubmit replaces the card in the panel with one built from the panel's
// fields. Child lists move to the replacement.
func (c *Controller) EditSubmit() (*domain.Card, error) {
	old, err := c.current()
	if err != nil {
		return nil, err
	}

	repl := c.fromPanel(old.Kind)
	if err := application.ValidateCard(repl); err != nil {
		return nil, err
	}

	list := c.tl.ListFor(old.Scope)
	if _, err := list.ReplaceAt(old.Index, repl); err != nil {
		return nil, err
	}
	if repl.Handle != domain.NoHandle {
		c.cards[repl.Handle] = repl
	}
	c.selected[c.editing] = repl
	if c.openEvent == old {
		c.openEvent = repl
	}
	if err := c.render(repl); err != nil {
		return nil, err
	}

	switch repl.Kind {
	case domain.KindPeriod:
		err = c.engine.LayoutPeriods(c.tl)
	case domain.KindEvent:
		err = c.engine.LayoutEvents(c.tl)
		if err == nil && c.openEvent == repl {
			err = c.engine.LayoutScenes(repl)
		}
	case domain.KindScene:
		err = c.engine.LayoutScenes(c.openEvent)
		if err == nil {
			err = c.render(repl.Parent)
		}
	}
	if err != nil {
		return nil, err
	}

	c.log.Debug("edited", "kind", repl.Kind, "index", repl.Index)
	c.changed()
	return repl, nil
}

// DeleteSubmit removes the card in the panel together with its trailing
// divider and releases every element of the removed subtree
func (c *Controller) DeleteSubmit() error {
	card, err := c.current()
	if err != nil {
		return err
	}

	list := c.tl.ListFor(card.Scope)
	owner := list.Scope().Owner
	removed, err := list.DeleteAt(card.Index)
	if err != nil {
		return err
	}

	c.selected[c.editing] = nil
	c.panel.Clear()
	c.panelOpen = false

	if c.openEvent != nil && (c.openEvent == card || c.openEvent.Parent == card) {
		c.selected[SlotScene] = nil
		c.openEvent = nil
	}

	var releaseErr error
	for _, r := range removed {
		if err := c.unbindSubtree(r); err != nil && releaseErr == nil {
			releaseErr = err
		}
	}

	if err := c.relayout(card.Scope.Level, owner); err != nil {
		return err
	}
	if releaseErr != nil {
		return releaseErr
	}

	c.log.Debug("deleted", "kind", card.Kind, "released", len(removed))
	c.changed()
	return nil
}

// current returns the card shown in the panel
func (c *Controller) current() (*domain.Card, error) {
	if !c.panelOpen {
		return nil, application.ErrNoSelection
	}
	card := c.selected[c.editing]
	if card == nil || !c.contains(card) {
		return nil, application.ErrNoSelection
	}
	return card, nil
}

// fromPanel builds a replacement card of the given kind from the panel
func (c *Controller) fromPanel(kind domain.Kind) *domain.Card {
	text := func(id ports.FieldID) string {
		return strings.TrimSpace(c.panel.FieldText(id))
	}
	tone := c.panel.Tone()

	switch kind {
	case domain.KindPeriod:
		return domain.NewPeriod(text(ports.FieldLabel), tone)
	case domain.KindEvent:
		return domain.NewEvent(text(ports.FieldLabel), tone)
	default:
		return domain.NewScene(text(ports.FieldQuestion), text(ports.FieldSetting), text(ports.FieldAnswer), tone)
	}
}

// visible reports whether the cards of a list have on-screen elements.
// Periods and Events always do; Scenes only under the open Event.
func (c *Controller) visible(list *domain.SiblingList) bool {
	if list.Scope().Level != domain.LevelScenes {
		return true
	}
	return list.Scope().Owner == c.openEvent
}

// relayout reruns layout after an insert or delete at level and pulls the
// scroll offsets back inside the new extents. owner is the card owning the
// changed list.
func (c *Controller) relayout(level domain.Level, owner *domain.Card) error {
	if err := c.layoutLevel(level, owner); err != nil {
		return err
	}
	// a Period change moves the open Event's column
	if level == domain.LevelPeriods {
		if err := c.anchorScenes(); err != nil {
			return err
		}
	}
	return c.reclamp()
}

func (c *Controller) layoutLevel(level domain.Level, owner *domain.Card) error {
	switch level {
	case domain.LevelPeriods:
		return c.engine.LayoutAll(c.tl, c.openEvent)
	case domain.LevelEvents:
		if err := c.engine.LayoutEvents(c.tl); err != nil {
			return err
		}
		return c.engine.LayoutScenes(c.openEvent)
	default:
		if err := c.render(owner); err != nil {
			return err
		}
		return c.engine.LayoutScenes(c.openEvent)
	}
}
