package commands

import (
	"context"
	"fmt"

	"microscope/internal/application"
	"microscope/internal/application/controller"
	"microscope/internal/domain"
)

// InsertResult contains the result of an insert
type InsertResult struct {
	Card    *domain.Card
	Path    domain.Path
	Message string
}

// InsertCommand inserts a card by clicking the divider in front of Position.
// Parent is empty for a Period, a Period path for an Event and an Event path
// for a Scene.
type InsertCommand struct {
	ctrl     *controller.Controller
	Parent   string
	Position int // 1-based; 0 appends
	Fields   CardFields
}

// NewInsertCommand creates a new InsertCommand
func NewInsertCommand(ctrl *controller.Controller, parent string, position int, fields CardFields) *InsertCommand {
	return &InsertCommand{
		ctrl:     ctrl,
		Parent:   parent,
		Position: position,
		Fields:   fields,
	}
}

// Validate checks if the insert is valid
func (c *InsertCommand) Validate() error {
	if c.Position < 0 {
		return &application.ValidationError{
			Field:   "position",
			Message: fmt.Sprintf("position must be positive, got %d", c.Position),
		}
	}

	kind := domain.KindPeriod
	if c.Parent != "" {
		p, err := parsePath("parent", c.Parent)
		if err != nil {
			return err
		}
		if p.Level() == domain.LevelScenes {
			return &application.ValidationError{
				Field:   "parent",
				Message: "scenes cannot hold cards",
			}
		}
		kind = domain.KindScene
		if p.Level() == domain.LevelPeriods {
			kind = domain.KindEvent
		}
	}
	return c.Fields.validate(kind)
}

// Execute runs the insert
func (c *InsertCommand) Execute(ctx context.Context) (*InsertResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	list, err := c.list()
	if err != nil {
		return nil, err
	}

	index := list.Len() - 1
	if c.Position > 0 {
		if c.Position > list.ContentCount()+1 {
			return nil, &application.ValidationError{
				Field:   "position",
				Message: fmt.Sprintf("position %d is past the end (%d cards)", c.Position, list.ContentCount()),
			}
		}
		index = 2 * (c.Position - 1)
	}

	card, err := c.ctrl.DividerClick(list.At(index))
	if err != nil {
		return nil, fmt.Errorf("failed to insert: %w", err)
	}

	if !c.Fields.IsEmpty() {
		if err := c.ctrl.Focus(card); err != nil {
			return nil, fmt.Errorf("failed to select new card: %w", err)
		}
		c.Fields.apply(c.ctrl.Panel())
		if card, err = c.ctrl.EditSubmit(); err != nil {
			return nil, err
		}
	}

	path := c.ctrl.Timeline().PathOf(card)
	return &InsertResult{
		Card:    card,
		Path:    path,
		Message: fmt.Sprintf("Inserted %s %s: %s", card.Kind, path, card.Title()),
	}, nil
}

func (c *InsertCommand) list() (*domain.SiblingList, error) {
	tl := c.ctrl.Timeline()
	if c.Parent == "" {
		return tl.Periods(), nil
	}
	p, _ := application.ParsePath(c.Parent)
	parent, err := find(tl, p)
	if err != nil {
		return nil, err
	}
	return parent.Children, nil
}
