package commands

import (
	"context"
	"fmt"

	"microscope/internal/application"
	"microscope/internal/application/controller"
	"microscope/internal/domain"
)

// EditResult contains the result of an edit
type EditResult struct {
	Card    *domain.Card
	Path    domain.Path
	Message string
}

// EditCommand replaces the fields of a card through the editing panel
type EditCommand struct {
	ctrl   *controller.Controller
	Path   string
	Fields CardFields
}

// NewEditCommand creates a new EditCommand
func NewEditCommand(ctrl *controller.Controller, path string, fields CardFields) *EditCommand {
	return &EditCommand{
		ctrl:   ctrl,
		Path:   path,
		Fields: fields,
	}
}

// Validate checks if the edit is valid
func (c *EditCommand) Validate() error {
	p, err := parsePath("path", c.Path)
	if err != nil {
		return err
	}
	if c.Fields.IsEmpty() {
		return &application.ValidationError{
			Field:   "fields",
			Message: "nothing to change",
		}
	}
	return c.Fields.validate(p.Level().ContentKind())
}

// Execute runs the edit
func (c *EditCommand) Execute(ctx context.Context) (*EditResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	p, _ := application.ParsePath(c.Path)
	card, err := find(c.ctrl.Timeline(), p)
	if err != nil {
		return nil, err
	}

	if err := c.ctrl.Focus(card); err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", p, err)
	}
	c.Fields.apply(c.ctrl.Panel())

	repl, err := c.ctrl.EditSubmit()
	if err != nil {
		return nil, err
	}

	return &EditResult{
		Card:    repl,
		Path:    p,
		Message: fmt.Sprintf("Updated %s %s: %s", repl.Kind, p, repl.Title()),
	}, nil
}
