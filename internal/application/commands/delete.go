package commands

import (
	"context"
	"fmt"

	"microscope/internal/application"
	"microscope/internal/application/controller"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedPath string
	Removed     int // cards removed including dividers and descendants
	Message     string
}

// DeleteCommand deletes a card and everything under it
type DeleteCommand struct {
	ctrl *controller.Controller
	Path string
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(ctrl *controller.Controller, path string) *DeleteCommand {
	return &DeleteCommand{
		ctrl: ctrl,
		Path: path,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	_, err := parsePath("path", c.Path)
	return err
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	p, _ := application.ParsePath(c.Path)
	card, err := find(c.ctrl.Timeline(), p)
	if err != nil {
		return nil, err
	}
	// the content card, its subtree and its trailing divider
	removed := len(card.Subtree()) + 1
	title := card.Title()

	if err := c.ctrl.Focus(card); err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", p, err)
	}
	if err := c.ctrl.DeleteSubmit(); err != nil {
		return nil, fmt.Errorf("failed to delete: %w", err)
	}

	return &DeleteResult{
		DeletedPath: p.String(),
		Removed:     removed,
		Message:     fmt.Sprintf("Deleted %s %s: %s", card.Kind, p, title),
	}, nil
}
