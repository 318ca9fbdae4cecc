package commands

import (
	"context"
	"fmt"

	"microscope/internal/application"
	"microscope/internal/application/controller"
	"microscope/internal/domain"
)

// SelectCommand selects a card the way a click on it would, opening the
// Scene view of its Event when needed
type SelectCommand struct {
	ctrl *controller.Controller
	Path string
}

// NewSelectCommand creates a new SelectCommand
func NewSelectCommand(ctrl *controller.Controller, path string) *SelectCommand {
	return &SelectCommand{ctrl: ctrl, Path: path}
}

// Validate checks the path
func (c *SelectCommand) Validate() error {
	_, err := parsePath("path", c.Path)
	return err
}

// Execute runs the select command
func (c *SelectCommand) Execute(ctx context.Context) (*domain.Card, error) {
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
	return card, nil
}
