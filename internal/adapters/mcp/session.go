package mcp

import (
	"log/slog"
	"sync"

	"microscope/internal/adapters/canvas"
	"microscope/internal/adapters/memory"
	"microscope/internal/application/controller"
	"microscope/internal/application/layout"
	"microscope/internal/domain"
	"microscope/internal/ports"
)

// Session is one timeline edited over MCP. Tool calls may arrive on several
// goroutines; the session serializes them since the controller is not safe
// for concurrent use.
type Session struct {
	mu      sync.Mutex
	ctrl    *controller.Controller
	surface *canvas.Canvas
	index   ports.TimelineIndex
	log     *slog.Logger
}

// NewSession lays out tl on an off-screen canvas and keeps index in step
// with every change
func NewSession(tl *domain.Timeline, cfg layout.Config, index ports.TimelineIndex, log *slog.Logger) (*Session, error) {
	surface := canvas.New()
	ctrl, err := controller.New(tl, surface, memory.NewPanel(), layout.NewEngine(surface, cfg), controller.WithLogger(log))
	if err != nil {
		return nil, err
	}

	s := &Session{ctrl: ctrl, surface: surface, index: index, log: log}
	ctrl.OnChange(s.reindex)
	s.reindex()
	return s, nil
}

// Do runs fn with exclusive access to the controller
func (s *Session) Do(fn func(ctrl *controller.Controller) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.ctrl)
}

// Surface returns the off-screen canvas. Callers must hold the session via Do.
func (s *Session) Surface() *canvas.Canvas {
	return s.surface
}

func (s *Session) reindex() {
	if s.index == nil {
		return
	}
	if err := s.index.Rebuild(s.ctrl.Timeline()); err != nil {
		s.log.Error("failed to rebuild search index", "error", err)
	}
}
