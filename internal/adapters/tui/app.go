// Package tui is the terminal front end of the timeline editor.
package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"microscope/internal/adapters/canvas"
	"microscope/internal/adapters/editor"
	"microscope/internal/adapters/tui/views"
	"microscope/internal/application/controller"
	"microscope/internal/application/layout"
	"microscope/internal/domain"
	"microscope/internal/ports"
)

// WindowTitle is shown in the terminal title bar
const WindowTitle = "Microscope TTRPG"

// ViewState represents the current view
type ViewState int

const (
	ViewTimeline ViewState = iota
	ViewSearch
	ViewDelete
	ViewHelp
)

// App is the main TUI application model
type App struct {
	ctrl   *controller.Controller
	index  ports.TimelineIndex
	editor ports.TextEditor
	log    *slog.Logger

	state    ViewState
	timeline *views.TimelineModel
	search   *views.SearchModel
	del      *views.DeleteModel
	help     *views.HelpModel
}

// NewApp lays tl out on a fresh canvas and builds the views around its
// controller. index may be nil, which disables search; ed may be nil, which
// disables $EDITOR.
func NewApp(tl *domain.Timeline, cfg layout.Config, index ports.TimelineIndex, ed ports.TextEditor, log *slog.Logger, opts ...controller.Option) (*App, error) {
	surface := canvas.New()
	panel := views.NewPanelModel()

	opts = append([]controller.Option{controller.WithLogger(log)}, opts...)
	ctrl, err := controller.New(tl, surface, panel, layout.NewEngine(surface, cfg), opts...)
	if err != nil {
		return nil, fmt.Errorf("start controller: %w", err)
	}

	if index != nil {
		reindex := func() {
			if err := index.Rebuild(tl); err != nil {
				log.Error("failed to rebuild search index", "error", err)
			}
		}
		ctrl.OnChange(reindex)
		reindex()
	}

	return &App{
		ctrl:     ctrl,
		index:    index,
		editor:   ed,
		log:      log,
		state:    ViewTimeline,
		timeline: views.NewTimelineModel(ctrl, surface, panel, cfg),
		search:   views.NewSearchModel(index),
		del:      views.NewDeleteModel(ctrl),
		help:     views.NewHelpModel(),
	}, nil
}

// Controller returns the controller driving the timeline
func (a *App) Controller() *controller.Controller {
	return a.ctrl
}

// State returns the view being shown
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(WindowTitle), a.timeline.Init())
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.timeline.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.del.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToTimelineMsg:
		a.state = ViewTimeline
		return a, nil

	case views.SwitchToSearchMsg:
		if a.index == nil {
			a.timeline.SetMessage("Search is unavailable", true)
			return a, nil
		}
		a.state = ViewSearch
		a.search.Reset()
		return a, a.search.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToDeleteMsg:
		if !a.del.Prepare() {
			return a, nil
		}
		a.state = ViewDelete
		return a, nil

	// Results coming back to the timeline
	case views.DeleteSuccessMsg:
		a.state = ViewTimeline
		a.timeline.SetMessage(msg.Message, false)
		return a, nil

	case views.DeleteErrMsg:
		a.state = ViewTimeline
		a.timeline.SetMessage(msg.Err.Error(), true)
		return a, nil

	case views.SearchSelectMsg:
		a.state = ViewTimeline
		a.selectHit(msg)
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Field, msg.Text)

	case editorFinishedMsg:
		a.editorFinished(msg)
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewDelete:
		_, cmd = a.del.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	default:
		_, cmd = a.timeline.Update(msg)
	}

	return a, cmd
}

func (a *App) selectHit(msg views.SearchSelectMsg) {
	card, err := a.ctrl.Timeline().Find(msg.Hit.Path)
	if err == nil {
		err = a.timeline.Reveal(card)
	}
	if err != nil {
		a.timeline.SetMessage(err.Error(), true)
		return
	}
	text := fmt.Sprintf("%s %s", card.Kind, msg.Hit.Path)
	if msg.Copied {
		text += " (title copied)"
	}
	a.timeline.SetMessage(text, false)
}

type editorFinishedMsg struct {
	field ports.FieldID
	draft *editor.Draft
	err   error
}

func (a *App) openEditor(field ports.FieldID, text string) tea.Cmd {
	if a.editor == nil {
		a.timeline.SetMessage("No editor configured", true)
		return nil
	}

	draft, err := editor.NewDraft("", field.String(), text)
	if err != nil {
		return func() tea.Msg { return editorFinishedMsg{field: field, err: err} }
	}

	cmd, err := a.editor.Command(draft.Path)
	if err != nil {
		return func() tea.Msg { return editorFinishedMsg{field: field, draft: draft, err: err} }
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{field: field, draft: draft, err: err}
	})
}

func (a *App) editorFinished(msg editorFinishedMsg) {
	if msg.draft != nil {
		defer func() {
			if err := msg.draft.Remove(); err != nil {
				a.log.Warn("failed to remove draft", "path", msg.draft.Path, "error", err)
			}
		}()
	}
	if msg.err != nil {
		a.timeline.SetMessage(msg.err.Error(), true)
		return
	}

	text, err := msg.draft.Read()
	if err != nil {
		a.timeline.SetMessage(err.Error(), true)
		return
	}
	a.timeline.Panel().SetFieldText(msg.field, text)
	a.timeline.SetMessage(fmt.Sprintf("Edited %s, enter to save", msg.field), false)
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewSearch:
		return a.search.View()
	case ViewDelete:
		return a.del.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.timeline.View()
	}
}
