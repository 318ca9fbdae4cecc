package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"microscope/internal/adapters/canvas"
	"microscope/internal/adapters/tui/styles"
	"microscope/internal/application/controller"
	"microscope/internal/application/layout"
	"microscope/internal/domain"
	"microscope/internal/ports"
)

// TimelineKeyMap defines the keys of the timeline screen
type TimelineKeyMap struct {
	NextFocus key.Binding
	PrevFocus key.Binding
	Search    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var TimelineKeys = TimelineKeyMap{
	NextFocus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next pane"),
	),
	PrevFocus: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous pane"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// pane is a keyboard focus target. The first three match ports.CanvasID.
type pane int

const (
	panePeriods pane = iota
	paneEvents
	paneScenes
	panePanel
	paneCount
)

// rect is a screen area in cells
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// TimelineModel is the main screen: the Period, Event and Scene canvases
// stacked on the left and the edit panel on the right
type TimelineModel struct {
	ViewState
	ctrl    *controller.Controller
	panel   *PanelModel
	metrics layout.Config

	canvases [3]*CanvasView
	rects    [3]rect
	panelBox rect

	focus      pane
	lastCanvas pane
	grab       *CanvasView
}

// NewTimelineModel creates the timeline screen. panel must be the panel the
// controller was built with.
func NewTimelineModel(ctrl *controller.Controller, surface *canvas.Canvas, panel *PanelModel, metrics layout.Config) *TimelineModel {
	m := &TimelineModel{
		ctrl:    ctrl,
		panel:   panel,
		metrics: metrics,
	}
	for _, id := range []ports.CanvasID{ports.CanvasPeriods, ports.CanvasEvents, ports.CanvasScenes} {
		m.canvases[id] = NewCanvasView(surface, id)
	}
	m.canvases[ports.CanvasEvents].Follow(m.canvases[ports.CanvasPeriods])
	m.setFocus(panePeriods)
	return m
}

// Init initializes the timeline screen
func (m *TimelineModel) Init() tea.Cmd {
	return m.panel.Init()
}

// SetSize lays out the panes and reports the new viewports to the controller
func (m *TimelineModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)

	panelW := min(max(width/3, 32), 48)
	canvasW := max(width-panelW, 10)

	// header and footer take a line each, every pane frame two
	periodsH := m.metrics.Periods.Cross + 1
	scenesH := m.metrics.Scenes.Cross + 1
	eventsH := max(height-2-(periodsH+2)-(scenesH+2)-2, 3)

	top := 1
	m.rects[ports.CanvasPeriods] = rect{x: 1, y: top + 1, w: canvasW - 2, h: periodsH}
	top += periodsH + 2
	m.rects[ports.CanvasEvents] = rect{x: 1, y: top + 1, w: canvasW - 2, h: eventsH}
	top += eventsH + 2
	m.rects[ports.CanvasScenes] = rect{x: 1, y: top + 1, w: canvasW - 2, h: scenesH}
	m.panelBox = rect{x: canvasW, y: 1, w: panelW, h: max(height-2, 0)}

	m.panel.SetSize(panelW, m.panelBox.h)
	for id, cv := range m.canvases {
		r := m.rects[id]
		cv.SetSize(r.w, r.h)
		vw, vh := cv.Viewport()
		if err := m.ctrl.SetViewport(ports.CanvasID(id), vw, vh); err != nil {
			m.SetMessage(err.Error(), true)
		}
	}
}

// Update handles messages for the timeline screen
func (m *TimelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		m.mouse(msg)
		return m, nil

	case PanelSubmitMsg:
		m.submit()
		return m, nil

	case StatusMsg:
		m.SetMessage(msg.Text, msg.Err)
		return m, nil

	case tea.KeyMsg:
		return m, m.key(msg)
	}

	// cursor blink and other input ticks
	_, cmd := m.panel.Update(msg)
	return m, cmd
}

func (m *TimelineModel) key(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.String() == "ctrl+c":
		return tea.Quit
	case key.Matches(msg, TimelineKeys.NextFocus):
		m.setFocus((m.focus + 1) % paneCount)
		return nil
	case key.Matches(msg, TimelineKeys.PrevFocus):
		m.setFocus((m.focus + paneCount - 1) % paneCount)
		return nil
	}

	if m.focus == panePanel {
		if key.Matches(msg, PanelKeys.Leave) {
			m.setFocus(m.lastCanvas)
			return nil
		}
		_, cmd := m.panel.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, TimelineKeys.Quit):
		return tea.Quit
	case key.Matches(msg, TimelineKeys.Search):
		return func() tea.Msg { return SwitchToSearchMsg{} }
	case key.Matches(msg, TimelineKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}

	m.ClearMessage()
	_, err := m.canvases[m.focus].Update(msg)
	m.report(err)
	return nil
}

func (m *TimelineModel) mouse(msg tea.MouseMsg) {
	if msg.Action == tea.MouseActionRelease && m.grab != nil {
		cv := m.grab
		m.grab = nil
		m.report(cv.ReleasePressed())
		return
	}

	for id, r := range m.rects {
		if !r.contains(msg.X, msg.Y) {
			continue
		}
		cv := m.canvases[id]
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.ClearMessage()
			m.setFocus(pane(id))
			m.grab = cv
		}
		m.report(cv.Mouse(msg, msg.X-r.x, msg.Y-r.y))
		return
	}

	if m.panelBox.contains(msg.X, msg.Y) && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.setFocus(panePanel)
	}
}

// report shows err, or an error raised inside an element callback
func (m *TimelineModel) report(err error) {
	if err == nil {
		err = m.ctrl.LastError()
	}
	if err != nil {
		m.SetMessage(err.Error(), true)
	}
}

func (m *TimelineModel) submit() {
	card, err := m.ctrl.EditSubmit()
	if err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.SetMessage(fmt.Sprintf("Saved %s %s", card.Kind, m.ctrl.Timeline().PathOf(card)), false)
}

func (m *TimelineModel) setFocus(p pane) {
	m.focus = p
	if p != panePanel {
		m.lastCanvas = p
	}
	for id, cv := range m.canvases {
		cv.SetFocused(pane(id) == p)
	}
	m.panel.SetFocused(p == panePanel)
}

// Reveal selects card as if it were clicked, moves the keyboard cursor onto
// it and focuses its canvas
func (m *TimelineModel) Reveal(card *domain.Card) error {
	if err := m.ctrl.Focus(card); err != nil {
		return err
	}
	id := ports.CanvasFor(card.Scope.Level)
	m.canvases[id].SetCursor(card.Handle)
	if card.Parent != nil {
		m.canvases[ports.CanvasFor(card.Parent.Scope.Level)].SetCursor(card.Parent.Handle)
	}
	m.setFocus(pane(id))
	return nil
}

// Panel returns the edit panel
func (m *TimelineModel) Panel() *PanelModel {
	return m.panel
}

// View renders the timeline screen
func (m *TimelineModel) View() string {
	header := styles.StatusKey.Render("Microscope TTRPG") + RenderMessage(m.Message, m.MessageErr)

	var frames []string
	for id, cv := range m.canvases {
		frame := styles.CanvasFrame
		if m.focus == pane(id) {
			frame = styles.CanvasFocused
		}
		frames = append(frames, frame.Render(cv.View()))
	}
	left := lipgloss.JoinVertical(lipgloss.Left, frames...)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		joinColumns(left, m.panel.View()),
		m.footer(),
	)
}

func (m *TimelineModel) footer() string {
	if m.focus == panePanel {
		return RenderHelpLine(TimelineKeys.NextFocus, PanelKeys.Leave)
	}
	return RenderHelpLine(
		CanvasKeys.Prev, CanvasKeys.Next, CanvasKeys.Click,
		TimelineKeys.NextFocus, TimelineKeys.Search, TimelineKeys.Help, TimelineKeys.Quit,
	)
}
