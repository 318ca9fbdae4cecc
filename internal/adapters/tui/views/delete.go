package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"microscope/internal/application/controller"
	"microscope/internal/domain"
)

// DeleteModel confirms deletion of the card shown in the edit panel
type DeleteModel struct {
	ConfirmationModel
	ctrl *controller.Controller
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(ctrl *controller.Controller) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		ctrl:              ctrl,
	}
}

// Prepare targets the card currently being edited. It reports false when
// the panel is empty.
func (m *DeleteModel) Prepare() bool {
	slot, open := m.ctrl.Editing()
	card := m.ctrl.Selection(slot)
	if !open || card == nil {
		m.SetTarget(nil, domain.Path{})
		return false
	}
	m.SetTarget(card, m.ctrl.Timeline().PathOf(card))
	return true
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			m.doDelete,
			func() tea.Msg { return SwitchToTimelineMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.Target == nil {
		return DeleteErrMsg{Err: fmt.Errorf("no card selected")}
	}

	kind, path, title := m.Target.Kind, m.Path, m.Target.Title()
	if err := m.ctrl.DeleteSubmit(); err != nil {
		return DeleteErrMsg{Err: err}
	}

	return DeleteSuccessMsg{
		Message: fmt.Sprintf("Deleted %s %s: %s", kind, path, title),
	}
}

// DeleteSuccessMsg indicates successful deletion
type DeleteSuccessMsg struct {
	Message string
}

// DeleteErrMsg indicates an error during deletion
type DeleteErrMsg struct {
	Err error
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	return NewViewBuilder().
		Title("Delete Card").
		Line(RenderMessage("This action cannot be undone!", true)).
		BlankLine().
		Line(RenderTargetInfo(m.Target, m.Path)).
		BlankLine().
		Raw(RenderConfirmPrompt(m.Question("Delete"))).
		String()
}
