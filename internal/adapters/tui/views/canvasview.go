package views

import (
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"microscope/internal/adapters/canvas"
	"microscope/internal/adapters/tui/styles"
	"microscope/internal/domain"
	"microscope/internal/ports"
)

// CanvasKeyMap defines key bindings for a focused canvas
type CanvasKeyMap struct {
	Prev        key.Binding
	Next        key.Binding
	Click       key.Binding
	PageBack    key.Binding
	PageForward key.Binding
}

var CanvasKeys = CanvasKeyMap{
	Prev: key.NewBinding(
		key.WithKeys("left", "up", "h", "k"),
		key.WithHelp("←/↑", "previous"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "down", "l", "j"),
		key.WithHelp("→/↓", "next"),
	),
	Click: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select/insert"),
	),
	PageBack: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll back"),
	),
	PageForward: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll on"),
	),
}

// wheel notches sent by one page key
const pageNotches = 4

// CanvasView draws one canvas of the surface into a viewport and turns
// terminal input into element presses, releases and wheel gestures
type CanvasView struct {
	surface *canvas.Canvas
	id      ports.CanvasID
	axis    ports.Axis

	// follow supplies the horizontal offset of a canvas laid out under
	// another one, so Event columns stay under their Periods
	follow *CanvasView

	width, height int
	focused       bool
	cursor        domain.Handle
	pressed       domain.Handle
}

// NewCanvasView creates the view of one canvas
func NewCanvasView(surface *canvas.Canvas, id ports.CanvasID) *CanvasView {
	axis := ports.AxisHorizontal
	if id == ports.CanvasEvents {
		axis = ports.AxisVertical
	}
	return &CanvasView{surface: surface, id: id, axis: axis}
}

// Follow aligns the horizontal offset of this view with other
func (v *CanvasView) Follow(other *CanvasView) {
	v.follow = other
}

// ID returns the canvas drawn by the view
func (v *CanvasView) ID() ports.CanvasID {
	return v.id
}

// SetSize sets the outer size of the view. One row or column is kept for the
// scroll bar; the rest is the viewport.
func (v *CanvasView) SetSize(width, height int) {
	if v.axis == ports.AxisHorizontal {
		v.width, v.height = max(width, 0), max(height-1, 0)
	} else {
		v.width, v.height = max(width-1, 0), max(height, 0)
	}
}

// Viewport returns the size of the visible part of the canvas
func (v *CanvasView) Viewport() (width, height int) {
	return v.width, v.height
}

// SetFocused marks the view as receiving keyboard input
func (v *CanvasView) SetFocused(focused bool) {
	v.focused = focused
}

// Offset returns the canvas coordinate shown at the top-left of the viewport
func (v *CanvasView) Offset() (x, y int) {
	r := v.surface.Region(v.id)
	x = scrollOffset(r.ScrollX, r.Width, v.width)
	y = scrollOffset(r.ScrollY, r.Height, v.height)
	if v.follow != nil {
		x, _ = v.follow.Offset()
	}
	return x, y
}

func scrollOffset(fraction float64, extent, view int) int {
	limit := max(extent-view, 0)
	return int(math.Round(fraction * float64(limit)))
}

// HitTest returns the element under a viewport cell
func (v *CanvasView) HitTest(x, y int) (domain.Handle, bool) {
	if x < 0 || y < 0 || x >= v.width || y >= v.height {
		return domain.NoHandle, false
	}
	ox, oy := v.Offset()
	return v.surface.ElementAt(v.id, x+ox, y+oy)
}

// Mouse handles a mouse event at view-relative cell coordinates. A release
// always goes to the element that received the press.
func (v *CanvasView) Mouse(msg tea.MouseMsg, x, y int) error {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		v.surface.Wheel(v.id, -1)
		return nil
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		v.surface.Wheel(v.id, 1)
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		h, ok := v.HitTest(x, y)
		if !ok {
			return nil
		}
		v.pressed = h
		v.cursor = h
		return v.surface.Press(h)
	case tea.MouseActionRelease:
		return v.ReleasePressed()
	}
	return nil
}

// ReleasePressed releases the element pressed with the mouse, if any
func (v *CanvasView) ReleasePressed() error {
	if v.pressed == domain.NoHandle {
		return nil
	}
	h := v.pressed
	v.pressed = domain.NoHandle
	return v.surface.Release(h)
}

// Update handles keys while the view is focused
func (v *CanvasView) Update(msg tea.KeyMsg) (bool, error) {
	switch {
	case key.Matches(msg, CanvasKeys.Prev):
		v.moveCursor(-1)
	case key.Matches(msg, CanvasKeys.Next):
		v.moveCursor(1)
	case key.Matches(msg, CanvasKeys.Click):
		if h := v.Cursor(); h != domain.NoHandle {
			return true, v.surface.Click(h)
		}
	case key.Matches(msg, CanvasKeys.PageBack):
		v.surface.Wheel(v.id, -pageNotches)
	case key.Matches(msg, CanvasKeys.PageForward):
		v.surface.Wheel(v.id, pageNotches)
	default:
		return false, nil
	}
	return true, nil
}

// elements returns the canvas elements in reading order along the primary
// axis. Event columns are read one after the other.
func (v *CanvasView) elements() []canvas.Element {
	els := v.surface.Elements(v.id)
	slices.SortStableFunc(els, func(a, b canvas.Element) int {
		if a.Band.X != b.Band.X {
			return a.Band.X - b.Band.X
		}
		return a.Band.Y - b.Band.Y
	})
	return els
}

// Cursor returns the element under the keyboard cursor. The cursor falls
// back to the first element when its element is gone.
func (v *CanvasView) Cursor() domain.Handle {
	if _, ok := v.surface.Element(v.cursor); ok {
		return v.cursor
	}
	els := v.elements()
	if len(els) == 0 {
		v.cursor = domain.NoHandle
	} else {
		v.cursor = els[0].Handle
	}
	return v.cursor
}

// SetCursor moves the keyboard cursor to h and scrolls it into view
func (v *CanvasView) SetCursor(h domain.Handle) {
	el, ok := v.surface.Element(h)
	if !ok {
		return
	}
	v.cursor = h
	v.reveal(el.Band)
}

func (v *CanvasView) moveCursor(step int) {
	els := v.elements()
	if len(els) == 0 {
		return
	}
	current := v.Cursor()
	i := slices.IndexFunc(els, func(el canvas.Element) bool { return el.Handle == current })
	i = min(max(i+step, 0), len(els)-1)
	v.SetCursor(els[i].Handle)
}

// reveal wheels the canvas until band is inside the viewport or the scroll
// position stops changing
func (v *CanvasView) reveal(band domain.Band) {
	start, end, view := band.X, band.Right(), v.width
	if v.axis == ports.AxisVertical {
		start, end, view = band.Y, band.Bottom(), v.height
	}
	for range 200 {
		x, y := v.Offset()
		off := x
		if v.axis == ports.AxisVertical {
			off = y
		}
		switch {
		case start < off:
			v.surface.Wheel(v.id, -1)
		case end > off+view && start > off:
			v.surface.Wheel(v.id, 1)
		default:
			return
		}
		if nx, ny := v.Offset(); nx == x && ny == y {
			return
		}
	}
}

// View renders the viewport followed by its scroll bar
func (v *CanvasView) View() string {
	return strings.Join(v.render(newGrid(v.width, v.height)).lines(), "\n")
}

func (v *CanvasView) render(g *grid) *grid {
	p := newPalette(g)
	ox, oy := v.Offset()
	cursor := domain.NoHandle
	if v.focused {
		cursor = v.Cursor()
	}

	for _, el := range v.surface.Elements(v.id) {
		if el.Card == nil {
			continue
		}
		b := el.Band
		b.X -= ox
		b.Y -= oy
		if b.Right() <= 0 || b.Bottom() <= 0 || b.X >= g.w || b.Y >= g.h {
			continue
		}
		if el.Card.IsDivider() {
			drawDivider(g, p, b, el.Handle == cursor)
		} else {
			drawCard(g, p, b, el.Card, el.Handle == cursor)
		}
	}

	v.drawScrollBar(g)
	return g
}

// drawScrollBar grows the grid by one row or column and draws the bar there
func (v *CanvasView) drawScrollBar(g *grid) {
	r := v.surface.Region(v.id)
	track, thumb := g.style(styles.ScrollTrack), g.style(styles.ScrollThumb)

	if v.axis == ports.AxisHorizontal {
		row := make([]cell, g.w)
		start, size := thumbSpan(g.w, r.Width, r.ScrollX)
		for x := range row {
			row[x] = cell{ch: "─", style: track}
			if size > 0 && x >= start && x < start+size {
				row[x] = cell{ch: "━", style: thumb}
			}
		}
		g.cells = append(g.cells, row)
		g.h++
		return
	}

	start, size := thumbSpan(g.h, r.Height, r.ScrollY)
	for y := range g.cells {
		c := cell{ch: "│", style: track}
		if size > 0 && y >= start && y < start+size {
			c = cell{ch: "┃", style: thumb}
		}
		g.cells[y] = append(g.cells[y], c)
	}
	g.w++
}

// thumbSpan returns the position and length of the scroll thumb on a track
// of view cells. The thumb is hidden when everything fits.
func thumbSpan(view, extent int, fraction float64) (start, size int) {
	if view <= 0 || extent <= view {
		return 0, 0
	}
	size = max(view*view/extent, 1)
	start = int(math.Round(fraction * float64(view-size)))
	return start, size
}
