package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"microscope/internal/adapters/canvas"
	"microscope/internal/application/controller"
	"microscope/internal/application/layout"
	"microscope/internal/domain"
	"microscope/internal/ports"
)

type fixture struct {
	surface *canvas.Canvas
	panel   *PanelModel
	ctrl    *controller.Controller
}

func newFixture(t *testing.T, tl *domain.Timeline) *fixture {
	t.Helper()
	surface := canvas.New()
	panel := NewPanelModel()
	ctrl, err := controller.New(tl, surface, panel, layout.NewEngine(surface, layout.DefaultConfig()))
	if err != nil {
		t.Fatalf("controller.New() error = %v", err)
	}
	return &fixture{surface: surface, panel: panel, ctrl: ctrl}
}

// view returns a sized view of a canvas with its viewport
// reported to the controller
func (f *fixture) view(t *testing.T, id ports.CanvasID, width, height int) *CanvasView {
	t.Helper()
	v := NewCanvasView(f.surface, id)
	v.SetSize(width, height)
	vw, vh := v.Viewport()
	if err := f.ctrl.SetViewport(id, vw, vh); err != nil {
		t.Fatalf("SetViewport() error = %v", err)
	}
	return v
}

func click(t *testing.T, v *CanvasView, x, y int) {
	t.Helper()
	press := tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if err := v.Mouse(press, x, y); err != nil {
		t.Fatalf("press error = %v", err)
	}
	release := tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease}
	if err := v.Mouse(release, x, y); err != nil {
		t.Fatalf("release error = %v", err)
	}
}

func TestGridText_WideRunes(t *testing.T) {
	g := newGrid(5, 1)
	g.text(0, 0, 5, "日本語", 0)

	if got := g.plain()[0]; got != "日本 " {
		t.Errorf("plain = %q, want %q", got, "日本 ")
	}
}

func TestGridText_Clipped(t *testing.T) {
	g := newGrid(4, 2)
	g.text(-2, 0, 10, "abcdef", 0)
	g.text(0, 5, 10, "hidden", 0)

	lines := g.plain()
	if lines[0] != "cdef" {
		t.Errorf("line 0 = %q, want %q", lines[0], "cdef")
	}
	if lines[1] != "    " {
		t.Errorf("line 1 = %q, want blank", lines[1])
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		width     int
		wantLines int
	}{
		{"fits", "New Period", 20, 1},
		{"wraps words", "The Rise of Machine Learning", 10, 3},
		{"long word cut", "Supercalifragilistic", 8, 1},
		{"empty", "", 10, 0},
		{"no room", "anything", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := wrap(tt.text, tt.width)
			if len(lines) != tt.wantLines {
				t.Fatalf("wrap() = %q, want %d lines", lines, tt.wantLines)
			}
			for _, l := range lines {
				if w := runewidth.StringWidth(l); w > tt.width {
					t.Errorf("line %q is %d cells wide, limit %d", l, w, tt.width)
				}
			}
		})
	}
}

func TestThumbSpan(t *testing.T) {
	tests := []struct {
		name      string
		view      int
		extent    int
		fraction  float64
		wantStart int
		wantSize  int
	}{
		{"everything fits", 10, 5, 0, 0, 0},
		{"half visible at start", 10, 20, 0, 0, 5},
		{"half visible at end", 10, 20, 1, 5, 5},
		{"tiny thumb", 10, 1000, 0.5, 5, 1},
		{"no track", 0, 100, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, size := thumbSpan(tt.view, tt.extent, tt.fraction)
			if start != tt.wantStart || size != tt.wantSize {
				t.Errorf("thumbSpan() = (%d, %d), want (%d, %d)", start, size, tt.wantStart, tt.wantSize)
			}
		})
	}
}

func TestCanvasView_ClickContentFillsPanel(t *testing.T) {
	f := newFixture(t, domain.NewDemoTimeline())
	v := f.view(t, ports.CanvasPeriods, 200, 9)

	// the boundary divider is 3 cells wide, the first Period follows
	h, ok := v.HitTest(5, 2)
	if !ok {
		t.Fatal("expected an element under (5, 2)")
	}
	card, _ := f.ctrl.CardFor(h)
	if card.Kind != domain.KindPeriod || card.Label != domain.DemoPeriods[0].Label {
		t.Fatalf("hit %s %q, want first Period", card.Kind, card.Title())
	}

	click(t, v, 5, 2)

	if got := f.ctrl.Selection(controller.SlotPrimary); got != card {
		t.Errorf("selection = %v, want the clicked Period", got)
	}
	if f.panel.Kind() != ports.PanelPeriod {
		t.Errorf("panel kind = %v, want PanelPeriod", f.panel.Kind())
	}
	if got := f.panel.FieldText(ports.FieldLabel); got != card.Label {
		t.Errorf("label field = %q, want %q", got, card.Label)
	}
}

func TestCanvasView_ClickDividerInserts(t *testing.T) {
	f := newFixture(t, domain.NewDemoTimeline())
	v := f.view(t, ports.CanvasPeriods, 200, 9)

	click(t, v, 1, 2)

	periods := f.ctrl.Timeline().Periods()
	if periods.ContentCount() != 5 {
		t.Fatalf("periods = %d, want 5", periods.ContentCount())
	}
	if periods.At(1).Label != domain.NewPeriodLabel {
		t.Errorf("first Period = %q, want the placeholder", periods.At(1).Label)
	}
	if f.panel.Kind() != ports.PanelNone {
		t.Error("panel should stay empty after an insert")
	}
}

func TestCanvasView_ReleaseGoesToPressedElement(t *testing.T) {
	f := newFixture(t, domain.NewDemoTimeline())
	v := f.view(t, ports.CanvasPeriods, 200, 9)

	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if err := v.Mouse(press, 5, 2); err != nil {
		t.Fatal(err)
	}
	card := f.ctrl.Timeline().Periods().At(1)
	if !card.Pressed() {
		t.Error("card should sink on press")
	}

	// released over the divider, still clicks the Period
	if err := v.Mouse(tea.MouseMsg{Action: tea.MouseActionRelease}, 1, 2); err != nil {
		t.Fatal(err)
	}
	if f.ctrl.Timeline().Periods().ContentCount() != 4 {
		t.Error("release over a divider must not insert")
	}
	if f.ctrl.Selection(controller.SlotPrimary) != card {
		t.Error("pressed Period should be selected")
	}
}

func TestCanvasView_Render(t *testing.T) {
	f := newFixture(t, domain.NewDemoTimeline())
	v := f.view(t, ports.CanvasPeriods, 200, 9)

	lines := v.render(newGrid(v.width, v.height)).plain()
	if len(lines) != 9 {
		t.Fatalf("rendered %d lines, want viewport plus scroll bar", len(lines))
	}
	if !strings.HasPrefix(lines[0], "   ╭") {
		t.Errorf("top line = %q, want a raised card after the divider", lines[0])
	}
	if !strings.Contains(lines[1], "○ The Rise") {
		t.Errorf("line 1 = %q, want the first title", lines[1])
	}
	if !strings.Contains(lines[4], "+") {
		t.Errorf("line 4 = %q, want divider glyphs", lines[4])
	}
	if !strings.Contains(strings.Join(lines, "\n"), "● Value Drift") {
		t.Error("dark Period should show the dark swatch")
	}

	click(t, v, 5, 2)
	lines = v.render(newGrid(v.width, v.height)).plain()
	if !strings.HasPrefix(lines[0], "   ┏") {
		t.Errorf("top line = %q, want a sunken card", lines[0])
	}
}

func TestCanvasView_WheelScrolls(t *testing.T) {
	f := newFixture(t, domain.NewDemoTimeline())
	v := f.view(t, ports.CanvasPeriods, 30, 9)

	wheel := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
	if err := v.Mouse(wheel, 0, 0); err != nil {
		t.Fatal(err)
	}

	x, _ := v.Offset()
	if want := f.ctrl.ScrollOffset(ports.CanvasPeriods); x != want || x == 0 {
		t.Errorf("offset = %d, want controller offset %d > 0", x, want)
	}

	// hit testing follows the scroll
	h, ok := v.HitTest(5-x, 2)
	if !ok {
		t.Fatal("expected the first Period under the shifted point")
	}
	card, _ := f.ctrl.CardFor(h)
	if card != f.ctrl.Timeline().Periods().At(1) {
		t.Errorf("hit %q, want the first Period", card.Title())
	}
}

func TestCanvasView_Keyboard(t *testing.T) {
	f := newFixture(t, domain.NewDemoTimeline())
	v := f.view(t, ports.CanvasPeriods, 30, 9)
	v.SetFocused(true)

	first := f.ctrl.Timeline().Periods().At(0)
	if v.Cursor() != first.Handle {
		t.Fatalf("cursor should start on the leading divider")
	}

	next := tea.KeyMsg{Type: tea.KeyRight}
	for range 3 {
		if _, err := v.Update(next); err != nil {
			t.Fatal(err)
		}
	}
	second := f.ctrl.Timeline().Periods().At(3)
	if v.Cursor() != second.Handle {
		t.Fatalf("cursor = %d, want second Period %d", v.Cursor(), second.Handle)
	}

	// the cursor moved off screen, so the canvas scrolled to it
	x, _ := v.Offset()
	if second.Band.X < x || second.Band.X >= x+30 {
		t.Errorf("second Period at x=%d not visible from offset %d", second.Band.X, x)
	}

	if _, err := v.Update(tea.KeyMsg{Type: tea.KeyEnter}); err != nil {
		t.Fatal(err)
	}
	if f.ctrl.Selection(controller.SlotPrimary) != second {
		t.Error("enter should select the card under the cursor")
	}

	handled, _ := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	if handled {
		t.Error("unbound key should not be handled")
	}
}

func TestCanvasView_EventsFollowPeriods(t *testing.T) {
	f := newFixture(t, domain.NewDemoTimeline())
	periods := f.view(t, ports.CanvasPeriods, 30, 9)
	events := f.view(t, ports.CanvasEvents, 30, 20)
	events.Follow(periods)

	f.surface.Wheel(ports.CanvasPeriods, 5)

	px, _ := periods.Offset()
	ex, _ := events.Offset()
	if px == 0 || ex != px {
		t.Errorf("events offset %d, want periods offset %d", ex, px)
	}

	// the Event divider of the second Period sits under that Period
	second := f.ctrl.Timeline().Periods().At(3)
	h, ok := events.HitTest(second.Band.X-px+1, 0)
	if !ok {
		t.Fatal("expected the Event divider of the second Period")
	}
	card, _ := f.ctrl.CardFor(h)
	if card.Scope.Owner != second {
		t.Errorf("divider belongs to %v, want the second Period", card.Scope.Owner)
	}
}

func TestCanvasView_ScenesOfFarEventVisible(t *testing.T) {
	f := newFixture(t, domain.NewDemoTimeline())
	scenes := f.view(t, ports.CanvasScenes, 80, 9)

	last := f.ctrl.Timeline().Periods().At(7)
	if err := f.surface.Click(last.Children.At(0).Handle); err != nil {
		t.Fatal(err)
	}
	ev := last.Children.At(1)
	if err := f.surface.Click(ev.Handle); err != nil {
		t.Fatal(err)
	}
	if err := f.ctrl.LastError(); err != nil {
		t.Fatal(err)
	}
	if f.ctrl.OpenEvent() != ev {
		t.Fatal("clicking the Event should open its Scenes")
	}

	div := ev.Children.At(0)
	x, _ := scenes.Offset()
	if div.Band.X < x || div.Band.X >= x+80 {
		t.Errorf("scene divider at x=%d outside view from offset %d", div.Band.X, x)
	}
	if h, ok := scenes.HitTest(div.Band.X-x+1, 0); !ok || h != div.Handle {
		t.Error("the scene divider should be under its screen position")
	}

	lines := scenes.render(newGrid(scenes.width, scenes.height)).plain()
	if !strings.Contains(strings.Join(lines, "\n"), "+") {
		t.Error("the scene divider should be drawn")
	}
}
