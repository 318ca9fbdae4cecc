package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"microscope/internal/domain"
)

// cell is one terminal cell. An empty ch marks the second half of a wide
// rune.
type cell struct {
	ch    string
	style int
}

// grid is a fixed-size cell buffer cards are drawn into before being
// flattened to styled lines. Style 0 is unstyled.
type grid struct {
	w, h   int
	cells  [][]cell
	styles []lipgloss.Style
}

func newGrid(w, h int) *grid {
	g := &grid{w: max(w, 0), h: max(h, 0), styles: []lipgloss.Style{lipgloss.NewStyle()}}
	g.cells = make([][]cell, g.h)
	for y := range g.cells {
		row := make([]cell, g.w)
		for x := range row {
			row[x] = cell{ch: " "}
		}
		g.cells[y] = row
	}
	return g
}

// style registers s and returns its index
func (g *grid) style(s lipgloss.Style) int {
	g.styles = append(g.styles, s)
	return len(g.styles) - 1
}

func (g *grid) inside(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

func (g *grid) set(x, y int, ch string, style int) {
	if g.inside(x, y) {
		g.cells[y][x] = cell{ch: ch, style: style}
	}
}

// fill paints every cell of b with spaces in style
func (g *grid) fill(b domain.Band, style int) {
	for y := b.Y; y < b.Bottom(); y++ {
		for x := b.X; x < b.Right(); x++ {
			g.set(x, y, " ", style)
		}
	}
}

// text writes s from (x, y), stopping after width cells. A wide rune that
// would cross the limit is dropped.
func (g *grid) text(x, y, width int, s string, style int) {
	end := x + width
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > end {
			return
		}
		g.set(x, y, string(r), style)
		if w == 2 {
			g.set(x+1, y, "", style)
		}
		x += w
	}
}

// lines flattens the grid, rendering each run of equally styled cells once
func (g *grid) lines() []string {
	out := make([]string, g.h)
	for y, row := range g.cells {
		var b, run strings.Builder
		current := 0
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current == 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(g.styles[current].Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			if c.style != current {
				flush()
				current = c.style
			}
			run.WriteString(c.ch)
		}
		flush()
		out[y] = b.String()
	}
	return out
}

// plain returns the grid contents without styling
func (g *grid) plain() []string {
	out := make([]string, g.h)
	for y, row := range g.cells {
		var b strings.Builder
		for _, c := range row {
			b.WriteString(c.ch)
		}
		out[y] = b.String()
	}
	return out
}
