package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"microscope/internal/adapters/tui/styles"
	"microscope/internal/domain"
)

// palette holds the grid style indexes used to draw cards
type palette struct {
	light, dark     int
	pressed, cursor int
	divider, count  int
	muted           int
}

func newPalette(g *grid) palette {
	return palette{
		light:   g.style(styles.CardLight),
		dark:    g.style(styles.CardDark),
		pressed: g.style(styles.CardPressed),
		cursor:  g.style(styles.Cursor),
		divider: g.style(styles.Divider),
		count:   g.style(styles.Count),
		muted:   g.style(styles.MutedText),
	}
}

// wrap breaks s into lines of at most width cells. Words longer than a line
// are cut with an ellipsis.
func wrap(s string, width int) []string {
	if width <= 0 || s == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(wordwrap.String(s, width), "\n") {
		out = append(out, runewidth.Truncate(strings.TrimRight(line, " "), width, "…"))
	}
	return out
}

// cardLines returns the text drawn inside a content card
func cardLines(card *domain.Card, width int) []string {
	lines := wrap(swatch(card.Tone)+" "+card.Title(), width)
	if card.Kind == domain.KindScene {
		lines = append(lines, wrap(card.Setting, width)...)
		if card.Answer != "" {
			lines = append(lines, wrap("» "+card.Answer, width)...)
		}
	}
	return lines
}

// drawCard draws a content card with its border in band b
func drawCard(g *grid, p palette, b domain.Band, card *domain.Card, cursor bool) {
	fill := p.light
	if card.Tone == domain.ToneDark {
		fill = p.dark
	}
	edge := fill
	border := styles.RaisedBorder
	if card.Pressed() {
		edge = p.pressed
		border = styles.SunkenBorder
	}
	if cursor {
		edge = p.cursor
	}

	g.fill(b, fill)
	if b.Width < 3 || b.Height < 3 {
		g.text(b.X, b.Y, b.Width, card.Title(), edge)
		return
	}
	drawBorder(g, b, border, edge)

	inner := b.Width - 2
	rows := b.Height - 2
	count := card.SceneCountLabel()
	if count != "" && rows > 1 {
		rows--
		label := runewidth.Truncate(count, inner, "…")
		g.text(b.Right()-1-runewidth.StringWidth(label), b.Bottom()-2, inner, label, p.count)
	}

	lines := cardLines(card, inner)
	for i := 0; i < len(lines) && i < rows; i++ {
		style := fill
		if i > 0 && card.Kind == domain.KindScene && fill == p.light {
			style = p.muted
		}
		g.text(b.X+1, b.Y+1+i, inner, lines[i], style)
	}
}

func drawBorder(g *grid, b domain.Band, border lipgloss.Border, style int) {
	right, bottom := b.Right()-1, b.Bottom()-1
	for x := b.X + 1; x < right; x++ {
		g.set(x, b.Y, border.Top, style)
		g.set(x, bottom, border.Bottom, style)
	}
	for y := b.Y + 1; y < bottom; y++ {
		g.set(b.X, y, border.Left, style)
		g.set(right, y, border.Right, style)
	}
	g.set(b.X, b.Y, border.TopLeft, style)
	g.set(right, b.Y, border.TopRight, style)
	g.set(b.X, bottom, border.BottomLeft, style)
	g.set(right, bottom, border.BottomRight, style)
}

// drawDivider draws the insert glyph centred in band b
func drawDivider(g *grid, p palette, b domain.Band, cursor bool) {
	style := p.divider
	if cursor {
		style = p.cursor
		g.fill(b, style)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return
	}
	g.set(b.X+b.Width/2, b.Y+b.Height/2, "+", style)
}
