package styles

import (
	"github.com/charmbracelet/lipgloss"

	"microscope/internal/config"
)

var (
	// Colors
	Accent = lipgloss.Color("#7D56F4")
	Light  = lipgloss.Color("#E8E4D9")
	Dark   = lipgloss.Color("#3B3B4F")
	Text   = lipgloss.Color("#FAFAFA")
	Muted  = lipgloss.Color("#626262")
	Error  = lipgloss.Color("#FF5F87")

	App           lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	StatusBar     lipgloss.Style
	StatusKey     lipgloss.Style
	StatusText    lipgloss.Style
	InputLabel    lipgloss.Style
	InputField    lipgloss.Style
	InputFocused  lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
	Success       lipgloss.Style
	ErrorMsg      lipgloss.Style
	MutedText     lipgloss.Style
	Selected      lipgloss.Style

	// Card drawing
	CardLight   lipgloss.Style
	CardDark    lipgloss.Style
	CardPressed lipgloss.Style
	Divider     lipgloss.Style
	Cursor      lipgloss.Style
	Count       lipgloss.Style

	// Canvas frames and scroll bars
	CanvasFrame   lipgloss.Style
	CanvasFocused lipgloss.Style
	ScrollTrack   lipgloss.Style
	ScrollThumb   lipgloss.Style

	// Card borders. A sunken card is drawn with the thick border.
	RaisedBorder = lipgloss.RoundedBorder()
	SunkenBorder = lipgloss.ThickBorder()

	// Tone swatches
	SwatchLight = "○"
	SwatchDark  = "●"
)

func init() {
	build()
}

// Apply replaces the palette with the configured colours and rebuilds every
// style
func Apply(cfg config.ThemeConfig) {
	Accent = lipgloss.Color(cfg.Accent)
	Light = lipgloss.Color(cfg.Light)
	Dark = lipgloss.Color(cfg.Dark)
	Text = lipgloss.Color(cfg.Text)
	Muted = lipgloss.Color(cfg.Muted)
	Error = lipgloss.Color(cfg.Error)
	build()
}

func build() {
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	StatusBar = lipgloss.NewStyle().
		Background(Dark).
		Foreground(Text).
		Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
		Background(Accent).
		Foreground(Text).
		Padding(0, 1).
		MarginRight(1)

	StatusText = lipgloss.NewStyle().
		Foreground(Muted)

	InputLabel = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	InputField = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(0, 1)

	HelpKey = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
		Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
		Foreground(Muted).
		SetString(" • ")

	Success = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	MutedText = lipgloss.NewStyle().
		Foreground(Muted)

	Selected = lipgloss.NewStyle().
		Background(Accent).
		Foreground(Text).
		Bold(true)

	CardLight = lipgloss.NewStyle().
		Foreground(Light)

	CardDark = lipgloss.NewStyle().
		Foreground(Text).
		Background(Dark)

	CardPressed = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Divider = lipgloss.NewStyle().
		Foreground(Muted)

	Cursor = lipgloss.NewStyle().
		Reverse(true)

	Count = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	CanvasFrame = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(Muted)

	CanvasFocused = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(Accent)

	ScrollTrack = lipgloss.NewStyle().
		Foreground(Muted)

	ScrollThumb = lipgloss.NewStyle().
		Foreground(Accent)
}

// CardStyle returns the fill style of a card of the given darkness
func CardStyle(dark bool) lipgloss.Style {
	if dark {
		return CardDark
	}
	return CardLight
}
