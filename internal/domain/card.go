package domain

import "fmt"

// Kind discriminates the variants of a Card
type Kind int

const (
	KindDivider Kind = iota
	KindPeriod
	KindEvent
	KindScene
)

func (k Kind) String() string {
	switch k {
	case KindDivider:
		return "Divider"
	case KindPeriod:
		return "Period"
	case KindEvent:
		return "Event"
	case KindScene:
		return "Scene"
	default:
		return "Unknown"
	}
}

// Tone is the light/dark attribute of a content card
type Tone int

const (
	ToneLight Tone = iota
	ToneDark
)

func (t Tone) String() string {
	if t == ToneDark {
		return "dark"
	}
	return "light"
}

// ParseTone accepts "light" or "dark"
func ParseTone(s string) (Tone, error) {
	switch s {
	case "light", "":
		return ToneLight, nil
	case "dark":
		return ToneDark, nil
	default:
		return ToneLight, fmt.Errorf("invalid tone: %q (expected light or dark)", s)
	}
}

// Handle identifies the on-screen element bound to a card. Zero means none.
type Handle int

// NoHandle is the zero handle
const NoHandle Handle = 0

// PressState is the visual state machine of a card
type PressState int

const (
	Raised PressState = iota
	Sunken
)

// Band is the on-canvas rectangle computed by the layout engine
type Band struct {
	X, Y          int
	Width, Height int
}

// Right returns the x coordinate just past the band
func (b Band) Right() int { return b.X + b.Width }

// Bottom returns the y coordinate just past the band
func (b Band) Bottom() int { return b.Y + b.Height }

// Contains reports whether the point lies inside the band
func (b Band) Contains(x, y int) bool {
	return x >= b.X && x < b.Right() && y >= b.Y && y < b.Bottom()
}

// Placeholder texts for freshly inserted cards
const (
	NewPeriodLabel   = "New Period"
	NewEventLabel    = "New Event"
	NewSceneQuestion = "New Scene"
)

// Card is a renderable unit: either a Divider marking an insertion point or a
// Period, Event or Scene record.
type Card struct {
	Kind Kind

	// Content payload
	Label    string // Period and Event
	Question string // Scene
	Setting  string // Scene
	Answer   string // Scene
	Tone     Tone

	// Children is the next level down: Events of a Period, Scenes of an Event.
	Children *SiblingList
	// Parent is the owning Period (for Events) or Event (for Scenes).
	Parent *Card
	// Scope is the list the card lives in. Dividers use it to route clicks.
	Scope Scope

	Index  int
	Handle Handle
	Band   Band
	State  PressState
}

// NewPeriod creates a Period with an empty Event list
func NewPeriod(label string, tone Tone) *Card {
	c := &Card{Kind: KindPeriod, Label: label, Tone: tone}
	c.Children = NewSiblingList(Scope{Level: LevelEvents, Owner: c})
	return c
}

// NewEvent creates an Event with an empty Scene list
func NewEvent(label string, tone Tone) *Card {
	c := &Card{Kind: KindEvent, Label: label, Tone: tone}
	c.Children = NewSiblingList(Scope{Level: LevelScenes, Owner: c})
	return c
}

// NewScene creates a Scene
func NewScene(question, setting, answer string, tone Tone) *Card {
	return &Card{
		Kind:     KindScene,
		Question: question,
		Setting:  setting,
		Answer:   answer,
		Tone:     tone,
	}
}

// NewPlaceholder creates the default content card inserted by a divider click
func NewPlaceholder(level Level) *Card {
	switch level {
	case LevelPeriods:
		return NewPeriod(NewPeriodLabel, ToneLight)
	case LevelEvents:
		return NewEvent(NewEventLabel, ToneLight)
	default:
		return NewScene(NewSceneQuestion, "", "", ToneLight)
	}
}

func newDivider(scope Scope) *Card {
	return &Card{Kind: KindDivider, Scope: scope}
}

// IsDivider reports whether the card is an insertion marker
func (c *Card) IsDivider() bool { return c.Kind == KindDivider }

// IsContent reports whether the card is a Period, Event or Scene
func (c *Card) IsContent() bool { return c.Kind != KindDivider }

// Title is the single line of text identifying the card
func (c *Card) Title() string {
	switch c.Kind {
	case KindScene:
		return c.Question
	case KindDivider:
		return "+"
	default:
		return c.Label
	}
}

// Press sinks the card
func (c *Card) Press() { c.State = Sunken }

// Release raises the card
func (c *Card) Release() { c.State = Raised }

// Pressed reports whether the card is sunken
func (c *Card) Pressed() bool { return c.State == Sunken }

// SetBand records the layout result
func (c *Card) SetBand(b Band) { c.Band = b }

// SceneCount is the number of Scenes under an Event. The Scene list always
// has length 2k+1 for k scenes, so halving the length is exact.
func (c *Card) SceneCount() int {
	if c.Kind != KindEvent || c.Children == nil {
		return 0
	}
	return c.Children.Len() / 2
}

// SceneCountLabel is the derived label shown on an Event card. Empty when the
// Event has no Scenes.
func (c *Card) SceneCountLabel() string {
	switch n := c.SceneCount(); n {
	case 0:
		return ""
	case 1:
		return "1 scene"
	default:
		return fmt.Sprintf("%d scenes", n)
	}
}

// Subtree returns the card followed by every card in its child lists,
// depth first.
func (c *Card) Subtree() []*Card {
	out := []*Card{c}
	if c.Children != nil {
		for _, child := range c.Children.items {
			out = append(out, child.Subtree()...)
		}
	}
	return out
}
