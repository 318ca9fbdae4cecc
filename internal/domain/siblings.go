package domain

import "fmt"

// Level names the three nesting levels of the timeline
type Level int

const (
	LevelPeriods Level = iota
	LevelEvents
	LevelScenes
)

func (l Level) String() string {
	switch l {
	case LevelPeriods:
		return "periods"
	case LevelEvents:
		return "events"
	case LevelScenes:
		return "scenes"
	default:
		return "unknown"
	}
}

// ContentKind returns the kind of content cards held at this level
func (l Level) ContentKind() Kind {
	switch l {
	case LevelPeriods:
		return KindPeriod
	case LevelEvents:
		return KindEvent
	default:
		return KindScene
	}
}

// Scope identifies one ordered sibling list: the Periods, the Events of a
// Period or the Scenes of an Event.
type Scope struct {
	Level Level
	Owner *Card // nil for the Period list
}

// SiblingList is an ordered sequence of cards for one scope. It always has
// odd length, Dividers at even positions and content at odd positions.
// All mutation goes through InsertAt, DeleteAt and ReplaceAt.
type SiblingList struct {
	scope Scope
	items []*Card
}

// NewSiblingList creates a list holding a single Divider
func NewSiblingList(scope Scope) *SiblingList {
	l := &SiblingList{scope: scope}
	l.items = []*Card{newDivider(scope)}
	return l
}

// Scope returns the scope of the list
func (l *SiblingList) Scope() Scope { return l.scope }

// Len returns the number of cards, dividers included
func (l *SiblingList) Len() int { return len(l.items) }

// At returns the card at index i, or nil when out of range
func (l *SiblingList) At(i int) *Card {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Items returns a copy of the cards
func (l *SiblingList) Items() []*Card {
	out := make([]*Card, len(l.items))
	copy(out, l.items)
	return out
}

// Contents returns the content cards in order
func (l *SiblingList) Contents() []*Card {
	out := make([]*Card, 0, len(l.items)/2)
	for i := 1; i < len(l.items); i += 2 {
		out = append(out, l.items[i])
	}
	return out
}

// ContentCount returns the number of content cards
func (l *SiblingList) ContentCount() int { return len(l.items) / 2 }

// InsertAt puts a fresh Divider at index and content at index+1. The index
// must be even and address an existing Divider.
func (l *SiblingList) InsertAt(index int, content *Card) (*Card, error) {
	if err := l.checkIndex("insert", index, true); err != nil {
		return nil, err
	}
	if err := l.checkKind(content); err != nil {
		return nil, err
	}

	div := newDivider(l.scope)
	content.Scope = l.scope
	content.Parent = l.scope.Owner

	items := make([]*Card, 0, len(l.items)+2)
	items = append(items, l.items[:index]...)
	items = append(items, div, content)
	items = append(items, l.items[index:]...)
	l.items = items
	l.renumber()

	return div, nil
}

// DeleteAt removes the content at contentIndex together with its trailing
// Divider. The removed cards are returned in list order.
func (l *SiblingList) DeleteAt(contentIndex int) ([]*Card, error) {
	if err := l.checkIndex("delete", contentIndex, false); err != nil {
		return nil, err
	}

	removed := []*Card{l.items[contentIndex], l.items[contentIndex+1]}
	l.items = append(l.items[:contentIndex], l.items[contentIndex+2:]...)
	l.renumber()

	return removed, nil
}

// ReplaceAt swaps the content at contentIndex for content. The child list,
// visual handle, band and press state move to the replacement so an edit
// never drops Events or Scenes.
func (l *SiblingList) ReplaceAt(contentIndex int, content *Card) (*Card, error) {
	if err := l.checkIndex("replace", contentIndex, false); err != nil {
		return nil, err
	}
	if err := l.checkKind(content); err != nil {
		return nil, err
	}

	old := l.items[contentIndex]
	if old == content {
		return old, nil
	}

	content.Scope = l.scope
	content.Parent = l.scope.Owner
	content.Index = contentIndex
	content.Handle = old.Handle
	content.Band = old.Band
	content.State = old.State

	if old.Children != nil {
		content.Children = old.Children
		content.Children.reown(content)
	}

	old.Handle = NoHandle
	old.Children = nil
	old.Parent = nil
	l.items[contentIndex] = content

	return old, nil
}

// reown points the list scope, its dividers and its children at a new owner
func (l *SiblingList) reown(owner *Card) {
	l.scope.Owner = owner
	for _, c := range l.items {
		c.Scope = l.scope
		if c.IsContent() {
			c.Parent = owner
		}
	}
}

func (l *SiblingList) renumber() {
	for i, c := range l.items {
		c.Index = i
	}
}

func (l *SiblingList) checkIndex(op string, index int, wantDivider bool) error {
	if index < 0 || index >= len(l.items) || (!wantDivider && index == len(l.items)-1) {
		return &IndexError{Op: op, Index: index, Len: len(l.items), Err: ErrIndexOutOfRange}
	}
	if (index%2 == 0) != wantDivider {
		return &IndexError{Op: op, Index: index, Len: len(l.items), Err: ErrWrongParity}
	}
	return nil
}

func (l *SiblingList) checkKind(content *Card) error {
	if content == nil {
		return fmt.Errorf("%w: nil content", ErrKindMismatch)
	}
	if want := l.scope.Level.ContentKind(); content.Kind != want {
		return fmt.Errorf("%w: %s list cannot hold %s", ErrKindMismatch, l.scope.Level, content.Kind)
	}
	return nil
}
