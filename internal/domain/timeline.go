package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Timeline is the root of the Period → Event → Scene tree
type Timeline struct {
	periods *SiblingList
}

// NewTimeline creates an empty timeline
func NewTimeline() *Timeline {
	return &Timeline{periods: NewSiblingList(Scope{Level: LevelPeriods})}
}

// Periods returns the Period-level list
func (t *Timeline) Periods() *SiblingList { return t.periods }

// ListFor returns the list a scope refers to
func (t *Timeline) ListFor(scope Scope) *SiblingList {
	if scope.Owner == nil {
		return t.periods
	}
	return scope.Owner.Children
}

// Walk visits every card depth first, dividers included
func (t *Timeline) Walk(fn func(*Card)) {
	for _, c := range t.periods.items {
		for _, sub := range c.Subtree() {
			fn(sub)
		}
	}
}

// Path addresses a content card by 1-based ordinals. Zero fields stop the
// descent: {2, 0, 0} is the second Period, {2, 1, 3} the third Scene of its
// first Event.
type Path struct {
	Period int
	Event  int
	Scene  int
}

// Level returns the level the path points at
func (p Path) Level() Level {
	switch {
	case p.Scene > 0:
		return LevelScenes
	case p.Event > 0:
		return LevelEvents
	default:
		return LevelPeriods
	}
}

func (p Path) String() string {
	parts := []string{strconv.Itoa(p.Period)}
	if p.Event > 0 {
		parts = append(parts, strconv.Itoa(p.Event))
	}
	if p.Scene > 0 {
		parts = append(parts, strconv.Itoa(p.Scene))
	}
	return strings.Join(parts, ".")
}

// ParsePath parses "2", "2.1" or "2.1.3"
func ParsePath(s string) (Path, error) {
	var p Path
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) == 0 || len(parts) > 3 {
		return p, fmt.Errorf("invalid path: %q", s)
	}
	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return p, fmt.Errorf("invalid path: %q", s)
		}
		nums[i] = n
	}
	return Path{Period: nums[0], Event: nums[1], Scene: nums[2]}, nil
}

// Parent returns the path one level up
func (p Path) Parent() Path {
	switch {
	case p.Scene > 0:
		return Path{Period: p.Period, Event: p.Event}
	case p.Event > 0:
		return Path{Period: p.Period}
	default:
		return Path{}
	}
}

// Find resolves a path to its content card
func (t *Timeline) Find(p Path) (*Card, error) {
	if p.Period < 1 {
		return nil, fmt.Errorf("path %s: %w", p, ErrNotFound)
	}
	card := t.periods.At(2*p.Period - 1)
	if card == nil {
		return nil, fmt.Errorf("period %d: %w", p.Period, ErrNotFound)
	}
	if p.Event > 0 {
		card = card.Children.At(2*p.Event - 1)
		if card == nil {
			return nil, fmt.Errorf("event %s: %w", p, ErrNotFound)
		}
	}
	if p.Scene > 0 {
		if p.Event < 1 {
			return nil, fmt.Errorf("path %s: %w", p, ErrNotFound)
		}
		card = card.Children.At(2*p.Scene - 1)
		if card == nil {
			return nil, fmt.Errorf("scene %s: %w", p, ErrNotFound)
		}
	}
	return card, nil
}

// ListAt resolves the list whose owner is at p. The zero path is the Period
// list.
func (t *Timeline) ListAt(p Path) (*SiblingList, error) {
	if p == (Path{}) {
		return t.periods, nil
	}
	owner, err := t.Find(p)
	if err != nil {
		return nil, err
	}
	if owner.Children == nil {
		return nil, fmt.Errorf("%s %s has no children", owner.Kind, p)
	}
	return owner.Children, nil
}

// PathOf returns the path of a content card
func (t *Timeline) PathOf(c *Card) Path {
	ordinal := func(card *Card) int { return (card.Index + 1) / 2 }
	switch c.Kind {
	case KindPeriod:
		return Path{Period: ordinal(c)}
	case KindEvent:
		return Path{Period: ordinal(c.Parent), Event: ordinal(c)}
	case KindScene:
		ev := c.Parent
		return Path{Period: ordinal(ev.Parent), Event: ordinal(ev), Scene: ordinal(c)}
	default:
		return Path{}
	}
}

// Verify checks the structural invariants of every list in the tree
func (t *Timeline) Verify() error {
	return verifyList(t.periods, nil)
}

func verifyList(l *SiblingList, owner *Card) error {
	if l.scope.Owner != owner {
		return fmt.Errorf("%s list: scope owner mismatch", l.scope.Level)
	}
	if len(l.items)%2 != 1 {
		return fmt.Errorf("%s list: even length %d", l.scope.Level, len(l.items))
	}
	for i, c := range l.items {
		if c.Index != i {
			return fmt.Errorf("%s list: card at %d has index %d", l.scope.Level, i, c.Index)
		}
		if c.IsDivider() != (i%2 == 0) {
			return fmt.Errorf("%s list: %s at position %d", l.scope.Level, c.Kind, i)
		}
		if c.Scope.Owner != owner || c.Scope.Level != l.scope.Level {
			return fmt.Errorf("%s list: card at %d has wrong scope", l.scope.Level, i)
		}
		if c.IsDivider() {
			continue
		}
		if c.Kind != l.scope.Level.ContentKind() {
			return fmt.Errorf("%s list: %s at position %d", l.scope.Level, c.Kind, i)
		}
		if c.Parent != owner {
			return fmt.Errorf("%s list: card at %d has wrong parent", l.scope.Level, i)
		}
		if c.Children != nil {
			if err := verifyList(c.Children, c); err != nil {
				return err
			}
		}
	}
	return nil
}
