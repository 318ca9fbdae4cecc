package commands

import (
	"context"
	"fmt"
	"strings"

	"microscope/internal/domain"
)

// OutlineEntry is one content card of the timeline outline
type OutlineEntry struct {
	Path   domain.Path
	Kind   domain.Kind
	Title  string
	Tone   domain.Tone
	Scenes string // scene-count label of Events
	Depth  int
}

// OutlineQuery lists the content cards of a timeline in order
type OutlineQuery struct {
	tl            *domain.Timeline
	IncludeScenes bool
}

// NewOutlineQuery creates a new OutlineQuery
func NewOutlineQuery(tl *domain.Timeline, includeScenes bool) *OutlineQuery {
	return &OutlineQuery{tl: tl, IncludeScenes: includeScenes}
}

// Execute walks the timeline depth first
func (q *OutlineQuery) Execute(ctx context.Context) ([]OutlineEntry, error) {
	var entries []OutlineEntry
	add := func(c *domain.Card, depth int) {
		entries = append(entries, OutlineEntry{
			Path:   q.tl.PathOf(c),
			Kind:   c.Kind,
			Title:  c.Title(),
			Tone:   c.Tone,
			Scenes: c.SceneCountLabel(),
			Depth:  depth,
		})
	}

	for _, period := range q.tl.Periods().Contents() {
		add(period, 0)
		for _, ev := range period.Children.Contents() {
			add(ev, 1)
			if !q.IncludeScenes {
				continue
			}
			for _, scene := range ev.Children.Contents() {
				add(scene, 2)
			}
		}
	}
	return entries, nil
}

// FormatOutline renders entries as an indented text tree
func FormatOutline(entries []OutlineEntry) string {
	if len(entries) == 0 {
		return "(empty timeline)\n"
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s%s %s [%s]", strings.Repeat("  ", e.Depth), e.Path, e.Title, e.Tone)
		if e.Scenes != "" {
			fmt.Fprintf(&b, " (%s)", e.Scenes)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
