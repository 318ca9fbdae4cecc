package commands

import (
	"context"
	"sort"
	"strings"

	"microscope/internal/ports"
)

// SearchResult wraps ports.SearchHit with a relevance score
type SearchResult struct {
	ports.SearchHit
	Score int
}

// SearchCommand searches card text with fuzzy ranking
type SearchCommand struct {
	index ports.TimelineIndex
	Query string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(index ports.TimelineIndex, query string) *SearchCommand {
	return &SearchCommand{
		index: index,
		Query: query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(strings.TrimSpace(c.Query)) < 2 {
		return nil, nil
	}

	hits, err := c.index.Search(c.Query)
	if err != nil {
		return nil, err
	}

	return FuzzySort(hits, c.Query), nil
}

// FuzzyScore rates how well target matches query, case-insensitively.
// A substring scores 100, 150 at the start. Otherwise every query rune must
// appear in order; runs and word starts earn bonuses. No match is 0.
func FuzzyScore(target, query string) int {
	if query == "" {
		return 0
	}
	t := []rune(strings.ToLower(target))
	q := []rune(strings.ToLower(query))

	if i := strings.Index(string(t), string(q)); i >= 0 {
		if i == 0 {
			return 150
		}
		return 100
	}

	score, next, last := 0, 0, -2
	for i, r := range t {
		if next == len(q) {
			break
		}
		if r != q[next] {
			continue
		}
		score++
		switch {
		case i == 0:
			score += 15
		case isWordBreak(t[i-1]):
			score += 10
		}
		if last == i-1 {
			score += 10
		}
		last = i
		next++
	}

	if next < len(q) {
		return 0
	}
	return score
}

func isWordBreak(r rune) bool {
	return r == ' ' || r == '.' || r == '-' || r == ','
}

// FuzzySort ranks hits by their best-matching text. Hits the index returned
// but that do not fuzzy-match still rank last with a score of 1.
func FuzzySort(hits []ports.SearchHit, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(hits))

	for _, h := range hits {
		best := max(FuzzyScore(h.Path.String(), query), FuzzyScore(h.Title, query), FuzzyScore(h.Text, query), 1)
		scored = append(scored, SearchResult{SearchHit: h, Score: best})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
