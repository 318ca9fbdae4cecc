package ports

import "microscope/internal/domain"

// SearchHit is a card matching a search query
type SearchHit struct {
	Path  domain.Path
	Kind  domain.Kind
	Title string
	Text  string // all searchable text of the card
}

// TimelineIndex provides text search over the cards of a timeline.
// The index lives only as long as the process.
type TimelineIndex interface {
	Rebuild(tl *domain.Timeline) error
	Search(query string) ([]SearchHit, error)
	Close() error
}
