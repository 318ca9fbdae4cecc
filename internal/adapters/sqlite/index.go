// Package sqlite implements the card search index on an in-memory SQLite
// database. The index is rebuilt from the timeline after every change and
// disappears with the process.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"microscope/internal/domain"
	"microscope/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = "1"

// Index implements ports.TimelineIndex using SQLite
type Index struct {
	db *sql.DB
}

// Ensure Index implements TimelineIndex
var _ ports.TimelineIndex = (*Index)(nil)

// Open creates the in-memory database and its schema
func Open() (*Index, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA temp_store = MEMORY;

		CREATE TABLE cards (
			seq INTEGER PRIMARY KEY,
			period INTEGER NOT NULL,
			event INTEGER NOT NULL,
			scene INTEGER NOT NULL,
			kind TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT NOT NULL
		);
		CREATE TABLE meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX idx_cards_path ON cards(period, event, scene);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	idx := &Index{db: db}
	if _, err := db.Exec(`INSERT INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}
	return idx, nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// Search returns the cards whose text contains every word of query, in
// timeline order
func (idx *Index) Search(query string) ([]ports.SearchHit, error) {
	words := strings.Fields(query)
	if len(words) == 0 {
		return nil, nil
	}

	clauses := make([]string, len(words))
	args := make([]any, len(words))
	for i, w := range words {
		clauses[i] = `body LIKE ? ESCAPE '\'`
		args[i] = "%" + escapeLike(strings.ToLower(w)) + "%"
	}

	rows, err := idx.db.Query(`
		SELECT period, event, scene, kind, title, body
		FROM cards WHERE `+strings.Join(clauses, " AND ")+`
		ORDER BY seq
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer rows.Close()

	var hits []ports.SearchHit
	for rows.Next() {
		var h ports.SearchHit
		var kind string
		if err := rows.Scan(&h.Path.Period, &h.Path.Event, &h.Path.Scene, &kind, &h.Title, &h.Text); err != nil {
			return nil, err
		}
		h.Kind = parseKind(kind)
		hits = append(hits, h)
	}

	return hits, rows.Err()
}

// Count returns the number of indexed cards
func (idx *Index) Count() (int, error) {
	var n int
	err := idx.db.QueryRow(`SELECT COUNT(*) FROM cards`).Scan(&n)
	return n, err
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func parseKind(s string) domain.Kind {
	switch s {
	case domain.KindPeriod.String():
		return domain.KindPeriod
	case domain.KindEvent.String():
		return domain.KindEvent
	case domain.KindScene.String():
		return domain.KindScene
	default:
		return domain.KindDivider
	}
}
