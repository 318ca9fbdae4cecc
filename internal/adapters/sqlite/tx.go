package sqlite

import (
	"database/sql"
	"strings"

	"microscope/internal/domain"
)

// cardTx writes cards inside one transaction
type cardTx struct {
	tx   *sql.Tx
	stmt *sql.Stmt
}

func (idx *Index) beginTx() (*cardTx, error) {
	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO cards (period, event, scene, kind, title, body)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	return &cardTx{tx: tx, stmt: stmt}, nil
}

// clear removes every card
func (t *cardTx) clear() error {
	_, err := t.tx.Exec(`DELETE FROM cards`)
	return err
}

// insert adds a content card at path
func (t *cardTx) insert(p domain.Path, c *domain.Card) error {
	_, err := t.stmt.Exec(p.Period, p.Event, p.Scene, c.Kind.String(), c.Title(), searchText(c))
	return err
}

func (t *cardTx) commit() error {
	t.stmt.Close()
	return t.tx.Commit()
}

func (t *cardTx) rollback() error {
	t.stmt.Close()
	return t.tx.Rollback()
}

// searchText is the lower-cased text a card is found by
func searchText(c *domain.Card) string {
	parts := []string{c.Label, c.Question, c.Setting, c.Answer}
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.ToLower(strings.Join(kept, "\n"))
}
