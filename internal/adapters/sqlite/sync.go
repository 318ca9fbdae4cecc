package sqlite

import (
	"fmt"
	"time"

	"microscope/internal/domain"
)

// SyncStats holds statistics from a rebuild
type SyncStats struct {
	Periods  int
	Events   int
	Scenes   int
	Duration time.Duration
}

// Cards returns the number of indexed cards
func (s *SyncStats) Cards() int {
	return s.Periods + s.Events + s.Scenes
}

// Rebuild replaces the index contents with the content cards of tl
func (idx *Index) Rebuild(tl *domain.Timeline) error {
	_, err := idx.Sync(tl)
	return err
}

// Sync performs a complete rebuild of the index and reports what it wrote
func (idx *Index) Sync(tl *domain.Timeline) (*SyncStats, error) {
	start := time.Now()
	stats := &SyncStats{}

	tx, err := idx.beginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin rebuild: %w", err)
	}
	if err := tx.clear(); err != nil {
		tx.rollback()
		return nil, fmt.Errorf("failed to clear index: %w", err)
	}

	var walkErr error
	tl.Walk(func(c *domain.Card) {
		if walkErr != nil || c.IsDivider() {
			return
		}
		if err := tx.insert(tl.PathOf(c), c); err != nil {
			walkErr = err
			return
		}
		switch c.Kind {
		case domain.KindPeriod:
			stats.Periods++
		case domain.KindEvent:
			stats.Events++
		case domain.KindScene:
			stats.Scenes++
		}
	})
	if walkErr != nil {
		tx.rollback()
		return nil, fmt.Errorf("failed to index card: %w", walkErr)
	}

	if err := tx.commit(); err != nil {
		return nil, fmt.Errorf("failed to commit rebuild: %w", err)
	}

	if _, err := idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`,
		time.Now().Unix()); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	return stats, nil
}
