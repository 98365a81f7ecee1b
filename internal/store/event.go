package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequence numbers the rows of one event stream. Values for a name never
// repeat, even after rows are deleted, so QueryOpts cursors stay valid.
type sequence struct {
	mu   sync.Mutex
	db   *sql.DB
	name string
}

func newSequence(db *sql.DB, name string) *sequence {
	return &sequence{db: db, name: name}
}

// Next returns the next value, starting at 1.
func (s *sequence) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var v int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO sequences (name, value) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = value + 1
		RETURNING value`, s.name,
	).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("sequence %s: %w", s.name, err)
	}
	return v, nil
}
