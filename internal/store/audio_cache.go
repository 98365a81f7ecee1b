package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type audioCache struct {
	db *sql.DB
}

func (c *audioCache) Get(ctx context.Context, key string) (*CachedAudio, error) {
	var a CachedAudio
	err := c.db.QueryRowContext(ctx,
		`SELECT data, format FROM audio_cache WHERE key = ?`, key,
	).Scan(&a.Data, &a.Format)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cached audio: %w", err)
	}

	if _, err := c.db.ExecContext(ctx,
		`UPDATE audio_cache SET last_used = ? WHERE key = ?`, time.Now().UnixNano(), key,
	); err != nil {
		return nil, fmt.Errorf("touch cached audio: %w", err)
	}
	return &a, nil
}

func (c *audioCache) Put(ctx context.Context, key string, audio CachedAudio) error {
	now := time.Now().UnixNano()
	_, err := c.db.ExecContext(ctx, `INSERT INTO audio_cache (key, format, data, created_at, last_used)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET format = excluded.format, data = excluded.data, last_used = excluded.last_used`,
		key, audio.Format, audio.Data, now, now,
	)
	if err != nil {
		return fmt.Errorf("save cached audio: %w", err)
	}
	return nil
}

func (c *audioCache) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := c.db.ExecContext(ctx, `DELETE FROM audio_cache WHERE key NOT IN (
		SELECT key FROM audio_cache ORDER BY last_used DESC, key LIMIT ?
	)`, keep)
	if err != nil {
		return fmt.Errorf("prune audio cache: %w", err)
	}
	return nil
}

func (c *audioCache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audio_cache`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cached audio: %w", err)
	}
	return n, nil
}
