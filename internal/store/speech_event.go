package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type speechEventRepo struct {
	db  *sql.DB
	seq *sequence
}

const speechEventColumns = `id, event_id, sequence, timestamp, session_id, provider, model, voice,
	purpose, characters, audio_bytes, format, latency_ms, success, error_message`

func (r *speechEventRepo) AppendSpeechRequest(ctx context.Context, data SpeechEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO speech_events (
		event_id, sequence, timestamp, session_id, provider, model, voice,
		purpose, characters, audio_bytes, format, latency_ms, success, error_message
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		seqNum,
		time.Now().UnixNano(),
		data.SessionID,
		data.Provider,
		data.Model,
		data.Voice,
		data.Purpose,
		data.Characters,
		data.AudioBytes,
		data.Format,
		data.LatencyMs,
		data.Success,
		data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save speech event: %w", err)
	}
	return nil
}

func (r *speechEventRepo) QuerySpeechEvents(ctx context.Context, opts QueryOpts) ([]SpeechEventRecord, error) {
	var (
		where []string
		args  []any
	)
	if opts.After > 0 {
		where = append(where, "sequence > ?")
		args = append(args, opts.After)
	}
	if opts.Before > 0 {
		where = append(where, "sequence < ?")
		args = append(args, opts.Before)
	}
	if !opts.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, opts.From.UnixNano())
	}
	if !opts.To.IsZero() {
		where = append(where, "timestamp <= ?")
		args = append(args, opts.To.UnixNano())
	}

	q := "SELECT " + speechEventColumns + " FROM speech_events"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query speech events: %w", err)
	}
	defer rows.Close()

	var records []SpeechEventRecord
	for rows.Next() {
		rec, err := scanSpeechEvent(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query speech events: %w", err)
	}
	return records, nil
}

func (r *speechEventRepo) GetSpeechEvent(ctx context.Context, id int) (*SpeechEventRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+speechEventColumns+" FROM speech_events WHERE id = ?", id)
	rec, err := scanSpeechEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (r *speechEventRepo) SpeechUsageByModel(ctx context.Context) ([]SpeechUsage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT provider, model, COUNT(*),
		SUM(CASE WHEN success THEN 0 ELSE 1 END),
		SUM(CASE WHEN success THEN characters ELSE 0 END),
		SUM(audio_bytes), CAST(AVG(latency_ms) AS INTEGER)
		FROM speech_events
		GROUP BY provider, model
		ORDER BY COUNT(*) DESC, provider, model`)
	if err != nil {
		return nil, fmt.Errorf("query speech usage: %w", err)
	}
	defer rows.Close()

	var out []SpeechUsage
	for rows.Next() {
		var u SpeechUsage
		if err := rows.Scan(&u.Provider, &u.Model, &u.Calls, &u.Failures,
			&u.Characters, &u.AudioBytes, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan speech usage: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query speech usage: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSpeechEvent(s scanner) (*SpeechEventRecord, error) {
	var (
		rec SpeechEventRecord
		ts  int64
	)
	err := s.Scan(
		&rec.ID,
		&rec.EventID,
		&rec.Sequence,
		&ts,
		&rec.SessionID,
		&rec.Provider,
		&rec.Model,
		&rec.Voice,
		&rec.Purpose,
		&rec.Characters,
		&rec.AudioBytes,
		&rec.Format,
		&rec.LatencyMs,
		&rec.Success,
		&rec.ErrorMessage,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan speech event: %w", err)
	}
	rec.Timestamp = time.Unix(0, ts)
	return &rec, nil
}
