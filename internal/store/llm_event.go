package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// eventRepo implements EventRepo with plain SQL.
type eventRepo struct {
	db  *sql.DB
	now func() time.Time
}

const eventColumns = `id, timestamp_ms, request_id, provider, model, purpose,
	input_tokens, output_tokens, latency_ms, success, error_message,
	request_body, response_body`

func (r *eventRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_request_events (
			timestamp_ms, request_id, provider, model, purpose,
			input_tokens, output_tokens, latency_ms, success, error_message,
			request_body, response_body
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.clock().UnixMilli(),
		data.RequestID,
		data.Provider,
		data.Model,
		data.Purpose,
		data.InputTokens,
		data.OutputTokens,
		data.LatencyMs,
		boolToInt(data.Success),
		data.ErrorMessage,
		data.RequestBody,
		data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	var (
		where []string
		args  []any
	)
	if opts.After > 0 {
		where = append(where, "id > ?")
		args = append(args, opts.After)
	}
	if opts.Before > 0 {
		where = append(where, "id < ?")
		args = append(args, opts.Before)
	}
	if !opts.From.IsZero() {
		where = append(where, "timestamp_ms >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "timestamp_ms <= ?")
		args = append(args, opts.To.UnixMilli())
	}
	if opts.Purpose != "" {
		where = append(where, "purpose = ?")
		args = append(args, opts.Purpose)
	}

	q := "SELECT " + eventColumns + " FROM llm_request_events"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM llm_request_events WHERE id = ?", id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT purpose, COUNT(*), COALESCE(SUM(input_tokens), 0),
		       COALESCE(SUM(output_tokens), 0), CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)
		FROM llm_request_events
		GROUP BY purpose
		ORDER BY COUNT(*) DESC, purpose`)
	if err != nil {
		return nil, fmt.Errorf("usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT model, COUNT(*), COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
		FROM llm_request_events
		GROUP BY model
		ORDER BY COUNT(*) DESC, model`)
	if err != nil {
		return nil, fmt.Errorf("usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*LLMEvent, error) {
	var (
		e       LLMEvent
		tsMilli int64
		success int
	)
	err := s.Scan(
		&e.ID, &tsMilli, &e.RequestID, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &success, &e.ErrorMessage,
		&e.RequestBody, &e.ResponseBody,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	e.Timestamp = time.UnixMilli(tsMilli).UTC()
	e.Success = success != 0
	return &e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
