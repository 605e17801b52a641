package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rocklab/geoqa/internal/core/domain"
)

type QueryLogRepository struct {
	db *sql.DB
}

func NewQueryLogRepository(db *sql.DB) *QueryLogRepository {
	return &QueryLogRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *QueryLogRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across concurrent api startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082601)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS query_log (
	trace_id TEXT PRIMARY KEY,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	citations JSONB NOT NULL DEFAULT '[]'::jsonb,
	tools_used JSONB NOT NULL DEFAULT '[]'::jsonb,
	retrieval_used BOOLEAN NOT NULL DEFAULT FALSE,
	duration_ms BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_query_log_created_at ON query_log(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *QueryLogRepository) Insert(ctx context.Context, entry domain.QueryLogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	citations, err := json.Marshal(entry.Citations)
	if err != nil {
		return fmt.Errorf("marshal citations: %w", err)
	}
	tools, err := json.Marshal(entry.ToolsUsed)
	if err != nil {
		return fmt.Errorf("marshal tools: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO query_log (trace_id, question, answer, citations, tools_used, retrieval_used, duration_ms, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`, entry.TraceID, entry.Question, entry.Answer, citations, tools, entry.RetrievalUsed, entry.DurationMS, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert query log: %w", err)
	}
	return nil
}

func (r *QueryLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.QueryLogEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT trace_id, question, answer, citations, tools_used, retrieval_used, duration_ms, created_at
FROM query_log
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list query log: %w", err)
	}
	defer rows.Close()

	out := make([]domain.QueryLogEntry, 0, limit)
	for rows.Next() {
		var (
			entry     domain.QueryLogEntry
			citations []byte
			tools     []byte
		)
		if err := rows.Scan(
			&entry.TraceID,
			&entry.Question,
			&entry.Answer,
			&citations,
			&tools,
			&entry.RetrievalUsed,
			&entry.DurationMS,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan query log row: %w", err)
		}
		if err := json.Unmarshal(citations, &entry.Citations); err != nil {
			return nil, fmt.Errorf("unmarshal citations: %w", err)
		}
		if err := json.Unmarshal(tools, &entry.ToolsUsed); err != nil {
			return nil, fmt.Errorf("unmarshal tools: %w", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate query log rows: %w", err)
	}
	return out, nil
}
