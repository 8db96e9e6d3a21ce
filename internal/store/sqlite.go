package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// SQLiteStore implements domain.ConversationStore on SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	// Single connection: SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversations (
		id          TEXT PRIMARY KEY,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS turns (
		conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
		seq             INTEGER NOT NULL,
		user            TEXT NOT NULL,
		ai              TEXT NOT NULL,
		pending         TEXT,
		PRIMARY KEY (conversation_id, seq)
	);
	CREATE INDEX IF NOT EXISTS idx_turns_conv ON turns(conversation_id, seq);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, id string) ([]domain.Turn, error) {
	if id == "" {
		return []domain.Turn{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT user, ai, pending FROM turns WHERE conversation_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	turns := []domain.Turn{}
	for rows.Next() {
		var t domain.Turn
		var pending sql.NullString
		if err := rows.Scan(&t.User, &t.AI, &pending); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		if pending.Valid && pending.String != "" {
			var p domain.PendingAction
			if err := json.Unmarshal([]byte(pending.String), &p); err == nil {
				t.Pending = &p
			}
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// Save rewrites the full history. Histories are short (one exchange per
// analyst turn) and the execute-email step mutates an earlier turn, so a
// wholesale replace inside one transaction is simpler than diffing.
func (s *SQLiteStore) Save(ctx context.Context, id string, turns []domain.Turn) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO conversations (id, created_at, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at`,
		id, now, now); err != nil {
		return "", fmt.Errorf("upsert conversation: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM turns WHERE conversation_id = ?`, id); err != nil {
		return "", fmt.Errorf("clear turns: %w", err)
	}

	for i, t := range turns {
		var pending any
		if t.Pending != nil {
			data, err := json.Marshal(t.Pending)
			if err != nil {
				return "", fmt.Errorf("marshal pending state: %w", err)
			}
			pending = string(data)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO turns (conversation_id, seq, user, ai, pending) VALUES (?, ?, ?, ?, ?)`,
			id, i, t.User, t.AI, pending); err != nil {
			return "", fmt.Errorf("insert turn %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
