package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/models"

	_ "modernc.org/sqlite"
)

const snapshotName = "queue_state"

// Store keeps the queue snapshot in a single-file SQLite database, one
// row per snapshot name.
type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	// The snapshot writer is serialized by the queue store; a single
	// connection avoids SQLITE_BUSY on the file-backed database.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		name TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("init snapshot schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context) (models.QueueState, bool, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM snapshots WHERE name = ?`, snapshotName).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return models.QueueState{}, false, nil
	}
	if err != nil {
		return models.QueueState{}, false, fmt.Errorf("load snapshot: %w", err)
	}
	var state models.QueueState
	if err := json.Unmarshal(body, &state); err != nil {
		return models.QueueState{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return state, true, nil
}

func (s *Store) Save(ctx context.Context, state models.QueueState) error {
	body, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO snapshots (name, body, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP`, snapshotName, body)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
