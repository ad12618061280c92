package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/shared"
)

// SQLiteStore keeps snapshots in the snapshots table created by the embedded migrations.
//
// Each save bumps the row's revision from the snapshots_sequence counter.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore with the given database connection
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load returns the first snapshot present in [SnapshotKeys] order.
func (s *SQLiteStore) Load(ctx context.Context) (*models.State, error) {
	for _, key := range SnapshotKeys {
		var data string
		err := s.db.QueryRowContext(ctx, "SELECT data FROM snapshots WHERE name = ?", key).Scan(&data)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load snapshot: %v", shared.ErrStorageFailed, err)
		}
		return decodeSnapshot(key, []byte(data))
	}
	return nil, shared.ErrSnapshotNotFound
}

// Save upserts the snapshot under [CurrentKey] with a fresh revision.
func (s *SQLiteStore) Save(ctx context.Context, state *models.State) error {
	data, err := encodeSnapshot(state)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	revision, err := NextSequence(ctx, tx, "snapshots")
	if err != nil {
		return fmt.Errorf("failed to generate revision: %w", err)
	}

	query := `
		INSERT INTO snapshots (name, revision, data, created_at, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			revision = excluded.revision,
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := tx.ExecContext(ctx, query, CurrentKey, revision, string(data)); err != nil {
		return fmt.Errorf("%w: failed to save snapshot: %v", shared.ErrStorageFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// Revision returns the revision of the current snapshot, 0 when nothing has been saved.
func (s *SQLiteStore) Revision(ctx context.Context) (int, error) {
	var revision int
	err := s.db.QueryRowContext(ctx, "SELECT revision FROM snapshots WHERE name = ?", CurrentKey).Scan(&revision)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read revision: %w", err)
	}
	return revision, nil
}

// Delete removes every stored snapshot key.
func (s *SQLiteStore) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM snapshots"); err != nil {
		return fmt.Errorf("%w: failed to delete snapshots: %v", shared.ErrStorageFailed, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
