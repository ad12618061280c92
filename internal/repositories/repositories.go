package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/shared"
)

// Snapshot key names, newest first.
const (
	CurrentKey = "setlist_pro_state_v3"
	LegacyKey  = "setlist_pro_state"
)

// SnapshotKeys is the load order.
var SnapshotKeys = []string{CurrentKey, LegacyKey}

// SnapshotStore loads and saves the whole setlist document.
type SnapshotStore interface {
	// Load returns the newest stored snapshot, or [shared.ErrSnapshotNotFound].
	Load(ctx context.Context) (*models.State, error)
	// Save replaces the snapshot under [CurrentKey].
	Save(ctx context.Context, state *models.State) error
	// Delete removes the snapshots under every key.
	Delete(ctx context.Context) error
	Close() error
}

// NewStore opens the store selected by cfg.Storage.Driver.
func NewStore(ctx context.Context, cfg *shared.Config) (SnapshotStore, error) {
	switch cfg.Storage.Driver {
	case "", shared.DriverSQLite:
		db, err := shared.OpenDatabase(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(db), nil
	case shared.DriverFile:
		return NewFileStore(cfg.Storage.Dir)
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", shared.ErrInvalidConfig, cfg.Storage.Driver)
	}
}

// LoadOrDemo loads the stored board, falling back to demo() when there is none or it cannot be read.
//
// Failures are logged, never returned.
func LoadOrDemo(ctx context.Context, store SnapshotStore, demo func() models.State, logger *log.Logger) models.State {
	state, err := store.Load(ctx)
	if err != nil {
		if logger != nil {
			logger.Warn("using demo setlist", "reason", err)
		}
		return demo()
	}
	return *state
}

// NextSequence atomically increments and returns the next sequence number for the given table.
func NextSequence(ctx context.Context, tx *sql.Tx, table string) (int, error) {
	sequenceTable := table + "_sequence"

	_, err := tx.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable))
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	err = tx.QueryRowContext(ctx, fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}
	return sequence, nil
}

func encodeSnapshot(state *models.State) ([]byte, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: state is nil", shared.ErrInvalidInput)
	}
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// decodeSnapshot parses and checks a stored document.
func decodeSnapshot(key string, data []byte) (*models.State, error) {
	var state models.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: snapshot %s: %v", shared.ErrInvalidInput, key, err)
	}
	state.Normalize()
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", key, err)
	}
	return &state, nil
}
