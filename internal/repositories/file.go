package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/shared"
)

// FileStore keeps each snapshot key as {dir}/{key}.json.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: storage directory is empty", shared.ErrInvalidConfig)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path is the file backing key.
func (f *FileStore) Path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Load returns the first snapshot file present in [SnapshotKeys] order.
func (f *FileStore) Load(ctx context.Context) (*models.State, error) {
	for _, key := range SnapshotKeys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(f.Path(key))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read snapshot: %v", shared.ErrStorageFailed, err)
		}
		return decodeSnapshot(key, data)
	}
	return nil, shared.ErrSnapshotNotFound
}

// Save writes the snapshot to a temporary file and renames it over [CurrentKey].
func (f *FileStore) Save(ctx context.Context, state *models.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeSnapshot(state)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, CurrentKey+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %v", shared.ErrStorageFailed, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: failed to write snapshot: %v", shared.ErrStorageFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: failed to write snapshot: %v", shared.ErrStorageFailed, err)
	}

	if err := os.Rename(tmp.Name(), f.Path(CurrentKey)); err != nil {
		return fmt.Errorf("%w: failed to replace snapshot: %v", shared.ErrStorageFailed, err)
	}
	return nil
}

// Delete removes every snapshot file.
func (f *FileStore) Delete(ctx context.Context) error {
	for _, key := range SnapshotKeys {
		if err := os.Remove(f.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: failed to delete snapshot: %v", shared.ErrStorageFailed, err)
		}
	}
	return nil
}

func (f *FileStore) Close() error { return nil }
