package repositories

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/shared"
	tu "github.com/desertthunder/setlist/internal/testing"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func insertRaw(t *testing.T, db *sql.DB, key, data string) {
	t.Helper()
	if _, err := db.Exec("INSERT INTO snapshots (name, data) VALUES (?, ?)", key, data); err != nil {
		t.Fatalf("failed to insert snapshot: %v", err)
	}
}

func demo() models.State {
	return models.NewState("Demo")
}

// storeCases runs the shared contract against both implementations.
func storeCases(t *testing.T) map[string]func(t *testing.T) (SnapshotStore, func(key, data string)) {
	return map[string]func(t *testing.T) (SnapshotStore, func(key, data string)){
		"SQLite": func(t *testing.T) (SnapshotStore, func(key, data string)) {
			db := setupTestDB(t)
			t.Cleanup(func() { db.Close() })
			return NewSQLiteStore(db), func(key, data string) { insertRaw(t, db, key, data) }
		},
		"File": func(t *testing.T) (SnapshotStore, func(key, data string)) {
			store, err := NewFileStore(t.TempDir())
			if err != nil {
				t.Fatalf("failed to create file store: %v", err)
			}
			return store, func(key, data string) { tu.MustWriteFile(t, store.Path(key), data) }
		},
	}
}

func TestSnapshotStores(t *testing.T) {
	ctx := context.Background()

	for name, open := range storeCases(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("Empty", func(t *testing.T) {
				store, _ := open(t)
				if _, err := store.Load(ctx); !errors.Is(err, shared.ErrSnapshotNotFound) {
					t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
				}
			})

			t.Run("SaveLoad", func(t *testing.T) {
				store, _ := open(t)
				state := tu.SampleState()
				state.Locks.Col.Set2 = true

				if err := store.Save(ctx, &state); err != nil {
					t.Fatalf("Save failed: %v", err)
				}
				got, err := store.Load(ctx)
				if err != nil {
					t.Fatalf("Load failed: %v", err)
				}
				if !reflect.DeepEqual(*got, state) {
					t.Errorf("loaded state differs:\n got %+v\nwant %+v", *got, state)
				}
			})

			t.Run("Overwrite", func(t *testing.T) {
				store, _ := open(t)
				first := tu.SampleState()
				second := models.NewState("Second")

				if err := store.Save(ctx, &first); err != nil {
					t.Fatalf("Save failed: %v", err)
				}
				if err := store.Save(ctx, &second); err != nil {
					t.Fatalf("Save failed: %v", err)
				}
				got, err := store.Load(ctx)
				if err != nil {
					t.Fatalf("Load failed: %v", err)
				}
				if got.ConcertName != "Second" || got.Len() != 0 {
					t.Errorf("expected the second snapshot, got %+v", got)
				}
			})

			t.Run("LegacyKey", func(t *testing.T) {
				store, put := open(t)
				put(LegacyKey, `{"concertName":"Old","columns":{"set1":[],"rep":[{"uid":"x","title":"T","key":"","tempo":"","notes":"","cues":"","createdAt":1}],"set2":[]},"locks":{"col":{"set1":false,"rep":false,"set2":false},"items":{}}}`)

				got, err := store.Load(ctx)
				if err != nil {
					t.Fatalf("Load failed: %v", err)
				}
				if got.ConcertName != "Old" || len(got.Columns.Rep) != 1 {
					t.Errorf("unexpected legacy state %+v", got)
				}
			})

			t.Run("CurrentKeyWins", func(t *testing.T) {
				store, put := open(t)
				put(LegacyKey, `{"concertName":"Old"}`)
				put(CurrentKey, `{"concertName":"New"}`)

				got, err := store.Load(ctx)
				if err != nil {
					t.Fatalf("Load failed: %v", err)
				}
				if got.ConcertName != "New" {
					t.Errorf("expected current key, got %q", got.ConcertName)
				}
				if got.Columns.Set1 == nil || got.Locks.Items == nil {
					t.Error("expected partial snapshot to be normalized")
				}
			})

			t.Run("Malformed", func(t *testing.T) {
				store, put := open(t)
				put(CurrentKey, `{"concertName":`)
				if _, err := store.Load(ctx); !errors.Is(err, shared.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
			})

			t.Run("DuplicateUIDs", func(t *testing.T) {
				store, put := open(t)
				put(CurrentKey, `{"columns":{"set1":[{"uid":"x","title":"A"}],"rep":[{"uid":"x","title":"B"}]}}`)
				if _, err := store.Load(ctx); !errors.Is(err, shared.ErrDuplicateUID) {
					t.Fatalf("expected ErrDuplicateUID, got %v", err)
				}
			})

			t.Run("Delete", func(t *testing.T) {
				store, put := open(t)
				put(LegacyKey, `{"concertName":"Old"}`)
				state := tu.SampleState()
				if err := store.Save(ctx, &state); err != nil {
					t.Fatalf("Save failed: %v", err)
				}

				if err := store.Delete(ctx); err != nil {
					t.Fatalf("Delete failed: %v", err)
				}
				if _, err := store.Load(ctx); !errors.Is(err, shared.ErrSnapshotNotFound) {
					t.Fatalf("expected ErrSnapshotNotFound after delete, got %v", err)
				}
			})

			t.Run("NilState", func(t *testing.T) {
				store, _ := open(t)
				if err := store.Save(ctx, nil); !errors.Is(err, shared.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
			})
		})
	}
}

func TestSQLiteStoreRevision(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	defer db.Close()

	store := NewSQLiteStore(db)
	if rev, err := store.Revision(ctx); err != nil || rev != 0 {
		t.Fatalf("expected revision 0 before saving, got %d (%v)", rev, err)
	}

	state := tu.SampleState()
	for i := 1; i <= 3; i++ {
		if err := store.Save(ctx, &state); err != nil {
			t.Fatalf("Save %d failed: %v", i, err)
		}
		rev, err := store.Revision(ctx)
		if err != nil {
			t.Fatalf("Revision failed: %v", err)
		}
		if rev != i {
			t.Errorf("expected revision %d, got %d", i, rev)
		}
	}

	var rows int
	if err := db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&rows); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if rows != 1 {
		t.Errorf("expected a single snapshot row, got %d", rows)
	}
}

func TestSQLiteStoreClosed(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	store := NewSQLiteStore(db)
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := store.Load(ctx); !errors.Is(err, shared.ErrStorageFailed) {
		t.Errorf("expected ErrStorageFailed from a closed database, got %v", err)
	}
	state := tu.SampleState()
	if err := store.Save(ctx, &state); err == nil {
		t.Error("expected error saving to a closed database")
	}
}

func TestFileStore(t *testing.T) {
	t.Run("EmptyDir", func(t *testing.T) {
		if _, err := NewFileStore(""); !errors.Is(err, shared.ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("CreatesDir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "store")
		store, err := NewFileStore(dir)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}
		state := tu.SampleState()
		if err := store.Save(context.Background(), &state); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		tu.AssertFileExists(t, filepath.Join(dir, CurrentKey+".json"))

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir failed: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected temp files to be cleaned up, found %d entries", len(entries))
		}
	})

	t.Run("CanceledContext", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := store.Load(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestNewStore(t *testing.T) {
	ctx := context.Background()

	t.Run("SQLite", func(t *testing.T) {
		cfg := shared.DefaultConfig()
		cfg.Database.Path = filepath.Join(t.TempDir(), "setlist.db")
		store, err := NewStore(ctx, cfg)
		if err != nil {
			t.Fatalf("NewStore failed: %v", err)
		}
		defer store.Close()
		if _, ok := store.(*SQLiteStore); !ok {
			t.Errorf("expected *SQLiteStore, got %T", store)
		}
	})

	t.Run("File", func(t *testing.T) {
		cfg := shared.DefaultConfig()
		cfg.Storage.Driver = shared.DriverFile
		cfg.Storage.Dir = t.TempDir()
		store, err := NewStore(ctx, cfg)
		if err != nil {
			t.Fatalf("NewStore failed: %v", err)
		}
		if _, ok := store.(*FileStore); !ok {
			t.Errorf("expected *FileStore, got %T", store)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		cfg := shared.DefaultConfig()
		cfg.Storage.Driver = "s3"
		if _, err := NewStore(ctx, cfg); !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestLoadOrDemo(t *testing.T) {
	ctx := context.Background()

	t.Run("Stored", func(t *testing.T) {
		store, _ := NewFileStore(t.TempDir())
		state := tu.SampleState()
		if err := store.Save(ctx, &state); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if got := LoadOrDemo(ctx, store, demo, nil); got.ConcertName != "Test Gig" {
			t.Errorf("expected stored state, got %q", got.ConcertName)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		store, _ := NewFileStore(t.TempDir())
		var buf bytes.Buffer
		got := LoadOrDemo(ctx, store, demo, shared.NewLogger(&buf))
		if got.ConcertName != "Demo" {
			t.Errorf("expected demo state, got %q", got.ConcertName)
		}
		if !strings.Contains(buf.String(), "using demo setlist") {
			t.Errorf("expected a warning, got %q", buf.String())
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		store, _ := NewFileStore(t.TempDir())
		tu.MustWriteFile(t, store.Path(CurrentKey), "not json")
		if got := LoadOrDemo(ctx, store, demo, nil); got.ConcertName != "Demo" {
			t.Errorf("expected demo state, got %q", got.ConcertName)
		}
	})
}
