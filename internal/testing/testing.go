// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"testing"
	"time"

	"github.com/desertthunder/setlist/internal/models"
)

// FixedTime is the clock value used by fixtures: 2024-05-01T20:00:00Z.
var FixedTime = time.Date(2024, time.May, 1, 20, 0, 0, 0, time.UTC)

// FixedClock returns a now function that always reports [FixedTime].
func FixedClock() func() time.Time {
	return func() time.Time { return FixedTime }
}

// SeededRand returns a deterministic random source for shuffle tests.
func SeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSong builds a song fixture; createdAt is derived from [FixedTime].
func NewSong(uid, title, key, tempo string) models.Song {
	return models.Song{
		UID:       uid,
		Title:     title,
		Key:       key,
		Tempo:     tempo,
		CreatedAt: FixedTime.UnixMilli(),
	}
}

// SampleState returns a small board: two songs in each column, "b2" pinned.
func SampleState() models.State {
	s := models.NewState("Test Gig")
	s.Columns.Set1 = []models.Song{
		NewSong("a1", "Autumn Leaves", "Cm", "138"),
		NewSong("a2", "Wave", "Eb", "126"),
	}
	s.Columns.Rep = []models.Song{
		NewSong("b1", "Nature Boy", "Dm", "108"),
		NewSong("b2", "Libertango", "Cm", "116"),
	}
	s.Columns.Set2 = []models.Song{
		NewSong("c1", "Desafinado", "F", "132"),
		NewSong("c2", "Brevet", "Dm", "66"),
	}
	s.Locks.Items["b2"] = true
	return s
}

// UIDs lists the uids of songs in order.
func UIDs(songs []models.Song) []string {
	ids := make([]string, len(songs))
	for i, s := range songs {
		ids[i] = s.UID
	}
	return ids
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
