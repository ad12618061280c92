package setlist

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/shared"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is the collation used when none is configured.
var DefaultLocale = language.Danish

// Engine carries the collaborators of the non-trivial transforms.
//
// An Engine is not safe for concurrent use: the collator and the random source keep state.
type Engine struct {
	rand     *rand.Rand
	collator *collate.Collator
	newID    func() string
	now      func() time.Time
}

// Option configures an [Engine].
type Option func(*Engine)

// WithRand sets the random source used by [Engine.Mix].
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rand = r }
}

// WithLocale sets the collation used for key and title sorts.
func WithLocale(tag language.Tag) Option {
	return func(e *Engine) { e.collator = collate.New(tag) }
}

// WithIDGenerator replaces [shared.GenerateID].
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// WithClock replaces [time.Now].
func WithClock(fn func() time.Time) Option {
	return func(e *Engine) { e.now = fn }
}

// New creates an Engine seeded from the runtime random source, Danish collation and uuid ids.
func New(opts ...Option) *Engine {
	e := &Engine{
		rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		collator: collate.New(DefaultLocale),
		newID:    shared.GenerateID,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewID mints a song uid.
func (e *Engine) NewID() string { return e.newID() }

// Now reports the engine clock.
func (e *Engine) Now() time.Time { return e.now() }

// ParseLocale resolves a BCP 47 tag, falling back to [DefaultLocale] for an empty string.
func ParseLocale(tag string) (language.Tag, error) {
	if strings.TrimSpace(tag) == "" {
		return DefaultLocale, nil
	}
	t, err := language.Parse(tag)
	if err != nil {
		return language.Und, err
	}
	return t, nil
}

// SplitLockedUnlocked partitions items by the item-lock map. Both outputs keep input order
// and are never nil.
func SplitLockedUnlocked(items []models.Song, locks map[string]bool) (locked, unlocked []models.Song) {
	locked = make([]models.Song, 0, len(items))
	unlocked = make([]models.Song, 0, len(items))
	for _, song := range items {
		if locks[song.UID] {
			locked = append(locked, song)
		} else {
			unlocked = append(unlocked, song)
		}
	}
	return locked, unlocked
}

// SortUnlocked returns a sorted copy of items.
//
// Tempo compares the leading integer of the text (0 when there is none); key and title
// compare lower-cased text with the engine's collation. The sort is stable and a neutral
// [models.SortSpec] returns the input order.
func (e *Engine) SortUnlocked(items []models.Song, spec models.SortSpec) []models.Song {
	out := slices.Clone(items)
	if out == nil {
		out = []models.Song{}
	}
	if spec.IsNeutral() {
		return out
	}

	compare := e.comparator(spec.Field)
	if spec.Order == models.Desc {
		slices.SortStableFunc(out, func(a, b models.Song) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(out, compare)
	}
	return out
}

func (e *Engine) comparator(field models.SortField) func(a, b models.Song) int {
	switch field {
	case models.SortTempo:
		return func(a, b models.Song) int {
			return cmp.Compare(ParseTempo(a.Tempo), ParseTempo(b.Tempo))
		}
	case models.SortKey:
		return func(a, b models.Song) int {
			return e.collator.CompareString(strings.ToLower(a.Key), strings.ToLower(b.Key))
		}
	default:
		return func(a, b models.Song) int {
			return e.collator.CompareString(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	}
}

// ParseTempo reads the leading integer of s: optional surrounding whitespace, an optional
// sign, then digits. Anything else yields 0, so "120 bpm" is 120 and "fast" is 0.
func ParseTempo(s string) int {
	s = strings.TrimLeft(s, " \t\r\n")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > 1_000_000 {
			break
		}
	}
	if neg {
		return -n
	}
	return n
}

// DisplayOrder is the order a column is shown in: pinned songs in stored order, then the
// rest sorted by spec. A column-locked column ignores spec.
func (e *Engine) DisplayOrder(state models.State, col models.Column, spec models.SortSpec) []models.Song {
	locked, unlocked := SplitLockedUnlocked(state.Songs(col), state.Locks.Items)
	if state.ColumnLocked(col) {
		spec = models.SortSpec{Order: models.Neutral}
	}
	return append(locked, e.SortUnlocked(unlocked, spec)...)
}

// Mix pulls every unpinned song out of the columns that are not column-locked, shuffles
// them and deals them round-robin onto the unlocked performance sets.
//
// The repertoire is a source only; it receives the pool back when both sets are locked.
// The second result reports whether any song went into the pool; with nothing to move the
// input is returned as is and it is false. A true result may still leave the order unchanged.
func (e *Engine) Mix(state models.State) (models.State, bool) {
	next := state.Clone()

	var pool []models.Song
	for _, col := range models.Columns() {
		if next.ColumnLocked(col) {
			continue
		}
		locked, unlocked := SplitLockedUnlocked(next.Songs(col), next.Locks.Items)
		pool = append(pool, unlocked...)
		next.SetSongs(col, locked)
	}

	if len(pool) == 0 {
		return state, false
	}

	e.rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	var targets []models.Column
	for _, col := range []models.Column{models.Set1, models.Set2} {
		if !next.ColumnLocked(col) {
			targets = append(targets, col)
		}
	}

	if len(targets) == 0 {
		next.Columns.Rep = append(next.Columns.Rep, pool...)
		return next, true
	}

	for i, song := range pool {
		target := targets[i%len(targets)]
		next.SetSongs(target, append(next.Songs(target), song))
	}
	return next, true
}
