package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/setlist/internal/shared"
)

// Column names one of the three ordered song sequences in a [State].
type Column string

const (
	Set1 Column = "set1"
	Rep  Column = "rep"
	Set2 Column = "set2"
)

// Columns returns the three columns in canonical order: set1, rep, set2.
func Columns() []Column {
	return []Column{Set1, Rep, Set2}
}

// ParseColumn validates a column key.
func ParseColumn(s string) (Column, error) {
	switch c := Column(strings.ToLower(strings.TrimSpace(s))); c {
	case Set1, Rep, Set2:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q (must be set1, rep or set2)", shared.ErrInvalidColumn, s)
	}
}

// Valid reports whether c is one of the three column keys.
func (c Column) Valid() bool {
	return c == Set1 || c == Rep || c == Set2
}

// Label is the board heading for the column.
func (c Column) Label() string {
	switch c {
	case Set1:
		return "Sæt 1"
	case Rep:
		return "Repertoire"
	case Set2:
		return "Sæt 2"
	default:
		return string(c)
	}
}

// PrintLabel is the section heading used on the printed setlist, where the reserve pool doubles as encores.
func (c Column) PrintLabel() string {
	if c == Rep {
		return "Ekstranummer"
	}
	return c.Label()
}

// Song is a single repertoire entry.
type Song struct {
	UID       string `json:"uid"`
	Title     string `json:"title"`
	Key       string `json:"key"`
	Tempo     string `json:"tempo"`
	Notes     string `json:"notes"` // arrangement / form
	Cues      string `json:"cues"`
	CreatedAt int64  `json:"createdAt"` // ms since epoch
}

// Validate checks that the song can be stored.
func (s Song) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return shared.ErrTitleRequired
	}
	if s.UID == "" {
		return fmt.Errorf("%w: uid is empty", shared.ErrInvalidInput)
	}
	return nil
}

// ColumnSet holds the three ordered song sequences.
type ColumnSet struct {
	Set1 []Song `json:"set1"`
	Rep  []Song `json:"rep"`
	Set2 []Song `json:"set2"`
}

// ColumnLocks records which columns are excluded from mixing and sorting.
type ColumnLocks struct {
	Set1 bool `json:"set1"`
	Rep  bool `json:"rep"`
	Set2 bool `json:"set2"`
}

// Locks holds the column- and item-level lock state.
//
// Items may reference uids that are no longer in the document.
type Locks struct {
	Col   ColumnLocks     `json:"col"`
	Items map[string]bool `json:"items"`
}

// State is the whole setlist document.
type State struct {
	ConcertName string    `json:"concertName"`
	Columns     ColumnSet `json:"columns"`
	Locks       Locks     `json:"locks"`
}

// NewState returns an empty document with non-nil sequences and lock map.
func NewState(concertName string) State {
	return State{
		ConcertName: concertName,
		Columns:     ColumnSet{Set1: []Song{}, Rep: []Song{}, Set2: []Song{}},
		Locks:       Locks{Items: map[string]bool{}},
	}
}

// Songs returns the stored sequence of col. The slice is shared with s; copy before mutating.
func (s *State) Songs(col Column) []Song {
	switch col {
	case Set1:
		return s.Columns.Set1
	case Rep:
		return s.Columns.Rep
	case Set2:
		return s.Columns.Set2
	default:
		return nil
	}
}

// SetSongs replaces the stored sequence of col.
func (s *State) SetSongs(col Column, songs []Song) {
	switch col {
	case Set1:
		s.Columns.Set1 = songs
	case Rep:
		s.Columns.Rep = songs
	case Set2:
		s.Columns.Set2 = songs
	}
}

// ColumnLocked reports the column-level lock of col.
func (s *State) ColumnLocked(col Column) bool {
	switch col {
	case Set1:
		return s.Locks.Col.Set1
	case Rep:
		return s.Locks.Col.Rep
	case Set2:
		return s.Locks.Col.Set2
	default:
		return false
	}
}

// SetColumnLocked sets the column-level lock of col.
func (s *State) SetColumnLocked(col Column, locked bool) {
	switch col {
	case Set1:
		s.Locks.Col.Set1 = locked
	case Rep:
		s.Locks.Col.Rep = locked
	case Set2:
		s.Locks.Col.Set2 = locked
	}
}

// ItemLocked reports whether the song with uid is pinned.
func (s *State) ItemLocked(uid string) bool {
	return s.Locks.Items[uid]
}

// Find returns the column and index holding uid.
func (s *State) Find(uid string) (Column, int, bool) {
	for _, col := range Columns() {
		for i, song := range s.Songs(col) {
			if song.UID == uid {
				return col, i, true
			}
		}
	}
	return "", -1, false
}

// Song returns the song with uid, wherever it is.
func (s *State) Song(uid string) (Song, bool) {
	col, i, ok := s.Find(uid)
	if !ok {
		return Song{}, false
	}
	return s.Songs(col)[i], true
}

// All returns every song in column order set1, rep, set2.
func (s *State) All() []Song {
	all := make([]Song, 0, s.Len())
	for _, col := range Columns() {
		all = append(all, s.Songs(col)...)
	}
	return all
}

// Len is the number of songs across all columns.
func (s *State) Len() int {
	return len(s.Columns.Set1) + len(s.Columns.Rep) + len(s.Columns.Set2)
}

// Clone returns a deep copy of s: new column slices and a new item lock map.
func (s State) Clone() State {
	c := State{
		ConcertName: s.ConcertName,
		Columns: ColumnSet{
			Set1: cloneSongs(s.Columns.Set1),
			Rep:  cloneSongs(s.Columns.Rep),
			Set2: cloneSongs(s.Columns.Set2),
		},
		Locks: Locks{
			Col:   s.Locks.Col,
			Items: make(map[string]bool, len(s.Locks.Items)),
		},
	}
	for uid, locked := range s.Locks.Items {
		c.Locks.Items[uid] = locked
	}
	return c
}

// Normalize replaces nil sequences and the nil lock map with empty values, as decoded snapshots may omit them.
func (s *State) Normalize() {
	for _, col := range Columns() {
		if s.Songs(col) == nil {
			s.SetSongs(col, []Song{})
		}
	}
	if s.Locks.Items == nil {
		s.Locks.Items = map[string]bool{}
	}
}

// Validate checks the document invariants: every song valid, uids unique across columns.
func (s *State) Validate() error {
	seen := make(map[string]Column, s.Len())
	for _, col := range Columns() {
		for _, song := range s.Songs(col) {
			if err := song.Validate(); err != nil {
				return fmt.Errorf("song %q in %s: %w", song.UID, col, err)
			}
			if prev, dup := seen[song.UID]; dup {
				return fmt.Errorf("%w: %s appears in %s and %s", shared.ErrDuplicateUID, song.UID, prev, col)
			}
			seen[song.UID] = col
		}
	}
	return nil
}

func cloneSongs(songs []Song) []Song {
	out := make([]Song, len(songs))
	copy(out, songs)
	return out
}

// Import is the outcome of parsing an import file: the new songs plus where each should go.
//
// Columns and Locked are keyed by the freshly minted uid. A song missing from Columns belongs
// in [Rep].
type Import struct {
	Songs   []Song
	Columns map[string]Column
	Locked  map[string]bool
}
