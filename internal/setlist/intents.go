package setlist

import (
	"slices"
	"strings"

	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/shared"
)

// SongPatch lists the fields an edit changes; nil fields are left alone.
type SongPatch struct {
	Title *string
	Key   *string
	Tempo *string
	Notes *string
	Cues  *string
}

// Empty reports whether the patch changes nothing.
func (p SongPatch) Empty() bool {
	return p.Title == nil && p.Key == nil && p.Tempo == nil && p.Notes == nil && p.Cues == nil
}

func (p SongPatch) apply(s models.Song) models.Song {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Key != nil {
		s.Key = *p.Key
	}
	if p.Tempo != nil {
		s.Tempo = *p.Tempo
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	if p.Cues != nil {
		s.Cues = *p.Cues
	}
	return s
}

// AddSong mints a uid and creation time for draft and puts it at the front of the repertoire.
//
// Only the title is required; the uid and createdAt on draft are ignored.
func (e *Engine) AddSong(state models.State, draft models.Song) (models.State, models.Song, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return state, models.Song{}, shared.ErrTitleRequired
	}

	song := draft
	song.UID = e.newID()
	song.CreatedAt = e.now().UnixMilli()

	next := state.Clone()
	next.Columns.Rep = append([]models.Song{song}, next.Columns.Rep...)
	return next, song, nil
}

// EditSong applies patch to the song with uid in place. An unknown uid is a no-op.
func EditSong(state models.State, uid string, patch SongPatch) (models.State, error) {
	col, idx, ok := state.Find(uid)
	if !ok {
		return state, nil
	}

	edited := patch.apply(state.Songs(col)[idx])
	if strings.TrimSpace(edited.Title) == "" {
		return state, shared.ErrTitleRequired
	}

	next := state.Clone()
	next.Songs(col)[idx] = edited
	return next, nil
}

// DeleteSong removes the song from whichever column holds it.
//
// Its item lock entry is kept. An unknown uid is a no-op.
func DeleteSong(state models.State, uid string) models.State {
	col, idx, ok := state.Find(uid)
	if !ok {
		return state
	}

	next := state.Clone()
	next.SetSongs(col, slices.Delete(next.Songs(col), idx, idx+1))
	return next
}

// MoveSong takes the song out of its column and inserts it into to at index.
//
// The index is counted after removal and clamped to the column; a negative index appends.
// An unknown uid or an invalid column is a no-op.
func MoveSong(state models.State, uid string, to models.Column, index int) models.State {
	from, idx, ok := state.Find(uid)
	if !ok || !to.Valid() {
		return state
	}

	next := state.Clone()
	song := next.Songs(from)[idx]
	next.SetSongs(from, slices.Delete(next.Songs(from), idx, idx+1))

	dest := next.Songs(to)
	if index < 0 || index > len(dest) {
		index = len(dest)
	}
	next.SetSongs(to, slices.Insert(dest, index, song))
	return next
}

// ToggleItemLock flips the pin of uid. The uid does not need to be present.
func ToggleItemLock(state models.State, uid string) models.State {
	next := state.Clone()
	next.Locks.Items[uid] = !next.Locks.Items[uid]
	return next
}

// ToggleColumnLock flips the lock of col and stamps the new value onto every song in it.
func ToggleColumnLock(state models.State, col models.Column) models.State {
	if !col.Valid() {
		return state
	}

	next := state.Clone()
	locked := !next.ColumnLocked(col)
	next.SetColumnLocked(col, locked)
	for _, song := range next.Songs(col) {
		next.Locks.Items[song.UID] = locked
	}
	return next
}

// SetConcertName renames the document.
func SetConcertName(state models.State, name string) models.State {
	next := state.Clone()
	next.ConcertName = name
	return next
}

// ApplyImport appends every imported song to its target column and sets the pins it carries.
func ApplyImport(state models.State, imp models.Import) models.State {
	next := state.Clone()
	for _, song := range imp.Songs {
		col, ok := imp.Columns[song.UID]
		if !ok || !col.Valid() {
			col = models.Rep
		}
		next.SetSongs(col, append(next.Songs(col), song))
		if imp.Locked[song.UID] {
			next.Locks.Items[song.UID] = true
		}
	}
	return next
}
