package setlist

import (
	"cmp"
	"slices"
	"strings"

	"github.com/desertthunder/setlist/internal/models"
	"github.com/sahilm/fuzzy"
)

// Library lists every song on the board, newest first.
func Library(state models.State) []models.Song {
	songs := state.All()
	slices.SortStableFunc(songs, func(a, b models.Song) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
	return songs
}

// librarySource adapts songs to [fuzzy.Source].
type librarySource []models.Song

func (s librarySource) String(i int) string {
	song := s[i]
	return strings.Join([]string{song.Title, song.Key, song.Notes, song.Cues}, " ")
}

func (s librarySource) Len() int { return len(s) }

// SearchLibrary fuzzy-matches query against title, key, form and cues, best match first.
// A blank query returns the whole [Library].
func SearchLibrary(state models.State, query string) []models.Song {
	songs := Library(state)
	query = strings.TrimSpace(query)
	if query == "" {
		return songs
	}

	matches := fuzzy.FindFrom(query, librarySource(songs))
	out := make([]models.Song, 0, len(matches))
	for _, m := range matches {
		out = append(out, songs[m.Index])
	}
	return out
}

// NextSort advances a column's sort when its field button is pressed:
// another field starts ascending, then asc, desc, neutral, and back to asc.
func NextSort(current models.SortSpec, field models.SortField) models.SortSpec {
	if current.Field != field {
		return models.SortSpec{Field: field, Order: models.Asc}
	}

	switch current.Order {
	case models.Asc:
		return models.SortSpec{Field: field, Order: models.Desc}
	case models.Desc:
		return models.SortSpec{Field: field, Order: models.Neutral}
	default:
		return models.SortSpec{Field: field, Order: models.Asc}
	}
}
