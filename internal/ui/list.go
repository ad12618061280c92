package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/setlist/internal/models"
)

var (
	_ list.Item = songItem{}
)

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song   models.Song
	column models.Column
	locked bool
}

func (i songItem) FilterValue() string {
	return strings.Join([]string{i.song.Title, i.song.Key, i.song.Notes, i.song.Cues}, " ")
}

func (i songItem) Title() string {
	if i.locked {
		return "• " + i.song.Title
	}
	return i.song.Title
}

func (i songItem) Description() string {
	parts := []string{i.column.Label()}
	if i.song.Key != "" {
		parts = append(parts, i.song.Key)
	}
	if i.song.Tempo != "" {
		parts = append(parts, i.song.Tempo+" BPM")
	}
	if i.song.Notes != "" {
		parts = append(parts, i.song.Notes)
	}
	return strings.Join(parts, " • ")
}
