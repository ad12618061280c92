package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/setlist"
	"github.com/desertthunder/setlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// SongAdd adds a song to the front of the repertoire.
func (r *Runner) SongAdd(ctx context.Context, cmd *cli.Command) error {
	draft := models.Song{
		Title: cmd.String("title"),
		Key:   cmd.String("key"),
		Tempo: cmd.String("tempo"),
		Notes: cmd.String("notes"),
		Cues:  cmd.String("cues"),
	}

	var song models.Song
	_, err := r.update(ctx, func(state models.State) (models.State, error) {
		next, added, err := r.engine.AddSong(state, draft)
		song = added
		return next, err
	})
	if err != nil {
		return err
	}

	r.logger.Debug("added song", "uid", song.UID, "title", song.Title)
	if cmd.Bool("json") {
		return r.writeJSON(song, cmd.Bool("pretty"))
	}
	return r.writePlain("✓ Added %q (%s)\n", song.Title, song.UID)
}

// patchFromFlags collects only the fields given on the command line.
func patchFromFlags(cmd *cli.Command) setlist.SongPatch {
	var patch setlist.SongPatch
	for name, field := range map[string]**string{
		"title": &patch.Title,
		"key":   &patch.Key,
		"tempo": &patch.Tempo,
		"notes": &patch.Notes,
		"cues":  &patch.Cues,
	} {
		if cmd.IsSet(name) {
			v := cmd.String(name)
			*field = &v
		}
	}
	return patch
}

// SongEdit changes the given fields of a song.
func (r *Runner) SongEdit(ctx context.Context, cmd *cli.Command) error {
	uid := cmd.StringArg("uid")
	patch := patchFromFlags(cmd)
	if patch.Empty() {
		return fmt.Errorf("%w: nothing to change, pass at least one of --title, --key, --tempo, --notes, --cues", shared.ErrMissingArgument)
	}

	next, err := r.update(ctx, func(state models.State) (models.State, error) {
		if _, err := requireSong(state, uid); err != nil {
			return state, err
		}
		return setlist.EditSong(state, uid, patch)
	})
	if err != nil {
		return err
	}

	song, _ := next.Song(uid)
	return r.writePlain("✓ Updated %q\n", song.Title)
}

// SongDelete removes a song from whichever column holds it.
func (r *Runner) SongDelete(ctx context.Context, cmd *cli.Command) error {
	uid := cmd.StringArg("uid")

	var song models.Song
	_, err := r.update(ctx, func(state models.State) (models.State, error) {
		var err error
		if song, err = requireSong(state, uid); err != nil {
			return state, err
		}
		return setlist.DeleteSong(state, uid), nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("deleted song", "uid", uid)
	return r.writePlain("✓ Deleted %q\n", song.Title)
}

// SongList prints the library, newest first, or the fuzzy matches for --search.
func (r *Runner) SongList(ctx context.Context, cmd *cli.Command) error {
	state, err := r.load(ctx)
	if err != nil {
		return err
	}

	query := cmd.String("search")
	songs := setlist.SearchLibrary(state, query)
	if cmd.Bool("json") {
		if songs == nil {
			songs = []models.Song{}
		}
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	title := fmt.Sprintf("Library: %d songs", len(songs))
	if query != "" {
		title = fmt.Sprintf("Library: %d matches for %q", len(songs), query)
	}
	r.writePlainHeader(title)
	for _, s := range songs {
		col, _, _ := state.Find(s.UID)
		r.writePlain("%-36s  %-28s %-4s %4s  %s\n", s.UID, s.Title, s.Key, s.Tempo, col.Label())
	}
	return nil
}
