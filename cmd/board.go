package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/setlist"
	"github.com/desertthunder/setlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// boardSong is a song as shown on the board.
type boardSong struct {
	models.Song
	Locked bool `json:"locked"`
}

type boardColumn struct {
	Column models.Column `json:"column"`
	Label  string        `json:"label"`
	Locked bool          `json:"locked"`
	Sort   string        `json:"sort"`
	Songs  []boardSong   `json:"songs"`
}

type board struct {
	ConcertName string        `json:"concertName"`
	Columns     []boardColumn `json:"columns"`
}

// parseSorts reads COLUMN=FIELD[:ORDER] flag values.
func parseSorts(values []string) (map[models.Column]models.SortSpec, error) {
	sorts := make(map[models.Column]models.SortSpec, len(values))
	for _, v := range values {
		name, spec, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("%w: --sort %q, expected COLUMN=FIELD[:ORDER]", shared.ErrInvalidFlag, v)
		}

		col, err := models.ParseColumn(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrInvalidFlag, err)
		}
		s, err := models.ParseSortSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrInvalidFlag, err)
		}
		sorts[col] = s
	}
	return sorts, nil
}

func (r *Runner) board(state models.State, sorts map[models.Column]models.SortSpec) board {
	b := board{ConcertName: state.ConcertName}
	for _, col := range models.Columns() {
		bc := boardColumn{
			Column: col,
			Label:  col.Label(),
			Locked: state.ColumnLocked(col),
			Sort:   sorts[col].String(),
			Songs:  []boardSong{},
		}
		for _, s := range r.engine.DisplayOrder(state, col, sorts[col]) {
			bc.Songs = append(bc.Songs, boardSong{Song: s, Locked: state.ItemLocked(s.UID)})
		}
		b.Columns = append(b.Columns, bc)
	}
	return b
}

func (r *Runner) writeBoard(state models.State, sorts map[models.Column]models.SortSpec, cmd *cli.Command) error {
	b := r.board(state, sorts)
	if cmd.Bool("json") {
		return r.writeJSON(b, cmd.Bool("pretty"))
	}

	r.writePlainHeader(b.ConcertName)
	for _, col := range b.Columns {
		header := fmt.Sprintf("%s (%d)", col.Label, len(col.Songs))
		if col.Locked {
			header += " [locked]"
		} else if col.Sort != string(models.Neutral) {
			header += " sorted " + col.Sort
		}
		r.writePlainln("%s", header)

		if len(col.Songs) == 0 {
			r.writePlain("  (empty)\n")
		}
		for i, s := range col.Songs {
			pin := " "
			if s.Locked {
				pin = "•"
			}
			r.writePlain("%s %02d  %-28s %-4s %4s  %s\n", pin, i+1, s.Title, s.Key, s.Tempo, s.UID)
		}
	}
	return nil
}

// Show prints the board in display order.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	sorts, err := parseSorts(cmd.StringSlice("sort"))
	if err != nil {
		return err
	}

	state, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.writeBoard(state, sorts, cmd)
}

// requireSong looks uid up on the board, failing with [shared.ErrSongNotFound].
func requireSong(state models.State, uid string) (models.Song, error) {
	if uid == "" {
		return models.Song{}, fmt.Errorf("%w: uid", shared.ErrMissingArgument)
	}
	song, ok := state.Song(uid)
	if !ok {
		return models.Song{}, fmt.Errorf("%w: %s", shared.ErrSongNotFound, uid)
	}
	return song, nil
}

// Move moves a song to --to at --index.
func (r *Runner) Move(ctx context.Context, cmd *cli.Command) error {
	uid := cmd.StringArg("uid")
	to, err := models.ParseColumn(cmd.String("to"))
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidFlag, err)
	}

	var song models.Song
	if _, err := r.update(ctx, func(state models.State) (models.State, error) {
		var err error
		if song, err = requireSong(state, uid); err != nil {
			return state, err
		}
		return setlist.MoveSong(state, uid, to, cmd.Int("index")), nil
	}); err != nil {
		return err
	}

	r.logger.Debug("moved song", "uid", uid, "to", to)
	return r.writePlain("✓ Moved %q to %s\n", song.Title, to.Label())
}

// LockSong toggles the pin of a song.
func (r *Runner) LockSong(ctx context.Context, cmd *cli.Command) error {
	uid := cmd.StringArg("uid")

	var song models.Song
	next, err := r.update(ctx, func(state models.State) (models.State, error) {
		var err error
		if song, err = requireSong(state, uid); err != nil {
			return state, err
		}
		return setlist.ToggleItemLock(state, uid), nil
	})
	if err != nil {
		return err
	}

	if next.ItemLocked(uid) {
		return r.writePlain("✓ Pinned %q\n", song.Title)
	}
	return r.writePlain("✓ Unpinned %q\n", song.Title)
}

// LockColumn toggles the lock of a column and stamps it onto its songs.
func (r *Runner) LockColumn(ctx context.Context, cmd *cli.Command) error {
	col, err := models.ParseColumn(cmd.StringArg("column"))
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidArgument, err)
	}

	next, err := r.update(ctx, func(state models.State) (models.State, error) {
		return setlist.ToggleColumnLock(state, col), nil
	})
	if err != nil {
		return err
	}

	if next.ColumnLocked(col) {
		return r.writePlain("✓ Locked %s\n", col.Label())
	}
	return r.writePlain("✓ Unlocked %s\n", col.Label())
}

// Mix shuffles every unpinned song of the unlocked columns into the unlocked sets.
func (r *Runner) Mix(ctx context.Context, cmd *cli.Command) error {
	state, err := r.load(ctx)
	if err != nil {
		return err
	}

	next, mixed := r.engine.Mix(state)
	if !mixed {
		return r.writePlain("Nothing to mix: every song is pinned or locked\n")
	}

	if err := r.save(ctx, next); err != nil {
		return err
	}
	r.logger.Info("mixed setlist", "set1", len(next.Columns.Set1), "set2", len(next.Columns.Set2), "rep", len(next.Columns.Rep))
	return r.writeBoard(next, nil, cmd)
}

// Rename sets the concert name.
func (r *Runner) Rename(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name", shared.ErrMissingArgument)
	}

	if _, err := r.update(ctx, func(state models.State) (models.State, error) {
		return setlist.SetConcertName(state, name), nil
	}); err != nil {
		return err
	}
	return r.writePlain("✓ Concert renamed to %q\n", name)
}

// Reset clears whatever is stored and saves the demo setlist in its place.
func (r *Runner) Reset(ctx context.Context, cmd *cli.Command) error {
	store, err := r.openStore(ctx)
	if err != nil {
		return err
	}
	if err := store.Delete(ctx); err != nil {
		return fmt.Errorf("failed to clear setlist: %w", err)
	}

	demo := r.engine.Demo()
	if err := r.save(ctx, demo); err != nil {
		return err
	}

	r.logger.Warn("setlist reset to demo data")
	return r.writePlain("✓ Restored %q with %d songs\n", demo.ConcertName, demo.Len())
}
