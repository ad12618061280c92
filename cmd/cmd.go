// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	}
}

// setupCommand handles setup operations for the config file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write the example configuration to --config",
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "status",
				Usage:  "List applied migrations",
				Action: r.SetupStatus,
			},
			{
				Name:   "rollback",
				Usage:  "Revert the most recent migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// showCommand prints the board.
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "show",
		Aliases: []string{"ls"},
		Usage:   "Show the three columns in display order",
		Flags: append([]cli.Flag{
			&cli.StringSliceFlag{
				Name:    "sort",
				Aliases: []string{"s"},
				Usage:   "Sort a column's unpinned songs, as COLUMN=FIELD[:asc|desc] (e.g. rep=tempo:desc)",
			},
		}, jsonFlags()...),
		Action: r.Show,
	}
}

// songCommand handles song CRUD and the library listing.
func songCommand(r *Runner) *cli.Command {
	songFlags := func(titleRequired bool) []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Song title", Required: titleRequired},
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "Key, e.g. \"Cm\""},
			&cli.StringFlag{Name: "tempo", Usage: "Tempo in BPM"},
			&cli.StringFlag{Name: "notes", Aliases: []string{"form"}, Usage: "Form notes"},
			&cli.StringFlag{Name: "cues", Usage: "Cues for the band"},
		}
	}

	return &cli.Command{
		Name:  "song",
		Usage: "Add, edit, delete and list songs",
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Add a song to the front of the repertoire",
				Flags:  append(songFlags(true), jsonFlags()...),
				Action: r.SongAdd,
			},
			{
				Name:      "edit",
				Usage:     "Change the given fields of a song",
				Arguments: []cli.Argument{&cli.StringArg{Name: "uid"}},
				Flags:     songFlags(false),
				Action:    r.SongEdit,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a song",
				Arguments: []cli.Argument{&cli.StringArg{Name: "uid"}},
				Action:    r.SongDelete,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List the library, newest first",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"q"},
						Usage:   "Fuzzy search over title, key, form and cues",
					},
				}, jsonFlags()...),
				Action: r.SongList,
			},
		},
	}
}

// moveCommand moves a song between or within columns.
func moveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "move",
		Aliases:   []string{"mv"},
		Usage:     "Move a song to a column",
		Arguments: []cli.Argument{&cli.StringArg{Name: "uid"}},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "to",
				Usage:    "Target column (set1, rep or set2)",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "index",
				Usage: "Position in the target column; negative appends",
				Value: -1,
			},
		},
		Action: r.Move,
	}
}

// lockCommand toggles pins and column locks.
func lockCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lock",
		Usage: "Toggle song pins and column locks",
		Commands: []*cli.Command{
			{
				Name:      "song",
				Usage:     "Pin or unpin a song",
				Arguments: []cli.Argument{&cli.StringArg{Name: "uid"}},
				Action:    r.LockSong,
			},
			{
				Name:      "column",
				Usage:     "Lock or unlock a column and all of its songs",
				Arguments: []cli.Argument{&cli.StringArg{Name: "column"}},
				Action:    r.LockColumn,
			},
		},
	}
}

func mixCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "mix",
		Usage:  "Shuffle unpinned songs into the unlocked sets",
		Flags:  jsonFlags(),
		Action: r.Mix,
	}
}

func renameCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "rename",
		Usage:     "Set the concert name",
		Arguments: []cli.Argument{&cli.StringArg{Name: "name"}},
		Action:    r.Rename,
	}
}

func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Append the songs of a CSV export",
		Arguments: []cli.Argument{&cli.StringArg{Name: "file"}},
		Action:    r.Import,
	}
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the board as CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path, \"-\" for stdout (default: {export_dir}/{concert}.csv)",
			},
		},
		Action: r.Export,
	}
}

func printCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "print",
		Usage: "Render the sets for the stage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "text, markdown or html",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to a file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Write HTML and open it in the browser",
			},
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy the text rendering to the clipboard",
			},
		},
		Action: r.Print,
	}
}

func resetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "reset",
		Usage:  "Replace the board with the demo setlist",
		Action: r.Reset,
	}
}

// tuiCommand returns the top-level TUI command for the interactive board.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive board",
		Action:  r.TUI,
	}
}
