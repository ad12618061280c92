package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/setlist/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}

// newApp builds the root command; config loading and store cleanup wrap every subcommand.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "setlist",
		Usage:   "Plan concert sets from a song repertoire",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Before: r.configure,
		After: func(ctx context.Context, cmd *cli.Command) error {
			return r.Close()
		},
		Commands: r.register(),
	}
}
