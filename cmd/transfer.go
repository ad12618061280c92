package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/setlist/internal/formatter"
	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/setlist"
	"github.com/desertthunder/setlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// Import appends the songs of a CSV file to the board.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: file", shared.ErrMissingArgument)
	}

	imp, err := formatter.ReadCSVImport(path, formatter.ImportOptions{NewID: r.engine.NewID, Now: r.engine.Now()})
	if err != nil {
		return err
	}
	if len(imp.Songs) == 0 {
		r.logger.Warn("no songs found in import", "path", path)
		return r.writePlain("No songs found in %s\n", path)
	}

	if _, err := r.update(ctx, func(state models.State) (models.State, error) {
		return setlist.ApplyImport(state, imp), nil
	}); err != nil {
		return err
	}

	r.logger.Info("imported songs", "path", path, "count", len(imp.Songs))
	return r.writePlain("✓ Imported %d songs from %s\n", len(imp.Songs), path)
}

// Export writes the board as CSV to --output, stdout for "-".
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	state, err := r.load(ctx)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "-" {
		_, err := r.output.Write(formatter.ExportToCSV(state))
		return err
	}

	path, err := formatter.WriteCSVExport(state, output, r.config.Setlist.ExportDir)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Exported %d songs to %s\n", state.Len(), path)
}

// Print renders the sets to stdout, a file, the browser or the clipboard.
func (r *Runner) Print(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidFlag, err)
	}

	state, err := r.load(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("copy") {
		if err := r.clipboard(string(formatter.ExportToText(state))); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		r.writePlain("✓ Copied print view to clipboard\n")
	}

	output := cmd.String("output")
	if cmd.Bool("open") {
		path, err := formatter.WritePrintExport(state, formatter.FormatHTML, output, r.config.Setlist.ExportDir)
		if err != nil {
			return err
		}
		if err := r.openBrowser(path); err != nil {
			return err
		}
		return r.writePlain("✓ Opened %s\n", path)
	}

	if output != "" {
		path, err := formatter.WritePrintExport(state, format, output, r.config.Setlist.ExportDir)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Wrote %s\n", path)
	}

	if cmd.Bool("copy") {
		return nil
	}

	data, err := formatter.Render(state, format)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}
