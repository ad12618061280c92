package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/setlist/internal/repositories"
	"github.com/desertthunder/setlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the embedded example config to the --config path.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	r.writePlain("✓ Config written to %s\n", path)
	return nil
}

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, err := shared.OpenDatabase(ctx, r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return r.writeMigrationStatus(ctx, db)
}

// SetupStatus lists the applied migrations.
func (r *Runner) SetupStatus(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return r.writeMigrationStatus(ctx, db)
}

// SetupRollback reverts the most recently applied migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := shared.RollbackMigration(ctx, db); err != nil {
		return err
	}

	r.logger.Warn("rolled back migration", "path", r.config.Database.Path)
	return r.writeMigrationStatus(ctx, db)
}

func (r *Runner) writeMigrationStatus(ctx context.Context, db *sql.DB) error {
	applied, err := shared.MigrationStatus(ctx, db)
	if err != nil {
		return err
	}

	r.writePlainHeader(fmt.Sprintf("Database: %s", r.config.Database.Path))
	if len(applied) == 0 {
		return r.writePlain("No migrations applied\n")
	}
	for _, m := range applied {
		r.writePlain("  %04d  applied %s\n", m.Version, m.AppliedAt.Format("2006-01-02 15:04:05"))
	}

	revision, err := repositories.NewSQLiteStore(db).Revision(ctx)
	if err != nil {
		return err
	}
	return r.writePlain("Snapshot revision: %d\n", revision)
}
