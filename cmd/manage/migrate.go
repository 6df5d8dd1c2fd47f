package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/logger"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the embedded SQL migrations",
	}

	run := func(apply func(*database.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			m, err := database.NewMigrator(db.Pool)
			if err != nil {
				return err
			}
			if err := apply(m); err != nil {
				return err
			}

			version, dirty, err := m.Version()
			if err != nil {
				return fmt.Errorf("read schema version: %w", err)
			}
			logger.Info("schema version", map[string]interface{}{"version": version, "dirty": dirty})
			return nil
		}
	}

	var steps int
	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE:  run(func(m *database.Migrator) error { return m.Up() }),
	}
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations (all, or --steps N)",
		Args:  cobra.NoArgs,
		RunE: run(func(m *database.Migrator) error {
			if steps > 0 {
				return m.Steps(-steps)
			}
			return m.Down()
		}),
	}
	down.Flags().IntVar(&steps, "steps", 0, "number of migrations to roll back (0 = all)")

	cmd.AddCommand(up, down)
	return cmd
}
