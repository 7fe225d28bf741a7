package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsekovTriesCoding/activity-log-service/internal/infrastructure/database"
	"github.com/tsekovTriesCoding/activity-log-service/internal/infrastructure/repository"
	"github.com/tsekovTriesCoding/activity-log-service/pkg/config"
)

// MigrateCmd returns the migrate command group
func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the activity_logs schema",
		Long: `Apply or roll back the activity_logs schema.

PostgreSQL uses the embedded goose migrations. SQLite only supports "up",
which creates the table and index when missing.

Usage:
  activitylogctl migrate up       # apply pending migrations
  activitylogctl migrate down     # roll back the latest migration (postgres)
  activitylogctl migrate status   # print applied migrations (postgres)`,
	}

	cmd.PersistentFlags().String("driver", "", "Store driver override (postgres|sqlite)")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE:  runMigrateUp,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, m *database.Migrator) error {
				return m.Down(ctx)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print migration status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, m *database.Migrator) error {
				return m.Status(ctx)
			})
		},
	})

	return cmd
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Store.Driver == config.StoreDriverSQLite {
		ctx := cmd.Context()
		client, err := database.NewSQLiteClient(ctx, cfg.SQLite.DSN)
		if err != nil {
			return err
		}
		defer client.Close()

		if err := repository.NewBunActivityLogRepository(client.DB()).EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to create SQLite schema: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "sqlite schema is up to date")
		return nil
	}

	return withMigrator(cmd, func(ctx context.Context, m *database.Migrator) error {
		if err := m.Up(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "postgres migrations applied")
		return nil
	})
}

// withMigrator opens PostgreSQL, runs fn, and closes the pool
func withMigrator(cmd *cobra.Command, fn func(ctx context.Context, m *database.Migrator) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Store.Driver != config.StoreDriverPostgres {
		return fmt.Errorf("%s is only supported for the postgres driver", cmd.Name())
	}

	ctx := cmd.Context()
	client, err := database.NewPostgresClient(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer client.Close()

	m, err := database.NewMigrator(client)
	if err != nil {
		return err
	}
	return fn(ctx, m)
}

// loadConfig reads the environment and applies the --driver override
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	driver, _ := cmd.Flags().GetString("driver")
	switch driver {
	case "":
	case config.StoreDriverPostgres, config.StoreDriverSQLite:
		cfg.Store.Driver = driver
	default:
		return nil, fmt.Errorf("invalid --driver: %q", driver)
	}
	return cfg, nil
}
