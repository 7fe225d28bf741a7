package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsekovTriesCoding/activity-log-service/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "activitylogctl",
		Short: "Operator CLI for the activity log service",
		Long: `activitylogctl manages the activity log store.
Connection settings are read from the same environment variables as the API server
(STORE_DRIVER, DATABASE_URL, SQLITE_DSN).`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.MigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
