package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexintel/caselaw-intelligence/internal/infrastructure/database/postgres"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres mirror schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbURL, err := migrateDBURL(cmd)
			if err != nil {
				return err
			}
			if err := postgres.RunMigrations(dbURL); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbURL, err := migrateDBURL(cmd)
			if err != nil {
				return err
			}
			if err := postgres.RollbackMigrations(dbURL, steps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbURL, err := migrateDBURL(cmd)
			if err != nil {
				return err
			}
			version, dirty, err := postgres.MigrationStatus(dbURL)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if version == 0 {
				fmt.Fprintln(out, "no migrations applied")
				return nil
			}
			fmt.Fprintf(out, "schema version %d", version)
			if dirty {
				fmt.Fprint(out, " (dirty)")
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.AddCommand(up, down, status)
	return cmd
}

func migrateDBURL(cmd *cobra.Command) (string, error) {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return "", err
	}
	if !cliCtx.Config.Database.Enabled {
		return "", errors.InvalidParam("the database is not enabled in configuration")
	}
	return postgres.MigrateDSN(cliCtx.Config.Database), nil
}
