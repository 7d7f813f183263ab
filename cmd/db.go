package cmd

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/hooktrail/hooktrail/db/migrator"
	"github.com/spf13/cobra"
)

func newDatabaseResetCmd() *cobra.Command {
	var yes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Reset the database",
		Long:  ``,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !prompt("Are you sure? This operation is irreversible.") {
					return errors.New("canceled")
				}
			}
			m := migrator.New(cfg)
			cmd.Println("resetting database...")
			if err := m.Reset(); err != nil {
				return err
			}
			cmd.Println("database successfully reset")
			return nil
		},
	}
	reset.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "yes")
	return reset
}

func newDatabaseCmd() *cobra.Command {
	database := &cobra.Command{
		Use:               "db",
		Short:             "Database commands",
		Long:              ``,
		PersistentPreRunE: loadConfig,
	}

	database.PersistentFlags().StringVarP(&configurationFile, "config", "", "", "The configuration filename")

	database.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the migration status",
		Long:  ``,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := migrator.New(cfg)
			version, dirty, err := m.Status()
			if err != nil {
				if errors.Is(err, migrate.ErrNilVersion) {
					cmd.Println("no migrations applied")
					return nil
				}
				return err
			}

			if dirty {
				cmd.Printf("%d (dirty)\n", version)
			} else {
				cmd.Printf("%d\n", version)
			}
			return nil
		},
	})

	database.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run any new migrations",
		Long:  ``,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := migrator.New(cfg)
			if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return err
			}
			cmd.Println("database is up-to-date")
			return nil
		},
	})

	database.AddCommand(newDatabaseResetCmd())

	return database
}
