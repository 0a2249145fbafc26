package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kubev2v/resort-catalog/internal/store"
	"github.com/kubev2v/resort-catalog/internal/store/migrations"
)

func newMigrateCommand(v *viper.Viper) *cobra.Command {
	var reinitialize bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the catalog tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(v)
			if err != nil {
				return err
			}
			cfg.Reinitialize = reinitialize
			zap.S().Named("cmd").Debugw("configuration", "config", cfg.DebugMap())

			conn := store.NewConnection()
			db, err := conn.Open(cmd.Context(), cfg.DBPath, cfg.Reinitialize)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := migrations.Run(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "database %s is up to date\n", cfg.DBPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reinitialize, "reinitialize", false, "delete the database before migrating")
	return cmd
}

// openStore opens the configured database and runs migrations.
func openStore(cmd *cobra.Command, v *viper.Viper) (*store.Store, error) {
	cfg, err := loadConfiguration(v)
	if err != nil {
		return nil, err
	}

	conn := store.NewConnection()
	db, err := conn.Open(cmd.Context(), cfg.DBPath, false)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(cmd.Context(), db); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return store.NewStore(conn), nil
}
