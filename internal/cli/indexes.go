package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/maxwharris/Produck/internal/config"
	"github.com/maxwharris/Produck/internal/database"
)

func newIndexesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the MongoDB indexes and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, nil)
			if err != nil {
				return err
			}
			if cfg.StoreDriver != config.DriverMongo {
				return errors.New("indexes only apply to the mongo driver")
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			client, err := database.Connect(cmd.Context(), cfg.MongoURI)
			if err != nil {
				return err
			}
			defer func() { _ = client.Disconnect(context.Background()) }()

			if err := database.EnsureIndexes(cmd.Context(), client.Database(cfg.DBName), logger.Sugar()); err != nil {
				return err
			}
			Success("indexes ensured on %s", cfg.DBName)
			return nil
		},
	}
}
