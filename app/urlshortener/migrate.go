package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	loggerKit "github.com/superj80820/url-shortener/kit/logger"
	linkOrmRepo "github.com/superj80820/url-shortener/urlshortener/repository/link/orm"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the links table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, err := createLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := createDB(cfg)
			if err != nil {
				return errors.Wrap(err, "connect database failed")
			}
			defer db.Close()

			if err := linkOrmRepo.Migrate(db); err != nil {
				return err
			}
			logger.Info("migrate done", loggerKit.String("driver", cfg.DatabaseDriver))
			return nil
		},
	}
}
