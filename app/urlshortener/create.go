package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	loggerKit "github.com/superj80820/url-shortener/kit/logger"
	deliveryHTTP "github.com/superj80820/url-shortener/urlshortener/delivery/http"
	redisCacheRepo "github.com/superj80820/url-shortener/urlshortener/repository/cache/redis"
	linkOrmRepo "github.com/superj80820/url-shortener/urlshortener/repository/link/orm"
	linkUseCase "github.com/superj80820/url-shortener/urlshortener/usecase/link"
)

func newCreateCmd() *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Shorten a url and print the short url",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := setupNode(cfg); err != nil {
				return err
			}
			logger, err := createLogger(cfg, loggerKit.NoStdout)
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := createDB(cfg)
			if err != nil {
				return errors.Wrap(err, "connect database failed")
			}
			defer db.Close()
			cache, err := createCache(cfg)
			if err != nil {
				return errors.Wrap(err, "connect redis failed")
			}
			defer cache.Close()

			links, err := linkUseCase.CreateLinkUseCase(
				linkOrmRepo.CreateLinkRepo(db),
				redisCacheRepo.CreateLinkCacheRepo(cache),
				cfg.BaseURL,
				logger,
				linkUseCase.WithCodeLength(cfg.CodeLength),
			)
			if err != nil {
				return err
			}
			if err := deliveryHTTP.ValidateURL(target); err != nil {
				return err
			}
			shortURL, err := links.Shorten(cmd.Context(), target)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), shortURL)
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "url", "", "absolute http or https url to shorten")
	cmd.MarkFlagRequired("url")
	return cmd
}
