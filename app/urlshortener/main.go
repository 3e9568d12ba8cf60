package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/superj80820/url-shortener/config"
)

const (
	SYSTEM_NAME  = "system"
	SERVICE_NAME = "url_shortener"
)

var envFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serveCmd := newServeCmd()
	rootCmd := &cobra.Command{
		Use:           "urlshortener",
		Short:         "URL shortener service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path of the .env file")
	rootCmd.AddCommand(serveCmd, newMigrateCmd(), newCreateCmd())
	return rootCmd
}

func loadConfig() (*config.Config, error) {
	return config.Load(envFile)
}
