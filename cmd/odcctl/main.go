package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/config"
	"github.com/odc-estimate/internal/pkg/logger"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:          "odcctl",
	Short:        "ODC estimate operations tool",
	Long:         "Applies database migrations, runs estimates against the live catalog, exports enquiries and prepares admin credentials.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log, err := logger.New(logLevel)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		zap.ReplaceGlobals(log)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// loadConfig читает конфигурацию из окружения и .env
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, eris.Wrap(err, "load config")
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
