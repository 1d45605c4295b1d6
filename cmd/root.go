package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Zachkp/terminal-portfolio/internal/config"
	"github.com/Zachkp/terminal-portfolio/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	appConfig *config.Config
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Terminal-themed personal portfolio",
	Long: `portfolio serves a terminal-themed personal portfolio site: content,
an architecture diagram gallery, a Medium feed and a toy terminal. The same
terminal can be used from the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./portfolio.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
}

func initialize() error {
	cfg, err := config.Load(viper.New(), cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	l, err := logging.New(cfg.Log.Level, cfg.Server.Mode == "debug")
	if err != nil {
		return err
	}
	appConfig = cfg
	logger = l
	return nil
}
