package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/terminal-portfolio/internal/config"
	"github.com/Zachkp/terminal-portfolio/internal/content"
	"github.com/Zachkp/terminal-portfolio/internal/feed"
	"github.com/Zachkp/terminal-portfolio/internal/server"
	"github.com/Zachkp/terminal-portfolio/internal/session"
	"github.com/Zachkp/terminal-portfolio/internal/visitors"
)

var (
	servePort  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio site",
	Long: `serve starts the web server and runs until interrupted. With --watch,
templates are reloaded when they change on disk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			appConfig.Server.Port = servePort
		}
		if cmd.Flags().Changed("watch") {
			appConfig.Server.Watch = serveWatch
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServer(ctx, appConfig, logger)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload templates on change")
	rootCmd.AddCommand(serveCmd)
}

func runServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	gin.SetMode(cfg.Server.Mode)

	client := &http.Client{Timeout: cfg.Feed.Timeout}
	deps := server.Deps{
		Content:  content.NewStore(cfg.Content.Source, cfg.Content.Manifest, client),
		Feed:     newFeedSource(cfg.Feed, client),
		Sessions: session.NewStore(cfg.Session.TTL, cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		Logger:   logger,
	}

	if cfg.Stats.Enabled {
		db, err := visitors.Open(cfg.Stats.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		tracker, err := visitors.NewTracker(ctx, db, cfg.Stats.Salt, logger)
		if err != nil {
			return err
		}
		deps.Tracker = tracker
		logger.Info("privacy: visitor tracking enabled with hashed IP addresses")
	}

	srv, err := server.New(cfg, deps)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}
	return srv.Run(ctx)
}

func newFeedSource(cfg config.FeedConfig, client *http.Client) feed.Source {
	if cfg.Source == config.FeedSourceRSS {
		return feed.NewRSSClient(cfg.RSSURL, client)
	}
	return feed.NewBridgeClient(cfg.BridgeURL, cfg.RSSURL, client)
}
