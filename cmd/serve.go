package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/twinchat/twinchat/internal/analytics"
	"github.com/twinchat/twinchat/internal/chat"
	"github.com/twinchat/twinchat/internal/config"
	"github.com/twinchat/twinchat/internal/db"
	"github.com/twinchat/twinchat/internal/feedback"
	"github.com/twinchat/twinchat/internal/logging"
	"github.com/twinchat/twinchat/internal/preview"
	"github.com/twinchat/twinchat/internal/server"
	"github.com/twinchat/twinchat/internal/watcher"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the twinchat API server",
	Long:  `Starts the HTTP server exposing the chat, feedback, analytics, and corpus preview endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err := logging.New(verbose)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer logger.Sync()

		comps, err := buildComponents(cfg, logger)
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		enabled := chatEnabledFunc(cfg)
		srv := server.New(server.Config{
			Port:           cfg.Port,
			AllowedOrigins: cfg.AllowedOrigins,
		}, enabled, comps.pipe, logger)

		registerRoutes(srv, database, cfg, comps, enabled, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.WatchCorpus {
			w, err := watcher.New(cfg.DataDir, comps.pipe.Reload, logger)
			if err != nil {
				return fmt.Errorf("creating corpus watcher: %w", err)
			}
			if err := w.Start(ctx); err != nil {
				return fmt.Errorf("starting corpus watcher: %w", err)
			}
			defer w.Stop()
		}

		go func() {
			<-ctx.Done()
			logger.Info("shutting down")
			srv.Shutdown(context.Background())
		}()

		logger.Info("twinchat starting",
			zap.String("version", Version),
			zap.Int("port", cfg.Port),
			zap.String("provider", string(cfg.Provider)),
			zap.String("model", cfg.Model),
			zap.Int("chunks", comps.retriever.ChunkCount()),
			zap.Int("known_people", comps.detector.Size()),
		)

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

// registerRoutes wires all feature routes onto the server's router.
func registerRoutes(srv *server.Server, database *db.DB, cfg *config.Config, comps *components, enabled func() bool, logger *zap.Logger) {
	r := srv.Router()

	chatStore := chat.NewStore(database)
	feedbackStore := feedback.NewStore(database)
	analyticsStore := analytics.NewStore(database)

	// Chat carries the per-IP rate limit; everything else is cheap.
	handler := chat.NewHandler(chatStore, feedbackStore, comps.pipe, enabled, logger)
	r.Group(func(r chi.Router) {
		r.Use(server.RateLimit(cfg.RateLimitRPM))
		chat.RegisterRoutes(r, handler)
	})

	feedback.RegisterRoutes(r, feedbackStore, analyticsStore)
	analytics.RegisterRoutes(r, analyticsStore)

	renderer := preview.NewRenderer(cfg.DataDir, comps.retriever)
	preview.RegisterRoutes(r, renderer)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8000, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
