package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidsponential/website/internal/dataapi"
	"github.com/vidsponential/website/internal/db"
	"github.com/vidsponential/website/internal/manifest"
	"github.com/vidsponential/website/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	Long: `Starts the site server. Pages are rendered on request from the data API,
with in-place filter and modal fragments, the build manifest API, and a cache
invalidation endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		logger := newLogger()

		site, cache, err := newSite(cfg, logger)
		if err != nil {
			return err
		}

		if cfg.Cache.Refresh != "" {
			sched, err := dataapi.ScheduleInvalidation(cache, cfg.Cache.Refresh, logger)
			if err != nil {
				return err
			}
			defer sched.Stop()
		}

		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:           cfg.Port,
			AllowAll:       cfg.AllowAllOrigins,
			RequestTimeout: cfg.RequestTimeout,
		}, database)

		r := srv.Router()
		site.RegisterRoutes(r)
		manifest.RegisterRoutes(r, manifest.NewStore(database))

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			site.Close()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "vidsite %s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Data API: %s\n", cfg.DataAPIURL)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.DBPath)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
