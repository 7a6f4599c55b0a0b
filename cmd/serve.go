package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/pageshell/internal/db"
	"github.com/ziadkadry99/pageshell/internal/history"
	"github.com/ziadkadry99/pageshell/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server with live navigation sessions",
	Long: `Starts the pageshell HTTP server: the HTML shell at /, the JSON page API
under /api and live navigation sessions over WebSocket at /ws. Session history
is kept in SQLite unless --no-history is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow all CORS origins (dev mode)")
	serveCmd.Flags().Bool("no-history", false, "keep session history in memory only")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, table, rc, err := loadSite()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	port := cfg.Server.Port
	if p, _ := cmd.Flags().GetInt("port"); p > 0 {
		port = p
	}
	allowAll := cfg.Server.AllowAllOrigins
	if a, _ := cmd.Flags().GetBool("allow-all-origins"); a {
		allowAll = true
	}

	var store *history.Store
	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory && cfg.Server.HistoryDB != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Server.HistoryDB), 0o755); err != nil {
			return fmt.Errorf("creating history directory: %w", err)
		}
		database, err := db.Open(cfg.Server.HistoryDB)
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer database.Close()
		store = history.NewStore(database)
	}

	srv, err := server.New(server.Config{
		Port:     port,
		AllowAll: allowAll,
		SiteName: cfg.SiteName,
		Home:     cfg.HomeRoute,
		Delay:    cfg.NavigationDelay(),
		Render:   rc,
	}, table, store, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("pageshell server starting",
		zap.String("version", Version),
		zap.Int("port", port),
		zap.Int("pages", table.Len()),
		zap.String("history_db", cfg.Server.HistoryDB),
	)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
