package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/signdesk/internal/api"
	"github.com/leapstack-labs/signdesk/internal/cli/config"
	"github.com/leapstack-labs/signdesk/internal/routes"
	"github.com/leapstack-labs/signdesk/internal/state"
	"github.com/leapstack-labs/signdesk/internal/ui"
)

// NewServeCommand creates the serve command. Its flags are read by the
// config loader, so they override the config file and the environment.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the SignDesk web server",
		Long: `Start the SignDesk web server.

The server renders the marketing and account pages, the authenticated
shell with its responsive sidebar, and the document upload flow backed
by the configured REST API.`,
		Example: `  # Serve on the default address
  signdesk serve

  # Serve on all interfaces against a remote API
  signdesk serve --addr :8080 --api-url https://api.example.com

  # Develop stylesheets with live reload
  signdesk serve --dev --watch --assets-dir internal/ui/resources/static`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd)
		},
	}

	cmd.Flags().String("addr", "", "Address to listen on (default "+config.DefaultAddr+")")
	cmd.Flags().Bool("dev", false, "Serve the dev reload endpoints")
	cmd.Flags().Bool("watch", false, "Reload browsers when files in --assets-dir change")
	cmd.Flags().String("assets-dir", "", "Serve static assets from this directory")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command) error {
	loaded := config.GetConfig(cmd.Context())
	if loaded == nil {
		return fmt.Errorf("configuration not loaded")
	}
	cfg := loaded.Config
	logger := config.GetLogger(cmd.Context())

	if cfg.SessionSecret == config.DefaultSessionSecret {
		logger.Warn("using the built-in session secret; set session_secret for production")
	}
	if cfg.Watch && cfg.AssetsDir == "" {
		logger.Warn("--watch has no effect without --assets-dir")
	}

	store, err := openState(ctx, cfg.StatePath, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	server := ui.NewServer(ui.Config{
		Addr:          cfg.Addr,
		Store:         store,
		API:           api.NewClient(cfg.APISettings(), logger),
		Table:         routes.Default(),
		Layout:        cfg.LayoutSettings(),
		DefaultWidth:  cfg.Layout.DefaultViewportWidth,
		SessionSecret: cfg.SessionSecret,
		SecureCookies: cfg.SecureCookies,
		RequireAuth:   cfg.Auth.Require,
		AssetsDir:     cfg.AssetsDir,
		Watch:         cfg.Watch,
		Dev:           cfg.Dev,
		Logger:        logger,
	})

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Starting SignDesk on http://%s\n", cfg.Addr)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	return server.Serve(ctx)
}

// openState opens the state database, creating its directory first.
func openState(ctx context.Context, path string, logger *slog.Logger) (*state.SQLiteStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create state directory: %w", err)
			}
		}
	}
	store, err := state.OpenAndMigrate(ctx, path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	return store, nil
}
