// Package ui provides the SignDesk web server.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/signdesk/internal/api"
	"github.com/leapstack-labs/signdesk/internal/auth"
	"github.com/leapstack-labs/signdesk/internal/layout"
	"github.com/leapstack-labs/signdesk/internal/routes"
	"github.com/leapstack-labs/signdesk/internal/state"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common"
	"github.com/leapstack-labs/signdesk/internal/ui/notifier"
	"github.com/leapstack-labs/signdesk/internal/ui/router"
)

// reloadDebounce coalesces bursts of asset writes into one reload.
const reloadDebounce = 100 * time.Millisecond

// Server is the main UI server.
type Server struct {
	addr        string
	watch       bool
	isDev       bool
	assetsDir   string
	requireAuth bool
	logger      *slog.Logger

	renderer *common.Renderer
	store    state.Store
	api      *api.Client
	shell    *notifier.Hub[layout.Event]
	reload   *notifier.Hub[struct{}]
}

// Config holds configuration for the UI server.
type Config struct {
	Addr          string
	Store         state.Store
	API           *api.Client
	Table         *routes.Table
	Layout        layout.Config
	DefaultWidth  int
	SessionSecret string
	SecureCookies bool
	RequireAuth   bool
	AssetsDir     string
	Watch         bool
	Dev           bool
	Logger        *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	table := cfg.Table
	if table == nil {
		table = routes.Default()
	}

	authStore := auth.NewStore(auth.NewCookieStore(cfg.SessionSecret, cfg.SecureCookies), logger)

	return &Server{
		addr:        cfg.Addr,
		watch:       cfg.Watch,
		isDev:       cfg.Dev,
		assetsDir:   cfg.AssetsDir,
		requireAuth: cfg.RequireAuth,
		logger:      logger,
		renderer: &common.Renderer{
			Table:        table,
			Auth:         authStore,
			Layout:       cfg.Layout,
			DefaultWidth: cfg.DefaultWidth,
			IsDev:        cfg.Dev,
		},
		store:  cfg.Store,
		api:    cfg.API,
		shell:  notifier.New[layout.Event](),
		reload: notifier.New[struct{}](),
	}
}

// Handler builds the server's HTTP handler.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, router.Deps{
		Renderer:    s.renderer,
		Store:       s.store,
		API:         s.api,
		Shell:       s.shell,
		Reload:      s.reload,
		AssetsDir:   s.assetsDir,
		RequireAuth: s.requireAuth,
		Logger:      s.logger,
	}); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.logger.Info("starting UI server", "addr", "http://"+ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch && s.assetsDir != "" {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev reports whether the dev reload endpoints are served.
func (s *Server) IsDev() bool {
	return s.isDev
}

// Reloads returns the hub the dev reload stream listens on.
func (s *Server) Reloads() *notifier.Hub[struct{}] {
	return s.reload
}

// watchFiles broadcasts a reload whenever an asset under assetsDir changes.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.assetsDir); err != nil {
		s.logger.Error("failed to watch assets directory", "error", err)
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !isAsset(event.Name) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(reloadDebounce, func() {
				s.logger.Debug("asset changed, reloading clients", "file", name)
				s.reload.Broadcast(struct{}{})
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

func isAsset(name string) bool {
	switch filepath.Ext(name) {
	case ".css", ".js", ".svg", ".png", ".ico", ".woff2":
		return true
	}
	return false
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
