// Package router sets up HTTP routes for the UI server.
package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/signdesk/internal/api"
	"github.com/leapstack-labs/signdesk/internal/layout"
	"github.com/leapstack-labs/signdesk/internal/routes"
	"github.com/leapstack-labs/signdesk/internal/state"
	accountsFeature "github.com/leapstack-labs/signdesk/internal/ui/features/accounts"
	agreementsFeature "github.com/leapstack-labs/signdesk/internal/ui/features/agreements"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common"
	documentsFeature "github.com/leapstack-labs/signdesk/internal/ui/features/documents"
	historyFeature "github.com/leapstack-labs/signdesk/internal/ui/features/history"
	homeFeature "github.com/leapstack-labs/signdesk/internal/ui/features/home"
	notfoundFeature "github.com/leapstack-labs/signdesk/internal/ui/features/notfound"
	shellFeature "github.com/leapstack-labs/signdesk/internal/ui/features/shell"
	workspaceFeature "github.com/leapstack-labs/signdesk/internal/ui/features/workspace"
	"github.com/leapstack-labs/signdesk/internal/ui/notifier"
	"github.com/leapstack-labs/signdesk/internal/ui/resources"
)

// Deps are the services the routes are wired to.
type Deps struct {
	Renderer    *common.Renderer
	Store       state.Store
	API         *api.Client
	Shell       *notifier.Hub[layout.Event]
	Reload      *notifier.Hub[struct{}]
	AssetsDir   string
	RequireAuth bool
	Logger      *slog.Logger
}

// SetupRoutes configures all routes for the UI server. Every entry of the
// route table is served by exactly one page handler; unmatched paths get the
// not-found page.
func SetupRoutes(router chi.Router, deps Deps) error {
	if deps.Renderer == nil || deps.Renderer.Table == nil || deps.Renderer.Auth == nil {
		return fmt.Errorf("renderer with route table and auth store is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	table := deps.Renderer.Table
	authStore := deps.Renderer.Auth
	if deps.Shell == nil {
		deps.Shell = notifier.New[layout.Event]()
	}

	if deps.Renderer.IsDev {
		if deps.Reload == nil {
			deps.Reload = notifier.New[struct{}]()
		}
		setupReload(router, deps.Reload)
	}

	router.Handle("/static/*", resources.Handler(deps.AssetsDir))

	shell := shellFeature.SetupRoutes(router, deps.Renderer, deps.Shell, logger)

	documentsService := documentsFeature.NewService(deps.Store, deps.API, logger)
	documents := documentsFeature.NewHandlers(documentsService, authStore, deps.Renderer, logger)
	accounts := accountsFeature.NewHandlers(deps.API, authStore, deps.Renderer, logger)
	workspace := workspaceFeature.NewHandlers(authStore, deps.Renderer, logger)
	home := homeFeature.NewHandlers(deps.Renderer)
	agreements := agreementsFeature.NewHandlers(deps.Store, authStore, deps.Renderer)
	history := historyFeature.NewHandlers(deps.Store, authStore, deps.Renderer)
	notFound := notfoundFeature.NewHandlers(deps.Renderer)

	pages := map[routes.Page]http.HandlerFunc{
		routes.Home:              home.HomePage,
		routes.SignIn:            accounts.SignInPage,
		routes.SignUp:            accounts.SignUpPage,
		routes.ForgotPassword:    accounts.ForgotPage,
		routes.TokenVerification: accounts.VerifyPage,
		routes.ResetPassword:     accounts.ResetPage,
		routes.UploadDocument:    documents.UploadPage,
		routes.CreateAgreement:   agreements.AgreementPage,
		routes.History:           history.HistoryPage,
		routes.Team:              workspace.TeamPage,
		routes.Settings:          workspace.SettingsPage,
		routes.Test:              workspace.TestPage,
	}

	router.Group(func(r chi.Router) {
		r.Use(shell.Middleware)
		if deps.RequireAuth {
			signIn := table.Path(routes.SignIn)
			r.Use(authStore.RequireAuth(table, signIn))
		}

		for _, e := range table.Entries() {
			handler, ok := pages[e.Page]
			if !ok {
				logger.Warn("no handler for page", "page", e.Page, "pattern", e.Pattern)
				continue
			}
			r.Get(e.Pattern, handler)
		}

		accountsFeature.SetupRoutes(r, accounts)
		documentsFeature.SetupRoutes(r, documents)
		workspaceFeature.SetupRoutes(r, workspace)

		r.NotFound(notFound.NotFoundPage)
	})

	return nil
}

// setupReload serves the dev reload stream. Each browser reloads once after
// the server starts, and again whenever a reload is broadcast on hub.
func setupReload(router chi.Router, hub *notifier.Hub[struct{}]) {
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		updates := hub.Subscribe("")
		defer hub.Unsubscribe("", updates)

		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-updates:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		hub.Broadcast(struct{}{})
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
