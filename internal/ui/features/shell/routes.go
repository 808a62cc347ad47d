package shell

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/signdesk/internal/layout"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common"
	"github.com/leapstack-labs/signdesk/internal/ui/notifier"
)

// SetupRoutes registers the shell endpoints and returns the handlers so the
// caller can install the page middleware.
func SetupRoutes(
	router chi.Router,
	renderer *common.Renderer,
	hub *notifier.Hub[layout.Event],
	logger *slog.Logger,
) *Handlers {
	handlers := NewHandlers(renderer, hub, logger)

	router.Route("/shell/{tab}", func(r chi.Router) {
		r.Get("/sse", handlers.Stream)
		r.Post("/resize", handlers.Resize)
		r.Post("/navigate", handlers.Navigate)
		r.Post("/open", handlers.Open)
		r.Post("/close", handlers.Close)
	})

	return handlers
}
