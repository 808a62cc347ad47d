package workspace

import (
	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the workspace actions.
func SetupRoutes(router chi.Router, handlers *Handlers) {
	router.Post("/settings/sign-out", handlers.SignOut)
}
