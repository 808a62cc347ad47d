package documents

import (
	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the upload form actions. The page itself is mounted
// by the router from the route table.
func SetupRoutes(router chi.Router, handlers *Handlers) {
	router.Post("/upload-document/file", handlers.SelectFile)
	router.Post("/upload-document/remove", handlers.RemoveFile)
	router.Post("/upload-document/emails", handlers.SetEmails)
	router.Post("/upload-document/submit", handlers.Submit)
}
