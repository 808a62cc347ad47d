// Package notfound renders the page shown for unmatched paths.
package notfound

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/signdesk/internal/ui/features/common"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common/components"
)

// Handlers provides the not-found handler.
type Handlers struct {
	renderer *common.Renderer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(renderer *common.Renderer) *Handlers {
	return &Handlers{renderer: renderer}
}

// NotFoundPage renders a 404 inside the shell.
func (h *Handlers) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderStatus(w, r, http.StatusNotFound, "Page Not Found", view(r.URL.Path))
}

func view(path string) templ.Component {
	return components.Component(func(_ context.Context, w *components.Writer) {
		w.Open("section", "id", "not-found", "class", "panel")
		w.Elem("h1", "Page not found")
		w.Open("p", "class", "muted")
		w.Text("Nothing lives at ")
		w.Elem("code", path)
		w.Text(".")
		w.Close("p")
		w.Elem("a", "Back to home", "href", "/", "class", "button")
		w.Close("section")
	})
}
