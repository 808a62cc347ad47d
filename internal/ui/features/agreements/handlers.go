// Package agreements provides the create-agreement page: the signing envelope
// produced by the session's latest successful upload.
package agreements

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/signdesk/internal/auth"
	"github.com/leapstack-labs/signdesk/internal/state"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common"
	"github.com/leapstack-labs/signdesk/internal/ui/features/common/components"
)

// Handlers provides HTTP handlers for the agreements feature.
type Handlers struct {
	store    state.Store
	auth     *auth.Store
	renderer *common.Renderer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store state.Store, authStore *auth.Store, renderer *common.Renderer) *Handlers {
	return &Handlers{
		store:    store,
		auth:     authStore,
		renderer: renderer,
	}
}

// AgreementPage renders the latest envelope, or an empty state.
func (h *Handlers) AgreementPage(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.auth.SessionID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	latest, err := h.store.LatestEnvelope(r.Context(), sessionID)
	if err != nil && !errors.Is(err, state.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "Create Agreement", agreementView(latest))
}

func agreementView(latest *state.Upload) templ.Component {
	return components.Component(func(_ context.Context, w *components.Writer) {
		w.Open("section", "id", "create-agreement", "class", "panel")
		w.Elem("h1", "Create Agreement")

		if latest == nil {
			w.Open("div", "class", "empty-state")
			w.Elem("p", "No envelope yet. Upload a document to start an agreement.")
			w.Elem("a", "Upload a document", "href", "/upload-document", "class", "button")
			w.Close("div")
			w.Close("section")
			return
		}

		w.Open("dl", "class", "envelope")
		w.Elem("dt", "Envelope")
		w.Elem("dd", latest.EnvelopeID, "id", "envelope-id", "class", "mono")
		w.Elem("dt", "Document")
		w.Elem("dd", latest.FileName)
		w.Elem("dt", "Signers")
		w.Elem("dd", strings.Join(latest.SignerEmails, ", "))
		w.Elem("dt", "Sent")
		w.Elem("dd", common.FormatWhen(latest.CreatedAt))
		w.Close("dl")
		w.Close("section")
	})
}
